package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria; el email se compara sin distinguir mayúsculas.
type UserRepo struct {
	store *Store
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.store.view(nil, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrDuplicate
			}
		}
		if user.ID == "" {
			user.ID = uuid.New().String()
		}
		now := r.store.clock()
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now
		cp := *user
		st.users[cp.ID] = &cp
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.store.view(nil, func(st *state) error {
		if u := st.users[id]; u != nil {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.store.view(nil, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				cp := *u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}
