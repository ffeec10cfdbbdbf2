package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones en memoria.
type LocationRepo struct {
	store *Store
	tx    *state
}

func (r *LocationRepo) GetByCode(ctx context.Context, code string) (*entity.Location, error) {
	var out *entity.Location
	err := r.store.view(r.tx, func(st *state) error {
		if l := st.locationByCode(code); l != nil {
			cp := *l
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) ResolveOrCreate(ctx context.Context, code string) (*entity.Location, error) {
	var out entity.Location
	err := r.store.view(r.tx, func(st *state) error {
		l := st.locationByCode(code)
		if l == nil {
			now := r.store.clock()
			l = &entity.Location{ID: uuid.New().String(), Code: code, CreatedAt: now, UpdatedAt: now}
			st.locations[l.ID] = l
		}
		out = *l
		return nil
	})
	return &out, err
}

func (r *LocationRepo) Search(ctx context.Context, search string, limit int) ([]entity.LocationSummary, error) {
	needle := strings.ToUpper(strings.TrimSpace(search))
	var out []entity.LocationSummary
	err := r.store.view(r.tx, func(st *state) error {
		counts := make(map[string]int)
		for k, inv := range st.inventory {
			if inv.Qty > 0 {
				counts[k.locationID]++
			}
		}
		for _, l := range st.locations {
			if needle != "" && !strings.Contains(strings.ToUpper(l.Code), needle) {
				continue
			}
			out = append(out, entity.LocationSummary{ID: l.ID, Code: l.Code, SKUCount: counts[l.ID]})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *LocationRepo) DeleteAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.store.view(r.tx, func(st *state) error {
		n = int64(len(st.locations))
		st.locations = make(map[string]*entity.Location)
		return nil
	})
	return n, err
}

func (st *state) locationByCode(code string) *entity.Location {
	for _, l := range st.locations {
		if l.Code == code {
			return l
		}
	}
	return nil
}
