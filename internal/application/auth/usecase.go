package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
	"github.com/dronalogitech/whmapping/pkg/jwt"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// MinPasswordLen longitud mínima de contraseña.
const MinPasswordLen = 8

var errInvalidCredentials = domain.NewError(domain.ErrInvalidCredentials, "Invalid email or password")

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// CreateUserInput alta de usuario (password en texto, se hashea aquí).
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// LoginResult token firmado y el usuario autenticado.
type LoginResult struct {
	Token string
	User  *entity.User
}

// AuthUseCase casos de uso de autenticación: alta de usuarios y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Named("auth")}
}

// CreateUser hashea el password con bcrypt y persiste. Devuelve ErrDuplicate si el email ya existe.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("A valid email is required")
	}
	if len(in.Password) < MinPasswordLen {
		return nil, domain.NewValidationError("Password must be at least 8 characters")
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleOperator
	}
	if role != entity.RoleAdmin && role != entity.RoleOperator {
		return nil, domain.NewValidationError("Role must be admin or operator")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewError(domain.ErrDuplicate, "A user with that email already exists")
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario creado")
	return user, nil
}

// EnsureAdmin crea el administrador inicial si el email aún no existe.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, name, password string) (created bool, err error) {
	existing, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := uc.CreateUser(ctx, CreateUserInput{Email: email, Name: name, Password: password, Role: entity.RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.log.Warn().Str("user_id", user.ID).Msg("login fallido")
		return nil, errInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// Me devuelve el usuario del token.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User %q not found", userID)
	}
	return user, nil
}
