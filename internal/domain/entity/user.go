package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User operador u administrador que firma los movimientos.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operator
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName valor que se registra como usuario en la bitácora.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
