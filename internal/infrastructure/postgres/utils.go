package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), ej. qty >= 0.
func isCheckViolation(err error) bool {
	return hasCode(err, "23514")
}

// isOutOfRange verifica si un error es numeric_value_out_of_range (22003), ej. qty > INTEGER.
func isOutOfRange(err error) bool {
	return hasCode(err, "22003")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
