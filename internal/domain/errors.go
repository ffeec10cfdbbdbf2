package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation           = errors.New("entrada inválida")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente")
	ErrNegativeBalance      = errors.New("el saldo quedaría negativo")
	ErrQuantityOverflow     = errors.New("el saldo excede el máximo representable")
	ErrTransaction          = errors.New("fallo de transacción")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
)

// LedgerError es el resultado de fallo de una operación del ledger: Kind es uno de los
// sentinels de arriba y Message el texto que se muestra al operador tal cual.
type LedgerError struct {
	Kind    error
	Message string
	Err     error
}

func (e *LedgerError) Error() string { return e.Message }

// Is permite errors.Is(err, domain.ErrNotFound) sobre un *LedgerError.
func (e *LedgerError) Is(target error) bool { return e.Kind == target }

func (e *LedgerError) Unwrap() error { return e.Err }

// NewError error tipado con un mensaje propio para el cliente.
func NewError(kind error, message string) *LedgerError {
	return &LedgerError{Kind: kind, Message: message}
}

// NewValidationError error de validación previo a cualquier acceso al store.
func NewValidationError(message string) *LedgerError {
	return &LedgerError{Kind: ErrValidation, Message: message}
}

// NewNotFoundError entidad que debía existir y no existe.
func NewNotFoundError(format string, args ...any) *LedgerError {
	return &LedgerError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewInsufficientQuantityError el saldo de origen no alcanza para el Move.
func NewInsufficientQuantityError(available, requested int) *LedgerError {
	return &LedgerError{
		Kind:    ErrInsufficientQuantity,
		Message: fmt.Sprintf("Insufficient quantity. Available: %d, Requested: %d", available, requested),
	}
}

// NewNegativeBalanceError el ajuste dejaría el saldo por debajo de cero.
func NewNegativeBalanceError(current, delta int) *LedgerError {
	return &LedgerError{
		Kind:    ErrNegativeBalance,
		Message: fmt.Sprintf("Cannot adjust. Current: %d, Adjustment: %d, Result would be: %d", current, delta, current+delta),
	}
}

// KindOf sentinel que clasifica err: el Kind de un *LedgerError, o err mismo.
// El error envuelto por una TransactionError no cuenta para la clasificación.
func KindOf(err error) error {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Kind
	}
	return err
}

// NewTransactionError envuelve un fallo del store; la transacción ya fue revertida.
func NewTransactionError(err error) *LedgerError {
	return &LedgerError{Kind: ErrTransaction, Message: "transaction failed: " + err.Error(), Err: err}
}

// AsLedgerError devuelve err como *LedgerError; cualquier otro error se trata como fallo de transacción.
func AsLedgerError(err error) *LedgerError {
	if err == nil {
		return nil
	}
	var le *LedgerError
	if errors.As(err, &le) {
		return le
	}
	return NewTransactionError(err)
}

// ErrorCode código estable para clientes HTTP.
func ErrorCode(err error) string {
	err = KindOf(err)
	switch {
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInsufficientQuantity):
		return "INSUFFICIENT_QUANTITY"
	case errors.Is(err, ErrNegativeBalance):
		return "NEGATIVE_BALANCE"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	default:
		return "TRANSACTION"
	}
}
