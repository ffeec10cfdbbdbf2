package dto

import (
	"errors"

	"github.com/dronalogitech/whmapping/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ActionResult respuesta discriminada de las operaciones: success con data, o error.
type ActionResult[T any] struct {
	Success bool           `json:"success"`
	Data    *T             `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

// Ok envuelve un resultado exitoso.
func Ok[T any](data T) ActionResult[T] {
	return ActionResult[T]{Success: true, Data: &data}
}

// Fail envuelve un error con su código estable y el mensaje para el operador.
func Fail[T any](err error) ActionResult[T] {
	return ActionResult[T]{Success: false, Error: NewErrorResponse(err)}
}

// NewErrorResponse construye el cuerpo de error. Los fallos de transacción, tipados o no,
// salen con un mensaje genérico: el error del store solo va al log.
func NewErrorResponse(err error) *ErrorResponse {
	code := domain.ErrorCode(err)
	if code == "TRANSACTION" {
		return &ErrorResponse{Code: code, Message: TransactionFailedMessage}
	}
	var le *domain.LedgerError
	if errors.As(err, &le) {
		return &ErrorResponse{Code: code, Message: le.Message}
	}
	return &ErrorResponse{Code: code, Message: err.Error()}
}

// TransactionFailedMessage texto para el cliente cuando el store falla; no se aplicó ningún cambio.
const TransactionFailedMessage = "Transaction failed, no changes were applied"

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}
