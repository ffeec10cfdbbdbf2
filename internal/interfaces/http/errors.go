package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dronalogitech/whmapping/internal/application/dto"
	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// statusFor traduce el tipo de error de dominio a código HTTP.
func statusFor(err error) int {
	err = domain.KindOf(err)
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientQuantity),
		errors.Is(err, domain.ErrNegativeBalance),
		errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError responde con dto.ErrorResponse; los 500 se registran con el error original.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(dto.NewErrorResponse(err))
}

// respondResult responde con dto.ActionResult: data con okStatus, o el error con su status.
func respondResult[T any](c *fiber.Ctx, log *logger.Logger, okStatus int, data T, err error) error {
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		}
		return c.Status(status).JSON(dto.Fail[T](err))
	}
	return c.Status(okStatus).JSON(dto.Ok(data))
}

func invalidBody[T any](c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ActionResult[T]{
		Error: &dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"},
	})
}
