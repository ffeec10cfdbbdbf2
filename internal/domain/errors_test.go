package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dronalogitech/whmapping/internal/domain"
)

func TestErrorCode_TransactionSeClasificaPorKind(t *testing.T) {
	// el store devolvió un sentinel de dominio, pero la transacción falló igual
	inner := fmt.Errorf("increment inventory: %w", domain.ErrNegativeBalance)
	err := domain.NewTransactionError(inner)

	assert.Equal(t, "TRANSACTION", domain.ErrorCode(err))
	assert.Equal(t, domain.ErrTransaction, domain.KindOf(err))
	// el error original sigue disponible para el log
	assert.ErrorIs(t, errors.Unwrap(err), domain.ErrNegativeBalance)
}

func TestErrorCode_PorKind(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{domain.NewValidationError("x"), "VALIDATION"},
		{domain.NewNotFoundError("EAN %q not found", "S1"), "NOT_FOUND"},
		{domain.NewInsufficientQuantityError(1, 2), "INSUFFICIENT_QUANTITY"},
		{domain.NewNegativeBalanceError(1, -2), "NEGATIVE_BALANCE"},
		{fmt.Errorf("create user: %w", domain.ErrDuplicate), "DUPLICATE"},
		{errors.New("conn reset"), "TRANSACTION"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, domain.ErrorCode(tc.err), tc.err.Error())
	}
}

func TestKindOf_ErrorNoTipado(t *testing.T) {
	err := errors.New("boom")
	assert.Same(t, err, domain.KindOf(err))
	assert.Nil(t, domain.KindOf(nil))
}
