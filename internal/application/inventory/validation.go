package inventory

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dronalogitech/whmapping/internal/domain"
	invdomain "github.com/dronalogitech/whmapping/internal/domain/inventory"
)

// validate es seguro para uso concurrente y cachea la metadata de cada struct.
var validate = newValidator()

// newValidator registra los alias de los límites de dominio para no repetirlos en los tags.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterAlias("loccode", fmt.Sprintf("max=%d", invdomain.MaxLocationCodeLen))
	v.RegisterAlias("skucode", fmt.Sprintf("max=%d", invdomain.MaxSKUCodeLen))
	v.RegisterAlias("qty", fmt.Sprintf("gt=0,lte=%d", invdomain.MaxQty))
	v.RegisterAlias("delta", fmt.Sprintf("gte=%d,lte=%d", -invdomain.MaxQty, invdomain.MaxQty))
	return v
}

var (
	locationCodeTooLong = fmt.Sprintf("Location code must be %d characters or less", invdomain.MaxLocationCodeLen)
	skuCodeTooLong      = fmt.Sprintf("EAN code must be %d characters or less", invdomain.MaxSKUCodeLen)
	qtyTooLarge         = fmt.Sprintf("Quantity must be %d or less", invdomain.MaxQty)
	qtyTooSmall         = fmt.Sprintf("Quantity must be %d or more", -invdomain.MaxQty)
	balanceTooLarge     = fmt.Sprintf("Resulting quantity would exceed the maximum of %d", invdomain.MaxQty)
)

// fieldMessages textos que ve el operador por campo y regla violada (tag real, no el alias).
var fieldMessages = map[string]map[string]string{
	"LocationCode": {
		"required": "Location code is required",
		"max":      locationCodeTooLong,
	},
	"FromLocationCode": {
		"required": "Location code is required",
		"max":      locationCodeTooLong,
	},
	"ToLocationCode": {
		"required": "Location code is required",
		"max":      locationCodeTooLong,
		"nefield":  "Source and destination locations must be different",
	},
	"SKUCode": {
		"required": "EAN code is required",
		"max":      skuCodeTooLong,
	},
	"Qty": {
		"gt":  "Quantity must be positive",
		"lte": qtyTooLarge,
		"gte": qtyTooSmall,
	},
	"Items": {
		"required": "At least one item is required",
		"min":      "At least one item is required",
	},
	"Note": {
		"required": "Adjustment note is required",
	},
}

// validateInput valida in con los tags del struct y devuelve el primer error como ValidationError.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError(err.Error())
	}
	return domain.NewValidationError(messageFor(verrs[0]))
}

func messageFor(fe validator.FieldError) string {
	if byTag, ok := fieldMessages[fe.StructField()]; ok {
		if msg, ok := byTag[fe.ActualTag()]; ok {
			return msg
		}
	}
	return fe.Error()
}

// overflowed traduce el desborde del saldo en el store a un error de validación.
func overflowed(err error) error {
	if errors.Is(err, domain.ErrQuantityOverflow) {
		return domain.NewValidationError(balanceTooLarge)
	}
	return err
}
