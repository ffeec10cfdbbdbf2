package inventory

import (
	"context"
	"strings"

	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	invdomain "github.com/dronalogitech/whmapping/internal/domain/inventory"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

// LocationContents saldos positivos de una ubicación.
type LocationContents struct {
	Location entity.Location
	Items    []entity.InventoryRecord
}

// SKUStock saldos positivos de un SKU con sus totales.
type SKUStock struct {
	SKU            entity.SKU
	Locations      []entity.InventoryRecord
	TotalQty       int
	TotalLocations int
}

// Availability saldo actual de un par ubicación/SKU.
type Availability struct {
	LocationCode string
	SKUCode      string
	SKUName      string
	Qty          int
}

// LookupUseCase consultas de solo lectura sobre saldos.
type LookupUseCase struct {
	locationRepo  repository.LocationRepository
	skuRepo       repository.SKURepository
	inventoryRepo repository.InventoryRepository
}

// NewLookupUseCase construye el caso de uso de consultas.
func NewLookupUseCase(
	locationRepo repository.LocationRepository,
	skuRepo repository.SKURepository,
	inventoryRepo repository.InventoryRepository,
) *LookupUseCase {
	return &LookupUseCase{locationRepo: locationRepo, skuRepo: skuRepo, inventoryRepo: inventoryRepo}
}

// LookupByLocation devuelve los SKUs con saldo > 0 en la ubicación, ordenados por código de SKU.
func (uc *LookupUseCase) LookupByLocation(ctx context.Context, code string) (*LocationContents, error) {
	code = invdomain.NormalizeCode(code)
	if err := validateLocationCode(code); err != nil {
		return nil, err
	}
	loc, err := uc.locationRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	if loc == nil {
		return nil, domain.NewNotFoundError("Location %q not found", code)
	}
	items, err := uc.inventoryRepo.ListByLocation(ctx, loc.ID)
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	return &LocationContents{Location: *loc, Items: items}, nil
}

// LookupBySKU devuelve las ubicaciones con saldo > 0 del SKU y el total.
// Si ningún SKU tiene ese código se intenta por item code.
func (uc *LookupUseCase) LookupBySKU(ctx context.Context, code string) (*SKUStock, error) {
	raw := strings.TrimSpace(code)
	code = invdomain.NormalizeCode(code)
	if err := validateSKUCode(code); err != nil {
		return nil, err
	}
	sku, err := uc.skuRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	if sku == nil {
		sku, err = uc.skuRepo.GetByItemCode(ctx, raw)
		if err != nil {
			return nil, domain.NewTransactionError(err)
		}
	}
	if sku == nil {
		return nil, domain.NewNotFoundError("SKU %q not found", code)
	}
	records, err := uc.inventoryRepo.ListBySKU(ctx, sku.ID)
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	out := &SKUStock{SKU: *sku, Locations: records, TotalLocations: len(records)}
	for _, r := range records {
		out.TotalQty += r.Qty
	}
	return out, nil
}

// AvailableQty saldo actual (0 si no hay fila) para precargar el formulario de Move.
func (uc *LookupUseCase) AvailableQty(ctx context.Context, locationCode, skuCode string) (*Availability, error) {
	locationCode = invdomain.NormalizeCode(locationCode)
	skuCode = invdomain.NormalizeCode(skuCode)
	if err := validateLocationCode(locationCode); err != nil {
		return nil, err
	}
	if err := validateSKUCode(skuCode); err != nil {
		return nil, err
	}
	qty, name, err := uc.inventoryRepo.Available(ctx, locationCode, skuCode)
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	return &Availability{LocationCode: locationCode, SKUCode: skuCode, SKUName: name, Qty: qty}, nil
}

func validateLocationCode(code string) error {
	return validateInput(struct {
		LocationCode string `validate:"required,loccode"`
	}{code})
}

func validateSKUCode(code string) error {
	return validateInput(struct {
		SKUCode string `validate:"required,skucode"`
	}{code})
}
