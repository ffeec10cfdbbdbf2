package repository

import (
	"context"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
)

// InventoryRepository define el puerto para consultar/actualizar saldos por ubicación+SKU.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); nil, nil si no existe.
	GetForUpdate(ctx context.Context, locationID, skuID string) (*entity.Inventory, error)
	// Increment suma delta al saldo (qty = qty + delta), creando la fila con delta si no existe.
	Increment(ctx context.Context, locationID, skuID string, delta int) (*entity.Inventory, error)
	// Decrement resta qty solo si el saldo alcanza; si no, devuelve domain.ErrInsufficientQuantity.
	Decrement(ctx context.Context, locationID, skuID string, qty int) (*entity.Inventory, error)
	// ListByLocation saldos > 0 de la ubicación ordenados por código de SKU.
	ListByLocation(ctx context.Context, locationID string) ([]entity.InventoryRecord, error)
	// ListBySKU saldos > 0 del SKU ordenados por código de ubicación.
	ListBySKU(ctx context.Context, skuID string) ([]entity.InventoryRecord, error)
	// Available saldo actual por códigos (0 si no hay fila) y nombre del SKU si se conoce.
	Available(ctx context.Context, locationCode, skuCode string) (qty int, skuName string, err error)
	DeleteAll(ctx context.Context) (int64, error)
}
