package inventory

import (
	"context"

	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se revierte completa; ningún saldo queda sin su registro de bitácora.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		locationRepo repository.LocationRepository,
		skuRepo repository.SKURepository,
		inventoryRepo repository.InventoryRepository,
		logRepo repository.MovementLogRepository,
	) error) error
}
