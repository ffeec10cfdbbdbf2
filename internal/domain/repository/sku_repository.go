package repository

import (
	"context"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
)

// SKURepository define el puerto de persistencia para SKU (DIP).
type SKURepository interface {
	// GetByCode devuelve nil, nil si no existe.
	GetByCode(ctx context.Context, code string) (*entity.SKU, error)
	// GetByItemCode busca sin distinguir mayúsculas; nil, nil si no existe.
	GetByItemCode(ctx context.Context, itemCode string) (*entity.SKU, error)
	// ResolveOrCreate devuelve el SKU con ese código, creándolo si no existe.
	// Si el SKU existe sin ItemCode y itemCode no es vacío, lo completa; nunca sobrescribe uno existente.
	ResolveOrCreate(ctx context.Context, code, itemCode string) (*entity.SKU, error)
	// UpsertMaster inserta o actualiza el SKU desde el maestro de artículos: ItemCode se reemplaza,
	// Name y Details solo si vienen con valor. created indica si la fila es nueva.
	UpsertMaster(ctx context.Context, sku *entity.SKU) (created bool, err error)
	Search(ctx context.Context, search string, limit int) ([]entity.SKUSummary, error)
}
