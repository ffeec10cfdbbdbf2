package repository

import (
	"context"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
)

// MovementLogRepository define el puerto de persistencia para la bitácora de movimientos.
type MovementLogRepository interface {
	Create(ctx context.Context, log *entity.MovementLog) error
	// List devuelve la página pedida (created_at DESC) y el total que cumple el filtro.
	List(ctx context.Context, filter entity.MovementFilter, limit, offset int) ([]entity.MovementRecord, int, error)
	Stats(ctx context.Context, filter entity.MovementFilter) (*entity.MovementStats, error)
	// Delete devuelve false si el registro no existe.
	Delete(ctx context.Context, id string) (bool, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
