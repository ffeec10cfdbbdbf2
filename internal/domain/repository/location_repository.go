package repository

import (
	"context"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	// GetByCode devuelve nil, nil si la ubicación no existe.
	GetByCode(ctx context.Context, code string) (*entity.Location, error)
	// ResolveOrCreate devuelve la ubicación con ese código, creándola si no existe.
	ResolveOrCreate(ctx context.Context, code string) (*entity.Location, error)
	Search(ctx context.Context, search string, limit int) ([]entity.LocationSummary, error)
	DeleteAll(ctx context.Context) (int64, error)
}
