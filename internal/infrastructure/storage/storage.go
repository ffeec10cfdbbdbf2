// Package storage arma el backend de persistencia según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/dronalogitech/whmapping/internal/application/inventory"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
	"github.com/dronalogitech/whmapping/internal/infrastructure/memory"
	"github.com/dronalogitech/whmapping/internal/infrastructure/postgres"
	"github.com/dronalogitech/whmapping/pkg/config"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// Backend repos fuera de transacción más el runner transaccional del ledger.
type Backend struct {
	Tx        inventory.TxRunner
	Locations repository.LocationRepository
	SKUs      repository.SKURepository
	Inventory repository.InventoryRepository
	Logs      repository.MovementLogRepository
	Users     repository.UserRepository

	close func()
}

// Close libera el pool (no-op en memoria).
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open conecta el backend configurado; con postgres aplica migraciones si DB_AUTO_MIGRATE.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		return NewMemory(memory.NewStore()), nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &Backend{
		Tx:        postgres.NewTxRunner(pool),
		Locations: postgres.NewLocationRepository(pool),
		SKUs:      postgres.NewSKURepository(pool),
		Inventory: postgres.NewInventoryRepository(pool),
		Logs:      postgres.NewMovementLogRepository(pool),
		Users:     postgres.NewUserRepository(pool),
		close:     pool.Close,
	}, nil
}

// NewMemory envuelve un store en memoria.
func NewMemory(s *memory.Store) *Backend {
	return &Backend{
		Tx:        s,
		Locations: s.Locations(),
		SKUs:      s.SKUs(),
		Inventory: s.Inventory(),
		Logs:      s.MovementLogs(),
		Users:     s.Users(),
	}
}

// ClearStats filas eliminadas por ClearOperational.
type ClearStats struct {
	Logs      int64
	Inventory int64
	Locations int64
}

// ClearOperational borra bitácora, saldos y ubicaciones en una sola transacción, en ese
// orden por las FK. SKUs y usuarios se conservan.
func (b *Backend) ClearOperational(ctx context.Context) (ClearStats, error) {
	var st ClearStats
	err := b.Tx.Run(ctx, func(
		locationRepo repository.LocationRepository,
		_ repository.SKURepository,
		inventoryRepo repository.InventoryRepository,
		logRepo repository.MovementLogRepository,
	) error {
		var err error
		if st.Logs, err = logRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if st.Inventory, err = inventoryRepo.DeleteAll(ctx); err != nil {
			return err
		}
		st.Locations, err = locationRepo.DeleteAll(ctx)
		return err
	})
	if err != nil {
		return ClearStats{}, fmt.Errorf("limpiar datos: %w", err)
	}
	return st, nil
}
