// seed carga datos de ejemplo (ubicaciones, SKUs, saldos y bitácora) pasando por el ledger,
// y crea el administrador inicial si ADMIN_EMAIL y ADMIN_PASSWORD están definidos.
//
// Uso:
//
//	go run ./cmd/seed          # carga datos de ejemplo
//	go run ./cmd/seed clear    # borra bitácora, saldos y ubicaciones
package main

import (
	"context"
	"os"

	"github.com/dronalogitech/whmapping/internal/application/auth"
	"github.com/dronalogitech/whmapping/internal/application/inventory"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/infrastructure/storage"
	"github.com/dronalogitech/whmapping/pkg/config"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

var sampleLocations = []string{
	"A1-R01-S01-B01", "A1-R01-S01-B02", "A1-R01-S02-B01", "A1-R02-S01-B01",
	"A2-R01-S01-B01", "B1-R01-S01-B01", "B1-R01-S01-B02", "B1-R02-S01-B01",
	"RECV-01", "RECV-02", "SHIP-01", "SHIP-02",
}

var sampleSKUs = []entity.SKU{
	{Code: "SKU-001", Name: "Widget A", Barcode: "1234567890123"},
	{Code: "SKU-002", Name: "Widget B", Barcode: "1234567890124"},
	{Code: "SKU-003", Name: "Gadget X", Barcode: "1234567890125"},
	{Code: "SKU-004", Name: "Gadget Y", Barcode: "1234567890126"},
	{Code: "SKU-005", Name: "Component Alpha", Barcode: "1234567890127"},
	{Code: "SKU-006", Name: "Component Beta", Barcode: "1234567890128"},
	{Code: "PART-100", Name: "Spare Part 100", Barcode: "2345678901234"},
	{Code: "PART-101", Name: "Spare Part 101", Barcode: "2345678901235"},
	{Code: "PART-102", Name: "Spare Part 102", Barcode: "2345678901236"},
	{Code: "RAW-001", Name: "Raw Material 001", Barcode: "3456789012345"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	if cfg.Store.Driver == config.StoreMemory {
		log.Warn().Msg("STORE_DRIVER=memory: el seed no persiste nada")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	if len(os.Args) > 1 && os.Args[1] == "clear" {
		if err := clearAll(ctx, backend, log); err != nil {
			log.Fatal().Err(err).Msg("limpieza fallida")
		}
		return
	}

	if err := seed(ctx, backend, log); err != nil {
		log.Fatal().Err(err).Msg("seed fallido")
	}

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer}, log)
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador")
		}
		log.Info().Bool("created", created).Str("email", cfg.Admin.Email).Msg("administrador")
	}
	log.Info().Msg("seed completado")
}

func seed(ctx context.Context, b *storage.Backend, log *logger.Logger) error {
	for _, code := range sampleLocations {
		if _, err := b.Locations.ResolveOrCreate(ctx, code); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(sampleLocations)).Msg("ubicaciones creadas")

	for i := range sampleSKUs {
		sku := sampleSKUs[i]
		if _, err := b.SKUs.UpsertMaster(ctx, &sku); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(sampleSKUs)).Msg("SKUs creados")

	ledger := inventory.NewLedgerUseCase(b.Tx, log)
	stock := []inventory.PutawayInput{
		{LocationCode: "A1-R01-S01-B01", Items: []inventory.PutawayItem{{SKUCode: "SKU-001", Qty: 100}, {SKUCode: "SKU-002", Qty: 50}}},
		{LocationCode: "A1-R01-S01-B02", Items: []inventory.PutawayItem{{SKUCode: "SKU-003", Qty: 75}}},
		{LocationCode: "B1-R01-S01-B01", Items: []inventory.PutawayItem{{SKUCode: "SKU-002", Qty: 200}}},
	}
	for _, in := range stock {
		in.User = inventory.DefaultUser
		in.Note = "Initial stock"
		if _, err := ledger.Putaway(ctx, in); err != nil {
			return err
		}
	}
	if _, err := ledger.Move(ctx, inventory.MoveInput{
		FromLocationCode: "A1-R01-S01-B01",
		ToLocationCode:   "A1-R01-S01-B02",
		SKUCode:          "SKU-001",
		Qty:              25,
		User:             inventory.DefaultUser,
		Note:             "Stock redistribution",
	}); err != nil {
		return err
	}
	log.Info().Msg("saldos y bitácora de ejemplo creados")
	return nil
}

// clearAll vacía bitácora, saldos y ubicaciones; todo o nada.
func clearAll(ctx context.Context, b *storage.Backend, log *logger.Logger) error {
	st, err := b.ClearOperational(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Int64("logs", st.Logs).
		Int64("inventory", st.Inventory).
		Int64("locations", st.Locations).
		Msg("datos eliminados")
	return nil
}
