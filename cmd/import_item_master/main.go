// import_item_master carga el maestro de artículos (EAN, Item Code, Item Name, Details)
// desde un xlsx o csv.
//
// Uso: go run ./cmd/import_item_master [ruta]
// Por defecto busca "Item Master.xlsx" en el directorio actual.
package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dronalogitech/whmapping/internal/application/catalog"
	"github.com/dronalogitech/whmapping/internal/infrastructure/itemmaster"
	infrapdf "github.com/dronalogitech/whmapping/internal/infrastructure/pdf"
	"github.com/dronalogitech/whmapping/internal/infrastructure/storage"
	"github.com/dronalogitech/whmapping/pkg/config"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

func main() {
	path := "Item Master.xlsx"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir archivo")
	}
	defer f.Close()

	uc := catalog.NewUseCase(backend.Locations, backend.SKUs, itemmaster.NewReader(), infrapdf.NewLabelGenerator(cfg.App.Name), log)
	res, err := uc.ImportItemMasterFile(ctx, f, filepath.Base(path))
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("importación fallida")
	}
	log.Info().
		Int("imported", res.Imported).
		Int("updated", res.Updated).
		Int("skipped", res.Skipped).
		Int("total", res.Total).
		Msg("importación completada")
}
