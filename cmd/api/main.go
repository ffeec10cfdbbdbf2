package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dronalogitech/whmapping/internal/application/auth"
	"github.com/dronalogitech/whmapping/internal/application/catalog"
	"github.com/dronalogitech/whmapping/internal/application/inventory"
	"github.com/dronalogitech/whmapping/internal/application/movementlog"
	"github.com/dronalogitech/whmapping/internal/infrastructure/itemmaster"
	infrapdf "github.com/dronalogitech/whmapping/internal/infrastructure/pdf"
	"github.com/dronalogitech/whmapping/internal/infrastructure/storage"
	httpRouter "github.com/dronalogitech/whmapping/internal/interfaces/http"
	"github.com/dronalogitech/whmapping/pkg/config"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// Tope del body: los maestros de artículos en xlsx pueden pesar varios MB.
const bodyLimit = 20 * 1024 * 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = randomSecret()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto aleatorio, los tokens no sobreviven al reinicio")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
		}
	}

	ledgerUC := inventory.NewLedgerUseCase(backend.Tx, log)
	lookupUC := inventory.NewLookupUseCase(backend.Locations, backend.SKUs, backend.Inventory)
	logUC := movementlog.NewUseCase(backend.Logs, log)
	catalogUC := catalog.NewUseCase(
		backend.Locations, backend.SKUs,
		itemmaster.NewReader(),
		infrapdf.NewLabelGenerator(cfg.App.Name),
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit,
		// Los códigos escaneados pueden traer caracteres codificados en la URL.
		UnescapePath: true,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Swagger.Enabled {
		if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.Swagger.FilePath,
				Path:     "docs",
				Title:    "Warehouse Mapping API",
			}))
		} else {
			log.Warn().Str("file", cfg.Swagger.FilePath).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledgerUC,
		Lookup:    lookupUC,
		LogUC:     logUC,
		CatalogUC: catalogUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generar secreto JWT: " + err.Error())
	}
	return hex.EncodeToString(b)
}
