package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dronalogitech/whmapping/internal/application/auth"
	"github.com/dronalogitech/whmapping/internal/application/catalog"
	"github.com/dronalogitech/whmapping/internal/application/inventory"
	"github.com/dronalogitech/whmapping/internal/application/movementlog"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *inventory.LedgerUseCase
	Lookup    *inventory.LookupUseCase
	LogUC     *movementlog.UseCase
	CatalogUC *catalog.UseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	Logger    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/users", adminOnly, authHandler.CreateUser)

	// Ledger y consultas de saldo
	invHandler := NewInventoryHandler(deps.Ledger, deps.Lookup, log)
	inv := protected.Group("/inventory")
	inv.Post("/putaway", invHandler.Putaway)
	inv.Post("/move", invHandler.Move)
	inv.Post("/adjust", invHandler.Adjust)
	inv.Get("/location/:code", invHandler.ByLocation)
	inv.Get("/sku/:code", invHandler.BySKU)
	inv.Get("/available", invHandler.Available)

	// Catálogo
	catHandler := NewCatalogHandler(deps.CatalogUC, log)
	protected.Get("/locations/labels", catHandler.Labels)
	protected.Get("/locations", catHandler.Locations)
	protected.Get("/skus", catHandler.SKUs)
	protected.Post("/import-item-master", adminOnly, catHandler.ImportItemMaster)

	// Bitácora: /bulk antes de /:id
	logHandler := NewLogHandler(deps.LogUC, log)
	logs := protected.Group("/logs")
	logs.Get("/", logHandler.List)
	logs.Get("/stats", logHandler.Stats)
	logs.Delete("/bulk", adminOnly, logHandler.BulkDelete)
	logs.Delete("/:id", adminOnly, logHandler.Delete)
}
