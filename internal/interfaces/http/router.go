package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Despacho-api/internal/application/auth"
	"github.com/jhoicas/Despacho-api/internal/application/stockregister"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC   *stockregister.UseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/users", adminOnly, authHandler.CreateUser)

	stockHandler := NewStockHandler(deps.StockUC, deps.Log)
	stock := protected.Group("/stock")
	stock.Get("/summary", stockHandler.Summary)
	stock.Get("/summary/export", stockHandler.ExportSummary)
	stock.Get("/balances/:code", stockHandler.Balances)
	stock.Get("/top-dispatched", stockHandler.TopDispatched)

	sources := protected.Group("/sources")
	sources.Get("/:source", stockHandler.SourceListing)
	sources.Get("/:source/export", stockHandler.ExportSource)
	sources.Post("/:source/import", adminOnly, stockHandler.ImportSource)
}
