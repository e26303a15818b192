package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Despacho-api/internal/application/auth"
	"github.com/jhoicas/Despacho-api/internal/application/stockregister"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/cache"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/export"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/Despacho-api/internal/interfaces/http"
	"github.com/jhoicas/Despacho-api/pkg/config"
	"github.com/jhoicas/Despacho-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén de movimientos")
	}
	defer st.Close()

	summaryCache, err := cache.New(ctx, cfg.Cache.RedisURL, cfg.Cache.Prefix, cfg.Cache.TTL)
	if err != nil {
		// Sin caché el servicio sigue respondiendo; sólo recalcula cada consulta.
		log.Warn().Err(err).Msg("redis no disponible, caché desactivada")
		summaryCache, _ = cache.New(ctx, "", cfg.Cache.Prefix, cfg.Cache.TTL)
	}
	defer summaryCache.Close()
	log.Info().Bool("enabled", summaryCache.Enabled()).Msg("caché de resúmenes")

	stockUC := stockregister.New(
		st.Events, st.Writer,
		spreadsheet.Parser{},
		export.NewRenderer(cfg.App.Name+" - Stock Register"),
		summaryCache,
		log.Component("stockregister"),
		stockregister.Options{DefaultStart: cfg.Report.DefaultStart},
	)
	authUC := auth.NewAuthUseCase(st.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    32 * 1024 * 1024, // planillas de importación
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Despacho API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db_driver": st.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:   stockUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log.Component("http"),
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
