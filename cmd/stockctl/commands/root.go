// Package commands define la CLI stockctl: importar planillas, consultar el
// registro de stock y administrar usuarios sin levantar el servidor HTTP.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Despacho-api/internal/application/stockregister"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/cache"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/export"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/store"
	"github.com/jhoicas/Despacho-api/pkg/config"
	"github.com/jhoicas/Despacho-api/pkg/logger"
)

var (
	// Flags globales
	dbDriver   string
	sqlitePath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "stockctl",
	Short: "Registro de stock de despacho: importación y reportes",
	Long: `stockctl opera sobre el mismo almacén que la API (DB_DRIVER, DATABASE_URL, SQLITE_PATH).

Examples:
  stockctl migrate
  stockctl import sales ventas_enero.xlsx
  stockctl import received recibidos.csv --encoding latin1
  stockctl summary --from 2024-01-01 --to 2024-01-31 --code abc
  stockctl user add --email admin@despacho.co --password secreto123 --role admin`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz. Lo llama main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "postgres | sqlite (por defecto DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "archivo SQLite (por defecto SQLITE_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log en nivel debug")
}

// runtime dependencias armadas para un comando.
type runtime struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store
	cache *cache.RedisCache
	stock *stockregister.UseCase
}

func (r *runtime) Close() {
	if r.cache != nil {
		_ = r.cache.Close()
	}
	r.store.Close()
}

func setup(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if dbDriver != "" {
		cfg.DB.Driver = dbDriver
	}
	if sqlitePath != "" {
		cfg.DB.SQLitePath = sqlitePath
	}
	level := cfg.App.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: cmd.ErrOrStderr()})

	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("abrir almacén %s: %w", cfg.DB.Driver, err)
	}

	c, err := cache.New(ctx, cfg.Cache.RedisURL, cfg.Cache.Prefix, cfg.Cache.TTL)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, caché desactivada")
		c, _ = cache.New(ctx, "", cfg.Cache.Prefix, cfg.Cache.TTL)
	}

	uc := stockregister.New(
		st.Events, st.Writer,
		spreadsheet.Parser{},
		export.NewRenderer(cfg.App.Name+" - Stock Register"),
		c,
		log.Component("stockregister"),
		stockregister.Options{DefaultStart: cfg.Report.DefaultStart},
	)
	return &runtime{cfg: cfg, log: log, store: st, cache: c, stock: uc}, nil
}
