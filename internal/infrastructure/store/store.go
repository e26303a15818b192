// Package store elige el adaptador de persistencia según DB_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Despacho-api/internal/domain/repository"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Despacho-api/pkg/config"
)

// Store puertos de persistencia ya conectados.
type Store struct {
	Driver  string
	Events  repository.EventSourceRepository
	Writer  repository.SourceWriter
	Users   repository.UserRepository
	migrate func(ctx context.Context) ([]string, error)
	close   func()
}

// Open conecta con PostgreSQL (pgxpool) o abre el archivo SQLite.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		events := postgres.NewEventSourceRepository(pool)
		return &Store{
			Driver:  cfg.Driver,
			Events:  events,
			Writer:  events,
			Users:   postgres.NewUserRepository(pool),
			migrate: func(ctx context.Context) ([]string, error) { return postgres.Migrate(ctx, pool) },
			close:   pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		events := sqlite.NewEventSourceRepository(db)
		return &Store{
			Driver: cfg.Driver,
			Events: events,
			Writer: events,
			Users:  sqlite.NewUserRepository(db),
			// El esquema SQLite se asegura al abrir.
			migrate: func(context.Context) ([]string, error) { return nil, nil },
			close:   func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("store: driver %q no soportado", cfg.Driver)
}

// Migrate aplica el esquema. Devuelve los scripts ejecutados.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	return s.migrate(ctx)
}

// Close libera conexiones.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
