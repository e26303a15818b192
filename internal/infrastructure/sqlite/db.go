// Package sqlite adapta un archivo SQLite local como almacén de movimientos.
// Es el modo "tablero en una máquina": el archivo se copia o se importa una vez
// y las consultas corren en proceso, sin servidor de base de datos.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS sales (
    sales_date TEXT,
    code       TEXT,
    qty        TEXT,
    route      TEXT
);
CREATE INDEX IF NOT EXISTS idx_sales_code_date ON sales (code, sales_date);

CREATE TABLE IF NOT EXISTS cost_center (
    date TEXT,
    code TEXT,
    qty  TEXT
);
CREATE INDEX IF NOT EXISTS idx_cost_center_code_date ON cost_center (code, date);

CREATE TABLE IF NOT EXISTS received (
    received_date TEXT,
    code          TEXT,
    received_qty  TEXT
);
CREATE INDEX IF NOT EXISTS idx_received_code_date ON received (code, received_date);

CREATE TABLE IF NOT EXISTS adjustment (
    adjustment_date TEXT,
    code            TEXT,
    adjustment_qty  TEXT
);
CREATE INDEX IF NOT EXISTS idx_adjustment_code_date ON adjustment (code, adjustment_date);

CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name          TEXT NOT NULL,
    role          TEXT NOT NULL CHECK (role IN ('admin', 'supervisor', 'viewer')),
    status        TEXT NOT NULL DEFAULT 'active',
    created_at    TIMESTAMP NOT NULL,
    updated_at    TIMESTAMP NOT NULL
);
`

// Open abre (o crea) el archivo y asegura el esquema. path ":memory:" sirve para tests.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	// Una sola conexión: ":memory:" es por conexión y SQLite serializa escrituras de todos modos.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("esquema sqlite: %w", err)
	}
	return db, nil
}
