package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/sourcetable"
)

var (
	_ repository.EventSourceRepository = (*EventSourceRepo)(nil)
	_ repository.SourceWriter          = (*EventSourceRepo)(nil)
)

// EventSourceRepo lectura y carga de las tablas sales, cost_center, received y adjustment.
type EventSourceRepo struct {
	pool *pgxpool.Pool
}

// NewEventSourceRepository construye el adaptador.
func NewEventSourceRepository(pool *pgxpool.Pool) *EventSourceRepo {
	return &EventSourceRepo{pool: pool}
}

// ListRecords devuelve todas las filas de la fuente como texto.
// Fecha y cantidad se castean a TEXT; NULL llega como cadena vacía y lo resuelve el normalizador.
func (r *EventSourceRepo) ListRecords(ctx context.Context, source entity.EventSource) ([]entity.SourceRecord, error) {
	t, err := sourcetable.For(source)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
	SELECT
	    COALESCE(CAST(%[1]s AS TEXT), '') AS date,
	    COALESCE(CAST(%[2]s AS TEXT), '') AS code,
	    COALESCE(CAST(%[3]s AS TEXT), '') AS qty
	FROM %[4]s`,
		pgx.Identifier{t.DateColumn}.Sanitize(),
		pgx.Identifier{t.CodeColumn}.Sanitize(),
		pgx.Identifier{t.QuantityColumn}.Sanitize(),
		pgx.Identifier{t.Name}.Sanitize(),
	)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("events.ListRecords %s: %w", source, err)
	}
	defer rows.Close()

	var out []entity.SourceRecord
	for rows.Next() {
		rec := entity.SourceRecord{Source: source}
		if err := rows.Scan(&rec.Date, &rec.Code, &rec.Quantity); err != nil {
			return nil, fmt.Errorf("events.ListRecords %s scan: %w", source, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("events.ListRecords %s rows: %w", source, err)
	}
	return out, nil
}

// WriteRows carga filas con COPY dentro de una transacción; con replace=true vacía la tabla antes.
func (r *EventSourceRepo) WriteRows(ctx context.Context, source entity.EventSource, rows []repository.SourceRow, replace bool) (int64, error) {
	t, err := sourcetable.For(source)
	if err != nil {
		return 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if replace {
		if _, err := tx.Exec(ctx, "TRUNCATE "+pgx.Identifier{t.Name}.Sanitize()); err != nil {
			return 0, fmt.Errorf("truncate %s: %w", t.Name, err)
		}
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{t.Name},
		t.Columns(),
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return []any{rows[i].Date, rows[i].Code, rows[i].Quantity}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy %s: %w", t.Name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return n, nil
}
