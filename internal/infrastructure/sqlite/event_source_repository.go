package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
	"github.com/jhoicas/Despacho-api/internal/domain/stock"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/sourcetable"
)

var (
	_ repository.EventSourceRepository = (*EventSourceRepo)(nil)
	_ repository.SourceWriter          = (*EventSourceRepo)(nil)
)

// EventSourceRepo implementa lectura y carga de movimientos sobre SQLite.
type EventSourceRepo struct {
	db *sqlx.DB
}

// NewEventSourceRepository construye el adaptador.
func NewEventSourceRepository(db *sqlx.DB) *EventSourceRepo {
	return &EventSourceRepo{db: db}
}

type recordRow struct {
	Date string `db:"date"`
	Code string `db:"code"`
	Qty  string `db:"qty"`
}

// ListRecords devuelve todas las filas de la fuente como texto.
func (r *EventSourceRepo) ListRecords(ctx context.Context, source entity.EventSource) ([]entity.SourceRecord, error) {
	t, err := sourcetable.For(source)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT
		    COALESCE(CAST(%q AS TEXT), '') AS date,
		    COALESCE(CAST(%q AS TEXT), '') AS code,
		    COALESCE(CAST(%q AS TEXT), '') AS qty
		FROM %q`, t.DateColumn, t.CodeColumn, t.QuantityColumn, t.Name)

	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("events.ListRecords %s: %w", source, err)
	}
	out := make([]entity.SourceRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.SourceRecord{Source: source, Date: row.Date, Code: row.Code, Quantity: row.Qty})
	}
	return out, nil
}

type insertRow struct {
	Date string  `db:"date"`
	Code string  `db:"code"`
	Qty  *string `db:"qty"`
}

// WriteRows inserta las filas en una transacción. Las fechas se guardan como YYYY-MM-DD
// y las cantidades como texto decimal exacto (NULL si venían vacías).
func (r *EventSourceRepo) WriteRows(ctx context.Context, source entity.EventSource, rows []repository.SourceRow, replace bool) (int64, error) {
	t, err := sourcetable.For(source)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %q", t.Name)); err != nil {
			return 0, fmt.Errorf("vaciar %s: %w", t.Name, err)
		}
	}

	stmt, err := tx.PrepareNamedContext(ctx, fmt.Sprintf(
		`INSERT INTO %q (%q, %q, %q) VALUES (:date, :code, :qty)`,
		t.Name, t.DateColumn, t.CodeColumn, t.QuantityColumn,
	))
	if err != nil {
		return 0, fmt.Errorf("preparar insert %s: %w", t.Name, err)
	}
	defer stmt.Close()

	var n int64
	for _, row := range rows {
		in := insertRow{Date: row.Date.Format(stock.DateLayout), Code: row.Code}
		if row.Quantity.Valid {
			s := row.Quantity.Decimal.String()
			in.Qty = &s
		}
		if _, err := stmt.ExecContext(ctx, in); err != nil {
			return 0, fmt.Errorf("insert %s: %w", t.Name, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return n, nil
}
