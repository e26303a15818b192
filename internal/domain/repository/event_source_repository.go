package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// EventSourceRepository puerto de lectura de las cuatro tablas de movimientos
// (Sales, CostCenter, Received, Adjustment). Cada adaptador mapea las columnas
// propias de cada tabla a entity.SourceRecord; no filtra ni corrige filas:
// esa decisión es del normalizador.
type EventSourceRepository interface {
	// ListRecords devuelve todas las filas de la fuente. El saldo previo de una
	// ventana necesita la historia completa, por eso no se filtra por fecha.
	ListRecords(ctx context.Context, source entity.EventSource) ([]entity.SourceRecord, error)
}

// SourceRow fila tipada lista para persistir en una tabla de movimientos.
// Quantity nulo se conserva como NULL y se lee luego como cantidad cero.
type SourceRow struct {
	Date     time.Time
	Code     string
	Quantity decimal.NullDecimal
}

// SourceWriter puerto de escritura usado por la importación de planillas.
type SourceWriter interface {
	// WriteRows inserta las filas en la tabla de la fuente dentro de una transacción.
	// Con replace=true la tabla se vacía antes de insertar.
	WriteRows(ctx context.Context, source entity.EventSource, rows []SourceRow, replace bool) (int64, error)
}
