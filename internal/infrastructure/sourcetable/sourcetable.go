// Package sourcetable describe cómo se llaman, en el almacén, la tabla y las
// columnas de cada fuente de movimientos. Cada tabla nombra distinto su fecha y
// su cantidad; los adaptadores SQL se apoyan en este mapa.
package sourcetable

import (
	"fmt"

	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// Table nombres físicos de una fuente.
type Table struct {
	Name           string
	DateColumn     string
	CodeColumn     string
	QuantityColumn string
}

var tables = map[entity.EventSource]Table{
	entity.SourceSales:      {Name: "sales", DateColumn: "sales_date", CodeColumn: "code", QuantityColumn: "qty"},
	entity.SourceCostCenter: {Name: "cost_center", DateColumn: "date", CodeColumn: "code", QuantityColumn: "qty"},
	entity.SourceReceived:   {Name: "received", DateColumn: "received_date", CodeColumn: "code", QuantityColumn: "received_qty"},
	entity.SourceAdjustment: {Name: "adjustment", DateColumn: "adjustment_date", CodeColumn: "code", QuantityColumn: "adjustment_qty"},
}

// For devuelve la tabla de la fuente o domain.ErrUnknownSource.
func For(source entity.EventSource) (Table, error) {
	t, ok := tables[source]
	if !ok {
		return Table{}, fmt.Errorf("tabla para %q: %w", source, domain.ErrUnknownSource)
	}
	return t, nil
}

// Columns columnas en el orden (fecha, código, cantidad).
func (t Table) Columns() []string {
	return []string{t.DateColumn, t.CodeColumn, t.QuantityColumn}
}

// HeaderAliases encabezados aceptados en planillas para cada columna lógica,
// incluyendo los nombres de las tablas originales ("Sales_Date", "Adjuctment_Date").
func (t Table) HeaderAliases() (date, code, qty []string) {
	date = []string{t.DateColumn, "date", "fecha"}
	code = []string{t.CodeColumn, "code", "codigo", "código", "item_code"}
	qty = []string{t.QuantityColumn, "qty", "quantity", "cantidad"}
	if t.Name == "adjustment" {
		date = append(date, "adjuctment_date")
	}
	return date, code, qty
}
