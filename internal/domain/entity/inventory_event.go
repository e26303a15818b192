package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceRecord fila cruda tal como la entrega un adaptador de datos.
// Los campos son texto para que el normalizador decida qué es malformado.
type SourceRecord struct {
	Source   EventSource
	Date     string
	Code     string
	Quantity string
}

// InventoryEvent movimiento normalizado: positivo = entrada, negativo = salida.
// Varios eventos pueden compartir (Date, Code); se suman, nunca se sobrescriben.
type InventoryEvent struct {
	Date     time.Time // día calendario (00:00 UTC)
	Code     string
	Quantity decimal.Decimal
	Source   EventSource
}

// ProductBalance stock acumulado de un producto al cierre de un día con movimiento.
type ProductBalance struct {
	Code               string
	AsOfDate           time.Time
	Inflow             decimal.Decimal
	Outflow            decimal.Decimal
	CumulativeQuantity decimal.Decimal
}

// PeriodSummary resumen de un producto en una ventana [WindowStart, WindowEnd].
// Invariante: EndingStock = PreviousStock + TotalReceived - TotalSold.
type PeriodSummary struct {
	Code          string
	WindowStart   time.Time
	WindowEnd     time.Time
	PreviousStock decimal.Decimal
	TotalReceived decimal.Decimal
	TotalSold     decimal.Decimal
	EndingStock   decimal.Decimal
}
