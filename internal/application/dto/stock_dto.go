package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// StockQuery parámetros comunes de los reportes de stock.
type StockQuery struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
	Code      string `query:"code"`       // búsqueda parcial por código, sin distinguir mayúsculas
	TopN      int    `query:"top_n"`      // sólo top-dispatched (default 10, max 100)
	Format    string `query:"format"`     // sólo exportaciones: csv|xlsx|pdf
}

// ── Resumen del período ───────────────────────────────────────────────────────

// PeriodDTO ventana efectivamente usada (con defaults aplicados).
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// StockSummaryRowDTO una fila del registro de stock.
// Invariante: ending_stock = previous_stock + total_received - total_sold.
type StockSummaryRowDTO struct {
	Code          string          `json:"code"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalSold     decimal.Decimal `json:"total_sold"`
	EndingStock   decimal.Decimal `json:"ending_stock"`
}

// StockTotalsDTO totales del resumen.
type StockTotalsDTO struct {
	Products      int             `json:"products"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalSold     decimal.Decimal `json:"total_sold"`
	EndingStock   decimal.Decimal `json:"ending_stock"`
}

// StockSummaryDTO respuesta de GET /api/stock/summary.
type StockSummaryDTO struct {
	Period PeriodDTO            `json:"period"`
	Code   string               `json:"code,omitempty"`
	Totals StockTotalsDTO       `json:"totals"`
	Rows   []StockSummaryRowDTO `json:"rows"`
}

// ── Saldos por día ────────────────────────────────────────────────────────────

// BalancePointDTO saldo acumulado de un código al cierre de un día.
type BalancePointDTO struct {
	Date               string          `json:"date"`
	Inflow             decimal.Decimal `json:"inflow"`
	Outflow            decimal.Decimal `json:"outflow"`
	CumulativeQuantity decimal.Decimal `json:"cumulative_quantity"`
}

// BalanceHistoryDTO respuesta de GET /api/stock/balances/:code.
type BalanceHistoryDTO struct {
	Code   string            `json:"code"`
	Period *PeriodDTO        `json:"period,omitempty"` // nil = historia completa
	Points []BalancePointDTO `json:"points"`
}

// ── Listados por fuente ───────────────────────────────────────────────────────

// SourceRowDTO cantidad registrada de un código en un día.
type SourceRowDTO struct {
	Date     string          `json:"date"`
	Code     string          `json:"code"`
	Quantity decimal.Decimal `json:"quantity"`
}

// SourceListingDTO respuesta de GET /api/sources/:source.
type SourceListingDTO struct {
	Source         string          `json:"source"`
	Label          string          `json:"label"`
	Period         PeriodDTO       `json:"period"`
	Code           string          `json:"code,omitempty"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	UniqueProducts int             `json:"unique_products"`
	Rows           []SourceRowDTO  `json:"rows"`
}

// ── Top despachados ───────────────────────────────────────────────────────────

// TopItemDTO posición en el ranking de despachos.
type TopItemDTO struct {
	Rank     int             `json:"rank"`
	Code     string          `json:"code"`
	Quantity decimal.Decimal `json:"quantity"`
}

// TopDispatchedDTO respuesta de GET /api/stock/top-dispatched.
type TopDispatchedDTO struct {
	Period PeriodDTO    `json:"period"`
	TopN   int          `json:"top_n"`
	Items  []TopItemDTO `json:"items"`
}

// ── Importación ───────────────────────────────────────────────────────────────

// ImportResultDTO resultado de una carga de planilla.
type ImportResultDTO struct {
	BatchID      string `json:"batch_id"`
	Source       string `json:"source"`
	FileName     string `json:"file_name"`
	Inserted     int64  `json:"inserted"`
	MissingCode  int    `json:"skipped_missing_code"`
	BadDate      int    `json:"skipped_bad_date"`
	NullQuantity int    `json:"null_quantity"`
	Replaced     bool   `json:"replaced"`
}
