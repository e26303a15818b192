package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Despacho-api/internal/domain"
)

// EventSource identifica una de las cuatro tablas que alimentan el registro de stock.
type EventSource string

const (
	SourceSales      EventSource = "sales"       // ventas despachadas (salida)
	SourceCostCenter EventSource = "cost_center" // consumo interno de centros de costo (salida)
	SourceReceived   EventSource = "received"    // mercancía recibida (entrada)
	SourceAdjustment EventSource = "adjustment"  // ajustes manuales (entrada con signo)
)

// Polarity dirección que aporta una fuente al stock.
type Polarity int

const (
	// PolarityInflow conserva el signo de la cantidad registrada.
	PolarityInflow Polarity = 1
	// PolarityOutflow invierte el signo de la cantidad registrada.
	PolarityOutflow Polarity = -1
)

// AllSources en el orden en que se consultan y se muestran.
var AllSources = []EventSource{SourceSales, SourceCostCenter, SourceReceived, SourceAdjustment}

// Polarity devuelve la regla de signo de la fuente.
func (s EventSource) Polarity() Polarity {
	switch s {
	case SourceSales, SourceCostCenter:
		return PolarityOutflow
	default:
		return PolarityInflow
	}
}

// Valid indica si s es una de las cuatro fuentes conocidas.
func (s EventSource) Valid() bool {
	switch s {
	case SourceSales, SourceCostCenter, SourceReceived, SourceAdjustment:
		return true
	}
	return false
}

// Label nombre legible para reportes.
func (s EventSource) Label() string {
	switch s {
	case SourceSales:
		return "Sales"
	case SourceCostCenter:
		return "Cost Center"
	case SourceReceived:
		return "Received"
	case SourceAdjustment:
		return "Adjustment"
	}
	return string(s)
}

// ParseEventSource acepta el nombre canónico y algunas variantes ("CostCenter", "cost-center").
func ParseEventSource(raw string) (EventSource, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	if s == "costcenter" {
		s = string(SourceCostCenter)
	}
	src := EventSource(s)
	if !src.Valid() {
		return "", fmt.Errorf("fuente %q: %w", raw, domain.ErrUnknownSource)
	}
	return src, nil
}
