package stock

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// DailyQuantity cantidad de una fuente agregada por (día, código), con el signo registrado en la tabla.
type DailyQuantity struct {
	Date     time.Time
	Code     string
	Quantity decimal.Decimal
}

// CodeQuantity cantidad total de un código en un período.
type CodeQuantity struct {
	Code     string
	Quantity decimal.Decimal
}

// DailyTotals listado de una fuente dentro de la ventana, ordenado por fecha y código.
func DailyTotals(events []entity.InventoryEvent, source entity.EventSource, w Window, f CodeFilter) []DailyQuantity {
	type key struct {
		day  int64
		code string
	}
	sums := make(map[key]*DailyQuantity)
	for _, ev := range events {
		if ev.Source != source || !w.Contains(ev.Date) || !f.Match(ev.Code) {
			continue
		}
		k := key{day: Day(ev.Date).Unix(), code: ev.Code}
		dq, ok := sums[k]
		if !ok {
			dq = &DailyQuantity{Date: Day(ev.Date), Code: ev.Code}
			sums[k] = dq
		}
		dq.Quantity = dq.Quantity.Add(recorded(ev))
	}

	out := make([]DailyQuantity, 0, len(sums))
	for _, dq := range sums {
		out = append(out, *dq)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// TopBySource los n códigos con mayor cantidad registrada en la fuente dentro de la ventana.
// Empates por código ascendente; n <= 0 devuelve todos.
func TopBySource(events []entity.InventoryEvent, source entity.EventSource, w Window, n int) []CodeQuantity {
	sums := make(map[string]decimal.Decimal)
	for _, ev := range events {
		if ev.Source != source || !w.Contains(ev.Date) {
			continue
		}
		sums[ev.Code] = sums[ev.Code].Add(recorded(ev))
	}
	out := make([]CodeQuantity, 0, len(sums))
	for code, qty := range sums {
		out = append(out, CodeQuantity{Code: code, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Quantity.Cmp(out[j].Quantity); c != 0 {
			return c > 0
		}
		return out[i].Code < out[j].Code
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// recorded deshace la inversión de signo del normalizador.
func recorded(ev entity.InventoryEvent) decimal.Decimal {
	if ev.Source.Polarity() == entity.PolarityOutflow {
		return ev.Quantity.Neg()
	}
	return ev.Quantity
}
