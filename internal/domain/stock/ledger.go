package stock

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// dailyPoint movimiento neto de un producto en un día, con su saldo acumulado al cierre.
type dailyPoint struct {
	date       time.Time
	inflow     decimal.Decimal // suma de magnitudes positivas del día
	outflow    decimal.Decimal // suma de magnitudes negativas del día (en positivo)
	cumulative decimal.Decimal
}

func (p dailyPoint) net() decimal.Decimal {
	return p.inflow.Sub(p.outflow)
}

// Ledger saldos acumulados por producto, particionados por código.
// Se construye una vez por conjunto de eventos y es de solo lectura.
type Ledger struct {
	codes  []string
	points map[string][]dailyPoint
}

// NewLedger agrupa los eventos por código, suma los del mismo día (nunca "último gana"),
// ordena por fecha ascendente y calcula la suma prefija.
//
// La clasificación entrada/salida se hace por el signo de cada evento antes de
// netear el día, así un día con +10 y -4 aporta 10 recibidos y 4 vendidos.
func NewLedger(events []entity.InventoryEvent) *Ledger {
	byCode := make(map[string]map[int64]*dailyPoint)
	for _, ev := range events {
		days, ok := byCode[ev.Code]
		if !ok {
			days = make(map[int64]*dailyPoint)
			byCode[ev.Code] = days
		}
		date := Day(ev.Date)
		key := date.Unix()
		p, ok := days[key]
		if !ok {
			p = &dailyPoint{date: date}
			days[key] = p
		}
		if ev.Quantity.IsNegative() {
			p.outflow = p.outflow.Add(ev.Quantity.Neg())
		} else {
			p.inflow = p.inflow.Add(ev.Quantity)
		}
	}

	l := &Ledger{
		codes:  make([]string, 0, len(byCode)),
		points: make(map[string][]dailyPoint, len(byCode)),
	}
	for code, days := range byCode {
		pts := make([]dailyPoint, 0, len(days))
		for _, p := range days {
			pts = append(pts, *p)
		}
		sort.Slice(pts, func(i, j int) bool { return pts[i].date.Before(pts[j].date) })
		running := decimal.Zero
		for i := range pts {
			running = running.Add(pts[i].net())
			pts[i].cumulative = running
		}
		l.codes = append(l.codes, code)
		l.points[code] = pts
	}
	sort.Strings(l.codes)
	return l
}

// Codes códigos con al menos un movimiento, ordenados.
func (l *Ledger) Codes() []string {
	out := make([]string, len(l.codes))
	copy(out, l.codes)
	return out
}

// Balances un ProductBalance por (código, día), ordenado por código y fecha.
func (l *Ledger) Balances() []entity.ProductBalance {
	var out []entity.ProductBalance
	for _, code := range l.codes {
		out = append(out, l.History(code)...)
	}
	return out
}

// History serie de saldos de un código; vacía si el código no tiene movimientos.
func (l *Ledger) History(code string) []entity.ProductBalance {
	pts := l.points[code]
	out := make([]entity.ProductBalance, 0, len(pts))
	for _, p := range pts {
		out = append(out, entity.ProductBalance{
			Code:               code,
			AsOfDate:           p.date,
			Inflow:             p.inflow,
			Outflow:            p.outflow,
			CumulativeQuantity: p.cumulative,
		})
	}
	return out
}

// BalanceBefore saldo acumulado del último día estrictamente anterior a day; cero si no hay historia.
func (l *Ledger) BalanceBefore(code string, day time.Time) decimal.Decimal {
	pts := l.points[code]
	idx := firstOnOrAfter(pts, Day(day))
	if idx == 0 {
		return decimal.Zero
	}
	return pts[idx-1].cumulative
}

// Summarize resume cada producto observado antes o dentro de la ventana:
//
//	previous_stock = saldo del último día < w.Start (0 si no existe)
//	total_received, total_sold = magnitudes dentro de [w.Start, w.End], sin netear
//	ending_stock = previous_stock + total_received - total_sold
//
// Productos con movimientos solo después de w.End se omiten. Los saldos negativos
// se reportan tal cual, sin recortar a cero.
func (l *Ledger) Summarize(w Window) []entity.PeriodSummary {
	out := make([]entity.PeriodSummary, 0, len(l.codes))
	for _, code := range l.codes {
		s, ok := l.summarizeCode(code, w)
		if ok {
			out = append(out, s)
		}
	}
	return out
}

func (l *Ledger) summarizeCode(code string, w Window) (entity.PeriodSummary, bool) {
	pts := l.points[code]
	idx := firstOnOrAfter(pts, w.Start)

	previous := decimal.Zero
	if idx > 0 {
		previous = pts[idx-1].cumulative
	}
	received, sold := decimal.Zero, decimal.Zero
	inWindow := false
	for j := idx; j < len(pts) && !pts[j].date.After(w.End); j++ {
		received = received.Add(pts[j].inflow)
		sold = sold.Add(pts[j].outflow)
		inWindow = true
	}
	if idx == 0 && !inWindow {
		return entity.PeriodSummary{}, false
	}
	return entity.PeriodSummary{
		Code:          code,
		WindowStart:   w.Start,
		WindowEnd:     w.End,
		PreviousStock: previous,
		TotalReceived: received,
		TotalSold:     sold,
		EndingStock:   previous.Add(received).Sub(sold),
	}, true
}

// firstOnOrAfter índice del primer punto con fecha >= day (len(pts) si no hay).
func firstOnOrAfter(pts []dailyPoint, day time.Time) int {
	return sort.Search(len(pts), func(i int) bool { return !pts[i].date.Before(day) })
}
