package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/stock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func window(t *testing.T, from, to string) stock.Window {
	t.Helper()
	w, err := stock.ParseWindow(from, to)
	require.NoError(t, err)
	return w
}

func normalize(t *testing.T, records ...entity.SourceRecord) []entity.InventoryEvent {
	t.Helper()
	events, rep := stock.Normalize(records)
	require.Zero(t, rep.Dropped())
	return events
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

// abcEvents: Received 100 (01-01), Sales 30 (01-05), Sales 20 (01-10), Received 10 (01-15).
func abcEvents(t *testing.T) []entity.InventoryEvent {
	return normalize(t,
		rec(entity.SourceReceived, "2024-01-01", "ABC", "100"),
		rec(entity.SourceSales, "2024-01-05", "ABC", "30"),
		rec(entity.SourceSales, "2024-01-10", "ABC", "20"),
		rec(entity.SourceReceived, "2024-01-15", "ABC", "10"),
	)
}

func TestSummarize_EjemploABC(t *testing.T) {
	l := stock.NewLedger(abcEvents(t))
	out := l.Summarize(window(t, "2024-01-06", "2024-01-12"))
	require.Len(t, out, 1)

	s := out[0]
	assert.Equal(t, "ABC", s.Code)
	assertDec(t, "70", s.PreviousStock, "previous_stock")
	assertDec(t, "0", s.TotalReceived, "total_received")
	assertDec(t, "20", s.TotalSold, "total_sold")
	assertDec(t, "50", s.EndingStock, "ending_stock")
}

func TestNewLedger_MismoDiaSeSuma(t *testing.T) {
	l := stock.NewLedger(normalize(t,
		rec(entity.SourceReceived, "2024-02-01", "X", "5"),
		rec(entity.SourceReceived, "2024-02-01", "X", "3"),
	))
	hist := l.History("X")
	require.Len(t, hist, 1, "un solo punto de saldo por día")
	assertDec(t, "8", hist[0].Inflow, "entrada neta del día")
	assertDec(t, "8", hist[0].CumulativeQuantity, "saldo")
}

func TestNewLedger_EntreFuentesMismoDia(t *testing.T) {
	l := stock.NewLedger(normalize(t,
		rec(entity.SourceReceived, "2024-02-01", "X", "10"),
		rec(entity.SourceSales, "2024-02-01", "X", "4"),
		rec(entity.SourceCostCenter, "2024-02-01", "X", "1"),
		rec(entity.SourceAdjustment, "2024-02-01", "X", "-2"),
	))
	hist := l.History("X")
	require.Len(t, hist, 1)
	assertDec(t, "10", hist[0].Inflow, "inflow")
	assertDec(t, "7", hist[0].Outflow, "outflow")
	assertDec(t, "3", hist[0].CumulativeQuantity, "saldo")
}

func TestBalances_OrdenPorCodigoYFecha(t *testing.T) {
	l := stock.NewLedger(normalize(t,
		rec(entity.SourceReceived, "2024-01-03", "B", "1"),
		rec(entity.SourceReceived, "2024-01-01", "B", "1"),
		rec(entity.SourceReceived, "2024-01-02", "A", "1"),
	))
	bals := l.Balances()
	require.Len(t, bals, 3)
	assert.Equal(t, "A", bals[0].Code)
	assert.Equal(t, "B", bals[1].Code)
	assert.True(t, bals[1].AsOfDate.Before(bals[2].AsOfDate))
	assertDec(t, "2", bals[2].CumulativeQuantity, "saldo final de B")
	assert.Equal(t, []string{"A", "B"}, l.Codes())
}

func TestSummarize_InvarianteDeCierre(t *testing.T) {
	events := normalize(t,
		rec(entity.SourceReceived, "2024-01-01", "A", "12.5"),
		rec(entity.SourceSales, "2024-01-02", "A", "3.25"),
		rec(entity.SourceAdjustment, "2024-01-03", "A", "-1"),
		rec(entity.SourceCostCenter, "2024-01-04", "B", "7"),
		rec(entity.SourceReceived, "2024-01-05", "B", "2"),
	)
	l := stock.NewLedger(events)
	for _, w := range []stock.Window{
		window(t, "2024-01-01", "2024-01-31"),
		window(t, "2024-01-02", "2024-01-04"),
		window(t, "2024-01-05", "2024-01-05"),
	} {
		for _, s := range l.Summarize(w) {
			assert.True(t, s.EndingStock.Equal(s.PreviousStock.Add(s.TotalReceived).Sub(s.TotalSold)),
				"%s %s: invariante de cierre", s.Code, w)
		}
	}
}

func TestSummarize_PreviousStockSinFugaDelFuturo(t *testing.T) {
	events := abcEvents(t)
	l := stock.NewLedger(events)
	start := day("2024-01-10")

	independiente := decimal.Zero
	for _, ev := range events {
		if ev.Date.Before(start) {
			independiente = independiente.Add(ev.Quantity)
		}
	}
	for _, end := range []string{"2024-01-10", "2024-01-14", "2024-01-15", "2025-12-31"} {
		out := l.Summarize(window(t, "2024-01-10", end))
		require.Len(t, out, 1)
		assertDec(t, independiente.String(), out[0].PreviousStock, "previous_stock con fin "+end)
	}
	assertDec(t, "70", l.BalanceBefore("ABC", start), "BalanceBefore")
}

func TestSummarize_VentanasPartidasEquivalenALaCompleta(t *testing.T) {
	l := stock.NewLedger(abcEvents(t))
	first := l.Summarize(window(t, "2024-01-01", "2024-01-07"))
	second := l.Summarize(window(t, "2024-01-08", "2024-01-20"))
	full := l.Summarize(window(t, "2024-01-01", "2024-01-20"))
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	require.Len(t, full, 1)

	assert.True(t, first[0].TotalReceived.Add(second[0].TotalReceived).Equal(full[0].TotalReceived))
	assert.True(t, first[0].TotalSold.Add(second[0].TotalSold).Equal(full[0].TotalSold))
	assert.True(t, second[0].EndingStock.Equal(full[0].EndingStock))
	assert.True(t, first[0].EndingStock.Equal(second[0].PreviousStock))
	assertDec(t, "60", full[0].EndingStock, "cierre")
}

func TestSummarize_SaldoNegativoSeConserva(t *testing.T) {
	l := stock.NewLedger(normalize(t,
		rec(entity.SourceSales, "2024-01-02", "ONLY-SALES", "15"),
		rec(entity.SourceSales, "2024-01-08", "ONLY-SALES", "5"),
	))
	out := l.Summarize(window(t, "2024-01-05", "2024-01-10"))
	require.Len(t, out, 1)
	assertDec(t, "-15", out[0].PreviousStock, "previous_stock negativo")
	assertDec(t, "0", out[0].TotalReceived, "sin recibidos: cero, no error")
	assertDec(t, "5", out[0].TotalSold, "total_sold")
	assertDec(t, "-20", out[0].EndingStock, "ending_stock negativo")
}

func TestSummarize_OmiteProductosSoloFuturos(t *testing.T) {
	l := stock.NewLedger(normalize(t,
		rec(entity.SourceReceived, "2024-01-01", "PAST", "1"),
		rec(entity.SourceReceived, "2024-03-01", "FUTURE", "1"),
	))
	out := l.Summarize(window(t, "2024-02-01", "2024-02-28"))
	require.Len(t, out, 1)
	assert.Equal(t, "PAST", out[0].Code)
	assertDec(t, "1", out[0].EndingStock, "arrastra el saldo sin actividad en la ventana")
}

func TestSummarize_SinEventosDevuelveVacio(t *testing.T) {
	out := stock.NewLedger(nil).Summarize(window(t, "2024-01-01", "2024-01-31"))
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestWindow_Validate(t *testing.T) {
	_, err := stock.ParseWindow("2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = stock.ParseWindow("2024-13-01", "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	w := window(t, "2024-01-01", "2024-01-01")
	assert.True(t, w.Contains(day("2024-01-01")))
	assert.Equal(t, "2024-01-01_2024-01-01", w.String())
}
