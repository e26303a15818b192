package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/stock"
)

func rec(src entity.EventSource, date, code, qty string) entity.SourceRecord {
	return entity.SourceRecord{Source: src, Date: date, Code: code, Quantity: qty}
}

func day(s string) time.Time {
	t, err := time.Parse(stock.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNormalize_Polaridad(t *testing.T) {
	events, rep := stock.Normalize([]entity.SourceRecord{
		rec(entity.SourceReceived, "2024-01-01", "A", "10"),
		rec(entity.SourceAdjustment, "2024-01-01", "A", "-2"),
		rec(entity.SourceSales, "2024-01-02", "A", "3"),
		rec(entity.SourceCostCenter, "2024-01-02", "A", "1.5"),
	})
	require.Len(t, events, 4)
	assert.Equal(t, 4, rep.Accepted)
	assert.Equal(t, 0, rep.Dropped())

	want := []string{"10", "-2", "-3", "-1.5"}
	for i, w := range want {
		assert.True(t, decimal.RequireFromString(w).Equal(events[i].Quantity),
			"evento %d: esperado %s, obtenido %s", i, w, events[i].Quantity)
	}
}

func TestNormalize_FilasMalformadas(t *testing.T) {
	events, rep := stock.Normalize([]entity.SourceRecord{
		rec(entity.SourceReceived, "2024-01-01", "", "5"),         // sin código: descartada
		rec(entity.SourceReceived, "no-es-fecha", "A", "5"),       // fecha inválida: descartada
		rec(entity.SourceReceived, "", "A", "5"),                  // fecha vacía: descartada
		rec(entity.SourceSales, "2024-01-01", "A", "abc"),         // cantidad no numérica: cero
		rec(entity.SourceSales, "2024-01-01", "  B  ", ""),        // cantidad vacía: cero
		rec(entity.EventSource("orders"), "2024-01-01", "A", "1"), // fuente desconocida
	})
	require.Len(t, events, 2)
	assert.Equal(t, 1, rep.MissingCode)
	assert.Equal(t, 2, rep.BadDate)
	assert.Equal(t, 1, rep.UnknownSource)
	assert.Equal(t, 2, rep.ZeroedQuantity)
	assert.Equal(t, 4, rep.Dropped())

	assert.True(t, events[0].Quantity.IsZero())
	assert.Equal(t, "B", events[1].Code, "el código se recorta")
}

func TestParseDate_Formatos(t *testing.T) {
	cases := []string{
		"2024-03-05",
		"2024-03-05 13:45:00",
		"2024-03-05T13:45:00",
		"2024-03-05T13:45:00Z",
		"2024/03/05",
		"05/03/2024",
		"2024-03-05 00:00:00.000",
	}
	for _, raw := range cases {
		got, ok := stock.ParseDate(raw)
		require.True(t, ok, raw)
		assert.True(t, got.Equal(day("2024-03-05")), "%s -> %s", raw, got)
	}
}

func TestParseQuantity_SeparadorDeMiles(t *testing.T) {
	q, ok := stock.ParseQuantity("1,250.50")
	require.True(t, ok)
	assert.Equal(t, "1250.5", q.String())

	_, ok = stock.ParseQuantity("1.2.3")
	assert.False(t, ok)
}

func TestParseQuantity_Separadores(t *testing.T) {
	cases := map[string]string{
		"1,5":       "1.5",
		"-12,75":    "-12.75",
		"1.250,5":   "1250.5",
		"1,250":     "1250",
		"1.250.000": "1250000",
		"1,250,000": "1250000",
		"-1,250.5":  "-1250.5",
		"70.0000":   "70",
		" 3 ":       "3",
		"1 250,5":   "1250.5",
	}
	for raw, want := range cases {
		q, ok := stock.ParseQuantity(raw)
		require.True(t, ok, raw)
		assert.True(t, decimal.RequireFromString(want).Equal(q), "%q -> %s, esperado %s", raw, q, want)
	}

	for _, raw := range []string{"1,2,3", "1.2.3,4", "1,2.3,4", "12,34,56", "abc", "1,5x"} {
		_, ok := stock.ParseQuantity(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseDate_RechazaSufijoArbitrario(t *testing.T) {
	for _, raw := range []string{"2024-01-01garbage", "2024-01-011", "2024-01-01-05", "fecha"} {
		_, ok := stock.ParseDate(raw)
		assert.False(t, ok, raw)
	}

	got, ok := stock.ParseDate("2024-01-05 00:00:00+00")
	require.True(t, ok)
	assert.True(t, got.Equal(day("2024-01-05")))
}

func TestParseEventSource(t *testing.T) {
	for raw, want := range map[string]entity.EventSource{
		"sales":       entity.SourceSales,
		"CostCenter":  entity.SourceCostCenter,
		"cost-center": entity.SourceCostCenter,
		" Received ":  entity.SourceReceived,
		"ADJUSTMENT":  entity.SourceAdjustment,
	} {
		got, err := entity.ParseEventSource(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
	_, err := entity.ParseEventSource("orders")
	assert.Error(t, err)
}
