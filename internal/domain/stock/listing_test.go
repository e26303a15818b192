package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/stock"
)

func TestCodeFilter_SinDistinguirMayusculas(t *testing.T) {
	f := stock.NewCodeFilter("  ab ")
	assert.True(t, f.Match("xABc"))
	assert.False(t, f.Match("xyz"))
	assert.True(t, stock.NewCodeFilter("").Match("cualquiera"))
	assert.Equal(t, "ab", f.Key())
}

func TestDailyTotals_AgrupaPorDiaYCodigo(t *testing.T) {
	events := normalize(t,
		rec(entity.SourceSales, "2024-01-02", "B", "2"),
		rec(entity.SourceSales, "2024-01-02", "B", "3"),
		rec(entity.SourceSales, "2024-01-02", "A", "1"),
		rec(entity.SourceSales, "2024-01-01", "C", "4"),
		rec(entity.SourceSales, "2024-02-01", "A", "9"),    // fuera de ventana
		rec(entity.SourceReceived, "2024-01-02", "A", "7"), // otra fuente
	)
	rows := stock.DailyTotals(events, entity.SourceSales, window(t, "2024-01-01", "2024-01-31"), stock.NewCodeFilter(""))
	require.Len(t, rows, 3)
	assert.Equal(t, "C", rows[0].Code)
	assert.Equal(t, "A", rows[1].Code)
	assert.Equal(t, "B", rows[2].Code)
	assertDec(t, "5", rows[2].Quantity, "cantidad registrada, sin invertir signo")

	filtered := stock.DailyTotals(events, entity.SourceSales, window(t, "2024-01-01", "2024-01-31"), stock.NewCodeFilter("b"))
	require.Len(t, filtered, 1)
}

func TestTopBySource_OrdenYEmpates(t *testing.T) {
	events := normalize(t,
		rec(entity.SourceSales, "2024-01-02", "B", "5"),
		rec(entity.SourceSales, "2024-01-03", "A", "5"),
		rec(entity.SourceSales, "2024-01-03", "C", "9"),
		rec(entity.SourceSales, "2024-01-04", "D", "1"),
	)
	top := stock.TopBySource(events, entity.SourceSales, window(t, "2024-01-01", "2024-01-31"), 3)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{top[0].Code, top[1].Code, top[2].Code})
	assertDec(t, "9", top[0].Quantity, "top")
}
