package commands

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
)

func TestPrintSummary(t *testing.T) {
	s := &dto.StockSummaryDTO{
		Period: dto.PeriodDTO{StartDate: "2024-01-04", EndDate: "2024-01-10"},
		Code:   "ab",
		Totals: dto.StockTotalsDTO{Products: 1, PreviousStock: decimal.NewFromInt(70), TotalSold: decimal.NewFromInt(20), EndingStock: decimal.NewFromInt(50)},
		Rows: []dto.StockSummaryRowDTO{
			{Code: "ABC", PreviousStock: decimal.NewFromInt(70), TotalSold: decimal.NewFromInt(20), EndingStock: decimal.NewFromInt(50)},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "Período 2024-01-04 a 2024-01-10")
	assert.Contains(t, out, `código contiene "ab"`)
	assert.Contains(t, out, "ABC")
	assert.Contains(t, out, "TOTAL (1)")
}

func TestImportCmd_ValidaArgumentos(t *testing.T) {
	rootCmd.SetArgs([]string{"import", "orders", "x.csv"})
	var errBuf bytes.Buffer
	rootCmd.SetErr(&errBuf)
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders")
}
