package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
)

func summaryCSV(s *dto.StockSummaryDTO) ([]byte, error) {
	records := make([][]string, 0, len(s.Rows)+1)
	records = append(records, summaryHeader)
	for _, row := range s.Rows {
		records = append(records, []string{
			row.Code,
			row.PreviousStock.String(),
			row.TotalReceived.String(),
			row.TotalSold.String(),
			row.EndingStock.String(),
		})
	}
	return writeCSV(records)
}

func sourceCSV(l *dto.SourceListingDTO) ([]byte, error) {
	records := make([][]string, 0, len(l.Rows)+1)
	records = append(records, sourceHeader(l))
	for _, row := range l.Rows {
		records = append(records, []string{row.Date, row.Code, row.Quantity.String()})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}
