package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
)

func summaryXLSX(title string, s *dto.StockSummaryDTO) ([]byte, error) {
	rows := make([][]any, 0, len(s.Rows)+2)
	for _, r := range s.Rows {
		rows = append(rows, []any{r.Code, num(r.PreviousStock), num(r.TotalReceived), num(r.TotalSold), num(r.EndingStock)})
	}
	rows = append(rows, []any{"TOTAL", num(s.Totals.PreviousStock), num(s.Totals.TotalReceived), num(s.Totals.TotalSold), num(s.Totals.EndingStock)})
	return workbook(title, "Stock Register", summaryHeader, rows)
}

func sourceXLSX(title string, l *dto.SourceListingDTO) ([]byte, error) {
	rows := make([][]any, 0, len(l.Rows))
	for _, r := range l.Rows {
		rows = append(rows, []any{r.Date, r.Code, num(r.Quantity)})
	}
	return workbook(title, l.Label, sourceHeader(l), rows)
}

// workbook arma un libro de una hoja con encabezado en negrita y panel congelado.
func workbook(title, sheet string, header []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	_ = f.SetDocProps(&excelize.DocProperties{Title: title, Creator: title})

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// num celda numérica; las cantidades enteras quedan como enteros.
func num(d decimal.Decimal) any {
	if d.IsInteger() {
		return d.IntPart()
	}
	f, _ := d.Float64()
	return f
}
