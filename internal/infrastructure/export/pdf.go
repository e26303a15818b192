package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
)

// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título  │  período + filtro                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Stock anterior | Recibido | Vendido | Final │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	│  FOOTER: fecha de generación                                 │
//	└─────────────────────────────────────────────────────────────┘

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// now se sobreescribe en tests.
var now = time.Now

func summaryPDF(_ context.Context, title string, s *dto.StockSummaryDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(s.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(s.Totals))

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado: "+now().Format("2006-01-02 15:04"), props.Text{Size: 7, Color: colorGray, Align: align.Right}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y período + filtro (der).
func headerRow(title string, s *dto.StockSummaryDTO) core.Row {
	filter := "Todos los códigos"
	if s.Code != "" {
		filter = "Código contiene: " + s.Code
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d productos", s.Totals.Products), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Período: %s a %s", s.Period.StartDate, s.Period.EndDate), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(filter, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 4, align.Left),
		h("Stock anterior", 2, align.Right),
		h("Recibido", 2, align.Right),
		h("Vendido", 2, align.Right),
		h("Stock final", 2, align.Right),
	)
}

func tableRows(rows []dto.StockSummaryRowDTO) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		cell := func(d decimal.Decimal) core.Col {
			p := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
			if d.IsNegative() {
				p.Color = colorRed
			}
			return col.New(2).Add(text.New(formatQty(d), p))
		}
		out = append(out, row.New(6).Add(
			col.New(4).Add(text.New(r.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			cell(r.PreviousStock),
			cell(r.TotalReceived),
			cell(r.TotalSold),
			cell(r.EndingStock),
		))
	}
	return out
}

func totalsRow(t dto.StockTotalsDTO) core.Row {
	bold := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: a, Top: 1, Right: 1, Color: colorPrimary})
	}
	return row.New(8).Add(
		col.New(4).Add(bold("TOTAL", align.Left)),
		col.New(2).Add(bold(formatQty(t.PreviousStock), align.Right)),
		col.New(2).Add(bold(formatQty(t.TotalReceived), align.Right)),
		col.New(2).Add(bold(formatQty(t.TotalSold), align.Right)),
		col.New(2).Add(bold(formatQty(t.EndingStock), align.Right)),
	)
}

// formatQty inserta puntos de miles en la parte entera y conserva los decimales con coma.
// Ej: 25000 → "25.000", -1234.5 → "-1.234,5"
func formatQty(d decimal.Decimal) string {
	s := d.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		return sign + string(buf) + "," + frac
	}
	return sign + string(buf)
}
