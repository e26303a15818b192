// Package export genera los archivos descargables del registro de stock.
package export

import (
	"context"
	"fmt"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/application/stockregister"
	"github.com/jhoicas/Despacho-api/internal/domain"
)

var _ stockregister.ReportRenderer = (*Renderer)(nil)

// Renderer implementa stockregister.ReportRenderer para csv, xlsx y pdf.
type Renderer struct {
	// Title encabezado del PDF y propiedad del libro XLSX.
	Title string
}

// NewRenderer construye el renderer.
func NewRenderer(title string) *Renderer {
	if title == "" {
		title = "Stock Register"
	}
	return &Renderer{Title: title}
}

var summaryHeader = []string{"code", "previous_stock", "total_received", "total_sold", "ending_stock"}

func sourceHeader(l *dto.SourceListingDTO) []string {
	return []string{"date", "code", l.Source + "_qty"}
}

// RenderSummary resumen del período en el formato pedido.
func (r *Renderer) RenderSummary(ctx context.Context, format stockregister.ExportFormat, s *dto.StockSummaryDTO) ([]byte, error) {
	switch format {
	case stockregister.FormatCSV:
		return summaryCSV(s)
	case stockregister.FormatXLSX:
		return summaryXLSX(r.Title, s)
	case stockregister.FormatPDF:
		return summaryPDF(ctx, r.Title, s)
	}
	return nil, fmt.Errorf("formato %q: %w", format, domain.ErrInvalidInput)
}

// RenderSource listado de una fuente en csv o xlsx.
func (r *Renderer) RenderSource(_ context.Context, format stockregister.ExportFormat, l *dto.SourceListingDTO) ([]byte, error) {
	switch format {
	case stockregister.FormatCSV:
		return sourceCSV(l)
	case stockregister.FormatXLSX:
		return sourceXLSX(r.Title, l)
	}
	return nil, fmt.Errorf("formato %q para listados: %w", format, domain.ErrInvalidInput)
}
