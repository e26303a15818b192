package stockregister

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// SummaryCache memoiza resúmenes calculados por generación de datos.
// Invalidate avanza la generación; lo guardado en generaciones anteriores deja de leerse.
type SummaryCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, key string, dest any) (bool, error)
	Set(ctx context.Context, gen int64, key string, value any) error
	Invalidate(ctx context.Context) error
}

// ExportFormat formato de archivo de exportación.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat interpreta el parámetro format. Vacío = csv.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("format %q no soportado (csv|xlsx|pdf): %w", raw, domain.ErrInvalidInput)
}

// ContentType MIME del formato.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ReportRenderer convierte reportes en archivos descargables.
type ReportRenderer interface {
	RenderSummary(ctx context.Context, format ExportFormat, summary *dto.StockSummaryDTO) ([]byte, error)
	RenderSource(ctx context.Context, format ExportFormat, listing *dto.SourceListingDTO) ([]byte, error)
}

// ExportFile archivo listo para enviar.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImportOptions opciones de lectura de la planilla.
type ImportOptions struct {
	Encoding string // CSV: utf-8 (default) o latin1
	Sheet    string // XLSX: hoja a leer; vacío = primera
	Replace  bool   // vaciar la tabla antes de insertar
}

// ParsedRows filas válidas de una planilla más el conteo de las omitidas.
type ParsedRows struct {
	Rows         []repository.SourceRow
	MissingCode  int
	BadDate      int
	NullQuantity int
}

// SheetParser lee una planilla (el formato se deduce de filename).
type SheetParser interface {
	Parse(r io.Reader, filename string, source entity.EventSource, opts ImportOptions) (ParsedRows, error)
}

type noopCache struct{}

func (noopCache) Generation(context.Context) (int64, error)             { return 0, nil }
func (noopCache) Get(context.Context, int64, string, any) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, int64, string, any) error         { return nil }
func (noopCache) Invalidate(context.Context) error                      { return nil }
