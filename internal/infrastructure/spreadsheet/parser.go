package spreadsheet

import (
	"io"

	"github.com/jhoicas/Despacho-api/internal/application/stockregister"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

var _ stockregister.SheetParser = Parser{}

// Parser adapta Read al puerto de importación.
type Parser struct{}

// Parse deduce el formato por la extensión de filename y lee la planilla.
func (Parser) Parse(r io.Reader, filename string, source entity.EventSource, opts stockregister.ImportOptions) (stockregister.ParsedRows, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return stockregister.ParsedRows{}, err
	}
	res, err := Read(r, source, Options{Format: format, Encoding: opts.Encoding, Sheet: opts.Sheet})
	if err != nil {
		return stockregister.ParsedRows{}, err
	}
	return stockregister.ParsedRows{
		Rows:         res.Rows,
		MissingCode:  res.MissingCode,
		BadDate:      res.BadDate,
		NullQuantity: res.NullQuantity,
	}, nil
}
