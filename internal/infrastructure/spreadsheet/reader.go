// Package spreadsheet lee planillas XLSX o CSV exportadas de los sistemas de
// despacho y las convierte en filas tipadas para una tabla de movimientos.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
	"github.com/jhoicas/Despacho-api/internal/domain/stock"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/sourcetable"
)

// Format tipo de archivo.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Encodings aceptados para CSV.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// Options controla la lectura.
type Options struct {
	Format   Format
	Encoding string // sólo CSV; vacío = utf-8
	Sheet    string // sólo XLSX; vacío = primera hoja
}

// Result filas aceptadas y conteo de las omitidas.
type Result struct {
	Rows         []repository.SourceRow
	MissingCode  int
	BadDate      int
	NullQuantity int // aceptadas con cantidad NULL
}

// Skipped filas no importadas.
func (r Result) Skipped() int { return r.MissingCode + r.BadDate }

// FormatFromFilename deduce el formato por extensión.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("extensión de %q no soportada (xlsx|csv): %w", name, domain.ErrInvalidInput)
}

// Read lee r con el encabezado en la primera fila y mapea las columnas de la fuente.
func Read(r io.Reader, source entity.EventSource, opts Options) (Result, error) {
	table, err := sourcetable.For(source)
	if err != nil {
		return Result{}, err
	}

	var rows [][]string
	switch opts.Format {
	case FormatXLSX:
		rows, err = readXLSX(r, opts.Sheet)
	case FormatCSV:
		rows, err = readCSV(r, opts.Encoding)
	default:
		return Result{}, fmt.Errorf("formato %q no soportado: %w", opts.Format, domain.ErrInvalidInput)
	}
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("la planilla está vacía: %w", domain.ErrInvalidInput)
	}

	dateIdx, codeIdx, qtyIdx, err := locateColumns(rows[0], table)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		code := cell(row, codeIdx)
		if code == "" {
			res.MissingCode++
			continue
		}
		date, ok := parseCellDate(cell(row, dateIdx), opts.Format)
		if !ok {
			res.BadDate++
			continue
		}
		var qty decimal.NullDecimal
		if d, ok := stock.ParseQuantity(cell(row, qtyIdx)); ok {
			qty = decimal.NewNullDecimal(d)
		} else {
			res.NullQuantity++
		}
		res.Rows = append(res.Rows, repository.SourceRow{Date: date, Code: code, Quantity: qty})
	}
	return res, nil
}

func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %v: %w", err, domain.ErrInvalidInput)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("el libro no tiene hojas: %w", domain.ErrInvalidInput)
	}
	// Valores crudos: las fechas llegan como serial de Excel y no en el formato regional de la celda.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %v: %w", sheet, err, domain.ErrInvalidInput)
	}
	return rows, nil
}

func readCSV(r io.Reader, encoding string) ([][]string, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
	case EncodingLatin1, "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("encoding %q no soportado (utf-8|latin1): %w", encoding, domain.ErrInvalidInput)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("csv línea %d: %v: %w", perr.Line, perr.Err, domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func locateColumns(header []string, t sourcetable.Table) (dateIdx, codeIdx, qtyIdx int, err error) {
	dateAliases, codeAliases, qtyAliases := t.HeaderAliases()
	dateIdx = indexOf(header, dateAliases)
	codeIdx = indexOf(header, codeAliases)
	qtyIdx = indexOf(header, qtyAliases)

	var missing []string
	if dateIdx < 0 {
		missing = append(missing, t.DateColumn)
	}
	if codeIdx < 0 {
		missing = append(missing, t.CodeColumn)
	}
	if qtyIdx < 0 {
		missing = append(missing, t.QuantityColumn)
	}
	if len(missing) > 0 {
		return 0, 0, 0, fmt.Errorf("faltan columnas %s en el encabezado: %w", strings.Join(missing, ", "), domain.ErrInvalidInput)
	}
	return dateIdx, codeIdx, qtyIdx, nil
}

func indexOf(header []string, aliases []string) int {
	for i, h := range header {
		h = normalizeHeader(h)
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseCellDate acepta texto de fecha; en XLSX también el serial de Excel.
func parseCellDate(value string, format Format) (time.Time, bool) {
	if t, ok := stock.ParseDate(value); ok {
		return t, true
	}
	if format != FormatXLSX {
		return time.Time{}, false
	}
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < 1 || serial > 2958465 {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return stock.Day(t), true
}
