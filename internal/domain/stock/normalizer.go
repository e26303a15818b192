package stock

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// dateLayouts formatos aceptados para la fecha de un movimiento, en orden de prueba.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"02/01/2006",
	"02-Jan-2006",
}

// NormalizeReport conteo de filas descartadas o corregidas durante la normalización.
// Ninguna de estas situaciones es un error fatal: el tablero vive de resultados parciales.
type NormalizeReport struct {
	Accepted       int // eventos producidos
	MissingCode    int // descartadas: sin código de producto
	BadDate        int // descartadas: fecha vacía o no interpretable
	UnknownSource  int // descartadas: fuente desconocida
	ZeroedQuantity int // aceptadas con cantidad forzada a cero
}

// Dropped total de filas descartadas.
func (r NormalizeReport) Dropped() int {
	return r.MissingCode + r.BadDate + r.UnknownSource
}

// Add acumula otro reporte (útil al normalizar fuente por fuente).
func (r *NormalizeReport) Add(o NormalizeReport) {
	r.Accepted += o.Accepted
	r.MissingCode += o.MissingCode
	r.BadDate += o.BadDate
	r.UnknownSource += o.UnknownSource
	r.ZeroedQuantity += o.ZeroedQuantity
}

// Normalize convierte filas heterogéneas en InventoryEvent con signo:
// received y adjustment conservan el signo registrado; sales y cost_center lo invierten.
func Normalize(records []entity.SourceRecord) ([]entity.InventoryEvent, NormalizeReport) {
	var rep NormalizeReport
	events := make([]entity.InventoryEvent, 0, len(records))
	for _, rec := range records {
		if !rec.Source.Valid() {
			rep.UnknownSource++
			continue
		}
		code := strings.TrimSpace(rec.Code)
		if code == "" {
			rep.MissingCode++
			continue
		}
		date, ok := ParseDate(rec.Date)
		if !ok {
			rep.BadDate++
			continue
		}
		qty, ok := ParseQuantity(rec.Quantity)
		if !ok {
			rep.ZeroedQuantity++
		}
		if rec.Source.Polarity() == entity.PolarityOutflow {
			qty = qty.Neg()
		}
		events = append(events, entity.InventoryEvent{
			Date:     date,
			Code:     code,
			Quantity: qty,
			Source:   rec.Source,
		})
	}
	rep.Accepted = len(events)
	return events, rep
}

// ParseDate interpreta raw con los formatos conocidos y lo trunca al día.
// Timestamps con sufijos no reconocidos se aceptan si empiezan por YYYY-MM-DD
// seguido de ' ', 'T' o '.'.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), true
		}
	}
	if n := len(DateLayout); len(s) > n && strings.IndexByte(" T.", s[n]) >= 0 {
		if t, err := time.Parse(DateLayout, s[:n]); err == nil {
			return Day(t), true
		}
	}
	return time.Time{}, false
}

// ParseQuantity interpreta una cantidad decimal en notación inglesa o española
// ("1,250.5", "1.250,5", "1,5", " -3 "). Vacío o no numérico devuelve (0, false).
func ParseQuantity(raw string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if s == "" {
		return decimal.Zero, false
	}
	s, ok := canonicalNumber(s)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// canonicalNumber deja '.' como único separador decimal.
//
// Con ambos separadores el último es el decimal y el otro agrupa miles.
// Con varios del mismo tipo, son de miles. Un único punto es decimal.
// Una única coma es de miles sólo si la siguen exactamente tres dígitos
// ("1,250"); si no, es coma decimal ("1,5").
func canonicalNumber(s string) (string, bool) {
	lastComma, lastDot := strings.LastIndexByte(s, ','), strings.LastIndexByte(s, '.')
	switch {
	case lastComma < 0 && lastDot < 0:
		return s, true

	case lastComma >= 0 && lastDot >= 0:
		i, thousands := lastDot, ","
		if lastComma > lastDot {
			i, thousands = lastComma, "."
		}
		intPart, frac := s[:i], s[i+1:]
		if strings.Contains(intPart, s[i:i+1]) || !grouped(intPart, thousands) {
			return "", false
		}
		return strings.ReplaceAll(intPart, thousands, "") + "." + frac, true

	case lastDot >= 0:
		if strings.Count(s, ".") == 1 {
			return s, true
		}
		if !grouped(s, ".") {
			return "", false
		}
		return strings.ReplaceAll(s, ".", ""), true

	default:
		if grouped(s, ",") {
			return strings.ReplaceAll(s, ",", ""), true
		}
		if strings.Count(s, ",") == 1 {
			return strings.Replace(s, ",", ".", 1), true
		}
		return "", false
	}
}

// grouped indica si s (con signo opcional) agrupa dígitos de a tres con sep: "1,250,000".
func grouped(s, sep string) bool {
	s = strings.TrimLeft(s, "+-")
	parts := strings.Split(s, sep)
	if len(parts) < 2 || len(parts[0]) == 0 || len(parts[0]) > 3 || !digits(parts[0]) {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 || !digits(p) {
			return false
		}
	}
	return true
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
