// Package stock implementa el registro de stock: normalización de las cuatro
// fuentes de movimientos, saldo acumulado por producto y resumen por período.
//
// Todo el paquete es puro: no hace I/O, no guarda estado entre llamadas y
// trabaja con decimal.Decimal para no perder unidades por redondeo.
package stock

import (
	"fmt"
	"time"

	"github.com/jhoicas/Despacho-api/internal/domain"
)

// DateLayout formato de fecha usado en parámetros y reportes.
const DateLayout = "2006-01-02"

// Window rango de días [Start, End], ambos inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow normaliza ambos extremos al día calendario y valida el orden.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: Day(start), End: Day(end)}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// ParseWindow construye la ventana desde strings YYYY-MM-DD.
func ParseWindow(start, end string) (Window, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Window{}, fmt.Errorf("start_date %q: %w", start, domain.ErrInvalidInput)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Window{}, fmt.Errorf("end_date %q: %w", end, domain.ErrInvalidInput)
	}
	return NewWindow(s, e)
}

// Validate devuelve domain.ErrInvalidWindow si Start > End. Los extremos nunca se intercambian.
func (w Window) Validate() error {
	if w.Start.After(w.End) {
		return domain.ErrInvalidWindow
	}
	return nil
}

// Contains indica si el día d cae dentro de la ventana.
func (w Window) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// String "YYYY-MM-DD_YYYY-MM-DD", usado en nombres de archivo y claves de caché.
func (w Window) String() string {
	return w.Start.Format(DateLayout) + "_" + w.End.Format(DateLayout)
}

// Day trunca t a la medianoche UTC de su fecha calendario (en su propia zona).
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
