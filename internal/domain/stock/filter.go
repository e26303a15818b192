package stock

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// CodeFilter búsqueda de código por subcadena sin distinguir mayúsculas. Vacío coincide con todo.
type CodeFilter struct {
	needle string
}

// NewCodeFilter prepara el filtro a partir del texto de búsqueda del usuario.
func NewCodeFilter(text string) CodeFilter {
	return CodeFilter{needle: fold(strings.TrimSpace(text))}
}

// Match indica si code contiene el texto buscado.
func (f CodeFilter) Match(code string) bool {
	if f.needle == "" {
		return true
	}
	return strings.Contains(fold(code), f.needle)
}

// Key forma canónica del filtro (para claves de caché).
func (f CodeFilter) Key() string { return f.needle }

// FilterEvents conserva solo los eventos cuyo código coincide.
// Los saldos están particionados por código, así que filtrar antes de acumular
// no cambia el resultado de ningún producto conservado.
func FilterEvents(events []entity.InventoryEvent, f CodeFilter) []entity.InventoryEvent {
	if f.needle == "" {
		return events
	}
	out := make([]entity.InventoryEvent, 0, len(events))
	for _, ev := range events {
		if f.Match(ev.Code) {
			out = append(out, ev)
		}
	}
	return out
}

// cases.Caser no es seguro para uso concurrente; se crea uno por llamada.
func fold(s string) string {
	return cases.Fold().String(s)
}
