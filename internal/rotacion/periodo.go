package rotacion

import "fmt"

// Period units accepted on productos.unidad_periodo.
const (
	UnidadDias    = "dias"
	UnidadSemanas = "semanas"
	UnidadMeses   = "meses"
)

// PeriodoEnDias converts a sweep period to days. Months use a flat 30-day
// approximation; the precision is enough for office restock cadences.
// Unknown units fall back to days rather than failing.
func PeriodoEnDias(periodo int, unidad string) int {
	switch unidad {
	case UnidadSemanas:
		return periodo * 7
	case UnidadMeses:
		return periodo * 30
	default:
		return periodo
	}
}

// FormatearPeriodo renders a period for notification messages
// ("1 día", "3 semanas", ...).
func FormatearPeriodo(periodo int, unidad string) string {
	switch unidad {
	case UnidadDias:
		if periodo == 1 {
			return "1 día"
		}
		return fmt.Sprintf("%d días", periodo)
	case UnidadSemanas:
		if periodo == 1 {
			return "1 semana"
		}
		return fmt.Sprintf("%d semanas", periodo)
	case UnidadMeses:
		if periodo == 1 {
			return "1 mes"
		}
		return fmt.Sprintf("%d meses", periodo)
	default:
		return fmt.Sprintf("%d %s", periodo, unidad)
	}
}
