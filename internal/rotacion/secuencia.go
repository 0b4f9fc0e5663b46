package rotacion

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Miembro is an active worker as seen by the rotation: identity plus the
// unique integer that ranks it into the cycle.
type Miembro struct {
	ID     uuid.UUID
	Nombre string
	Orden  int
}

// ErrRotacionVacia is returned when no active worker exists.
var ErrRotacionVacia = errors.New("rotacion: no hay trabajadores activos")

// Siguiente returns the cyclic successor of ordenActual: the active worker
// with the smallest orden strictly greater than ordenActual, wrapping to
// the smallest orden overall when none exists. Repeated application walks
// the whole rotation exactly once before repeating.
func Siguiente(ordenActual int, activos []Miembro) (Miembro, error) {
	if len(activos) == 0 {
		return Miembro{}, ErrRotacionVacia
	}

	ordenados := make([]Miembro, len(activos))
	copy(ordenados, activos)
	sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].Orden < ordenados[j].Orden })

	for _, m := range ordenados {
		if m.Orden > ordenActual {
			return m, nil
		}
	}
	// Wrap to the start of the cycle.
	return ordenados[0], nil
}

// Primero returns the active worker with the smallest orden (the bootstrap
// purchaser when no purchase history exists yet).
func Primero(activos []Miembro) (Miembro, error) {
	if len(activos) == 0 {
		return Miembro{}, ErrRotacionVacia
	}
	primero := activos[0]
	for _, m := range activos[1:] {
		if m.Orden < primero.Orden {
			primero = m
		}
	}
	return primero, nil
}

// UltimoComprador returns the worker with the most recent purchase date.
// ultimas maps worker ID to that worker's latest Compra date; workers
// absent from the map have never purchased. Equal dates break toward the
// lowest orden so the result is deterministic. The second return is false
// when nobody has purchased yet.
func UltimoComprador(activos []Miembro, ultimas map[uuid.UUID]time.Time) (Miembro, bool) {
	var ultimo Miembro
	var fechaUltimo time.Time
	encontrado := false

	for _, m := range activos {
		f, ok := ultimas[m.ID]
		if !ok {
			continue
		}
		if !encontrado || f.After(fechaUltimo) || (f.Equal(fechaUltimo) && m.Orden < ultimo.Orden) {
			ultimo = m
			fechaUltimo = f
			encontrado = true
		}
	}
	return ultimo, encontrado
}

// ProximoComprador derives the worker whose turn it is to buy next. It is
// recomputed from purchase history on every call instead of being stored,
// so it can never drift from what actually happened: the next purchaser
// is the cyclic successor of whoever bought most recently, or the worker
// with the smallest orden when no purchases exist at all.
func ProximoComprador(activos []Miembro, ultimas map[uuid.UUID]time.Time) (Miembro, error) {
	ultimo, hayCompras := UltimoComprador(activos, ultimas)
	if !hayCompras {
		return Primero(activos)
	}
	return Siguiente(ultimo.Orden, activos)
}
