// Package rotacion contains the pure scheduling core of the system:
// product due-date computation, the cyclic worker rotation, and the
// period-to-days conversion used by the periodic sweep. Nothing in this
// package touches the database or the clock — callers inject "now" and
// the relevant state, which keeps every function deterministic and
// directly testable.
package rotacion

import "time"

// Prioridad classifies a product's repurchase urgency.
type Prioridad string

const (
	PrioridadNinguna Prioridad = "ninguna" // not due yet
	PrioridadNormal  Prioridad = "normal"
	PrioridadUrgente Prioridad = "urgente"
)

// DiasUmbralUrgente: a due product with this many days or fewer until its
// estimated depletion is urgent.
const DiasUmbralUrgente = 3

// ConfigProducto are the cadence parameters of one product.
type ConfigProducto struct {
	DiasDuracion int // expected consumption lifespan
	DiasAviso    int // warning lead before estimated depletion
}

// Vencimiento is the computed due state of a product at a point in time.
type Vencimiento struct {
	Vencido       bool
	Prioridad     Prioridad
	FechaFin      time.Time // last purchase + DiasDuracion
	FechaAviso    time.Time // FechaFin − DiasAviso
	DiasRestantes int       // whole days from now until FechaFin (negative = past)
}

// Calcular computes the due state of a product given its cadence config,
// its last purchase date (nil = never purchased) and the current time.
//
// A never-purchased product is immediately due and urgent (there is no
// cushion to wait out). Zero or negative cadence values are not an error:
// the arithmetic collapses FechaAviso onto (or before) the last purchase
// date, so the product simply reads as always due.
func Calcular(cfg ConfigProducto, ultimaCompra *time.Time, now time.Time) Vencimiento {
	if ultimaCompra == nil {
		return Vencimiento{Vencido: true, Prioridad: PrioridadUrgente}
	}

	duracion := cfg.DiasDuracion
	if duracion < 0 {
		duracion = 0
	}
	aviso := cfg.DiasAviso
	if aviso < 0 {
		aviso = 0
	}

	fin := fecha(*ultimaCompra).AddDate(0, 0, duracion)
	avisoEn := fin.AddDate(0, 0, -aviso)
	hoy := fecha(now)

	v := Vencimiento{
		FechaFin:      fin,
		FechaAviso:    avisoEn,
		DiasRestantes: diasEntre(hoy, fin),
		Prioridad:     PrioridadNinguna,
	}

	if !hoy.Before(avisoEn) {
		v.Vencido = true
		if v.DiasRestantes <= DiasUmbralUrgente {
			v.Prioridad = PrioridadUrgente
		} else {
			v.Prioridad = PrioridadNormal
		}
	}
	return v
}

// Vence reports whether the product is due for repurchase.
func Vence(cfg ConfigProducto, ultimaCompra *time.Time, now time.Time) bool {
	return Calcular(cfg, ultimaCompra, now).Vencido
}

// Clasificar returns only the urgency bucket of Calcular.
func Clasificar(cfg ConfigProducto, ultimaCompra *time.Time, now time.Time) Prioridad {
	return Calcular(cfg, ultimaCompra, now).Prioridad
}

// fecha truncates a timestamp to its calendar date in UTC. All rotation
// math happens on whole dates, matching the DATE columns in the store.
func fecha(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func diasEntre(desde, hasta time.Time) int {
	return int(hasta.Sub(desde).Hours() / 24)
}
