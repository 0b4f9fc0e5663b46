package rotacion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ahora = time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

func diasAtras(n int) *time.Time {
	f := ahora.AddDate(0, 0, -n)
	return &f
}

func TestCalcularAntesDelAviso(t *testing.T) {
	// 30 days of life, warn 7 days before: at 20 days nothing is due yet.
	cfg := ConfigProducto{DiasDuracion: 30, DiasAviso: 7}

	v := Calcular(cfg, diasAtras(20), ahora)
	assert.False(t, v.Vencido)
	assert.Equal(t, PrioridadNinguna, v.Prioridad)
	assert.Equal(t, 10, v.DiasRestantes)
}

func TestCalcularDentroDeVentanaDeAviso(t *testing.T) {
	// At 24 days: past the warn threshold (23) but 6 days remain — normal.
	cfg := ConfigProducto{DiasDuracion: 30, DiasAviso: 7}

	v := Calcular(cfg, diasAtras(24), ahora)
	assert.True(t, v.Vencido)
	assert.Equal(t, PrioridadNormal, v.Prioridad)
	assert.Equal(t, 6, v.DiasRestantes)
}

func TestCalcularUrgente(t *testing.T) {
	// At 28 days only 2 remain — inside the urgency threshold.
	cfg := ConfigProducto{DiasDuracion: 30, DiasAviso: 7}

	v := Calcular(cfg, diasAtras(28), ahora)
	assert.True(t, v.Vencido)
	assert.Equal(t, PrioridadUrgente, v.Prioridad)
	assert.Equal(t, 2, v.DiasRestantes)
}

func TestCalcularJustoEnElUmbral(t *testing.T) {
	cfg := ConfigProducto{DiasDuracion: 30, DiasAviso: 7}

	// Exactly on the warn date: due.
	v := Calcular(cfg, diasAtras(23), ahora)
	assert.True(t, v.Vencido)
	assert.Equal(t, PrioridadNormal, v.Prioridad)

	// Exactly 3 days left: already urgent.
	v = Calcular(cfg, diasAtras(27), ahora)
	assert.Equal(t, PrioridadUrgente, v.Prioridad)
}

func TestCalcularPasadoElFin(t *testing.T) {
	cfg := ConfigProducto{DiasDuracion: 30, DiasAviso: 7}

	v := Calcular(cfg, diasAtras(40), ahora)
	assert.True(t, v.Vencido)
	assert.Equal(t, PrioridadUrgente, v.Prioridad)
	assert.Equal(t, -10, v.DiasRestantes)
}

func TestCalcularNuncaComprado(t *testing.T) {
	cfg := ConfigProducto{DiasDuracion: 30, DiasAviso: 7}

	v := Calcular(cfg, nil, ahora)
	assert.True(t, v.Vencido)
	assert.Equal(t, PrioridadUrgente, v.Prioridad)
}

func TestCalcularCadenciasDegeneradas(t *testing.T) {
	// Zero lifespan: due the moment it's bought.
	v := Calcular(ConfigProducto{DiasDuracion: 0, DiasAviso: 0}, diasAtras(0), ahora)
	assert.True(t, v.Vencido)

	// Negative values clamp to zero instead of failing.
	v = Calcular(ConfigProducto{DiasDuracion: -5, DiasAviso: -1}, diasAtras(1), ahora)
	assert.True(t, v.Vencido)
	assert.Equal(t, PrioridadUrgente, v.Prioridad)

	// Warn lead longer than the lifespan: due immediately after purchase.
	v = Calcular(ConfigProducto{DiasDuracion: 7, DiasAviso: 30}, diasAtras(0), ahora)
	assert.True(t, v.Vencido)
}

func TestClasificarEsMonotona(t *testing.T) {
	// Urgency never decreases as time passes without a purchase.
	cfg := ConfigProducto{DiasDuracion: 30, DiasAviso: 7}
	rango := map[Prioridad]int{PrioridadNinguna: 0, PrioridadNormal: 1, PrioridadUrgente: 2}

	anterior := 0
	for d := 0; d <= 45; d++ {
		p := Clasificar(cfg, diasAtras(d), ahora)
		assert.GreaterOrEqual(t, rango[p], anterior, "la prioridad retrocedió en el día %d", d)
		anterior = rango[p]
	}
}

func TestVence(t *testing.T) {
	cfg := ConfigProducto{DiasDuracion: 30, DiasAviso: 7}
	assert.False(t, Vence(cfg, diasAtras(10), ahora))
	assert.True(t, Vence(cfg, diasAtras(25), ahora))
	assert.True(t, Vence(cfg, nil, ahora))
}
