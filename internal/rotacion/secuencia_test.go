package rotacion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func miembrosDePrueba(ordenes ...int) []Miembro {
	ms := make([]Miembro, 0, len(ordenes))
	for _, o := range ordenes {
		ms = append(ms, Miembro{ID: uuid.New(), Orden: o})
	}
	return ms
}

func TestSiguienteAvanzaYEnvuelve(t *testing.T) {
	ms := miembrosDePrueba(1, 2, 3)

	s, err := Siguiente(1, ms)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Orden)

	s, err = Siguiente(3, ms)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Orden, "el último envuelve al primero")
}

func TestSiguienteConHuecos(t *testing.T) {
	// Worker 2 was deactivated: the cycle is 1 → 3 → 7 → 1.
	ms := miembrosDePrueba(1, 3, 7)

	s, err := Siguiente(1, ms)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Orden)

	s, err = Siguiente(3, ms)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Orden)

	s, err = Siguiente(7, ms)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Orden)

	// ordenActual of a deactivated worker still lands on the next slot.
	s, err = Siguiente(2, ms)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Orden)
}

func TestSiguienteRecorreTodoElCiclo(t *testing.T) {
	ms := miembrosDePrueba(5, 1, 9, 3)

	visitados := make(map[int]bool)
	orden := 1
	for i := 0; i < len(ms); i++ {
		s, err := Siguiente(orden, ms)
		require.NoError(t, err)
		assert.False(t, visitados[s.Orden], "orden %d visitado dos veces", s.Orden)
		visitados[s.Orden] = true
		orden = s.Orden
	}
	assert.Len(t, visitados, len(ms), "una vuelta completa visita a todos exactamente una vez")
	// And the next step repeats the cycle.
	s, err := Siguiente(orden, ms)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Orden)
}

func TestSiguienteUnSoloMiembro(t *testing.T) {
	ms := miembrosDePrueba(4)
	s, err := Siguiente(4, ms)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Orden, "con un solo activo siempre le toca a él")
}

func TestSiguienteSinActivos(t *testing.T) {
	_, err := Siguiente(1, nil)
	assert.ErrorIs(t, err, ErrRotacionVacia)

	_, err = Primero(nil)
	assert.ErrorIs(t, err, ErrRotacionVacia)
}

func TestUltimoCompradorDesempataPorOrden(t *testing.T) {
	ms := miembrosDePrueba(2, 1, 3)
	fecha := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	ultimas := map[uuid.UUID]time.Time{
		ms[0].ID: fecha, // orden 2
		ms[1].ID: fecha, // orden 1 — same date, lower slot wins
	}

	ultimo, ok := UltimoComprador(ms, ultimas)
	require.True(t, ok)
	assert.Equal(t, 1, ultimo.Orden)
}

func TestProximoCompradorSinHistorial(t *testing.T) {
	ms := miembrosDePrueba(3, 1, 2)

	proximo, err := ProximoComprador(ms, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, proximo.Orden, "sin compras arranca el de menor orden")
}

func TestProximoCompradorEsSucesorDelUltimo(t *testing.T) {
	ms := miembrosDePrueba(1, 2, 3)
	ultimas := map[uuid.UUID]time.Time{
		ms[0].ID: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		ms[1].ID: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), // most recent
	}

	proximo, err := ProximoComprador(ms, ultimas)
	require.NoError(t, err)
	assert.Equal(t, 3, proximo.Orden)

	// After 3 buys, the turn wraps back to 1.
	ultimas[ms[2].ID] = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	proximo, err = ProximoComprador(ms, ultimas)
	require.NoError(t, err)
	assert.Equal(t, 1, proximo.Orden)
}
