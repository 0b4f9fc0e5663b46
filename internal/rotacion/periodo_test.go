package rotacion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodoEnDias(t *testing.T) {
	assert.Equal(t, 10, PeriodoEnDias(10, UnidadDias))
	assert.Equal(t, 14, PeriodoEnDias(2, UnidadSemanas))
	assert.Equal(t, 90, PeriodoEnDias(3, UnidadMeses))
	// Unknown units fall back to days.
	assert.Equal(t, 5, PeriodoEnDias(5, "quincenas"))
}

func TestFormatearPeriodo(t *testing.T) {
	assert.Equal(t, "1 día", FormatearPeriodo(1, UnidadDias))
	assert.Equal(t, "3 días", FormatearPeriodo(3, UnidadDias))
	assert.Equal(t, "1 semana", FormatearPeriodo(1, UnidadSemanas))
	assert.Equal(t, "2 semanas", FormatearPeriodo(2, UnidadSemanas))
	assert.Equal(t, "1 mes", FormatearPeriodo(1, UnidadMeses))
	assert.Equal(t, "6 meses", FormatearPeriodo(6, UnidadMeses))
}
