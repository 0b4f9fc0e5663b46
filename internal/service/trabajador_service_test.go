package service

import (
	"context"
	"testing"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func nuevoTrabajadorService() (*escenarioRotacion, TrabajadorService) {
	e := nuevoEscenario()
	return e, NewTrabajadorService(e.trabajadores, e.compras)
}

func TestCrearAsignaElSiguienteOrdenLibre(t *testing.T) {
	_, svc := nuevoTrabajadorService()

	resp, err := svc.Crear(context.Background(), dto.CrearTrabajadorRequest{Nombre: "Diego"})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.OrdenRotacion, "sigue al máximo existente")
	assert.True(t, resp.Activo)
}

func TestCrearRechazaOrdenOcupado(t *testing.T) {
	_, svc := nuevoTrabajadorService()

	_, err := svc.Crear(context.Background(), dto.CrearTrabajadorRequest{
		Nombre:        "Diego",
		OrdenRotacion: ptr(2), // Bruno's slot
	})
	assert.ErrorIs(t, err, ErrOrdenDuplicado)
}

func TestCrearRechazaEmailDuplicado(t *testing.T) {
	e, svc := nuevoTrabajadorService()
	e.ana.Email = ptr("ana@example.com")

	_, err := svc.Crear(context.Background(), dto.CrearTrabajadorRequest{
		Nombre: "Otra Ana",
		Email:  ptr("ana@example.com"),
	})
	assert.ErrorIs(t, err, ErrEmailDuplicado)
}

func TestCrearPermiteEmailDeInactivo(t *testing.T) {
	e, svc := nuevoTrabajadorService()
	e.ana.Email = ptr("ana@example.com")
	e.ana.Activo = false

	_, err := svc.Crear(context.Background(), dto.CrearTrabajadorRequest{
		Nombre: "Ana II",
		Email:  ptr("ana@example.com"),
	})
	assert.NoError(t, err)
}

func TestActualizarCambiaElOrden(t *testing.T) {
	e, svc := nuevoTrabajadorService()

	resp, err := svc.Actualizar(context.Background(), e.carla.ID, dto.ActualizarTrabajadorRequest{
		OrdenRotacion: ptr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.OrdenRotacion)

	// Keeping your own slot is not a conflict.
	_, err = svc.Actualizar(context.Background(), e.ana.ID, dto.ActualizarTrabajadorRequest{
		OrdenRotacion: ptr(1),
	})
	assert.NoError(t, err)
}

func TestEliminarYReactivar(t *testing.T) {
	e, svc := nuevoTrabajadorService()
	ctx := context.Background()

	require.NoError(t, svc.Eliminar(ctx, e.bruno.ID))
	assert.False(t, e.bruno.Activo)

	activos, err := svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Len(t, activos, 2)

	todos, err := svc.Listar(ctx, true)
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	require.NoError(t, svc.Reactivar(ctx, e.bruno.ID))
	assert.True(t, e.bruno.Activo)

	err = svc.Eliminar(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrTrabajadorNoEncontrado)
}

func TestReordenarInvierteElCiclo(t *testing.T) {
	e, svc := nuevoTrabajadorService()

	err := svc.Reordenar(context.Background(), dto.ReordenarRotacionRequest{
		Orden: []dto.ReordenarItem{
			{TrabajadorID: e.ana.ID.String(), OrdenRotacion: 3},
			{TrabajadorID: e.bruno.ID.String(), OrdenRotacion: 2},
			{TrabajadorID: e.carla.ID.String(), OrdenRotacion: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, e.ana.OrdenRotacion)
	assert.Equal(t, 2, e.bruno.OrdenRotacion)
	assert.Equal(t, 1, e.carla.OrdenRotacion)
}

func TestReordenarExigeCubrirATodos(t *testing.T) {
	e, svc := nuevoTrabajadorService()
	ctx := context.Background()

	// Missing Carla.
	err := svc.Reordenar(ctx, dto.ReordenarRotacionRequest{
		Orden: []dto.ReordenarItem{
			{TrabajadorID: e.ana.ID.String(), OrdenRotacion: 2},
			{TrabajadorID: e.bruno.ID.String(), OrdenRotacion: 1},
		},
	})
	assert.ErrorIs(t, err, ErrReordenInvalido)

	// Duplicate slot.
	err = svc.Reordenar(ctx, dto.ReordenarRotacionRequest{
		Orden: []dto.ReordenarItem{
			{TrabajadorID: e.ana.ID.String(), OrdenRotacion: 1},
			{TrabajadorID: e.bruno.ID.String(), OrdenRotacion: 1},
			{TrabajadorID: e.carla.ID.String(), OrdenRotacion: 2},
		},
	})
	assert.ErrorIs(t, err, ErrReordenInvalido)

	// Someone outside the active cycle.
	err = svc.Reordenar(ctx, dto.ReordenarRotacionRequest{
		Orden: []dto.ReordenarItem{
			{TrabajadorID: e.ana.ID.String(), OrdenRotacion: 1},
			{TrabajadorID: e.bruno.ID.String(), OrdenRotacion: 2},
			{TrabajadorID: uuid.NewString(), OrdenRotacion: 3},
		},
	})
	assert.ErrorIs(t, err, ErrReordenInvalido)
}
