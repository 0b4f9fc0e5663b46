package service

import (
	"context"
	"testing"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hoy = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func relojFijo() time.Time { return hoy }

type escenarioRotacion struct {
	trabajadores *stubTrabajadorRepo
	productos    *stubProductoRepo
	compras      *stubCompraRepo
	avisos       *stubAvisoRepo
	svc          RotacionService

	ana   *model.Trabajador
	bruno *model.Trabajador
	carla *model.Trabajador
}

func nuevoEscenario() *escenarioRotacion {
	e := &escenarioRotacion{
		trabajadores: newStubTrabajadorRepo(),
		productos:    newStubProductoRepo(),
		avisos:       newStubAvisoRepo(),
	}
	e.compras = newStubCompraRepo(e.trabajadores)
	e.ana = e.trabajadores.agregar("Ana", 1, nil)
	e.bruno = e.trabajadores.agregar("Bruno", 2, nil)
	e.carla = e.trabajadores.agregar("Carla", 3, nil)
	e.svc = NewRotacionService(e.compras, e.trabajadores, e.productos, e.avisos, relojFijo)
	return e
}

func itemCompra(p *model.Producto, precio int64) dto.ItemCompraRequest {
	d := decimal.NewFromInt(precio)
	return dto.ItemCompraRequest{ProductoID: p.ID.String(), PrecioReal: &d}
}

func TestRegistrarCompraCompleta(t *testing.T) {
	e := nuevoEscenario()
	cafe := e.productos.agregar("Café", 30, 7)
	azucar := e.productos.agregar("Azúcar", 45, 5)

	resp, err := e.svc.RegistrarCompraCompleta(context.Background(), e.ana.ID, dto.RegistrarCompraRequest{
		Productos:   []dto.ItemCompraRequest{itemCompra(cafe, 12), itemCompra(azucar, 4)},
		FechaCompra: "2026-09-01",
	})
	require.NoError(t, err)

	assert.Len(t, resp.ComprasRegistradas, 2)
	assert.Equal(t, 2, resp.TotalProductos)
	require.NotNil(t, resp.SiguienteTrabajador)
	assert.Equal(t, "Bruno", resp.SiguienteTrabajador.Nombre)
	assert.Len(t, e.compras.compras, 2)

	// Each purchased product got an aviso for the successor.
	for _, p := range []*model.Producto{cafe, azucar} {
		pendientes := e.avisos.pendientesDe(p.ID)
		require.Len(t, pendientes, 1, "producto %s", p.Nombre)
		assert.Equal(t, e.bruno.ID, pendientes[0].TrabajadorID)
		assert.Equal(t, "rotacion", pendientes[0].TipoAsignacion)
	}
}

func TestRegistrarCompraCierraElAvisoAnterior(t *testing.T) {
	e := nuevoEscenario()
	cafe := e.productos.agregar("Café", 30, 7)

	// Ana has an open aviso for coffee and buys it.
	previo := &model.AvisoPendiente{ProductoID: cafe.ID, TrabajadorID: e.ana.ID, Estado: "pendiente"}
	require.NoError(t, e.avisos.Create(context.Background(), previo))

	_, err := e.svc.RegistrarCompraCompleta(context.Background(), e.ana.ID, dto.RegistrarCompraRequest{
		Productos:   []dto.ItemCompraRequest{itemCompra(cafe, 12)},
		FechaCompra: "2026-09-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "completado", previo.Estado)
	pendientes := e.avisos.pendientesDe(cafe.ID)
	require.Len(t, pendientes, 1, "como mucho un pendiente por producto")
	assert.Equal(t, e.bruno.ID, pendientes[0].TrabajadorID)
}

func TestRegistrarCompraRechazaProductoInactivo(t *testing.T) {
	e := nuevoEscenario()
	cafe := e.productos.agregar("Café", 30, 7)
	viejo := e.productos.agregar("Tóner viejo", 90, 10)
	viejo.Activo = false

	// The bad product is validated before anything is written.
	_, err := e.svc.RegistrarCompraCompleta(context.Background(), e.ana.ID, dto.RegistrarCompraRequest{
		Productos:   []dto.ItemCompraRequest{itemCompra(cafe, 12), itemCompra(viejo, 30)},
		FechaCompra: "2026-09-01",
	})
	assert.ErrorIs(t, err, ErrProductoInactivo)
	assert.Empty(t, e.compras.compras)
	assert.Empty(t, e.avisos.avisos)
}

func TestRegistrarCompraProductoInexistente(t *testing.T) {
	e := nuevoEscenario()
	cafe := e.productos.agregar("Café", 30, 7)

	_, err := e.svc.RegistrarCompraCompleta(context.Background(), e.ana.ID, dto.RegistrarCompraRequest{
		Productos: []dto.ItemCompraRequest{
			itemCompra(cafe, 12),
			{ProductoID: uuid.NewString()},
		},
		FechaCompra: "2026-09-01",
	})
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)
	assert.Empty(t, e.compras.compras)
}

func TestRegistrarCompraFallaAMitadDelLote(t *testing.T) {
	e := nuevoEscenario()
	cafe := e.productos.agregar("Café", 30, 7)
	azucar := e.productos.agregar("Azúcar", 45, 5)
	e.compras.failAt = 2

	_, err := e.svc.RegistrarCompraCompleta(context.Background(), e.ana.ID, dto.RegistrarCompraRequest{
		Productos:   []dto.ItemCompraRequest{itemCompra(cafe, 12), itemCompra(azucar, 4)},
		FechaCompra: "2026-09-01",
	})
	assert.Error(t, err, "la falla del segundo insert aborta el lote")
}

func TestRegistrarCompraTrabajadorInactivo(t *testing.T) {
	e := nuevoEscenario()
	cafe := e.productos.agregar("Café", 30, 7)
	e.ana.Activo = false

	_, err := e.svc.RegistrarCompraCompleta(context.Background(), e.ana.ID, dto.RegistrarCompraRequest{
		Productos:   []dto.ItemCompraRequest{itemCompra(cafe, 12)},
		FechaCompra: "2026-09-01",
	})
	assert.ErrorIs(t, err, ErrTrabajadorInactivo)
}

func TestProximoCompradorAvanzaConCadaCompra(t *testing.T) {
	e := nuevoEscenario()
	cafe := e.productos.agregar("Café", 30, 7)
	ctx := context.Background()

	// Bootstrap: nobody bought, the lowest slot starts.
	proximo, err := e.svc.ProximoComprador(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", proximo.Nombre)

	fechas := []string{"2026-08-01", "2026-08-10", "2026-08-20"}
	esperados := []string{"Bruno", "Carla", "Ana"}
	compradores := []uuid.UUID{e.ana.ID, e.bruno.ID, e.carla.ID}

	for i := range fechas {
		_, err := e.svc.RegistrarCompraCompleta(ctx, compradores[i], dto.RegistrarCompraRequest{
			Productos:   []dto.ItemCompraRequest{itemCompra(cafe, 10)},
			FechaCompra: fechas[i],
		})
		require.NoError(t, err)

		proximo, err := e.svc.ProximoComprador(ctx)
		require.NoError(t, err)
		assert.Equal(t, esperados[i], proximo.Nombre, "tras la compra %d", i+1)
	}
}

func TestEstadoRotacion(t *testing.T) {
	e := nuevoEscenario()
	cafe := e.productos.agregar("Café", 30, 7)
	ctx := context.Background()

	estado, err := e.svc.EstadoRotacion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sin_compras", estado.Estado)
	assert.Nil(t, estado.UltimoComprador)
	require.NotNil(t, estado.ProximoComprador)
	assert.Equal(t, "Ana", estado.ProximoComprador.Nombre)

	_, err = e.svc.RegistrarCompraCompleta(ctx, e.bruno.ID, dto.RegistrarCompraRequest{
		Productos:   []dto.ItemCompraRequest{itemCompra(cafe, 10)},
		FechaCompra: "2026-08-30",
	})
	require.NoError(t, err)

	estado, err = e.svc.EstadoRotacion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "activa", estado.Estado)
	assert.Equal(t, "Bruno", estado.UltimoComprador.Nombre)
	assert.Equal(t, "Carla", estado.ProximoComprador.Nombre)
}

func TestProductosPendientes(t *testing.T) {
	e := nuevoEscenario()
	ctx := context.Background()

	cafe := e.productos.agregar("Café", 30, 7)       // bought 24 days ago → normal
	azucar := e.productos.agregar("Azúcar", 30, 7)   // bought 28 days ago → urgent
	fresco := e.productos.agregar("Leche", 30, 7)    // bought yesterday → not due
	nuevo := e.productos.agregar("Papel", 30, 7)     // never bought → urgent
	_ = nuevo

	registrar := func(p *model.Producto, diasAtras int) {
		fecha := hoy.AddDate(0, 0, -diasAtras).Format("2006-01-02")
		_, err := e.svc.RegistrarCompraCompleta(ctx, e.ana.ID, dto.RegistrarCompraRequest{
			Productos:   []dto.ItemCompraRequest{itemCompra(p, 5)},
			FechaCompra: fecha,
		})
		require.NoError(t, err)
	}
	registrar(cafe, 24)
	registrar(azucar, 28)
	registrar(fresco, 1)

	resp, err := e.svc.ProductosPendientes(ctx)
	require.NoError(t, err)

	nombres := func(items []dto.ProductoPendienteResponse) []string {
		var out []string
		for _, it := range items {
			out = append(out, it.Nombre)
		}
		return out
	}
	assert.ElementsMatch(t, []string{"Azúcar", "Papel"}, nombres(resp.Urgentes))
	assert.ElementsMatch(t, []string{"Café"}, nombres(resp.Normales))
}

func TestResumenRotacion(t *testing.T) {
	e := nuevoEscenario()
	cafe := e.productos.agregar("Café", 30, 7)
	ctx := context.Background()

	_, err := e.svc.RegistrarCompraCompleta(ctx, e.ana.ID, dto.RegistrarCompraRequest{
		Productos:   []dto.ItemCompraRequest{itemCompra(cafe, 12)},
		FechaCompra: "2026-08-20",
	})
	require.NoError(t, err)

	resumen, err := e.svc.ResumenRotacion(ctx)
	require.NoError(t, err)
	require.Len(t, resumen, 3)

	porNombre := make(map[string]dto.ResumenRotacionItem)
	for _, item := range resumen {
		porNombre[item.Nombre] = item
	}
	assert.Equal(t, int64(1), porNombre["Ana"].TotalCompras)
	assert.True(t, porNombre["Ana"].TotalGastado.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, int64(0), porNombre["Bruno"].TotalCompras)
}
