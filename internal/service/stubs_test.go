package service

// In-memory repository stubs shared by the service tests. They mirror the
// GORM implementations closely enough to exercise the service logic,
// including the not-found sentinel the services branch on.

import (
	"context"
	"errors"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── TrabajadorRepository ─────────────────────────────────────────────────────

type stubTrabajadorRepo struct {
	trabajadores map[uuid.UUID]*model.Trabajador
}

func newStubTrabajadorRepo() *stubTrabajadorRepo {
	return &stubTrabajadorRepo{trabajadores: make(map[uuid.UUID]*model.Trabajador)}
}

func (r *stubTrabajadorRepo) agregar(nombre string, orden int, email *string) *model.Trabajador {
	t := &model.Trabajador{ID: uuid.New(), Nombre: nombre, Email: email, OrdenRotacion: orden, Activo: true}
	r.trabajadores[t.ID] = t
	return t
}

func (r *stubTrabajadorRepo) Create(_ context.Context, t *model.Trabajador) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.trabajadores[t.ID] = t
	return nil
}

func (r *stubTrabajadorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Trabajador, error) {
	t, ok := r.trabajadores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTrabajadorRepo) FindActivoByEmail(_ context.Context, email string) (*model.Trabajador, error) {
	for _, t := range r.trabajadores {
		if t.Activo && t.Email != nil && *t.Email == email {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTrabajadorRepo) ListActivos(_ context.Context) ([]model.Trabajador, error) {
	var out []model.Trabajador
	for _, t := range r.trabajadores {
		if t.Activo {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTrabajadorRepo) List(_ context.Context, incluirInactivos bool) ([]model.Trabajador, error) {
	var out []model.Trabajador
	for _, t := range r.trabajadores {
		if t.Activo || incluirInactivos {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTrabajadorRepo) MaxOrdenRotacion(_ context.Context) (int, error) {
	max := 0
	for _, t := range r.trabajadores {
		if t.OrdenRotacion > max {
			max = t.OrdenRotacion
		}
	}
	return max, nil
}

func (r *stubTrabajadorRepo) Update(_ context.Context, t *model.Trabajador) error {
	r.trabajadores[t.ID] = t
	return nil
}

func (r *stubTrabajadorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	t, ok := r.trabajadores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Activo = false
	return nil
}

func (r *stubTrabajadorRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	t, ok := r.trabajadores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Activo = true
	return nil
}

func (r *stubTrabajadorRepo) UpdateOrdenTx(_ *gorm.DB, id uuid.UUID, orden int) error {
	t, ok := r.trabajadores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.OrdenRotacion = orden
	return nil
}

func (r *stubTrabajadorRepo) DB() *gorm.DB { return nil }

var _ repository.TrabajadorRepository = (*stubTrabajadorRepo)(nil)

// ── ProductoRepository ───────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) agregar(nombre string, duracion, aviso int) *model.Producto {
	p := &model.Producto{
		ID: uuid.New(), Nombre: nombre,
		PrecioEstimado: decimal.NewFromInt(10),
		DiasDuracion:   duracion, DiasAviso: aviso,
		UnidadPeriodo: "dias", Activo: true,
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListActivos(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) ListActivosConPeriodo(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.PeriodoAviso > 0 {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── CompraRepository ─────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras      []*model.Compra
	trabajadores *stubTrabajadorRepo
	// failAt aborts the Nth CreateTx call (1-based) to exercise the
	// error path of the batch; 0 disables it.
	failAt  int
	creates int
}

func newStubCompraRepo(trabajadores *stubTrabajadorRepo) *stubCompraRepo {
	return &stubCompraRepo{trabajadores: trabajadores}
}

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	r.creates++
	if r.failAt > 0 && r.creates >= r.failAt {
		return errors.New("insert failed")
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.compras = append(r.compras, c)
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	for _, c := range r.compras {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCompraRepo) List(_ context.Context, _ dto.CompraFilter) ([]model.Compra, int64, error) {
	out := make([]model.Compra, 0, len(r.compras))
	for _, c := range r.compras {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) Historial(_ context.Context, limite int) ([]model.Compra, error) {
	out := make([]model.Compra, 0, len(r.compras))
	for _, c := range r.compras {
		out = append(out, *c)
	}
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

func (r *stubCompraRepo) UltimaCompraProducto(_ context.Context, productoID uuid.UUID) (*time.Time, error) {
	var ultima *time.Time
	for _, c := range r.compras {
		if c.ProductoID == productoID && (ultima == nil || c.FechaCompra.After(*ultima)) {
			f := c.FechaCompra
			ultima = &f
		}
	}
	return ultima, nil
}

func (r *stubCompraRepo) UltimasComprasPorProducto(_ context.Context) (map[uuid.UUID]time.Time, error) {
	out := make(map[uuid.UUID]time.Time)
	for _, c := range r.compras {
		if f, ok := out[c.ProductoID]; !ok || c.FechaCompra.After(f) {
			out[c.ProductoID] = c.FechaCompra
		}
	}
	return out, nil
}

func (r *stubCompraRepo) UltimasComprasPorTrabajador(_ context.Context) (map[uuid.UUID]time.Time, error) {
	out := make(map[uuid.UUID]time.Time)
	for _, c := range r.compras {
		if f, ok := out[c.TrabajadorID]; !ok || c.FechaCompra.After(f) {
			out[c.TrabajadorID] = c.FechaCompra
		}
	}
	return out, nil
}

func (r *stubCompraRepo) StatsPorProducto(_ context.Context, productoID uuid.UUID) ([]repository.CompraProductoStat, error) {
	var stats []repository.CompraProductoStat
	for _, t := range r.trabajadores.trabajadores {
		if !t.Activo {
			continue
		}
		st := repository.CompraProductoStat{TrabajadorID: t.ID}
		for _, c := range r.compras {
			if c.ProductoID == productoID && c.TrabajadorID == t.ID {
				st.TotalCompras++
				if st.UltimaCompra == nil || c.FechaCompra.After(*st.UltimaCompra) {
					f := c.FechaCompra
					st.UltimaCompra = &f
				}
			}
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func (r *stubCompraRepo) EstadisticasTrabajador(_ context.Context, trabajadorID uuid.UUID) (*repository.EstadisticasCompras, error) {
	est := &repository.EstadisticasCompras{
		TotalGastado:   decimal.Zero,
		PrecioPromedio: decimal.Zero,
	}
	for _, c := range r.compras {
		if c.TrabajadorID != trabajadorID {
			continue
		}
		est.TotalCompras++
		if c.PrecioReal != nil {
			est.TotalGastado = est.TotalGastado.Add(*c.PrecioReal)
		}
		f := c.FechaCompra
		if est.PrimeraCompra == nil || f.Before(*est.PrimeraCompra) {
			est.PrimeraCompra = &f
		}
		if est.UltimaCompra == nil || f.After(*est.UltimaCompra) {
			est.UltimaCompra = &f
		}
	}
	return est, nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

// ── AvisoRepository ──────────────────────────────────────────────────────────

type stubAvisoRepo struct {
	avisos map[uuid.UUID]*model.AvisoPendiente
}

func newStubAvisoRepo() *stubAvisoRepo {
	return &stubAvisoRepo{avisos: make(map[uuid.UUID]*model.AvisoPendiente)}
}

func (r *stubAvisoRepo) Create(_ context.Context, a *model.AvisoPendiente) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.avisos[a.ID] = a
	return nil
}

func (r *stubAvisoRepo) CreateTx(_ *gorm.DB, a *model.AvisoPendiente) error {
	return r.Create(context.Background(), a)
}

func (r *stubAvisoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AvisoPendiente, error) {
	a, ok := r.avisos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAvisoRepo) ExistePendienteProducto(_ context.Context, productoID uuid.UUID) (bool, error) {
	for _, a := range r.avisos {
		if a.ProductoID == productoID && a.Estado == "pendiente" {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAvisoRepo) ExistePendienteProductoTx(_ *gorm.DB, productoID uuid.UUID) (bool, error) {
	return r.ExistePendienteProducto(context.Background(), productoID)
}

func (r *stubAvisoRepo) CompletarPendienteProductoTx(_ *gorm.DB, productoID uuid.UUID) error {
	for _, a := range r.avisos {
		if a.ProductoID == productoID && a.Estado == "pendiente" {
			a.Estado = "completado"
		}
	}
	return nil
}

func (r *stubAvisoRepo) ListPendientes(_ context.Context) ([]model.AvisoPendiente, error) {
	var out []model.AvisoPendiente
	for _, a := range r.avisos {
		if a.Estado == "pendiente" {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAvisoRepo) ListPorTrabajador(_ context.Context, trabajadorID uuid.UUID) ([]model.AvisoPendiente, error) {
	var out []model.AvisoPendiente
	for _, a := range r.avisos {
		if a.TrabajadorID == trabajadorID && a.Estado == "pendiente" {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAvisoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	a, ok := r.avisos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Estado = estado
	return nil
}

func (r *stubAvisoRepo) MarcarNotificado(_ context.Context, id uuid.UUID) error {
	a, ok := r.avisos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Notificado = true
	return nil
}

func (r *stubAvisoRepo) DB() *gorm.DB { return nil }

var _ repository.AvisoRepository = (*stubAvisoRepo)(nil)

// pendientesDe returns the open avisos for one product.
func (r *stubAvisoRepo) pendientesDe(productoID uuid.UUID) []*model.AvisoPendiente {
	var out []*model.AvisoPendiente
	for _, a := range r.avisos {
		if a.ProductoID == productoID && a.Estado == "pendiente" {
			out = append(out, a)
		}
	}
	return out
}
