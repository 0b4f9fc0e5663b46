package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GastoTrabajadorRow is one worker's spend aggregate within a date range.
type GastoTrabajadorRow struct {
	TrabajadorID   uuid.UUID
	Nombre         string
	Email          *string
	TotalCompras   int64
	TotalGastado   decimal.Decimal
	PrecioPromedio decimal.Decimal
	PrimeraCompra  *time.Time
	UltimaCompra   *time.Time
}

// GastoProductoRow is one product's spend aggregate within a date range.
type GastoProductoRow struct {
	ProductoID   uuid.UUID
	Nombre       string
	TotalCompras int64
	TotalGastado decimal.Decimal
}

// ResumenGastosRow is the range-wide totals line.
type ResumenGastosRow struct {
	TotalCompras        int64
	GastoTotal          decimal.Decimal
	GastoPromedio       decimal.Decimal
	TrabajadoresActivos int64
	ProductosComprados  int64
}

// ReporteRepository runs the reporting aggregations. Read-only.
type ReporteRepository interface {
	GastosPorTrabajador(ctx context.Context, inicio, fin time.Time) ([]GastoTrabajadorRow, error)
	GastosPorProducto(ctx context.Context, inicio, fin time.Time) ([]GastoProductoRow, error)
	ResumenGastos(ctx context.Context, inicio, fin time.Time) (*ResumenGastosRow, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) GastosPorTrabajador(ctx context.Context, inicio, fin time.Time) ([]GastoTrabajadorRow, error) {
	var rows []GastoTrabajadorRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.id AS trabajador_id,
		       t.nombre,
		       t.email,
		       COUNT(c.id) AS total_compras,
		       COALESCE(SUM(c.precio_real), 0) AS total_gastado,
		       COALESCE(AVG(c.precio_real), 0) AS precio_promedio,
		       MIN(c.fecha_compra) AS primera_compra,
		       MAX(c.fecha_compra) AS ultima_compra
		FROM trabajadores t
		LEFT JOIN compras c ON c.trabajador_id = t.id
		     AND c.fecha_compra BETWEEN ? AND ?
		WHERE t.activo = true
		GROUP BY t.id, t.nombre, t.email
		ORDER BY total_gastado DESC`, inicio, fin).
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) GastosPorProducto(ctx context.Context, inicio, fin time.Time) ([]GastoProductoRow, error) {
	var rows []GastoProductoRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS producto_id,
		       p.nombre,
		       COUNT(c.id) AS total_compras,
		       COALESCE(SUM(c.precio_real), 0) AS total_gastado
		FROM productos p
		JOIN compras c ON c.producto_id = p.id
		WHERE c.fecha_compra BETWEEN ? AND ?
		GROUP BY p.id, p.nombre
		ORDER BY total_gastado DESC`, inicio, fin).
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) ResumenGastos(ctx context.Context, inicio, fin time.Time) (*ResumenGastosRow, error) {
	var row ResumenGastosRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total_compras,
		       COALESCE(SUM(precio_real), 0) AS gasto_total,
		       COALESCE(AVG(precio_real), 0) AS gasto_promedio,
		       COUNT(DISTINCT trabajador_id) AS trabajadores_activos,
		       COUNT(DISTINCT producto_id) AS productos_comprados
		FROM compras
		WHERE fecha_compra BETWEEN ? AND ?`, inicio, fin).
		Scan(&row).Error
	return &row, err
}
