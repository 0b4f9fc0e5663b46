package repository

import (
	"context"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompraProductoStat is the per-worker purchase count for one product,
// used by the sweep's fairness rule.
type CompraProductoStat struct {
	TrabajadorID uuid.UUID
	TotalCompras int64
	UltimaCompra *time.Time
}

// EstadisticasCompras aggregates one worker's purchase history.
type EstadisticasCompras struct {
	TotalCompras   int64
	TotalGastado   decimal.Decimal
	PrecioPromedio decimal.Decimal
	PrimeraCompra  *time.Time
	UltimaCompra   *time.Time
}

type CompraRepository interface {
	// CreateTx inserts a purchase row inside the batch transaction.
	CreateTx(tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error)
	List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error)
	Historial(ctx context.Context, limite int) ([]model.Compra, error)

	// UltimaCompraProducto returns the most recent purchase date for one
	// product; nil when it was never purchased.
	UltimaCompraProducto(ctx context.Context, productoID uuid.UUID) (*time.Time, error)
	// UltimasComprasPorProducto maps every purchased product to its most
	// recent purchase date (products never purchased are absent).
	UltimasComprasPorProducto(ctx context.Context) (map[uuid.UUID]time.Time, error)
	// UltimasComprasPorTrabajador maps every worker with at least one
	// purchase to their most recent purchase date. The rotation's derived
	// "próximo comprador" is computed from this.
	UltimasComprasPorTrabajador(ctx context.Context) (map[uuid.UUID]time.Time, error)
	// StatsPorProducto returns, for one product, each active worker's
	// purchase count and last purchase of that product.
	StatsPorProducto(ctx context.Context, productoID uuid.UUID) ([]CompraProductoStat, error)
	EstadisticasTrabajador(ctx context.Context, trabajadorID uuid.UUID) (*EstadisticasCompras, error)

	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) CreateTx(tx *gorm.DB, c *model.Compra) error {
	return tx.Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).
		Preload("Producto").Preload("Trabajador").
		First(&c, id).Error
	return &c, err
}

func (r *compraRepo) List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error) {
	var compras []model.Compra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Compra{})
	if filter.TrabajadorID != "" {
		q = q.Where("trabajador_id = ?", filter.TrabajadorID)
	}
	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Producto").Preload("Trabajador").
		Order("fecha_compra DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&compras).Error
	return compras, total, err
}

func (r *compraRepo) Historial(ctx context.Context, limite int) ([]model.Compra, error) {
	var compras []model.Compra
	err := r.db.WithContext(ctx).
		Preload("Producto").Preload("Trabajador").
		Order("fecha_compra DESC, created_at DESC").
		Limit(limite).
		Find(&compras).Error
	return compras, err
}

func (r *compraRepo) UltimaCompraProducto(ctx context.Context, productoID uuid.UUID) (*time.Time, error) {
	var fecha *time.Time
	err := r.db.WithContext(ctx).
		Raw("SELECT MAX(fecha_compra) FROM compras WHERE producto_id = ?", productoID).
		Scan(&fecha).Error
	return fecha, err
}

type productoFecha struct {
	ProductoID uuid.UUID
	Fecha      time.Time
}

func (r *compraRepo) UltimasComprasPorProducto(ctx context.Context) (map[uuid.UUID]time.Time, error) {
	var rows []productoFecha
	err := r.db.WithContext(ctx).
		Raw("SELECT producto_id, MAX(fecha_compra) AS fecha FROM compras GROUP BY producto_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	ultimas := make(map[uuid.UUID]time.Time, len(rows))
	for _, row := range rows {
		ultimas[row.ProductoID] = row.Fecha
	}
	return ultimas, nil
}

type trabajadorFecha struct {
	TrabajadorID uuid.UUID
	Fecha        time.Time
}

func (r *compraRepo) UltimasComprasPorTrabajador(ctx context.Context) (map[uuid.UUID]time.Time, error) {
	var rows []trabajadorFecha
	err := r.db.WithContext(ctx).
		Raw("SELECT trabajador_id, MAX(fecha_compra) AS fecha FROM compras GROUP BY trabajador_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	ultimas := make(map[uuid.UUID]time.Time, len(rows))
	for _, row := range rows {
		ultimas[row.TrabajadorID] = row.Fecha
	}
	return ultimas, nil
}

func (r *compraRepo) StatsPorProducto(ctx context.Context, productoID uuid.UUID) ([]CompraProductoStat, error) {
	var stats []CompraProductoStat
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.id AS trabajador_id,
		       COUNT(c.id) AS total_compras,
		       MAX(c.fecha_compra) AS ultima_compra
		FROM trabajadores t
		LEFT JOIN compras c ON c.trabajador_id = t.id AND c.producto_id = ?
		WHERE t.activo = true
		GROUP BY t.id`, productoID).
		Scan(&stats).Error
	return stats, err
}

func (r *compraRepo) EstadisticasTrabajador(ctx context.Context, trabajadorID uuid.UUID) (*EstadisticasCompras, error) {
	var est EstadisticasCompras
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total_compras,
		       COALESCE(SUM(precio_real), 0) AS total_gastado,
		       COALESCE(AVG(precio_real), 0) AS precio_promedio,
		       MIN(fecha_compra) AS primera_compra,
		       MAX(fecha_compra) AS ultima_compra
		FROM compras
		WHERE trabajador_id = ?`, trabajadorID).
		Scan(&est).Error
	return &est, err
}

func (r *compraRepo) DB() *gorm.DB { return r.db }
