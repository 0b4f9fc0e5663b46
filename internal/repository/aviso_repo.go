package repository

import (
	"context"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvisoRepository interface {
	Create(ctx context.Context, a *model.AvisoPendiente) error
	CreateTx(tx *gorm.DB, a *model.AvisoPendiente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AvisoPendiente, error)
	// ExistePendienteProducto reports whether the product already has an
	// open aviso — the duplicate-suppression check.
	ExistePendienteProducto(ctx context.Context, productoID uuid.UUID) (bool, error)
	ExistePendienteProductoTx(tx *gorm.DB, productoID uuid.UUID) (bool, error)
	// CompletarPendienteProductoTx closes the open aviso a purchase of the
	// product satisfies, inside the purchase transaction.
	CompletarPendienteProductoTx(tx *gorm.DB, productoID uuid.UUID) error
	ListPendientes(ctx context.Context) ([]model.AvisoPendiente, error)
	ListPorTrabajador(ctx context.Context, trabajadorID uuid.UUID) ([]model.AvisoPendiente, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	MarcarNotificado(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type avisoRepo struct{ db *gorm.DB }

func NewAvisoRepository(db *gorm.DB) AvisoRepository { return &avisoRepo{db: db} }

func (r *avisoRepo) Create(ctx context.Context, a *model.AvisoPendiente) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *avisoRepo) CreateTx(tx *gorm.DB, a *model.AvisoPendiente) error {
	return tx.Create(a).Error
}

func (r *avisoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AvisoPendiente, error) {
	var a model.AvisoPendiente
	err := r.db.WithContext(ctx).
		Preload("Producto").Preload("Trabajador").
		First(&a, id).Error
	return &a, err
}

func (r *avisoRepo) ExistePendienteProducto(ctx context.Context, productoID uuid.UUID) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.AvisoPendiente{}).
		Where("producto_id = ? AND estado = 'pendiente'", productoID).
		Count(&total).Error
	return total > 0, err
}

func (r *avisoRepo) ExistePendienteProductoTx(tx *gorm.DB, productoID uuid.UUID) (bool, error) {
	var total int64
	err := tx.Model(&model.AvisoPendiente{}).
		Where("producto_id = ? AND estado = 'pendiente'", productoID).
		Count(&total).Error
	return total > 0, err
}

func (r *avisoRepo) CompletarPendienteProductoTx(tx *gorm.DB, productoID uuid.UUID) error {
	return tx.Model(&model.AvisoPendiente{}).
		Where("producto_id = ? AND estado = 'pendiente'", productoID).
		Update("estado", "completado").Error
}

func (r *avisoRepo) ListPendientes(ctx context.Context) ([]model.AvisoPendiente, error) {
	var avisos []model.AvisoPendiente
	err := r.db.WithContext(ctx).
		Preload("Producto").Preload("Trabajador").
		Where("estado = 'pendiente'").
		Order("prioridad DESC, fecha_limite ASC").
		Find(&avisos).Error
	return avisos, err
}

func (r *avisoRepo) ListPorTrabajador(ctx context.Context, trabajadorID uuid.UUID) ([]model.AvisoPendiente, error) {
	var avisos []model.AvisoPendiente
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Where("trabajador_id = ? AND estado = 'pendiente'", trabajadorID).
		Order("fecha_limite ASC").
		Find(&avisos).Error
	return avisos, err
}

func (r *avisoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.AvisoPendiente{}).
		Where("id = ?", id).Update("estado", estado).Error
}

func (r *avisoRepo) MarcarNotificado(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.AvisoPendiente{}).
		Where("id = ?", id).Update("notificado", true).Error
}

func (r *avisoRepo) DB() *gorm.DB { return r.db }
