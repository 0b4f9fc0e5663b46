package repository

import (
	"context"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrabajadorRepository defines the data access contract for rotation members.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type TrabajadorRepository interface {
	Create(ctx context.Context, t *model.Trabajador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Trabajador, error)
	FindActivoByEmail(ctx context.Context, email string) (*model.Trabajador, error)
	ListActivos(ctx context.Context) ([]model.Trabajador, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Trabajador, error)
	MaxOrdenRotacion(ctx context.Context) (int, error)
	Update(ctx context.Context, t *model.Trabajador) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// UpdateOrdenTx reassigns one worker's rotation slot inside a transaction;
	// reordering the whole cycle must be all-or-nothing.
	UpdateOrdenTx(tx *gorm.DB, id uuid.UUID, orden int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type trabajadorRepo struct{ db *gorm.DB }

func NewTrabajadorRepository(db *gorm.DB) TrabajadorRepository { return &trabajadorRepo{db: db} }

func (r *trabajadorRepo) Create(ctx context.Context, t *model.Trabajador) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *trabajadorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Trabajador, error) {
	var t model.Trabajador
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *trabajadorRepo) FindActivoByEmail(ctx context.Context, email string) (*model.Trabajador, error) {
	var t model.Trabajador
	err := r.db.WithContext(ctx).Where("email = ? AND activo = true", email).First(&t).Error
	return &t, err
}

func (r *trabajadorRepo) ListActivos(ctx context.Context) ([]model.Trabajador, error) {
	var trabajadores []model.Trabajador
	err := r.db.WithContext(ctx).
		Where("activo = true").
		Order("orden_rotacion ASC").
		Find(&trabajadores).Error
	return trabajadores, err
}

func (r *trabajadorRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Trabajador, error) {
	q := r.db.WithContext(ctx).Order("orden_rotacion ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var trabajadores []model.Trabajador
	err := q.Find(&trabajadores).Error
	return trabajadores, err
}

func (r *trabajadorRepo) MaxOrdenRotacion(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(orden_rotacion), 0) FROM trabajadores").
		Scan(&max).Error
	return max, err
}

func (r *trabajadorRepo) Update(ctx context.Context, t *model.Trabajador) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *trabajadorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Trabajador{}).
		Where("id = ?", id).Update("activo", false).Error
}

func (r *trabajadorRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Trabajador{}).
		Where("id = ?", id).Update("activo", true).Error
}

func (r *trabajadorRepo) UpdateOrdenTx(tx *gorm.DB, id uuid.UUID, orden int) error {
	return tx.Model(&model.Trabajador{}).
		Where("id = ?", id).Update("orden_rotacion", orden).Error
}

func (r *trabajadorRepo) DB() *gorm.DB { return r.db }
