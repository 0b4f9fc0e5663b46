package repository

import (
	"context"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, t *model.TicketCompra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TicketCompra, error)
	ListByCompra(ctx context.Context, compraID uuid.UUID) ([]model.TicketCompra, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) Create(ctx context.Context, t *model.TicketCompra) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ticketRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TicketCompra, error) {
	var t model.TicketCompra
	err := r.db.WithContext(ctx).
		Where("activo = true").
		First(&t, id).Error
	return &t, err
}

func (r *ticketRepo) ListByCompra(ctx context.Context, compraID uuid.UUID) ([]model.TicketCompra, error) {
	var tickets []model.TicketCompra
	err := r.db.WithContext(ctx).
		Preload("Trabajador").
		Where("compra_id = ? AND activo = true", compraID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.TicketCompra{}).
		Where("id = ?", id).Update("activo", false).Error
}
