package repository

import (
	"context"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResetTokenRepository interface {
	Create(ctx context.Context, t *model.ResetToken) error
	// FindVigente returns the token only if it is unused and unexpired.
	FindVigente(ctx context.Context, token string, now time.Time) (*model.ResetToken, error)
	MarcarUsado(ctx context.Context, id uuid.UUID) error
	// InvalidarPorUsuario burns any outstanding tokens before issuing a new
	// one, so only the latest reset link works.
	InvalidarPorUsuario(ctx context.Context, usuarioID uuid.UUID) error
}

type resetTokenRepo struct{ db *gorm.DB }

func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository { return &resetTokenRepo{db: db} }

func (r *resetTokenRepo) Create(ctx context.Context, t *model.ResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *resetTokenRepo) FindVigente(ctx context.Context, token string, now time.Time) (*model.ResetToken, error) {
	var t model.ResetToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND usado = false AND expira_en > ?", token, now).
		First(&t).Error
	return &t, err
}

func (r *resetTokenRepo) MarcarUsado(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ResetToken{}).
		Where("id = ?", id).Update("usado", true).Error
}

func (r *resetTokenRepo) InvalidarPorUsuario(ctx context.Context, usuarioID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ResetToken{}).
		Where("usuario_id = ? AND usado = false", usuarioID).
		Update("usado", true).Error
}
