package model

import (
	"time"

	"github.com/google/uuid"
)

// ResetToken is a single-use, time-boxed credential for the password
// reset flow. Usado flips to true on consumption; expired or used tokens
// are rejected.
type ResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiraEn  time.Time `gorm:"not null"`
	Usado     bool      `gorm:"not null;default:false"`
	CreatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}
