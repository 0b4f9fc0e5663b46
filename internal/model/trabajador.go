package model

import (
	"time"

	"github.com/google/uuid"
)

// Trabajador is a member of the purchase rotation.
// OrdenRotacion ranks active workers into the cycle; it is unique among
// active workers and auto-assigned (max+1) when not provided.
type Trabajador struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"not null"`
	// Email is optional; when present it must be unique among active workers.
	Email         *string
	OrdenRotacion int  `gorm:"not null;index"`
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default pluralization (trabajadors → trabajadores).
func (Trabajador) TableName() string { return "trabajadores" }
