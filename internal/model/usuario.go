package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Rol: "trabajador" | "administrador"
// TrabajadorID links the login to a rotation member; nil for pure-admin
// accounts that do not participate in the rotation.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string     `gorm:"not null"`
	Rol          string     `gorm:"type:varchar(20);not null"`
	TrabajadorID *uuid.UUID `gorm:"type:uuid;index"`
	UltimoLogin  *time.Time
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Trabajador *Trabajador `gorm:"foreignKey:TrabajadorID"`
}
