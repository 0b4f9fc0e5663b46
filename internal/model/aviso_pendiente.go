package model

import (
	"time"

	"github.com/google/uuid"
)

// AvisoPendiente is an open task directing a worker to purchase a product
// by a deadline. At most one aviso with estado='pendiente' may exist per
// product at a time (checked before every insert).
// Estado: "pendiente" | "en_progreso" | "completado" | "cancelado"
// TipoAsignacion: "rotacion" (created on purchase) | "periodo_vencido" (sweep)
type AvisoPendiente struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TrabajadorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaLimite    time.Time `gorm:"type:date;not null"`
	Estado         string    `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Prioridad      string    `gorm:"type:varchar(10);not null;default:'normal'"`
	TipoAsignacion string    `gorm:"type:varchar(20);not null;default:'rotacion'"`
	Motivo         *string
	Notificado     bool `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Producto   *Producto   `gorm:"foreignKey:ProductoID"`
	Trabajador *Trabajador `gorm:"foreignKey:TrabajadorID"`
}

func (AvisoPendiente) TableName() string { return "avisos_pendientes" }
