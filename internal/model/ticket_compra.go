package model

import (
	"time"

	"github.com/google/uuid"
)

// TicketCompra is a receipt file attached to a purchase. A purchase may
// have zero, one, or many tickets. Activo=false is a logical delete that
// keeps the audit trail (the file stays on disk).
type TicketCompra struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID      uuid.UUID `gorm:"type:uuid;not null;index"`
	SubidoPor     uuid.UUID `gorm:"type:uuid;not null"`
	NombreArchivo string    `gorm:"not null"`
	RutaArchivo   string    `gorm:"not null"`
	TipoArchivo   string    `gorm:"type:varchar(60);not null"`
	TamanoArchivo int64     `gorm:"not null"`
	Notas         *string
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time

	Compra     *Compra     `gorm:"foreignKey:CompraID"`
	Trabajador *Trabajador `gorm:"foreignKey:SubidoPor"`
}

func (TicketCompra) TableName() string { return "tickets_compras" }
