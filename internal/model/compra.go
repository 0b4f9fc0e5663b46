package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra records one product purchased by one worker on one date.
// Rows are immutable once created: the most recent Compra per product is
// the baseline for that product's due-date computation, and the most
// recent Compra per worker drives the derived rotation state.
type Compra struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	TrabajadorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	FechaCompra  time.Time  `gorm:"type:date;not null;index"`
	PrecioReal   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	LugarCompra  *string
	Notas        *string
	CreatedAt    time.Time

	Producto   *Producto   `gorm:"foreignKey:ProductoID"`
	Trabajador *Trabajador `gorm:"foreignKey:TrabajadorID"`
}

func (Compra) TableName() string { return "compras" }
