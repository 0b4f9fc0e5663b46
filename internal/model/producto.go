package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a shared office supply tracked by the rotation.
// DiasDuracion is the expected consumption lifespan in days; DiasAviso is
// how many days before depletion the product should be flagged.
// PeriodoAviso + UnidadPeriodo drive the periodic sweep (0 = sweep ignores it).
type Producto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"index;not null"`
	Descripcion    *string
	PrecioEstimado decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DiasDuracion   int             `gorm:"not null;default:0"`
	DiasAviso      int             `gorm:"not null;default:0"`
	PeriodoAviso   int             `gorm:"not null;default:0"`
	// UnidadPeriodo: "dias" | "semanas" | "meses"
	UnidadPeriodo string `gorm:"type:varchar(10);not null;default:'dias'"`
	Activo        bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
