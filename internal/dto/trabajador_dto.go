package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CrearTrabajadorRequest struct {
	Nombre string  `json:"nombre" validate:"required,min=2,max=120"`
	Email  *string `json:"email"  validate:"omitempty,email"`
	// OrdenRotacion is optional: when omitted the next free slot
	// (max orden + 1) is assigned.
	OrdenRotacion *int `json:"orden_rotacion" validate:"omitempty,min=1"`
}

type ActualizarTrabajadorRequest struct {
	Nombre        *string `json:"nombre"         validate:"omitempty,min=2,max=120"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	OrdenRotacion *int    `json:"orden_rotacion" validate:"omitempty,min=1"`
}

// ReordenarRotacionRequest maps each worker to its new rotation slot.
// Every active worker must appear exactly once.
type ReordenarRotacionRequest struct {
	Orden []ReordenarItem `json:"orden" validate:"required,min=1,dive"`
}

type ReordenarItem struct {
	TrabajadorID  string `json:"trabajador_id"  validate:"required,uuid"`
	OrdenRotacion int    `json:"orden_rotacion" validate:"required,min=1"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type TrabajadorResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	Email         *string `json:"email"`
	OrdenRotacion int     `json:"orden_rotacion"`
	Activo        bool    `json:"activo"`
}

type EstadisticasTrabajadorResponse struct {
	TrabajadorID   string          `json:"trabajador_id"`
	Nombre         string          `json:"nombre"`
	TotalCompras   int64           `json:"total_compras"`
	TotalGastado   decimal.Decimal `json:"total_gastado"`
	PrecioPromedio decimal.Decimal `json:"precio_promedio"`
	PrimeraCompra  *string         `json:"primera_compra"`
	UltimaCompra   *string         `json:"ultima_compra"`
}
