package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre         string          `json:"nombre"          validate:"required,min=2,max=120"`
	Descripcion    *string         `json:"descripcion"`
	PrecioEstimado decimal.Decimal `json:"precio_estimado" validate:"min=0"`
	DiasDuracion   int             `json:"dias_duracion"   validate:"min=0"`
	DiasAviso      int             `json:"dias_aviso"      validate:"min=0"`
	PeriodoAviso   int             `json:"periodo_aviso"   validate:"min=0"`
	UnidadPeriodo  string          `json:"unidad_periodo"  validate:"omitempty,oneof=dias semanas meses"`
}

type ActualizarProductoRequest struct {
	Nombre         *string          `json:"nombre"          validate:"omitempty,min=2,max=120"`
	Descripcion    *string          `json:"descripcion"`
	PrecioEstimado *decimal.Decimal `json:"precio_estimado"`
	DiasDuracion   *int             `json:"dias_duracion"   validate:"omitempty,min=0"`
	DiasAviso      *int             `json:"dias_aviso"      validate:"omitempty,min=0"`
	PeriodoAviso   *int             `json:"periodo_aviso"   validate:"omitempty,min=0"`
	UnidadPeriodo  *string          `json:"unidad_periodo"  validate:"omitempty,oneof=dias semanas meses"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre string `form:"nombre"`
	// Activo: "false" = inactivos, "all" = todos, default activos
	Activo string `form:"activo"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Descripcion    *string         `json:"descripcion"`
	PrecioEstimado decimal.Decimal `json:"precio_estimado"`
	DiasDuracion   int             `json:"dias_duracion"`
	DiasAviso      int             `json:"dias_aviso"`
	PeriodoAviso   int             `json:"periodo_aviso"`
	UnidadPeriodo  string          `json:"unidad_periodo"`
	Activo         bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
