package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// RegistrarCompraRequest is a batch purchase: several products bought by
// one worker in one outing. The whole batch commits or rolls back as one.
type RegistrarCompraRequest struct {
	Productos   []ItemCompraRequest `json:"productos"    validate:"required,min=1,dive"`
	FechaCompra string              `json:"fecha_compra" validate:"required,datetime=2006-01-02"`
	LugarCompra *string             `json:"lugar_compra"`
	Notas       *string             `json:"notas"`
}

type ItemCompraRequest struct {
	ProductoID string           `json:"producto_id" validate:"required,uuid"`
	PrecioReal *decimal.Decimal `json:"precio_real" validate:"omitempty"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type CompraFilter struct {
	TrabajadorID string `form:"trabajador_id"`
	ProductoID   string `form:"producto_id"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type RegistrarCompraResponse struct {
	ComprasRegistradas  []string            `json:"compras_registradas"`
	TotalProductos      int                 `json:"total_productos"`
	SiguienteTrabajador *TrabajadorResponse `json:"siguiente_trabajador"`
	Mensaje             string              `json:"mensaje"`
}

type CompraResponse struct {
	ID          string           `json:"id"`
	Producto    string           `json:"producto"`
	Trabajador  string           `json:"trabajador"`
	FechaCompra string           `json:"fecha_compra"`
	PrecioReal  *decimal.Decimal `json:"precio_real"`
	LugarCompra *string          `json:"lugar_compra"`
	Notas       *string          `json:"notas"`
	CreatedAt   string           `json:"created_at"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
