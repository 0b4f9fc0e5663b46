package dto

import "github.com/shopspring/decimal"

// ProductoPendienteResponse is one product due for repurchase, as shown to
// the current purchaser.
type ProductoPendienteResponse struct {
	ProductoID     string          `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	Descripcion    *string         `json:"descripcion"`
	PrecioEstimado decimal.Decimal `json:"precio_estimado"`
	UltimaCompra   *string         `json:"ultima_compra"`
	FechaFin       *string         `json:"fecha_estimada_fin"`
	FechaAviso     *string         `json:"fecha_aviso"`
	DiasRestantes  int             `json:"dias_restantes"`
	Prioridad      string          `json:"prioridad"`
}

// ProductosPendientesResponse buckets due products by urgency.
type ProductosPendientesResponse struct {
	Urgentes []ProductoPendienteResponse `json:"urgentes"`
	Normales []ProductoPendienteResponse `json:"normales"`
}

// EstadoRotacionResponse reports who bought last and whose turn is next.
type EstadoRotacionResponse struct {
	UltimoComprador  *TrabajadorResponse `json:"ultimo_comprador"`
	ProximoComprador *TrabajadorResponse `json:"proximo_comprador"`
	Estado           string              `json:"estado"`
}

// ResumenRotacionItem is one row of the per-worker rotation summary.
type ResumenRotacionItem struct {
	TrabajadorID  string          `json:"trabajador_id"`
	Nombre        string          `json:"nombre"`
	OrdenRotacion int             `json:"orden_rotacion"`
	TotalCompras  int64           `json:"total_compras"`
	TotalGastado  decimal.Decimal `json:"total_gastado"`
	UltimaCompra  *string         `json:"ultima_compra"`
}

// HistorialRotacionItem is one purchase in the recent rotation history.
type HistorialRotacionItem struct {
	FechaCompra   string           `json:"fecha_compra"`
	Trabajador    string           `json:"trabajador"`
	OrdenRotacion int              `json:"orden_rotacion"`
	Producto      string           `json:"producto"`
	PrecioReal    *decimal.Decimal `json:"precio_real"`
	LugarCompra   *string          `json:"lugar_compra"`
}
