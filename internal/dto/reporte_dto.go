package dto

import "github.com/shopspring/decimal"

// ReporteFilter selects the reporting window. Empty dates default to the
// current calendar month.
type ReporteFilter struct {
	FechaInicio string `form:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin"    validate:"omitempty,datetime=2006-01-02"`
}

type ResumenGastos struct {
	TotalCompras        int64           `json:"total_compras"`
	GastoTotal          decimal.Decimal `json:"gasto_total"`
	GastoPromedio       decimal.Decimal `json:"gasto_promedio"`
	TrabajadoresActivos int64           `json:"trabajadores_activos"`
	ProductosComprados  int64           `json:"productos_comprados"`
}

type GastoTrabajador struct {
	TrabajadorID   string          `json:"trabajador_id"`
	Nombre         string          `json:"nombre"`
	Email          *string         `json:"email"`
	TotalCompras   int64           `json:"total_compras"`
	TotalGastado   decimal.Decimal `json:"total_gastado"`
	PromedioCompra decimal.Decimal `json:"promedio_por_compra"`
	PrimeraCompra  *string         `json:"primera_compra"`
	UltimaCompra   *string         `json:"ultima_compra"`
}

type GastoProducto struct {
	ProductoID   string          `json:"producto_id"`
	Nombre       string          `json:"nombre"`
	TotalCompras int64           `json:"total_compras"`
	TotalGastado decimal.Decimal `json:"total_gastado"`
}

type ReporteGastosResponse struct {
	FechaInicio   string            `json:"fecha_inicio"`
	FechaFin      string            `json:"fecha_fin"`
	Resumen       ResumenGastos     `json:"resumen"`
	PorTrabajador []GastoTrabajador `json:"por_trabajador"`
	PorProducto   []GastoProducto   `json:"por_producto"`
}
