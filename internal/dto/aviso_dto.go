package dto

// AvisoResponse is a pending purchase assignment as listed in the API.
type AvisoResponse struct {
	ID             string  `json:"id"`
	ProductoID     string  `json:"producto_id"`
	Producto       string  `json:"producto"`
	TrabajadorID   string  `json:"trabajador_id"`
	Trabajador     string  `json:"trabajador"`
	FechaLimite    string  `json:"fecha_limite"`
	Estado         string  `json:"estado"`
	Prioridad      string  `json:"prioridad"`
	TipoAsignacion string  `json:"tipo_asignacion"`
	Motivo         *string `json:"motivo"`
	DiasRestantes  int     `json:"dias_restantes"`
}

// AvisoGeneradoResponse is one assignment produced by a sweep run.
type AvisoGeneradoResponse struct {
	Producto   string `json:"producto"`
	Trabajador string `json:"trabajador"`
	Periodo    string `json:"periodo"`
}

type ActualizarAvisoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente en_progreso completado cancelado"`
}
