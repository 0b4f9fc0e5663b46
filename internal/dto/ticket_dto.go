package dto

// TicketResponse describes an uploaded receipt.
type TicketResponse struct {
	ID            string  `json:"id"`
	CompraID      string  `json:"compra_id"`
	SubidoPor     string  `json:"subido_por"`
	Trabajador    string  `json:"trabajador"`
	NombreArchivo string  `json:"nombre_archivo"`
	TipoArchivo   string  `json:"tipo_archivo"`
	TamanoArchivo int64   `json:"tamano_archivo"`
	Notas         *string `json:"notas"`
	CreatedAt     string  `json:"created_at"`
}

type SubirTicketResponse struct {
	TicketID      string `json:"ticket_id"`
	NombreArchivo string `json:"nombre_archivo"`
	Mensaje       string `json:"mensaje"`
}
