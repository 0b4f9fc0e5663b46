package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/apierror"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/middleware"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxTicketSize caps receipt uploads at 5 MB.
const maxTicketSize = 5 << 20

// Only scans and photos of receipts are accepted.
var tiposPermitidos = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

type TicketsHandler struct{ svc service.TicketService }

func NewTicketsHandler(svc service.TicketService) *TicketsHandler {
	return &TicketsHandler{svc: svc}
}

// Subir godoc
// @Summary      Subir ticket de compra
// @Description  Adjunta el comprobante (jpeg, png o pdf, máx. 5MB) a una compra. Multipart: campo "archivo" + campo opcional "notas".
// @Tags         tickets
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la compra"
// @Success      201 {object} dto.SubirTicketResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/compras/{id}/tickets [post]
func (h *TicketsHandler) Subir(c *gin.Context) {
	compraID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}

	claims := middleware.GetClaims(c)
	if claims.TrabajadorID == nil {
		c.JSON(http.StatusBadRequest, apierror.New("El usuario no está vinculado a ningún trabajador"))
		return
	}
	subidoPor, err := uuid.Parse(*claims.TrabajadorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Trabajador invalido"))
		return
	}

	fh, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo (campo 'archivo')"))
		return
	}
	if fh.Size > maxTicketSize {
		c.JSON(http.StatusBadRequest, apierror.New("El archivo supera el máximo de 5MB"))
		return
	}
	tipo := fh.Header.Get("Content-Type")
	if !tiposPermitidos[tipo] {
		c.JSON(http.StatusBadRequest, apierror.New(fmt.Sprintf("Tipo de archivo no permitido: %s", tipo)))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.Error(err)
		return
	}
	defer f.Close()

	var notas *string
	if n := c.PostForm("notas"); n != "" {
		notas = &n
	}

	resp, err := h.svc.Subir(c.Request.Context(), compraID, subidoPor, fh.Filename, tipo, fh.Size, f, notas)
	if err != nil {
		if errors.Is(err, service.ErrCompraNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TicketsHandler) ListarPorCompra(c *gin.Context) {
	compraID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarPorCompra(c.Request.Context(), compraID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar tickets"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Descargar streams the stored receipt back with its original filename.
func (h *TicketsHandler) Descargar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	t, f, err := h.svc.Abrir(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTicketNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", t.NombreArchivo))
	c.Header("Content-Type", t.TipoArchivo)
	http.ServeContent(c.Writer, c.Request, t.NombreArchivo, t.CreatedAt, f)
}

func (h *TicketsHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTicketNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
