package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/apierror"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/middleware"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RotacionHandler struct{ svc service.RotacionService }

func NewRotacionHandler(svc service.RotacionService) *RotacionHandler {
	return &RotacionHandler{svc: svc}
}

// RegistrarCompra godoc
// @Summary      Registrar compra completa
// @Description  Registra en una sola transacción todos los productos comprados por el trabajador autenticado y abre el aviso del siguiente en la rotación.
// @Tags         rotacion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarCompraRequest true "Productos comprados"
// @Success      201  {object} dto.RegistrarCompraResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/compras [post]
func (h *RotacionHandler) RegistrarCompra(c *gin.Context) {
	var req dto.RegistrarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	if claims.TrabajadorID == nil {
		c.JSON(http.StatusBadRequest, apierror.New("El usuario no está vinculado a ningún trabajador de la rotación"))
		return
	}
	trabajadorID, err := uuid.Parse(*claims.TrabajadorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Trabajador invalido"))
		return
	}

	resp, err := h.svc.RegistrarCompraCompleta(c.Request.Context(), trabajadorID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrabajadorNoEncontrado),
			errors.Is(err, service.ErrProductoNoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrTrabajadorInactivo),
			errors.Is(err, service.ErrProductoInactivo),
			errors.Is(err, service.ErrFechaInvalida):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RotacionHandler) ListarCompras(c *gin.Context) {
	var filter dto.CompraFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarCompras(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar compras"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProximoComprador godoc
// @Summary      Próximo comprador
// @Description  Deriva del historial quién es el siguiente en comprar. Nunca se almacena: siempre se recalcula.
// @Tags         rotacion
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.TrabajadorResponse
// @Router       /v1/rotacion/proximo [get]
func (h *RotacionHandler) ProximoComprador(c *gin.Context) {
	resp, err := h.svc.ProximoComprador(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RotacionHandler) Estado(c *gin.Context) {
	resp, err := h.svc.EstadoRotacion(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RotacionHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.ResumenRotacion(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RotacionHandler) Historial(c *gin.Context) {
	limite, _ := strconv.Atoi(c.DefaultQuery("limite", "20"))
	resp, err := h.svc.HistorialRotacion(c.Request.Context(), limite)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el historial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProductosPendientes godoc
// @Summary      Productos para comprar
// @Description  Lista los productos vencidos según su cadencia, separados en urgentes y normales.
// @Tags         rotacion
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ProductosPendientesResponse
// @Router       /v1/rotacion/pendientes [get]
func (h *RotacionHandler) ProductosPendientes(c *gin.Context) {
	resp, err := h.svc.ProductosPendientes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular productos pendientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
