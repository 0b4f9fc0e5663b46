package handler

import (
	"errors"
	"net/http"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/apierror"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/middleware"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvisosHandler struct{ svc service.AvisoService }

func NewAvisosHandler(svc service.AvisoService) *AvisosHandler { return &AvisosHandler{svc: svc} }

func (h *AvisosHandler) ListarPendientes(c *gin.Context) {
	resp, err := h.svc.ListarPendientes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar avisos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MisAvisos lists the authenticated worker's open assignments.
func (h *AvisosHandler) MisAvisos(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims.TrabajadorID == nil {
		c.JSON(http.StatusOK, []dto.AvisoResponse{})
		return
	}
	trabajadorID, err := uuid.Parse(*claims.TrabajadorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Trabajador invalido"))
		return
	}
	resp, err := h.svc.ListarPorTrabajador(c.Request.Context(), trabajadorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar avisos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AvisosHandler) ActualizarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarAvisoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarEstado(c.Request.Context(), id, req.Estado); err != nil {
		if errors.Is(err, service.ErrAvisoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Sweep godoc
// @Summary      Ejecutar el barrido de avisos
// @Description  Corre una pasada del chequeo periódico manualmente. Idempotente: productos con aviso abierto se omiten. Sólo administradores.
// @Tags         avisos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.AvisoGeneradoResponse
// @Router       /v1/avisos/sweep [post]
func (h *AvisosHandler) Sweep(c *gin.Context) {
	generados, err := h.svc.Sweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al ejecutar el barrido"))
		return
	}
	c.JSON(http.StatusOK, generados)
}
