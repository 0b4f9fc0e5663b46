package handler

import (
	"errors"
	"net/http"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/apierror"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrabajadoresHandler struct{ svc service.TrabajadorService }

func NewTrabajadoresHandler(svc service.TrabajadorService) *TrabajadoresHandler {
	return &TrabajadoresHandler{svc: svc}
}

// Crear godoc
// @Summary      Alta de trabajador
// @Description  Crea un trabajador y lo incorpora a la rotación; sin orden explícito se asigna el siguiente libre.
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearTrabajadorRequest true "Datos del trabajador"
// @Success      201  {object} dto.TrabajadorResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/trabajadores [post]
func (h *TrabajadoresHandler) Crear(c *gin.Context) {
	var req dto.CrearTrabajadorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TrabajadoresHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar trabajadores"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TrabajadoresHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Trabajador no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TrabajadoresHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarTrabajadorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrTrabajadorNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar deactivates a worker. History stays; the rotation skips the gap.
func (h *TrabajadoresHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTrabajadorNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrabajadoresHandler) Reactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTrabajadorNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Reordenar godoc
// @Summary      Reordenar la rotación
// @Description  Reasigna el orden de todos los trabajadores activos en una sola transacción.
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ReordenarRotacionRequest true "Nuevo orden completo"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/trabajadores/reordenar [put]
func (h *TrabajadoresHandler) Reordenar(c *gin.Context) {
	var req dto.ReordenarRotacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Reordenar(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrabajadoresHandler) Estadisticas(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Estadisticas(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTrabajadorNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadisticas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
