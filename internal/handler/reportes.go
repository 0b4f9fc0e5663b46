package handler

import (
	"errors"
	"net/http"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/apierror"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Gastos godoc
// @Summary      Reporte de gastos
// @Description  Totales, desglose por trabajador y por producto del rango pedido (por defecto el mes en curso).
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        fecha_inicio query string false "YYYY-MM-DD"
// @Param        fecha_fin    query string false "YYYY-MM-DD"
// @Success      200 {object} dto.ReporteGastosResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/gastos [get]
func (h *ReportesHandler) Gastos(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ReporteGastos(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrRangoInvalido) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarPDF renders the expense report and streams the file back.
func (h *ReportesHandler) ExportarPDF(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	path, err := h.svc.ExportarPDF(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrRangoInvalido) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el PDF"))
		return
	}
	c.FileAttachment(path, "reporte_gastos.pdf")
}
