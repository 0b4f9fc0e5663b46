package service

import (
	"context"
	"errors"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/infra"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/repository"
)

var ErrRangoInvalido = errors.New("rango de fechas inválido")

// ReporteService builds expense reports over a date range. An empty
// range defaults to the current calendar month.
type ReporteService interface {
	ReporteGastos(ctx context.Context, filter dto.ReporteFilter) (*dto.ReporteGastosResponse, error)
	// ExportarPDF renders the report to disk and returns the file path.
	ExportarPDF(ctx context.Context, filter dto.ReporteFilter) (string, error)
}

type reporteService struct {
	reportes    repository.ReporteRepository
	storagePath string
	reloj       func() time.Time
}

func NewReporteService(reportes repository.ReporteRepository, storagePath string, reloj func() time.Time) ReporteService {
	if reloj == nil {
		reloj = time.Now
	}
	return &reporteService{reportes: reportes, storagePath: storagePath, reloj: reloj}
}

func (s *reporteService) rango(filter dto.ReporteFilter) (time.Time, time.Time, error) {
	now := s.reloj().UTC()
	inicio := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if filter.FechaInicio != "" {
		if inicio, err = time.ParseInLocation(fechaLayout, filter.FechaInicio, time.UTC); err != nil {
			return time.Time{}, time.Time{}, ErrRangoInvalido
		}
	}
	if filter.FechaFin != "" {
		if fin, err = time.ParseInLocation(fechaLayout, filter.FechaFin, time.UTC); err != nil {
			return time.Time{}, time.Time{}, ErrRangoInvalido
		}
	}
	if fin.Before(inicio) {
		return time.Time{}, time.Time{}, ErrRangoInvalido
	}
	return inicio, fin, nil
}

func (s *reporteService) ReporteGastos(ctx context.Context, filter dto.ReporteFilter) (*dto.ReporteGastosResponse, error) {
	inicio, fin, err := s.rango(filter)
	if err != nil {
		return nil, err
	}

	resumen, err := s.reportes.ResumenGastos(ctx, inicio, fin)
	if err != nil {
		return nil, err
	}
	porTrabajador, err := s.reportes.GastosPorTrabajador(ctx, inicio, fin)
	if err != nil {
		return nil, err
	}
	porProducto, err := s.reportes.GastosPorProducto(ctx, inicio, fin)
	if err != nil {
		return nil, err
	}

	rep := &dto.ReporteGastosResponse{
		FechaInicio: fechaStr(inicio),
		FechaFin:    fechaStr(fin),
		Resumen: dto.ResumenGastos{
			TotalCompras:        resumen.TotalCompras,
			GastoTotal:          resumen.GastoTotal,
			GastoPromedio:       resumen.GastoPromedio,
			TrabajadoresActivos: resumen.TrabajadoresActivos,
			ProductosComprados:  resumen.ProductosComprados,
		},
		PorTrabajador: make([]dto.GastoTrabajador, 0, len(porTrabajador)),
		PorProducto:   make([]dto.GastoProducto, 0, len(porProducto)),
	}

	for _, row := range porTrabajador {
		rep.PorTrabajador = append(rep.PorTrabajador, dto.GastoTrabajador{
			TrabajadorID:   row.TrabajadorID.String(),
			Nombre:         row.Nombre,
			Email:          row.Email,
			TotalCompras:   row.TotalCompras,
			TotalGastado:   row.TotalGastado,
			PromedioCompra: row.PrecioPromedio,
			PrimeraCompra:  fechaPtr(row.PrimeraCompra),
			UltimaCompra:   fechaPtr(row.UltimaCompra),
		})
	}
	for _, row := range porProducto {
		rep.PorProducto = append(rep.PorProducto, dto.GastoProducto{
			ProductoID:   row.ProductoID.String(),
			Nombre:       row.Nombre,
			TotalCompras: row.TotalCompras,
			TotalGastado: row.TotalGastado,
		})
	}
	return rep, nil
}

func (s *reporteService) ExportarPDF(ctx context.Context, filter dto.ReporteFilter) (string, error) {
	rep, err := s.ReporteGastos(ctx, filter)
	if err != nil {
		return "", err
	}
	return infra.GenerateReporteGastosPDF(rep, s.storagePath)
}
