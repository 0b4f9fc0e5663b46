package service

import (
	"context"
	"errors"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductoNoEncontrado = errors.New("producto no encontrado")

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	productos repository.ProductoRepository
}

func NewProductoService(productos repository.ProductoRepository) ProductoService {
	return &productoService{productos: productos}
}

func toProductoResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:             p.ID.String(),
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		PrecioEstimado: p.PrecioEstimado,
		DiasDuracion:   p.DiasDuracion,
		DiasAviso:      p.DiasAviso,
		PeriodoAviso:   p.PeriodoAviso,
		UnidadPeriodo:  p.UnidadPeriodo,
		Activo:         p.Activo,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	unidad := req.UnidadPeriodo
	if unidad == "" {
		unidad = "dias"
	}
	p := &model.Producto{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		PrecioEstimado: req.PrecioEstimado,
		DiasDuracion:   req.DiasDuracion,
		DiasAviso:      req.DiasAviso,
		PeriodoAviso:   req.PeriodoAviso,
		UnidadPeriodo:  unidad,
		Activo:         true,
	}
	if err := s.productos.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	return toProductoResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	productos, total, err := s.productos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *toProductoResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.PrecioEstimado != nil {
		p.PrecioEstimado = *req.PrecioEstimado
	}
	if req.DiasDuracion != nil {
		p.DiasDuracion = *req.DiasDuracion
	}
	if req.DiasAviso != nil {
		p.DiasAviso = *req.DiasAviso
	}
	if req.PeriodoAviso != nil {
		p.PeriodoAviso = *req.PeriodoAviso
	}
	if req.UnidadPeriodo != nil {
		p.UnidadPeriodo = *req.UnidadPeriodo
	}

	if err := s.productos.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productos.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}
	return s.productos.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productos.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}
	return s.productos.Reactivar(ctx, id)
}
