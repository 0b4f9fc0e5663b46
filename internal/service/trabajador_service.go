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

var (
	ErrTrabajadorNoEncontrado = errors.New("trabajador no encontrado")
	ErrEmailDuplicado         = errors.New("ya existe un trabajador activo con ese email")
	ErrOrdenDuplicado         = errors.New("el orden de rotación ya está asignado a otro trabajador activo")
	ErrReordenInvalido        = errors.New("la reordenación debe cubrir a cada trabajador activo exactamente una vez, con órdenes únicos")
)

// TrabajadorService manages rotation members. Deactivating a worker keeps
// the rows; the rotation simply skips the gap in orden.
type TrabajadorService interface {
	Crear(ctx context.Context, req dto.CrearTrabajadorRequest) (*dto.TrabajadorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.TrabajadorResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.TrabajadorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTrabajadorRequest) (*dto.TrabajadorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Reordenar reassigns the whole cycle atomically.
	Reordenar(ctx context.Context, req dto.ReordenarRotacionRequest) error
	Estadisticas(ctx context.Context, id uuid.UUID) (*dto.EstadisticasTrabajadorResponse, error)
}

type trabajadorService struct {
	trabajadores repository.TrabajadorRepository
	compras      repository.CompraRepository
}

func NewTrabajadorService(trabajadores repository.TrabajadorRepository, compras repository.CompraRepository) TrabajadorService {
	return &trabajadorService{trabajadores: trabajadores, compras: compras}
}

func (s *trabajadorService) Crear(ctx context.Context, req dto.CrearTrabajadorRequest) (*dto.TrabajadorResponse, error) {
	if req.Email != nil && *req.Email != "" {
		_, err := s.trabajadores.FindActivoByEmail(ctx, *req.Email)
		switch {
		case err == nil:
			return nil, ErrEmailDuplicado
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	orden, err := s.resolverOrden(ctx, req.OrdenRotacion, uuid.Nil)
	if err != nil {
		return nil, err
	}

	t := &model.Trabajador{
		Nombre:        req.Nombre,
		Email:         req.Email,
		OrdenRotacion: orden,
		Activo:        true,
	}
	if err := s.trabajadores.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTrabajadorResponse(t), nil
}

// resolverOrden validates a requested slot against the active cycle, or
// assigns the next free one (max+1) when none was requested. excluir
// skips the worker being updated in the uniqueness check.
func (s *trabajadorService) resolverOrden(ctx context.Context, pedido *int, excluir uuid.UUID) (int, error) {
	if pedido == nil {
		max, err := s.trabajadores.MaxOrdenRotacion(ctx)
		if err != nil {
			return 0, err
		}
		return max + 1, nil
	}

	activos, err := s.trabajadores.ListActivos(ctx)
	if err != nil {
		return 0, err
	}
	for _, t := range activos {
		if t.ID != excluir && t.OrdenRotacion == *pedido {
			return 0, ErrOrdenDuplicado
		}
	}
	return *pedido, nil
}

func (s *trabajadorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.TrabajadorResponse, error) {
	t, err := s.trabajadores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrabajadorNoEncontrado
		}
		return nil, err
	}
	return toTrabajadorResponse(t), nil
}

func (s *trabajadorService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.TrabajadorResponse, error) {
	trabajadores, err := s.trabajadores.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TrabajadorResponse, 0, len(trabajadores))
	for i := range trabajadores {
		out = append(out, *toTrabajadorResponse(&trabajadores[i]))
	}
	return out, nil
}

func (s *trabajadorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTrabajadorRequest) (*dto.TrabajadorResponse, error) {
	t, err := s.trabajadores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrabajadorNoEncontrado
		}
		return nil, err
	}

	if req.Nombre != nil {
		t.Nombre = *req.Nombre
	}
	if req.Email != nil {
		if *req.Email != "" {
			existente, err := s.trabajadores.FindActivoByEmail(ctx, *req.Email)
			switch {
			case err == nil && existente.ID != t.ID:
				return nil, ErrEmailDuplicado
			case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
				return nil, err
			}
		}
		t.Email = req.Email
	}
	if req.OrdenRotacion != nil {
		orden, err := s.resolverOrden(ctx, req.OrdenRotacion, t.ID)
		if err != nil {
			return nil, err
		}
		t.OrdenRotacion = orden
	}

	if err := s.trabajadores.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTrabajadorResponse(t), nil
}

func (s *trabajadorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.trabajadores.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrabajadorNoEncontrado
		}
		return err
	}
	return s.trabajadores.SoftDelete(ctx, id)
}

func (s *trabajadorService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.trabajadores.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrabajadorNoEncontrado
		}
		return err
	}
	return s.trabajadores.Reactivar(ctx, id)
}

func (s *trabajadorService) Reordenar(ctx context.Context, req dto.ReordenarRotacionRequest) error {
	activos, err := s.trabajadores.ListActivos(ctx)
	if err != nil {
		return err
	}
	if len(req.Orden) != len(activos) {
		return ErrReordenInvalido
	}

	activosPorID := make(map[uuid.UUID]bool, len(activos))
	for _, t := range activos {
		activosPorID[t.ID] = true
	}

	nuevos := make(map[uuid.UUID]int, len(req.Orden))
	ordenes := make(map[int]bool, len(req.Orden))
	for _, item := range req.Orden {
		id, err := uuid.Parse(item.TrabajadorID)
		if err != nil || !activosPorID[id] {
			return ErrReordenInvalido
		}
		if _, visto := nuevos[id]; visto || ordenes[item.OrdenRotacion] {
			return ErrReordenInvalido
		}
		nuevos[id] = item.OrdenRotacion
		ordenes[item.OrdenRotacion] = true
	}

	// Two passes: the unique index on (orden_rotacion) among activos is
	// checked per statement, so swaps go through a disjoint range first.
	const desplazamiento = 100000
	return runTx(ctx, s.trabajadores.DB(), func(tx *gorm.DB) error {
		for id, orden := range nuevos {
			if err := s.trabajadores.UpdateOrdenTx(tx, id, orden+desplazamiento); err != nil {
				return err
			}
		}
		for id, orden := range nuevos {
			if err := s.trabajadores.UpdateOrdenTx(tx, id, orden); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *trabajadorService) Estadisticas(ctx context.Context, id uuid.UUID) (*dto.EstadisticasTrabajadorResponse, error) {
	t, err := s.trabajadores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrabajadorNoEncontrado
		}
		return nil, err
	}
	est, err := s.compras.EstadisticasTrabajador(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.EstadisticasTrabajadorResponse{
		TrabajadorID:   t.ID.String(),
		Nombre:         t.Nombre,
		TotalCompras:   est.TotalCompras,
		TotalGastado:   est.TotalGastado,
		PrecioPromedio: est.PrecioPromedio,
		PrimeraCompra:  fechaPtr(est.PrimeraCompra),
		UltimaCompra:   fechaPtr(est.UltimaCompra),
	}, nil
}
