package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/repository"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/rotacion"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrTrabajadorInactivo = errors.New("el trabajador no está activo en la rotación")
	ErrProductoInactivo   = errors.New("el producto no está activo")
	ErrFechaInvalida      = errors.New("fecha de compra inválida")
	ErrSinCompras         = errors.New("no hay compras registradas")
)

// RotacionService implements the purchase rotation: batch purchase
// recording, derived rotation state, and the due-product listing shown to
// whoever buys next.
type RotacionService interface {
	// RegistrarCompraCompleta records one shopping run — several products
	// bought by one worker on one date — atomically. Every purchased
	// product gets its open aviso closed and a fresh aviso opened for the
	// rotation successor; if any row fails, nothing is persisted.
	RegistrarCompraCompleta(ctx context.Context, trabajadorID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.RegistrarCompraResponse, error)

	// ProximoComprador derives whose turn it is from purchase history.
	ProximoComprador(ctx context.Context) (*dto.TrabajadorResponse, error)
	EstadoRotacion(ctx context.Context) (*dto.EstadoRotacionResponse, error)
	ResumenRotacion(ctx context.Context) ([]dto.ResumenRotacionItem, error)
	HistorialRotacion(ctx context.Context, limite int) ([]dto.HistorialRotacionItem, error)

	// ProductosPendientes lists products currently due, bucketed by urgency.
	ProductosPendientes(ctx context.Context) (*dto.ProductosPendientesResponse, error)
	ListarCompras(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error)
}

type rotacionService struct {
	compras      repository.CompraRepository
	trabajadores repository.TrabajadorRepository
	productos    repository.ProductoRepository
	avisos       repository.AvisoRepository
	reloj        func() time.Time
}

// NewRotacionService wires the rotation service. reloj may be nil, in
// which case time.Now is used; tests inject a fixed clock.
func NewRotacionService(
	compras repository.CompraRepository,
	trabajadores repository.TrabajadorRepository,
	productos repository.ProductoRepository,
	avisos repository.AvisoRepository,
	reloj func() time.Time,
) RotacionService {
	if reloj == nil {
		reloj = time.Now
	}
	return &rotacionService{
		compras:      compras,
		trabajadores: trabajadores,
		productos:    productos,
		avisos:       avisos,
		reloj:        reloj,
	}
}

func miembros(trabajadores []model.Trabajador) []rotacion.Miembro {
	ms := make([]rotacion.Miembro, 0, len(trabajadores))
	for _, t := range trabajadores {
		ms = append(ms, rotacion.Miembro{ID: t.ID, Nombre: t.Nombre, Orden: t.OrdenRotacion})
	}
	return ms
}

func toTrabajadorResponse(t *model.Trabajador) *dto.TrabajadorResponse {
	return &dto.TrabajadorResponse{
		ID:            t.ID.String(),
		Nombre:        t.Nombre,
		Email:         t.Email,
		OrdenRotacion: t.OrdenRotacion,
		Activo:        t.Activo,
	}
}

func (s *rotacionService) RegistrarCompraCompleta(ctx context.Context, trabajadorID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.RegistrarCompraResponse, error) {
	trabajador, err := s.trabajadores.FindByID(ctx, trabajadorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrabajadorNoEncontrado
		}
		return nil, err
	}
	if !trabajador.Activo {
		return nil, ErrTrabajadorInactivo
	}

	fecha, err := time.ParseInLocation(fechaLayout, req.FechaCompra, time.UTC)
	if err != nil {
		return nil, ErrFechaInvalida
	}
	now := s.reloj()
	if fecha.After(now) {
		log.Warn().
			Str("trabajador_id", trabajadorID.String()).
			Str("fecha_compra", req.FechaCompra).
			Msg("compra con fecha futura registrada")
	}

	activos, err := s.trabajadores.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	siguiente, err := rotacion.Siguiente(trabajador.OrdenRotacion, miembros(activos))
	if err != nil {
		return nil, err
	}

	// Resolve every product up front so validation failures never open a
	// transaction at all.
	productos := make([]*model.Producto, 0, len(req.Productos))
	for _, item := range req.Productos {
		productoID, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
		}
		p, err := s.productos.FindByID(ctx, productoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
			}
			return nil, err
		}
		if !p.Activo {
			return nil, fmt.Errorf("%w: %s", ErrProductoInactivo, p.Nombre)
		}
		productos = append(productos, p)
	}

	comprasIDs := make([]string, 0, len(productos))
	err = runTx(ctx, s.compras.DB(), func(tx *gorm.DB) error {
		for i, p := range productos {
			compra := &model.Compra{
				ProductoID:   p.ID,
				TrabajadorID: trabajador.ID,
				FechaCompra:  fecha,
				PrecioReal:   req.Productos[i].PrecioReal,
				LugarCompra:  req.LugarCompra,
				Notas:        req.Notas,
			}
			if err := s.compras.CreateTx(tx, compra); err != nil {
				return err
			}
			comprasIDs = append(comprasIDs, compra.ID.String())

			// This purchase satisfies any open aviso for the product.
			if err := s.avisos.CompletarPendienteProductoTx(tx, p.ID); err != nil {
				return err
			}

			// Open the successor's aviso, keeping at most one pendiente
			// per product.
			existe, err := s.avisos.ExistePendienteProductoTx(tx, p.ID)
			if err != nil {
				return err
			}
			if existe {
				continue
			}
			venc := rotacion.Calcular(
				rotacion.ConfigProducto{DiasDuracion: p.DiasDuracion, DiasAviso: p.DiasAviso},
				&fecha, now)
			motivo := fmt.Sprintf("Siguiente turno de rotación tras la compra de %s", trabajador.Nombre)
			aviso := &model.AvisoPendiente{
				ProductoID:     p.ID,
				TrabajadorID:   siguiente.ID,
				FechaLimite:    venc.FechaAviso,
				Estado:         "pendiente",
				Prioridad:      string(rotacion.PrioridadNormal),
				TipoAsignacion: "rotacion",
				Motivo:         &motivo,
			}
			if err := s.avisos.CreateTx(tx, aviso); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("trabajador", trabajador.Nombre).
		Int("productos", len(productos)).
		Str("siguiente", siguiente.Nombre).
		Msg("compra completa registrada")

	var siguienteResp *dto.TrabajadorResponse
	for i := range activos {
		if activos[i].ID == siguiente.ID {
			siguienteResp = toTrabajadorResponse(&activos[i])
			break
		}
	}

	return &dto.RegistrarCompraResponse{
		ComprasRegistradas:  comprasIDs,
		TotalProductos:      len(comprasIDs),
		SiguienteTrabajador: siguienteResp,
		Mensaje:             fmt.Sprintf("Compra registrada. El siguiente en comprar es %s.", siguiente.Nombre),
	}, nil
}

func (s *rotacionService) ProximoComprador(ctx context.Context) (*dto.TrabajadorResponse, error) {
	activos, err := s.trabajadores.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	ultimas, err := s.compras.UltimasComprasPorTrabajador(ctx)
	if err != nil {
		return nil, err
	}
	proximo, err := rotacion.ProximoComprador(miembros(activos), ultimas)
	if err != nil {
		return nil, err
	}
	for i := range activos {
		if activos[i].ID == proximo.ID {
			return toTrabajadorResponse(&activos[i]), nil
		}
	}
	return nil, ErrTrabajadorNoEncontrado
}

func (s *rotacionService) EstadoRotacion(ctx context.Context) (*dto.EstadoRotacionResponse, error) {
	activos, err := s.trabajadores.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	ultimas, err := s.compras.UltimasComprasPorTrabajador(ctx)
	if err != nil {
		return nil, err
	}

	ms := miembros(activos)
	porID := make(map[uuid.UUID]*model.Trabajador, len(activos))
	for i := range activos {
		porID[activos[i].ID] = &activos[i]
	}

	resp := &dto.EstadoRotacionResponse{Estado: "activa"}

	ultimo, hayCompras := rotacion.UltimoComprador(ms, ultimas)
	if hayCompras {
		resp.UltimoComprador = toTrabajadorResponse(porID[ultimo.ID])
	} else {
		resp.Estado = "sin_compras"
	}

	proximo, err := rotacion.ProximoComprador(ms, ultimas)
	if err != nil {
		return nil, err
	}
	resp.ProximoComprador = toTrabajadorResponse(porID[proximo.ID])
	return resp, nil
}

func (s *rotacionService) ResumenRotacion(ctx context.Context) ([]dto.ResumenRotacionItem, error) {
	activos, err := s.trabajadores.ListActivos(ctx)
	if err != nil {
		return nil, err
	}

	resumen := make([]dto.ResumenRotacionItem, 0, len(activos))
	for i := range activos {
		t := &activos[i]
		est, err := s.compras.EstadisticasTrabajador(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		resumen = append(resumen, dto.ResumenRotacionItem{
			TrabajadorID:  t.ID.String(),
			Nombre:        t.Nombre,
			OrdenRotacion: t.OrdenRotacion,
			TotalCompras:  est.TotalCompras,
			TotalGastado:  est.TotalGastado,
			UltimaCompra:  fechaPtr(est.UltimaCompra),
		})
	}
	return resumen, nil
}

func (s *rotacionService) HistorialRotacion(ctx context.Context, limite int) ([]dto.HistorialRotacionItem, error) {
	if limite <= 0 || limite > 100 {
		limite = 20
	}
	compras, err := s.compras.Historial(ctx, limite)
	if err != nil {
		return nil, err
	}

	historial := make([]dto.HistorialRotacionItem, 0, len(compras))
	for i := range compras {
		c := &compras[i]
		item := dto.HistorialRotacionItem{
			FechaCompra: fechaStr(c.FechaCompra),
			PrecioReal:  c.PrecioReal,
			LugarCompra: c.LugarCompra,
		}
		if c.Trabajador != nil {
			item.Trabajador = c.Trabajador.Nombre
			item.OrdenRotacion = c.Trabajador.OrdenRotacion
		}
		if c.Producto != nil {
			item.Producto = c.Producto.Nombre
		}
		historial = append(historial, item)
	}
	return historial, nil
}

func (s *rotacionService) ProductosPendientes(ctx context.Context) (*dto.ProductosPendientesResponse, error) {
	productos, err := s.productos.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	ultimas, err := s.compras.UltimasComprasPorProducto(ctx)
	if err != nil {
		return nil, err
	}

	now := s.reloj()
	resp := &dto.ProductosPendientesResponse{
		Urgentes: []dto.ProductoPendienteResponse{},
		Normales: []dto.ProductoPendienteResponse{},
	}
	for i := range productos {
		p := &productos[i]
		var ultima *time.Time
		if f, ok := ultimas[p.ID]; ok {
			fc := f
			ultima = &fc
		}
		venc := rotacion.Calcular(
			rotacion.ConfigProducto{DiasDuracion: p.DiasDuracion, DiasAviso: p.DiasAviso},
			ultima, now)
		if !venc.Vencido {
			continue
		}

		item := dto.ProductoPendienteResponse{
			ProductoID:     p.ID.String(),
			Nombre:         p.Nombre,
			Descripcion:    p.Descripcion,
			PrecioEstimado: p.PrecioEstimado,
			UltimaCompra:   fechaPtr(ultima),
			DiasRestantes:  venc.DiasRestantes,
			Prioridad:      string(venc.Prioridad),
		}
		if ultima != nil {
			item.FechaFin = fechaPtr(&venc.FechaFin)
			item.FechaAviso = fechaPtr(&venc.FechaAviso)
		}

		if venc.Prioridad == rotacion.PrioridadUrgente {
			resp.Urgentes = append(resp.Urgentes, item)
		} else {
			resp.Normales = append(resp.Normales, item)
		}
	}
	return resp, nil
}

func (s *rotacionService) ListarCompras(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	compras, total, err := s.compras.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		c := &compras[i]
		item := dto.CompraResponse{
			ID:          c.ID.String(),
			FechaCompra: fechaStr(c.FechaCompra),
			PrecioReal:  c.PrecioReal,
			LugarCompra: c.LugarCompra,
			Notas:       c.Notas,
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		}
		if c.Producto != nil {
			item.Producto = c.Producto.Nombre
		}
		if c.Trabajador != nil {
			item.Trabajador = c.Trabajador.Nombre
		}
		data = append(data, item)
	}

	return &dto.CompraListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
