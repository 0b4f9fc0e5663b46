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
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrAvisoNoEncontrado = errors.New("aviso no encontrado")

// AvisoService manages pending purchase assignments: the periodic sweep
// that opens them and the listing/estado endpoints that track them.
type AvisoService interface {
	// Sweep checks every product with a configured periodo_aviso and opens
	// an aviso for the fairest worker when the period elapsed without a
	// purchase. Running it twice in a row is a no-op: a product with an
	// open aviso is skipped. Returns the assignments created this pass.
	Sweep(ctx context.Context) ([]dto.AvisoGeneradoResponse, error)

	ListarPendientes(ctx context.Context) ([]dto.AvisoResponse, error)
	ListarPorTrabajador(ctx context.Context, trabajadorID uuid.UUID) ([]dto.AvisoResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error
}

type avisoService struct {
	avisos       repository.AvisoRepository
	productos    repository.ProductoRepository
	trabajadores repository.TrabajadorRepository
	compras      repository.CompraRepository
	dispatcher   *worker.Dispatcher
	reloj        func() time.Time
}

// NewAvisoService wires the aviso service. dispatcher may be nil (no
// email notifications); reloj may be nil, in which case time.Now is used.
func NewAvisoService(
	avisos repository.AvisoRepository,
	productos repository.ProductoRepository,
	trabajadores repository.TrabajadorRepository,
	compras repository.CompraRepository,
	dispatcher *worker.Dispatcher,
	reloj func() time.Time,
) AvisoService {
	if reloj == nil {
		reloj = time.Now
	}
	return &avisoService{
		avisos:       avisos,
		productos:    productos,
		trabajadores: trabajadores,
		compras:      compras,
		dispatcher:   dispatcher,
		reloj:        reloj,
	}
}

func (s *avisoService) Sweep(ctx context.Context) ([]dto.AvisoGeneradoResponse, error) {
	productos, err := s.productos.ListActivosConPeriodo(ctx)
	if err != nil {
		return nil, err
	}
	activos, err := s.trabajadores.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	if len(activos) == 0 {
		return nil, rotacion.ErrRotacionVacia
	}
	ultimas, err := s.compras.UltimasComprasPorProducto(ctx)
	if err != nil {
		return nil, err
	}

	now := s.reloj()
	generados := []dto.AvisoGeneradoResponse{}
	for i := range productos {
		p := &productos[i]

		periodoDias := rotacion.PeriodoEnDias(p.PeriodoAviso, p.UnidadPeriodo)
		if ultima, ok := ultimas[p.ID]; ok {
			transcurridos := int(now.Sub(ultima).Hours() / 24)
			if transcurridos < periodoDias {
				continue
			}
		}
		// Never purchased counts as overdue for any period.

		// One product failing must not starve the rest of the sweep.
		generado, err := s.generarAviso(ctx, p, activos, now)
		if err != nil {
			log.Error().Err(err).Str("producto", p.Nombre).Msg("sweep: no se pudo generar el aviso")
			continue
		}
		if generado != nil {
			generados = append(generados, *generado)
		}
	}
	return generados, nil
}

func (s *avisoService) generarAviso(ctx context.Context, p *model.Producto, activos []model.Trabajador, now time.Time) (*dto.AvisoGeneradoResponse, error) {
	existe, err := s.avisos.ExistePendienteProducto(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, nil
	}

	stats, err := s.compras.StatsPorProducto(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	responsable := elegirResponsable(stats, activos)
	if responsable == nil {
		return nil, rotacion.ErrRotacionVacia
	}

	periodo := rotacion.FormatearPeriodo(p.PeriodoAviso, p.UnidadPeriodo)
	motivo := fmt.Sprintf("Aviso periódico: %s lleva más de %s sin comprarse", p.Nombre, periodo)
	y, m, d := now.UTC().Date()
	aviso := &model.AvisoPendiente{
		ProductoID:   p.ID,
		TrabajadorID: responsable.ID,
		// The deadline grants one more full period to make the purchase.
		FechaLimite:    time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rotacion.PeriodoEnDias(p.PeriodoAviso, p.UnidadPeriodo)),
		Estado:         "pendiente",
		Prioridad:      string(rotacion.PrioridadNormal),
		TipoAsignacion: "periodo_vencido",
		Motivo:         &motivo,
	}
	if err := s.avisos.Create(ctx, aviso); err != nil {
		return nil, err
	}

	s.notificar(ctx, aviso, p, responsable, periodo)

	return &dto.AvisoGeneradoResponse{
		Producto:   p.Nombre,
		Trabajador: responsable.Nombre,
		Periodo:    periodo,
	}, nil
}

// elegirResponsable applies the sweep's fairness rule: the worker with the
// fewest purchases of this product; ties break toward the one whose last
// purchase of it is oldest (never purchased wins), then toward the lowest
// rotation slot so the pick is deterministic.
func elegirResponsable(stats []repository.CompraProductoStat, activos []model.Trabajador) *model.Trabajador {
	porID := make(map[uuid.UUID]*model.Trabajador, len(activos))
	for i := range activos {
		porID[activos[i].ID] = &activos[i]
	}

	var mejor *model.Trabajador
	var mejorStat repository.CompraProductoStat
	for _, st := range stats {
		t, ok := porID[st.TrabajadorID]
		if !ok {
			continue
		}
		if mejor == nil || menosCargado(st, t, mejorStat, mejor) {
			mejor = t
			mejorStat = st
		}
	}
	return mejor
}

func menosCargado(a repository.CompraProductoStat, ta *model.Trabajador, b repository.CompraProductoStat, tb *model.Trabajador) bool {
	if a.TotalCompras != b.TotalCompras {
		return a.TotalCompras < b.TotalCompras
	}
	switch {
	case a.UltimaCompra == nil && b.UltimaCompra != nil:
		return true
	case a.UltimaCompra != nil && b.UltimaCompra == nil:
		return false
	case a.UltimaCompra != nil && b.UltimaCompra != nil && !a.UltimaCompra.Equal(*b.UltimaCompra):
		return a.UltimaCompra.Before(*b.UltimaCompra)
	}
	return ta.OrdenRotacion < tb.OrdenRotacion
}

// notificar queues the assignment email. Failures only log: the aviso row
// already exists and is visible in the API either way.
func (s *avisoService) notificar(ctx context.Context, aviso *model.AvisoPendiente, p *model.Producto, t *model.Trabajador, periodo string) {
	if s.dispatcher == nil || t.Email == nil || *t.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Te toca comprar <strong>%s</strong>: lleva más de %s sin comprarse.</p><p>Fecha límite: %s.</p>",
		t.Nombre, p.Nombre, periodo, aviso.FechaLimite.Format(fechaLayout))
	err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: *t.Email,
		Subject: fmt.Sprintf("Te toca comprar: %s", p.Nombre),
		Body:    body,
	})
	if err != nil {
		log.Error().Err(err).Str("producto", p.Nombre).Msg("sweep: no se pudo encolar el email")
		return
	}
	if err := s.avisos.MarcarNotificado(ctx, aviso.ID); err != nil {
		log.Error().Err(err).Str("aviso_id", aviso.ID.String()).Msg("sweep: no se pudo marcar notificado")
	}
}

func (s *avisoService) ListarPendientes(ctx context.Context) ([]dto.AvisoResponse, error) {
	avisos, err := s.avisos.ListPendientes(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(avisos), nil
}

func (s *avisoService) ListarPorTrabajador(ctx context.Context, trabajadorID uuid.UUID) ([]dto.AvisoResponse, error) {
	avisos, err := s.avisos.ListPorTrabajador(ctx, trabajadorID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(avisos), nil
}

func (s *avisoService) toResponses(avisos []model.AvisoPendiente) []dto.AvisoResponse {
	now := s.reloj()
	out := make([]dto.AvisoResponse, 0, len(avisos))
	for i := range avisos {
		a := &avisos[i]
		item := dto.AvisoResponse{
			ID:             a.ID.String(),
			ProductoID:     a.ProductoID.String(),
			TrabajadorID:   a.TrabajadorID.String(),
			FechaLimite:    fechaStr(a.FechaLimite),
			Estado:         a.Estado,
			Prioridad:      a.Prioridad,
			TipoAsignacion: a.TipoAsignacion,
			Motivo:         a.Motivo,
			DiasRestantes:  int(a.FechaLimite.Sub(now).Hours() / 24),
		}
		if a.Producto != nil {
			item.Producto = a.Producto.Nombre
		}
		if a.Trabajador != nil {
			item.Trabajador = a.Trabajador.Nombre
		}
		out = append(out, item)
	}
	return out
}

func (s *avisoService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	if _, err := s.avisos.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvisoNoEncontrado
		}
		return err
	}
	return s.avisos.UpdateEstado(ctx, id, estado)
}
