package service

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/infra"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrTicketNoEncontrado = errors.New("ticket no encontrado")
	ErrCompraNoEncontrada = errors.New("compra no encontrada")
)

// TicketService attaches receipt files to purchases. File validation
// (MIME allow-list, size cap) happens at the upload handler; this layer
// persists bytes and metadata together.
type TicketService interface {
	Subir(ctx context.Context, compraID, subidoPor uuid.UUID, nombre, tipo string, tamano int64, r io.Reader, notas *string) (*dto.SubirTicketResponse, error)
	ListarPorCompra(ctx context.Context, compraID uuid.UUID) ([]dto.TicketResponse, error)
	// Abrir returns the ticket metadata and an open file handle for
	// download; the caller closes the file.
	Abrir(ctx context.Context, id uuid.UUID) (*model.TicketCompra, *os.File, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type ticketService struct {
	tickets repository.TicketRepository
	compras repository.CompraRepository
	store   *infra.FileStore
}

func NewTicketService(tickets repository.TicketRepository, compras repository.CompraRepository, store *infra.FileStore) TicketService {
	return &ticketService{tickets: tickets, compras: compras, store: store}
}

func (s *ticketService) Subir(ctx context.Context, compraID, subidoPor uuid.UUID, nombre, tipo string, tamano int64, r io.Reader, notas *string) (*dto.SubirTicketResponse, error) {
	if _, err := s.compras.FindByID(ctx, compraID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompraNoEncontrada
		}
		return nil, err
	}

	ruta, err := s.store.Save(compraID, nombre, r)
	if err != nil {
		return nil, err
	}

	t := &model.TicketCompra{
		CompraID:      compraID,
		SubidoPor:     subidoPor,
		NombreArchivo: nombre,
		RutaArchivo:   ruta,
		TipoArchivo:   tipo,
		TamanoArchivo: tamano,
		Notas:         notas,
		Activo:        true,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		// The row never existed — don't leave an orphan file behind.
		if rmErr := os.Remove(s.store.Path(ruta)); rmErr != nil {
			log.Warn().Err(rmErr).Str("ruta", ruta).Msg("no se pudo borrar el archivo huérfano")
		}
		return nil, err
	}

	return &dto.SubirTicketResponse{
		TicketID:      t.ID.String(),
		NombreArchivo: t.NombreArchivo,
		Mensaje:       "Ticket subido correctamente",
	}, nil
}

func (s *ticketService) ListarPorCompra(ctx context.Context, compraID uuid.UUID) ([]dto.TicketResponse, error) {
	tickets, err := s.tickets.ListByCompra(ctx, compraID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		item := dto.TicketResponse{
			ID:            t.ID.String(),
			CompraID:      t.CompraID.String(),
			SubidoPor:     t.SubidoPor.String(),
			NombreArchivo: t.NombreArchivo,
			TipoArchivo:   t.TipoArchivo,
			TamanoArchivo: t.TamanoArchivo,
			Notas:         t.Notas,
			CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		}
		if t.Trabajador != nil {
			item.Trabajador = t.Trabajador.Nombre
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ticketService) Abrir(ctx context.Context, id uuid.UUID) (*model.TicketCompra, *os.File, error) {
	t, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTicketNoEncontrado
		}
		return nil, nil, err
	}
	f, err := s.store.Open(t.RutaArchivo)
	if err != nil {
		return nil, nil, ErrTicketNoEncontrado
	}
	return t, f, nil
}

func (s *ticketService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tickets.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNoEncontrado
		}
		return err
	}
	return s.tickets.SoftDelete(ctx, id)
}
