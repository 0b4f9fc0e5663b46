package worker

// aviso_cron.go
// Background goroutine that periodically runs the aviso sweep: checks
// every product with a configured periodo_aviso and opens an assignment
// for the fairest worker when the period has elapsed without a purchase.

import (
	"context"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"

	"github.com/rs/zerolog/log"
)

// Sweeper runs one pass of the periodic aviso check.
type Sweeper interface {
	Sweep(ctx context.Context) ([]dto.AvisoGeneradoResponse, error)
}

// StartAvisoCron launches a background goroutine that ticks every
// interval and runs the sweep. It respects the context for graceful
// shutdown. A failed tick is logged and retried on the next one.
func StartAvisoCron(ctx context.Context, sweeper Sweeper, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("aviso_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("aviso_cron: shutting down")
				return
			case <-ticker.C:
				generados, err := sweeper.Sweep(ctx)
				if err != nil {
					log.Error().Err(err).Msg("aviso_cron: sweep failed")
					continue
				}
				if len(generados) > 0 {
					log.Info().Int("avisos", len(generados)).Msg("aviso_cron: avisos generados")
				}
			}
		}
	}()
}
