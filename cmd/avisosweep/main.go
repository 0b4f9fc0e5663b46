// cmd/avisosweep — one-shot aviso sweep for external schedulers (cron,
// systemd timers). Exits 0 when the pass completes, 1 on any error, so
// the scheduler can alert on failures.
package main

import (
	"context"
	"os"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/config"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/infra"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/repository"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/service"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to postgres")
		os.Exit(1)
	}

	// Redis is optional here: without it the sweep still opens avisos,
	// it just cannot queue notification emails.
	var dispatcher *worker.Dispatcher
	if rdb, err := infra.NewRedis(cfg.RedisURL); err != nil {
		log.Warn().Err(err).Msg("redis unavailable — sweeping without email notifications")
	} else {
		dispatcher = worker.NewDispatcher(rdb)
	}

	avisoSvc := service.NewAvisoService(
		repository.NewAvisoRepository(db),
		repository.NewProductoRepository(db),
		repository.NewTrabajadorRepository(db),
		repository.NewCompraRepository(db),
		dispatcher,
		nil,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	generados, err := avisoSvc.Sweep(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sweep failed")
		os.Exit(1)
	}

	for _, g := range generados {
		log.Info().
			Str("producto", g.Producto).
			Str("trabajador", g.Trabajador).
			Str("periodo", g.Periodo).
			Msg("aviso generado")
	}
	log.Info().Int("avisos", len(generados)).Msg("sweep completed")
}
