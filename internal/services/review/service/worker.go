package service

import (
	"context"
	"time"

	"faqrelay/internal/platform/logger"

	dom "faqrelay/internal/services/review/domain"
)

// Worker sweeps stale pending reviews into the expired state on a ticker.
// The sweep is a single guarded UPDATE, so several workers can run side
// by side without coordination
type Worker struct {
	svc   dom.Sweeper
	every time.Duration
	ttl   time.Duration
	batch int
}

// NewWorker constructs the sweep loop over a Sweeper
func NewWorker(svc dom.Sweeper, every, ttl time.Duration, batch int) *Worker {
	if every <= 0 {
		every = time.Minute
	}
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	if batch <= 0 {
		batch = defaultSweepLim
	}
	return &Worker{svc: svc, every: every, ttl: ttl, batch: batch}
}

// Run blocks until ctx is done, sweeping once per tick
func (w *Worker) Run(ctx context.Context) error {
	log := logger.Named("review-sweeper")
	log.Info().
		Dur("every", w.every).
		Dur("ttl", w.ttl).
		Int("batch", w.batch).
		Msg("expiry sweep started")

	ticker := time.NewTicker(w.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := w.svc.ExpirePending(ctx, w.ttl, w.batch)
			if err != nil {
				log.Error().Err(err).Msg("expiry sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int("expired", n).Msg("expiry sweep pass done")
			}
		}
	}
}
