package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/port/primary"
)

// ImportWorker drains due import batches from the queue on a fixed interval.
type ImportWorker struct {
	service      primary.ContainerService
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewImportWorker creates an ImportWorker polling every pollInterval.
func NewImportWorker(
	service primary.ContainerService,
	pollInterval time.Duration,
	logger *zap.Logger,
) *ImportWorker {
	return &ImportWorker{
		service:      service,
		pollInterval: pollInterval,
		logger:       logger.Named("import-worker"),
	}
}

// Run polls once immediately and then on every tick. It blocks until ctx
// is cancelled and returns ctx.Err().
func (w *ImportWorker) Run(ctx context.Context) error {
	w.logger.Info("import worker started",
		zap.Duration("poll_interval", w.pollInterval),
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("import worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *ImportWorker) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	started := time.Now()
	if err := w.service.ProcessDueImports(ctx); err != nil {
		// Keep polling; the failed batches stay queued.
		w.logger.Error("error processing due imports",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(started)),
		)
	}
}
