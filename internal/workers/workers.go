package workers

import (
	"context"

	"github.com/MKhiriev/go-card-keeper/internal/config"
	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles all background workers of the application.
func NewWorkers(repositories *store.Repositories, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newSessionCleaner(repositories.SessionRepository, cfg.SessionCleanupInterval, logger),
		},
	}
}

// Run starts every worker in its own goroutine and returns immediately.
// Workers stop when ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		go worker.Run(ctx)
	}
}
