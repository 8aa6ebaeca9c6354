package workers

import (
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the application's background workers from config.
// A zero sweep interval disables the expiry sweeper; expired rows are then
// only removed lazily on access.
func NewWorkers(repos *store.Repositories, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if cfg.SweepInterval > 0 {
		ws.workers = append(ws.workers, newExpirySweeper(repos, cfg.SweepInterval, logger))
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
