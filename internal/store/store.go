package store

import (
	"sakima-api/internal/config"
	"sakima-api/internal/models"
)

// SubmissionStore persists form submissions. Writes are best-effort from the
// intake routes' perspective: a failed save is logged by the caller and never
// blocks the HTTP response.
type SubmissionStore interface {
	SaveSubmission(sub *models.FormSubmission) error
}

// Open picks a backend from config: Turso over HTTP when TURSO_URL is set,
// otherwise postgres when a DSN is configured, otherwise a local sqlite file.
func Open(cfg *config.Config) (SubmissionStore, error) {
	if cfg.TursoURL != "" {
		return NewTursoStore(cfg.TursoURL, cfg.TursoToken)
	}
	return NewGormStore(cfg)
}
