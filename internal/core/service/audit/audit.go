// Package audit writes the append-only audit trail. Audit failures are
// logged and swallowed: they never fail the operation that triggered them.
package audit

import (
	"context"
	"log/slog"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

type recorder struct {
	repo   port.AuditRepository
	logger *slog.Logger
}

// NewRecorder creates a new audit recorder
func NewRecorder(repo port.AuditRepository, logger *slog.Logger) port.AuditRecorder {
	return &recorder{repo: repo, logger: logger}
}

func (r *recorder) Record(ctx context.Context, entry domain.AuditEntry) {
	if err := r.repo.Insert(ctx, &entry); err != nil {
		r.logger.Warn("failed to write audit entry",
			"action", entry.Action,
			"resource", entry.Resource,
			"resource_id", entry.ResourceID,
			"error", err,
		)
	}
}
