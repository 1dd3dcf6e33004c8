// Package document implements the verification document operations and
// the status state machine over the transition table.
package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MyagmarsurenMike/e-proof/internal/config"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

type documentService struct {
	uow    port.UnitOfWork
	blobs  port.BlobStore
	audit  port.AuditRecorder
	events port.EventPublisher
	cfg    config.UploadConfig
	logger *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	uow port.UnitOfWork,
	blobs port.BlobStore,
	auditRec port.AuditRecorder,
	events port.EventPublisher,
	cfg config.UploadConfig,
	logger *slog.Logger,
) port.DocumentService {
	return &documentService{
		uow:    uow,
		blobs:  blobs,
		audit:  auditRec,
		events: events,
		cfg:    cfg,
		logger: logger,
	}
}

// blobCtx bounds a storage operation by the configured I/O timeout.
func (s *documentService) blobCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.IOTimeout)
}

func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrTimeout, "storage operation exceeded deadline")
	}
	return err
}

// publish sends a status event. Publishing is best effort: a broker outage
// must not fail the operation that already committed.
func (s *documentService) publish(ctx context.Context, event domain.DocumentEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish document event",
			"document_id", event.DocumentID,
			"status", event.Status,
			"error", err,
		)
	}
}
