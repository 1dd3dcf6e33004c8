// Package lifecycle owns the deletion lifecycle of stored files: soft
// delete with a mandatory backup first, restore from trash, and the daily
// backup and retention batches.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MyagmarsurenMike/e-proof/internal/config"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

type lifecycleService struct {
	uow    port.UnitOfWork
	blobs  port.BlobStore
	audit  port.AuditRecorder
	cfg    config.UploadConfig
	logger *slog.Logger
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(
	uow port.UnitOfWork,
	blobs port.BlobStore,
	auditRec port.AuditRecorder,
	cfg config.UploadConfig,
	logger *slog.Logger,
) port.LifecycleService {
	return &lifecycleService{
		uow:    uow,
		blobs:  blobs,
		audit:  auditRec,
		cfg:    cfg,
		logger: logger,
	}
}

// blobCtx bounds a storage operation by the configured I/O timeout.
func (s *lifecycleService) blobCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.IOTimeout)
}

func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrTimeout, "storage operation exceeded deadline")
	}
	return err
}
