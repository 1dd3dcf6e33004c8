package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/access"
	"github.com/google/uuid"
)

// SoftDelete marks a file deleted after copying it into today's backup
// snapshot. If the backup copy fails the delete is aborted and the file
// stays live.
func (s *lifecycleService) SoftDelete(ctx context.Context, fileID, actorID uuid.UUID, meta port.RequestMeta) error {
	f, err := s.uow.FileRepo().FindByID(ctx, fileID)
	if err != nil {
		return err
	}

	if err := access.Authorize(access.SessionActor(actorID), f, access.IntentDelete); err != nil {
		return err
	}

	now := time.Now().UTC()
	date := now.Format("2006-01-02")

	bctx, cancel := s.blobCtx(ctx)
	defer cancel()

	if err := s.blobs.Backup(bctx, f.StoredPath, date); err != nil {
		s.logger.Error("backup before delete failed, aborting delete",
			"file_id", fileID,
			"stored_path", f.StoredPath,
			"error", err,
		)
		return fmt.Errorf("backup before delete failed: %w", mapDeadline(err))
	}

	if err := s.uow.FileRepo().SetDeletedAt(ctx, fileID, &now); err != nil {
		return fmt.Errorf("could not mark file deleted: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &actorID,
		Action:     domain.AuditFileSoftDeleted,
		Resource:   "file",
		ResourceID: fileID.String(),
		Details: map[string]any{
			"original_name": f.OriginalName,
			"backup_date":   date,
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return nil
}
