package lifecycle

import (
	"context"
	"fmt"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/google/uuid"
)

// Restore clears the deletion mark of a soft-deleted file owned by the
// actor. Restoring a live file is rejected.
func (s *lifecycleService) Restore(ctx context.Context, fileID, actorID uuid.UUID, meta port.RequestMeta) error {
	f, err := s.uow.FileRepo().FindByID(ctx, fileID)
	if err != nil {
		return err
	}

	// Access rules treat deleted files as gone, so ownership is checked
	// directly here.
	if !f.Owners.Contains(actorID) {
		return domain.ErrForbidden
	}
	if f.Live() {
		return fmt.Errorf("%w: file is not in the trash", domain.ErrNotDeleted)
	}

	if err := s.uow.FileRepo().SetDeletedAt(ctx, fileID, nil); err != nil {
		return fmt.Errorf("could not restore file: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &actorID,
		Action:     domain.AuditFileRestored,
		Resource:   "file",
		ResourceID: fileID.String(),
		Details: map[string]any{
			"original_name": f.OriginalName,
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return nil
}
