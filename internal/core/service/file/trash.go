package file

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
)

// Trash lists the owner's soft-deleted files, most recently deleted first.
func (s *fileService) Trash(ctx context.Context, ownerID uuid.UUID) ([]domain.File, error) {
	return s.uow.FileRepo().ListTrash(ctx, ownerID)
}
