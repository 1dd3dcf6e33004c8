package document

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
)

// Stats returns the user's document counts by verification status.
func (s *documentService) Stats(ctx context.Context, userID uuid.UUID) (*domain.DocumentStats, error) {
	return s.uow.DocumentRepo().Stats(ctx, userID)
}
