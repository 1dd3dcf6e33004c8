package document

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// List returns the user's documents matching the filter, newest first.
func (s *documentService) List(ctx context.Context, userID uuid.UUID, filter domain.DocumentFilter) ([]domain.Document, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.uow.DocumentRepo().List(ctx, userID, filter)
}
