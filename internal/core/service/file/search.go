package file

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// Search returns the owner's live files matching the query, newest first,
// with the total match count for pagination.
func (s *fileService) Search(ctx context.Context, ownerID uuid.UUID, q domain.FileSearchQuery) ([]domain.File, int, error) {
	if q.Limit <= 0 {
		q.Limit = defaultSearchLimit
	}
	if q.Limit > maxSearchLimit {
		q.Limit = maxSearchLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.uow.FileRepo().Search(ctx, ownerID, q)
}
