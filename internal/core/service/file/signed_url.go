package file

import (
	"context"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/access"
	"github.com/google/uuid"
)

// IssueSignedURL mints a short-lived token granting anonymous read access to
// one file. Only an owner may issue a token for it.
func (s *fileService) IssueSignedURL(ctx context.Context, fileID uuid.UUID, actor access.Actor, meta port.RequestMeta) (string, time.Time, error) {
	f, err := s.uow.FileRepo().FindByID(ctx, fileID)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := access.Authorize(actor, f, access.IntentRead); err != nil {
		return "", time.Time{}, err
	}

	tok, expiresAt, err := s.tokens.Issue(f.ID, 0)
	if err != nil {
		return "", time.Time{}, err
	}

	userID := actor.UserID
	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &userID,
		Action:     domain.AuditSignedURLGenerated,
		Resource:   "file",
		ResourceID: f.ID.String(),
		Details: map[string]any{
			"original_name": f.OriginalName,
			"expires_at":    expiresAt.UnixMilli(),
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return tok, expiresAt, nil
}
