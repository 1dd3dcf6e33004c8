package document

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/google/uuid"
)

// Get returns a document with its ordered step log and records the access.
func (s *documentService) Get(ctx context.Context, id uuid.UUID, meta port.RequestMeta) (*port.DocumentWithSteps, error) {
	doc, err := s.uow.DocumentRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	steps, err := s.uow.StepRepo().ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	userID := doc.UserID
	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &userID,
		Action:     domain.AuditDocumentAccessed,
		Resource:   "document",
		ResourceID: id.String(),
		Details:    map[string]any{"status": string(doc.Status)},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return &port.DocumentWithSteps{Document: doc, Steps: steps}, nil
}
