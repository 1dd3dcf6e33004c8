package document

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

// GetByShareableLink resolves a public share link to the document and its
// step log. No authentication: possession of the link is the capability.
func (s *documentService) GetByShareableLink(ctx context.Context, link string) (*port.DocumentWithSteps, error) {
	doc, err := s.uow.DocumentRepo().FindByShareableLink(ctx, link)
	if err != nil {
		return nil, err
	}

	steps, err := s.uow.StepRepo().ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	return &port.DocumentWithSteps{Document: doc, Steps: steps}, nil
}
