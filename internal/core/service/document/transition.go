package document

import (
	"context"
	"fmt"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/google/uuid"
)

// Transition moves a document to a new verification status. The move must be
// a row of the transition table; everything the rule prescribes — closing
// in-flight steps, appending new ones, persisting the anchor — happens in a
// single transaction.
func (s *documentService) Transition(ctx context.Context, id uuid.UUID, to domain.VerificationStatus, anchor *domain.Anchor, actorID *uuid.UUID, meta port.RequestMeta) (*domain.Document, error) {
	doc, err := s.uow.DocumentRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rule, err := domain.RuleFor(doc.Status, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, doc.Status, to)
	}
	if rule.RequiresAnchor && (anchor == nil || anchor.Empty()) {
		return nil, domain.NewValidationError("anchor", fmt.Sprintf("transition to %s requires blockchain anchor data", to))
	}

	now := time.Now().UTC()
	var verifiedAt *time.Time
	if to == domain.StatusVerified {
		verifiedAt = &now
	}

	err = s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if rule.CloseInFlight != "" {
			if err := uow.StepRepo().CloseInFlight(ctx, id, rule.CloseInFlight, now); err != nil {
				return fmt.Errorf("could not close in-flight steps: %w", err)
			}
		}

		for _, spec := range rule.Steps {
			step := &domain.VerificationStep{
				ID:         uuid.New(),
				DocumentID: id,
				Type:       spec.Type,
				Status:     spec.Status,
				Message:    spec.Message,
				StartedAt:  now,
			}
			if spec.Status != domain.StepInProgress {
				step.CompletedAt = &now
			}
			if spec.WithAnchor && anchor != nil {
				step.Metadata = map[string]any{
					"blockchain_hash":  anchor.BlockchainHash,
					"transaction_id":   anchor.TransactionID,
					"block_number":     anchor.BlockNumber,
					"network_id":       anchor.NetworkID,
					"contract_address": anchor.ContractAddress,
				}
			}
			if err := uow.StepRepo().Append(ctx, step); err != nil {
				return fmt.Errorf("could not append %s step: %w", spec.Type, err)
			}
		}

		return uow.DocumentRepo().UpdateStatus(ctx, id, to, anchor, verifiedAt)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.uow.DocumentRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     actorID,
		Action:     domain.AuditDocumentStatusUpdated,
		Resource:   "document",
		ResourceID: id.String(),
		Details: map[string]any{
			"from": string(doc.Status),
			"to":   string(to),
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	s.publish(ctx, domain.DocumentEvent{
		DocumentID:  id,
		Status:      to,
		ContentHash: doc.ContentHash,
		OccurredAt:  now,
	})

	return updated, nil
}
