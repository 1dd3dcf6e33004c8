package verifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

// HandleMessage advances a document one pipeline stage per event: PENDING
// documents move to PROCESSING, PROCESSING documents get anchored and move
// to VERIFIED. Each transition publishes the next event, so the pipeline
// drives itself to completion.
func (s *verifierService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.DocumentEvent

	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal document event: %w", err)
	}

	s.logger.Info("handling document event",
		"document_id", event.DocumentID,
		"status", event.Status,
	)

	var transitionErr error
	switch event.Status {
	case domain.StatusPending:
		_, transitionErr = s.documents.Transition(ctx, event.DocumentID, domain.StatusProcessing, nil, nil, port.RequestMeta{})
	case domain.StatusProcessing:
		anchor := simulateAnchor(event.ContentHash)
		_, transitionErr = s.documents.Transition(ctx, event.DocumentID, domain.StatusVerified, anchor, nil, port.RequestMeta{})
	default:
		// Terminal statuses need no further work.
		return nil
	}

	if transitionErr != nil {
		// A redelivered event races the transition it already caused; the
		// document has moved on, so the message is done.
		if errors.Is(transitionErr, domain.ErrIllegalTransition) {
			s.logger.Warn("skipping stale document event",
				"document_id", event.DocumentID,
				"status", event.Status,
				"error", transitionErr,
			)
			return nil
		}
		return transitionErr
	}
	return nil
}

// simulateAnchor derives deterministic anchoring data from the content
// hash, standing in for a real blockchain submission.
func simulateAnchor(contentHash string) *domain.Anchor {
	sum := sha256.Sum256([]byte("anchor:" + contentHash))
	txSum := sha256.Sum256([]byte("tx:" + contentHash))

	block := new(big.Int).SetBytes(sum[:4])

	return &domain.Anchor{
		BlockchainHash:  "0x" + hex.EncodeToString(sum[:]),
		TransactionID:   "0x" + hex.EncodeToString(txSum[:]),
		BlockNumber:     block.String(),
		NetworkID:       "1337",
		ContractAddress: "0x" + hex.EncodeToString(sum[:20]),
	}
}
