package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEvent is published on every document status change. The verifier
// worker consumes these to advance the verification pipeline.
type DocumentEvent struct {
	DocumentID  uuid.UUID          `json:"document_id"`
	Status      VerificationStatus `json:"status"`
	ContentHash string             `json:"content_hash"`
	OccurredAt  time.Time          `json:"occurred_at"`
}
