// Package verifier consumes document status events and advances the
// verification pipeline. The blockchain anchoring itself is simulated: a
// deterministic anchor is derived from the content hash.
package verifier

import (
	"log/slog"

	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

type verifierService struct {
	documents port.DocumentService
	logger    *slog.Logger
}

// NewVerifierService creates a new verifier message service
func NewVerifierService(documents port.DocumentService, logger *slog.Logger) port.MessageService {
	return &verifierService{
		documents: documents,
		logger:    logger,
	}
}
