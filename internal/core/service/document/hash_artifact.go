package document

import (
	"context"
	"fmt"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
)

// HashArtifact reads the detached hash artifact by its stored name. Serving
// the digest lets a holder of the raw file verify it independently.
func (s *documentService) HashArtifact(ctx context.Context, name string) (string, error) {
	blobCtx, cancel := s.blobCtx(ctx)
	defer cancel()

	exists, err := s.blobs.HashArtifactExists(blobCtx, name)
	if err != nil {
		return "", mapDeadline(err)
	}
	if !exists {
		return "", fmt.Errorf("%w: hash artifact %s", domain.ErrNotFound, name)
	}

	digest, err := s.blobs.ReadHashArtifact(blobCtx, name)
	if err != nil {
		return "", mapDeadline(err)
	}
	return digest, nil
}
