package file

import (
	"context"
	"fmt"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/hash"
	"github.com/google/uuid"
)

// Upload validates the request, persists the raw bytes and a detached hash
// artifact, and creates the file record. Partial artifacts are removed
// before any error propagates.
func (s *fileService) Upload(ctx context.Context, req port.UploadRequest) (*domain.File, error) {

	if err := s.validateUpload(req.OriginalName, req.MimeType, int64(len(req.Content))); err != nil {
		return nil, err
	}

	digest := hash.Sum(req.Content)

	blobCtx, cancel := s.blobCtx(ctx)
	defer cancel()

	storedPath, err := s.blobs.Save(blobCtx, req.Content, req.OriginalName)
	if err != nil {
		return nil, mapDeadline(err)
	}

	hashName, err := s.blobs.SaveHashArtifact(blobCtx, digest, req.OriginalName)
	if err != nil {
		s.cleanup(ctx, storedPath, "")
		return nil, mapDeadline(err)
	}

	var delegate *uuid.UUID
	if req.DelegateOwner != nil && *req.DelegateOwner != req.UserID {
		delegate = req.DelegateOwner
	}

	f := &domain.File{
		ID:           uuid.New(),
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		StoredPath:   storedPath,
		SizeBytes:    int64(len(req.Content)),
		Description:  req.Description,
		Tags:         req.Tags,
		Keywords:     domain.ExtractKeywords(req.OriginalName),
		Owners:       domain.Owners{Primary: req.UserID, Delegate: delegate},
	}

	if err := s.uow.FileRepo().Create(ctx, f); err != nil {
		s.cleanup(ctx, storedPath, hashName)
		return nil, fmt.Errorf("could not create file record: %w", err)
	}

	userID := req.UserID
	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &userID,
		Action:     domain.AuditFileUploaded,
		Resource:   "file",
		ResourceID: f.ID.String(),
		Details: map[string]any{
			"original_name": f.OriginalName,
			"mime_type":     f.MimeType,
			"size":          f.SizeBytes,
			"keywords":      f.Keywords,
		},
		IPAddress: req.Meta.IPAddress,
		UserAgent: req.Meta.UserAgent,
	})

	return f, nil
}

// cleanup removes partially written artifacts. Best effort: the original
// error is what the caller sees.
func (s *fileService) cleanup(ctx context.Context, storedPath, hashName string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if storedPath != "" {
		if err := s.blobs.Delete(cleanupCtx, storedPath); err != nil {
			s.logger.Warn("failed to clean up stored file", "stored_path", storedPath, "error", err)
		}
	}
	if hashName != "" {
		if err := s.blobs.DeleteHashArtifact(cleanupCtx, hashName); err != nil {
			s.logger.Warn("failed to clean up hash artifact", "name", hashName, "error", err)
		}
	}
}
