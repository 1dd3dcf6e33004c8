package file

import (
	"context"
	"fmt"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/access"
	"github.com/google/uuid"
)

// Download authorizes the actor, reads the bytes back and verifies their
// size against the record before serving. A size mismatch fails closed.
func (s *fileService) Download(ctx context.Context, fileID uuid.UUID, actor access.Actor, forceDownload bool, meta port.RequestMeta) (*port.DownloadResult, error) {

	f, err := s.uow.FileRepo().FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if err := access.Authorize(actor, f, access.IntentRead); err != nil {
		return nil, err
	}

	blobCtx, cancel := s.blobCtx(ctx)
	defer cancel()

	exists, err := s.blobs.Exists(blobCtx, f.StoredPath)
	if err != nil {
		return nil, mapDeadline(err)
	}
	if !exists {
		s.logger.Error("physical file missing", "file_id", fileID, "stored_path", f.StoredPath)
		return nil, fmt.Errorf("%w: file content is not available", domain.ErrNotFound)
	}

	content, err := s.blobs.Read(blobCtx, f.StoredPath)
	if err != nil {
		return nil, mapDeadline(err)
	}

	if int64(len(content)) != f.SizeBytes {
		s.logger.Error("file size mismatch",
			"file_id", fileID,
			"expected", f.SizeBytes,
			"actual", len(content),
		)
		return nil, fmt.Errorf("%w: stored size does not match record", domain.ErrIntegrity)
	}

	s.audit.Record(ctx, s.downloadAuditEntry(f, actor, forceDownload, meta))

	return &port.DownloadResult{File: f, Content: content}, nil
}

// downloadAuditEntry distinguishes views, forced downloads and anonymous
// token downloads. Token access always audits with a nil user id.
func (s *fileService) downloadAuditEntry(f *domain.File, actor access.Actor, forceDownload bool, meta port.RequestMeta) domain.AuditEntry {
	entry := domain.AuditEntry{
		Resource:   "file",
		ResourceID: f.ID.String(),
		Details: map[string]any{
			"original_name": f.OriginalName,
			"mime_type":     f.MimeType,
			"size":          f.SizeBytes,
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	switch {
	case actor.Anonymous():
		entry.Action = domain.AuditFileDownloadedSigned
	case forceDownload:
		userID := actor.UserID
		entry.UserID = &userID
		entry.Action = domain.AuditFileDownloaded
	default:
		userID := actor.UserID
		entry.UserID = &userID
		entry.Action = domain.AuditFileViewed
	}
	return entry
}

// Stat returns the metadata of a file the actor may read, without touching
// the bytes. Used by HEAD availability checks.
func (s *fileService) Stat(ctx context.Context, fileID uuid.UUID, actor access.Actor) (*domain.File, error) {
	f, err := s.uow.FileRepo().FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, f, access.IntentRead); err != nil {
		return nil, err
	}

	blobCtx, cancel := s.blobCtx(ctx)
	defer cancel()

	exists, err := s.blobs.Exists(blobCtx, f.StoredPath)
	if err != nil {
		return nil, mapDeadline(err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: file content is not available", domain.ErrNotFound)
	}
	return f, nil
}
