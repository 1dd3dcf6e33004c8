package document

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/hash"
	"github.com/google/uuid"
)

func (s *documentService) validateCreate(req port.CreateDocumentRequest) error {
	var fields []domain.FieldError

	if req.Title == "" {
		fields = append(fields, domain.FieldError{Field: "title", Message: "title is required"})
	}
	if !req.Type.Valid() {
		fields = append(fields, domain.FieldError{Field: "type", Message: fmt.Sprintf("unknown document type %q", req.Type)})
	}
	if req.FileName == "" {
		fields = append(fields, domain.FieldError{Field: "file", Message: "file name is required"})
	}
	if len(req.Content) == 0 {
		fields = append(fields, domain.FieldError{Field: "file", Message: "file cannot be empty"})
	}
	if int64(len(req.Content)) > s.cfg.MaxSize {
		fields = append(fields, domain.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("file size must be less than %dMB", s.cfg.MaxSize/(1024*1024)),
		})
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func newShareableLink() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate shareable link: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Create registers a document for verification: hashes the content, rejects
// duplicates before any byte reaches disk, persists the raw file plus its
// hash artifact, and records the document with its first step in one
// transaction. The document starts in PENDING.
func (s *documentService) Create(ctx context.Context, req port.CreateDocumentRequest) (*domain.Document, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	digest := hash.Sum(req.Content)

	exists, err := s.uow.DocumentRepo().ExistsByHash(ctx, digest)
	if err != nil {
		return nil, fmt.Errorf("could not check content hash: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: a document with identical content already exists", domain.ErrDuplicateContent)
	}

	blobCtx, cancel := s.blobCtx(ctx)
	defer cancel()

	rawPath, err := s.blobs.Save(blobCtx, req.Content, req.FileName)
	if err != nil {
		return nil, mapDeadline(err)
	}

	hashName, err := s.blobs.SaveHashArtifact(blobCtx, digest, req.FileName)
	if err != nil {
		s.cleanup(ctx, rawPath, "")
		return nil, mapDeadline(err)
	}

	link, err := newShareableLink()
	if err != nil {
		s.cleanup(ctx, rawPath, hashName)
		return nil, err
	}

	doc := &domain.Document{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		FileName:      req.FileName,
		FileSize:      int64(len(req.Content)),
		MimeType:      req.MimeType,
		ContentHash:   digest,
		RawFilePath:   rawPath,
		HashFilePath:  hashName,
		Status:        domain.StatusPending,
		ShareableLink: link,
		UserID:        req.UserID,
	}

	err = s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if err := uow.DocumentRepo().Create(ctx, doc); err != nil {
			return err
		}
		return uow.StepRepo().Append(ctx, &domain.VerificationStep{
			ID:         uuid.New(),
			DocumentID: doc.ID,
			Type:       domain.StepFileUpload,
			Status:     domain.StepCompleted,
			Message:    "document uploaded and stored",
			Metadata: map[string]any{
				"file_name":    req.FileName,
				"file_size":    len(req.Content),
				"content_hash": digest,
			},
			StartedAt:   time.Now().UTC(),
			CompletedAt: ptrTime(time.Now().UTC()),
		})
	})
	if err != nil {
		// A concurrent identical upload may win the unique index race.
		// Either way the artifacts written above are orphans.
		s.cleanup(ctx, rawPath, hashName)
		if errors.Is(err, domain.ErrDuplicateContent) {
			return nil, err
		}
		return nil, fmt.Errorf("could not create document record: %w", err)
	}

	userID := req.UserID
	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &userID,
		Action:     domain.AuditDocumentUploaded,
		Resource:   "document",
		ResourceID: doc.ID.String(),
		Details: map[string]any{
			"title":        doc.Title,
			"type":         string(doc.Type),
			"content_hash": digest,
		},
		IPAddress: req.Meta.IPAddress,
		UserAgent: req.Meta.UserAgent,
	})

	s.publish(ctx, domain.DocumentEvent{
		DocumentID:  doc.ID,
		Status:      doc.Status,
		ContentHash: doc.ContentHash,
		OccurredAt:  time.Now().UTC(),
	})

	return doc, nil
}

// cleanup removes orphaned artifacts after a failed create. Best effort.
func (s *documentService) cleanup(ctx context.Context, rawPath, hashName string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if rawPath != "" {
		if err := s.blobs.Delete(cleanupCtx, rawPath); err != nil {
			s.logger.Warn("failed to clean up stored file", "stored_path", rawPath, "error", err)
		}
	}
	if hashName != "" {
		if err := s.blobs.DeleteHashArtifact(cleanupCtx, hashName); err != nil {
			s.logger.Warn("failed to clean up hash artifact", "name", hashName, "error", err)
		}
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
