package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MyagmarsurenMike/e-proof/internal/config"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

type fileService struct {
	uow    port.UnitOfWork
	blobs  port.BlobStore
	audit  port.AuditRecorder
	tokens port.TokenIssuer
	cfg    config.UploadConfig
	logger *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	uow port.UnitOfWork,
	blobs port.BlobStore,
	auditRec port.AuditRecorder,
	tokens port.TokenIssuer,
	cfg config.UploadConfig,
	logger *slog.Logger,
) port.FileService {
	return &fileService{
		uow:    uow,
		blobs:  blobs,
		audit:  auditRec,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
	}
}

// AllowedMimeTypes is the upload allow-list. Anything outside it is rejected
// during validation, before any byte reaches storage.
var AllowedMimeTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"application/vnd.ms-powerpoint":                                     {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
	"text/plain": {},
	"text/csv":   {},
}

func (s *fileService) validateUpload(name, mimeType string, size int64) error {
	var fields []domain.FieldError

	if name == "" {
		fields = append(fields, domain.FieldError{Field: "file", Message: "file name is required"})
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		fields = append(fields, domain.FieldError{Field: "file", Message: "file name contains path traversal characters"})
	}
	if size == 0 {
		fields = append(fields, domain.FieldError{Field: "file", Message: "file cannot be empty"})
	}
	if size > s.cfg.MaxSize {
		fields = append(fields, domain.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("file size must be less than %dMB", s.cfg.MaxSize/(1024*1024)),
		})
	}
	if _, ok := AllowedMimeTypes[mimeType]; !ok {
		fields = append(fields, domain.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("file type %s is not allowed", mimeType),
		})
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// blobCtx bounds a storage operation by the configured I/O timeout.
func (s *fileService) blobCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.IOTimeout)
}

// mapDeadline converts a deadline expiry into the retryable timeout error.
func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrTimeout, "storage operation exceeded deadline")
	}
	return err
}
