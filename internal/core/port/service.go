package port

import (
	"context"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/access"
	"github.com/google/uuid"
)

// RequestMeta carries caller metadata recorded in the audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// UploadRequest is the input to FileService.Upload.
type UploadRequest struct {
	Content      []byte
	OriginalName string
	MimeType     string
	Description  string
	Tags         []string
	UserID       uuid.UUID
	// DelegateOwner is set when uploading on behalf of another user.
	DelegateOwner *uuid.UUID
	Meta          RequestMeta
}

// DownloadResult is the byte stream plus the metadata needed to serve it.
type DownloadResult struct {
	File    *domain.File
	Content []byte
}

// FileService is an interface to define the generic file operations.
type FileService interface {
	Upload(ctx context.Context, req UploadRequest) (*domain.File, error)
	Download(ctx context.Context, fileID uuid.UUID, actor access.Actor, forceDownload bool, meta RequestMeta) (*DownloadResult, error)
	Stat(ctx context.Context, fileID uuid.UUID, actor access.Actor) (*domain.File, error)
	IssueSignedURL(ctx context.Context, fileID uuid.UUID, actor access.Actor, meta RequestMeta) (string, time.Time, error)
	Search(ctx context.Context, ownerID uuid.UUID, q domain.FileSearchQuery) ([]domain.File, int, error)
	Trash(ctx context.Context, ownerID uuid.UUID) ([]domain.File, error)
}

// CreateDocumentRequest is the input to DocumentService.Create.
type CreateDocumentRequest struct {
	Title       string
	Description string
	Type        domain.DocumentType
	Content     []byte
	FileName    string
	MimeType    string
	UserID      uuid.UUID
	Meta        RequestMeta
}

// DocumentWithSteps bundles a document and its ordered step log.
type DocumentWithSteps struct {
	Document *domain.Document
	Steps    []domain.VerificationStep
}

// DocumentService is an interface to define the verification state machine
// and document operations.
type DocumentService interface {
	Create(ctx context.Context, req CreateDocumentRequest) (*domain.Document, error)
	Get(ctx context.Context, id uuid.UUID, meta RequestMeta) (*DocumentWithSteps, error)
	GetByShareableLink(ctx context.Context, link string) (*DocumentWithSteps, error)
	Transition(ctx context.Context, id uuid.UUID, to domain.VerificationStatus, anchor *domain.Anchor, actorID *uuid.UUID, meta RequestMeta) (*domain.Document, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.DocumentFilter) ([]domain.Document, error)
	Stats(ctx context.Context, userID uuid.UUID) (*domain.DocumentStats, error)
	HashArtifact(ctx context.Context, name string) (string, error)
}

// LifecycleService is an interface to define soft-delete, restore and the
// backup batch operations.
type LifecycleService interface {
	SoftDelete(ctx context.Context, fileID, actorID uuid.UUID, meta RequestMeta) error
	Restore(ctx context.Context, fileID, actorID uuid.UUID, meta RequestMeta) error
	DailyBackupSweep(ctx context.Context) error
	PruneBackups(ctx context.Context, retainDays int) error
}

// AuditRecorder records an audit entry. Implementations must swallow write
// failures: auditing is never fatal to the triggering operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}

// TokenIssuer issues and validates short-lived signed file access tokens.
type TokenIssuer interface {
	Issue(fileID uuid.UUID, ttl time.Duration) (string, time.Time, error)
	Validate(token string) (uuid.UUID, time.Time, error)
}

// CounterStore is a pluggable {count, windowResetAt} counter keyed by client,
// swappable for a shared external store in multi-instance deployments.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// EventPublisher publishes document lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.DocumentEvent) error
}

// MessageService handles one raw broker message.
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}
