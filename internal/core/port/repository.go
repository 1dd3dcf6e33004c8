package port

import (
	"context"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
)

// FileRepository is an interface to define file record interactions.
// FindByID returns soft-deleted rows as well: callers decide between
// NotFound and Gone.
type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.File, error)
	Search(ctx context.Context, ownerID uuid.UUID, q domain.FileSearchQuery) ([]domain.File, int, error)
	ListTrash(ctx context.Context, ownerID uuid.UUID) ([]domain.File, error)
	SetDeletedAt(ctx context.Context, id uuid.UUID, deletedAt *time.Time) error
}

// DocumentRepository is an interface to define document record interactions.
// Create maps a content-hash unique violation to domain.ErrDuplicateContent,
// so a race between identical uploads leaves exactly one record.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	FindByShareableLink(ctx context.Context, link string) (*domain.Document, error)
	ExistsByHash(ctx context.Context, contentHash string) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, anchor *domain.Anchor, verifiedAt *time.Time) error
	List(ctx context.Context, userID uuid.UUID, filter domain.DocumentFilter) ([]domain.Document, error)
	Stats(ctx context.Context, userID uuid.UUID) (*domain.DocumentStats, error)
}

// StepRepository is an interface to define verification step interactions.
// The step log is append-only: only status, message and completed_at of an
// existing step may change, via CloseInFlight.
type StepRepository interface {
	Append(ctx context.Context, step *domain.VerificationStep) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.VerificationStep, error)
	CloseInFlight(ctx context.Context, documentID uuid.UUID, status domain.StepStatus, completedAt time.Time) error
}

// AuditRepository is an interface to define audit log interactions.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
