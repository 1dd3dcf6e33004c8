package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by the engine.
const (
	AuditFileUploaded           = "FILE_UPLOADED"
	AuditFileViewed             = "FILE_VIEWED"
	AuditFileDownloaded         = "FILE_DOWNLOADED"
	AuditFileDownloadedSigned   = "FILE_DOWNLOADED_SIGNED"
	AuditSignedURLGenerated     = "SIGNED_URL_GENERATED"
	AuditFileSoftDeleted        = "FILE_SOFT_DELETED"
	AuditFileRestored           = "FILE_RESTORED"
	AuditDocumentUploaded       = "DOCUMENT_UPLOADED"
	AuditDocumentAccessed       = "DOCUMENT_ACCESSED"
	AuditDocumentStatusUpdated  = "DOCUMENT_STATUS_UPDATED"
	AuditDailyBackupCompleted   = "DAILY_BACKUP_COMPLETED"
	AuditDailyBackupFailed      = "DAILY_BACKUP_FAILED"
	AuditBackupCleanupCompleted = "BACKUP_CLEANUP_COMPLETED"
)

// AuditEntry is an append-only audit record. A nil UserID marks a
// system-initiated or anonymous action. Entries are never updated or
// deleted, and failures to write one must not fail the triggering operation.
type AuditEntry struct {
	ID         int64
	UserID     *uuid.UUID
	Action     string
	Resource   string
	ResourceID string
	Details    map[string]any
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}
