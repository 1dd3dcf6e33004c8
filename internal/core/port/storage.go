package port

import "context"

// BlobStore is an interface to define raw byte and hash artifact storage.
// Stored paths are opaque and server-generated; implementations must reject
// paths that resolve outside their storage root with domain.ErrPathViolation.
type BlobStore interface {
	// Save persists content under a generated collision-resistant name and
	// returns the stored path. Partial artifacts are cleaned up on failure.
	Save(ctx context.Context, content []byte, originalName string) (string, error)
	Read(ctx context.Context, storedPath string) ([]byte, error)
	Exists(ctx context.Context, storedPath string) (bool, error)
	Delete(ctx context.Context, storedPath string) error

	// SaveHashArtifact writes the digest as a plain-text artifact under the
	// hashes namespace and returns the artifact's own generated filename.
	SaveHashArtifact(ctx context.Context, digest, originalName string) (string, error)
	ReadHashArtifact(ctx context.Context, name string) (string, error)
	HashArtifactExists(ctx context.Context, name string) (bool, error)
	DeleteHashArtifact(ctx context.Context, name string) error

	// Backup copies a stored file into the date-stamped backup namespace,
	// overwriting any same-day copy.
	Backup(ctx context.Context, storedPath, date string) error
	ListStored(ctx context.Context) ([]string, error)
	ListBackupDates(ctx context.Context) ([]string, error)
	DeleteBackupDate(ctx context.Context, date string) error
}
