// Package local implements blob storage on the local filesystem. Raw files
// live under files/private, detached hash artifacts under files/hashes and
// date-stamped backup snapshots under backups.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
)

const (
	privateDir = "files/private"
	hashesDir  = "files/hashes"
	backupsDir = "backups"

	// maxBaseLen is how much of the sanitized original name survives in a
	// generated storage name.
	maxBaseLen = 20
)

// Adapter is a filesystem-backed blob store rooted at a single directory.
type Adapter struct {
	root   string
	logger *slog.Logger
}

// NewAdapter creates the storage layout under root.
func NewAdapter(root string, logger *slog.Logger) (*Adapter, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("could not resolve storage root: %w", err)
	}
	for _, dir := range []string{privateDir, hashesDir, backupsDir} {
		if err := os.MkdirAll(filepath.Join(abs, dir), 0o750); err != nil {
			return nil, fmt.Errorf("could not create storage directory %s: %w", dir, err)
		}
	}
	return &Adapter{root: abs, logger: logger}, nil
}

// resolve maps a stored path to an absolute path, rejecting anything that
// escapes the storage root.
func (a *Adapter) resolve(storedPath string) (string, error) {
	if storedPath == "" || filepath.IsAbs(storedPath) {
		return "", fmt.Errorf("%w: %q", domain.ErrPathViolation, storedPath)
	}
	full := filepath.Join(a.root, filepath.Clean(storedPath))
	if !strings.HasPrefix(full, a.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", domain.ErrPathViolation, storedPath)
	}
	return full, nil
}

// sanitizeBase strips the extension, replaces anything outside [a-zA-Z0-9_-]
// with underscores and truncates the remainder.
func sanitizeBase(originalName string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := b.String()
	if len(s) > maxBaseLen {
		s = s[:maxBaseLen]
	}
	if s == "" {
		s = "file"
	}
	return s
}

// storageName builds a collision-resistant name from a timestamp, a random
// suffix and a sanitized slice of the original name.
func storageName(prefix, originalName, ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s_%d_%s_%s%s", prefix, time.Now().UnixMilli(), suffix, sanitizeBase(originalName), ext)
}

// writeFile writes content with the temp file, fsync, atomic rename pattern
// so readers never observe a partial file.
func writeFile(fullPath string, content []byte) error {
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: could not create temp file: %v", domain.ErrStorageWrite, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: fsync failed: %v", domain.ErrStorageWrite, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename failed: %v", domain.ErrStorageWrite, err)
	}
	return nil
}

// Save persists content under files/private and returns the stored path.
func (a *Adapter) Save(ctx context.Context, content []byte, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	storedPath := filepath.Join(privateDir, storageName("main", originalName, filepath.Ext(originalName)))
	full, err := a.resolve(storedPath)
	if err != nil {
		return "", err
	}
	if err := writeFile(full, content); err != nil {
		return "", err
	}
	return filepath.ToSlash(storedPath), nil
}

func (a *Adapter) Read(ctx context.Context, storedPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := a.resolve(storedPath)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, storedPath)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}
	return content, nil
}

func (a *Adapter) Exists(ctx context.Context, storedPath string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	full, err := a.resolve(storedPath)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}
	return true, nil
}

// Delete removes a stored file. Deleting a missing file is not an error.
func (a *Adapter) Delete(ctx context.Context, storedPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := a.resolve(storedPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return nil
}

// SaveHashArtifact writes the digest as plain text under files/hashes and
// returns the artifact's filename.
func (a *Adapter) SaveHashArtifact(ctx context.Context, digest, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := storageName("hash", originalName, ".hash")
	full, err := a.resolve(filepath.Join(hashesDir, name))
	if err != nil {
		return "", err
	}
	if err := writeFile(full, []byte(digest)); err != nil {
		return "", err
	}
	return name, nil
}

func (a *Adapter) ReadHashArtifact(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := a.resolve(filepath.Join(hashesDir, name))
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}
	return string(content), nil
}

func (a *Adapter) HashArtifactExists(ctx context.Context, name string) (bool, error) {
	return a.Exists(ctx, filepath.Join(hashesDir, name))
}

func (a *Adapter) DeleteHashArtifact(ctx context.Context, name string) error {
	return a.Delete(ctx, filepath.Join(hashesDir, name))
}

// Backup copies a stored file into the snapshot directory for date,
// overwriting any same-day copy.
func (a *Adapter) Backup(ctx context.Context, storedPath, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := a.resolve(storedPath)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, storedPath)
		}
		return fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}

	dstDir, err := a.resolve(filepath.Join(backupsDir, date))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dstDir, 0o750); err != nil {
		return fmt.Errorf("%w: could not create snapshot directory: %v", domain.ErrStorageWrite, err)
	}
	return writeFile(filepath.Join(dstDir, filepath.Base(storedPath)), content)
}

// ListStored returns the stored paths of every private file.
func (a *Adapter) ListStored(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(a.root, privateDir))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		paths = append(paths, privateDir+"/"+e.Name())
	}
	return paths, nil
}

// ListBackupDates returns the names of all snapshot directories.
func (a *Adapter) ListBackupDates(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(a.root, backupsDir))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dates = append(dates, e.Name())
		}
	}
	return dates, nil
}

// DeleteBackupDate removes an entire snapshot directory.
func (a *Adapter) DeleteBackupDate(ctx context.Context, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := a.resolve(filepath.Join(backupsDir, date))
	if err != nil {
		return err
	}
	if err := os.RemoveAll(full); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return nil
}
