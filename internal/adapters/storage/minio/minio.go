// Package minio implements blob storage on a MinIO (or any S3-compatible)
// bucket using the same key layout as the local adapter: files/private,
// files/hashes and backups/<date>.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/config"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	privatePrefix = "files/private/"
	hashesPrefix  = "files/hashes/"
	backupsPrefix = "backups/"

	maxBaseLen = 20
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

func sanitizeBase(originalName string) string {
	base := strings.TrimSuffix(path.Base(originalName), path.Ext(originalName))
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

func storageName(prefix, originalName, ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s_%d_%s_%s%s", prefix, time.Now().UnixMilli(), suffix, sanitizeBase(originalName), ext)
}

// validKey rejects keys with traversal segments or ones outside the known
// prefixes. Object stores do not resolve "..", but a poisoned key must not
// round-trip into a signed URL or audit record.
func validKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", domain.ErrPathViolation, key)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

// Save persists content under files/private and returns the object key.
func (a *Adapter) Save(ctx context.Context, content []byte, originalName string) (string, error) {
	key := privatePrefix + storageName("main", originalName, path.Ext(originalName))

	_, err := a.client.PutObject(ctx, a.config.BucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return key, nil
}

func (a *Adapter) Read(ctx context.Context, storedPath string) ([]byte, error) {
	if err := validKey(storedPath); err != nil {
		return nil, err
	}
	obj, err := a.client.GetObject(ctx, a.config.BucketName, storedPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, storedPath)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}
	return content, nil
}

func (a *Adapter) Exists(ctx context.Context, storedPath string) (bool, error) {
	if err := validKey(storedPath); err != nil {
		return false, err
	}
	_, err := a.client.StatObject(ctx, a.config.BucketName, storedPath, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}
	return true, nil
}

func (a *Adapter) Delete(ctx context.Context, storedPath string) error {
	if err := validKey(storedPath); err != nil {
		return err
	}
	if err := a.client.RemoveObject(ctx, a.config.BucketName, storedPath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return nil
}

// SaveHashArtifact writes the digest under files/hashes and returns the
// artifact's own name.
func (a *Adapter) SaveHashArtifact(ctx context.Context, digest, originalName string) (string, error) {
	name := storageName("hash", originalName, ".hash")
	key := hashesPrefix + name

	_, err := a.client.PutObject(ctx, a.config.BucketName, key, strings.NewReader(digest), int64(len(digest)), minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return name, nil
}

func (a *Adapter) ReadHashArtifact(ctx context.Context, name string) (string, error) {
	content, err := a.Read(ctx, hashesPrefix+name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (a *Adapter) HashArtifactExists(ctx context.Context, name string) (bool, error) {
	return a.Exists(ctx, hashesPrefix+name)
}

func (a *Adapter) DeleteHashArtifact(ctx context.Context, name string) error {
	return a.Delete(ctx, hashesPrefix+name)
}

// Backup copies an object into the snapshot prefix for date. Server-side
// copy, no bytes pass through this process.
func (a *Adapter) Backup(ctx context.Context, storedPath, date string) error {
	if err := validKey(storedPath); err != nil {
		return err
	}
	dst := minio.CopyDestOptions{
		Bucket: a.config.BucketName,
		Object: backupsPrefix + date + "/" + path.Base(storedPath),
	}
	src := minio.CopySrcOptions{
		Bucket: a.config.BucketName,
		Object: storedPath,
	}
	if _, err := a.client.CopyObject(ctx, dst, src); err != nil {
		if isNoSuchKey(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, storedPath)
		}
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return nil
}

// ListStored returns the keys of every private object.
func (a *Adapter) ListStored(ctx context.Context) ([]string, error) {
	var keys []string
	for obj := range a.client.ListObjects(ctx, a.config.BucketName, minio.ListObjectsOptions{Prefix: privatePrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageRead, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// ListBackupDates returns the distinct snapshot dates present in the bucket.
func (a *Adapter) ListBackupDates(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var dates []string
	for obj := range a.client.ListObjects(ctx, a.config.BucketName, minio.ListObjectsOptions{Prefix: backupsPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageRead, obj.Err)
		}
		rest := strings.TrimPrefix(obj.Key, backupsPrefix)
		date, _, ok := strings.Cut(rest, "/")
		if !ok {
			continue
		}
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		dates = append(dates, date)
	}
	return dates, nil
}

// DeleteBackupDate removes every object under one snapshot date.
func (a *Adapter) DeleteBackupDate(ctx context.Context, date string) error {
	if err := validKey(backupsPrefix + date); err != nil {
		return err
	}
	for obj := range a.client.ListObjects(ctx, a.config.BucketName, minio.ListObjectsOptions{Prefix: backupsPrefix + date + "/", Recursive: true}) {
		if obj.Err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStorageRead, obj.Err)
		}
		if err := a.client.RemoveObject(ctx, a.config.BucketName, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
		}
	}
	return nil
}
