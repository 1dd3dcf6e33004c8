package local_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/storage/local"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T) *local.Adapter {
	t.Helper()
	a, err := local.NewAdapter(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return a
}

func TestAdapter_SaveAndRead(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()
	content := []byte("raw document bytes")

	storedPath, err := a.Save(ctx, content, "My Contract (v2).pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(storedPath, "files/private/main_"), storedPath)
	assert.True(t, strings.HasSuffix(storedPath, ".pdf"), storedPath)

	got, err := a.Read(ctx, storedPath)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	exists, err := a.Exists(ctx, storedPath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAdapter_SaveGeneratesDistinctNames(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	p1, err := a.Save(ctx, []byte("one"), "same.pdf")
	require.NoError(t, err)
	p2, err := a.Save(ctx, []byte("two"), "same.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
}

func TestAdapter_ReadMissingIsNotFound(t *testing.T) {
	a := newAdapter(t)

	_, err := a.Read(context.Background(), "files/private/nope.pdf")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdapter_PathTraversalRejected(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	for _, p := range []string{"../outside.txt", "files/../../etc/passwd", "/etc/passwd", ""} {
		_, err := a.Read(ctx, p)
		assert.ErrorIs(t, err, domain.ErrPathViolation, p)
	}
}

func TestAdapter_DeleteMissingIsNoError(t *testing.T) {
	a := newAdapter(t)

	err := a.Delete(context.Background(), "files/private/already-gone.pdf")

	assert.NoError(t, err)
}

func TestAdapter_HashArtifactRoundTrip(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	name, err := a.SaveHashArtifact(ctx, "deadbeef", "contract.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "hash_"), name)
	assert.True(t, strings.HasSuffix(name, ".hash"), name)

	exists, err := a.HashArtifactExists(ctx, name)
	require.NoError(t, err)
	assert.True(t, exists)

	digest, err := a.ReadHashArtifact(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", digest)
}

func TestAdapter_BackupAndPrune(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	storedPath, err := a.Save(ctx, []byte("keep me safe"), "important.pdf")
	require.NoError(t, err)

	require.NoError(t, a.Backup(ctx, storedPath, "2026-08-27"))
	// Same-day backup overwrites silently.
	require.NoError(t, a.Backup(ctx, storedPath, "2026-08-27"))
	require.NoError(t, a.Backup(ctx, storedPath, "2026-08-28"))

	dates, err := a.ListBackupDates(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2026-08-27", "2026-08-28"}, dates)

	require.NoError(t, a.DeleteBackupDate(ctx, "2026-08-27"))

	dates, err = a.ListBackupDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-28"}, dates)
}

func TestAdapter_ListStoredSkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	a, err := local.NewAdapter(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	ctx := context.Background()

	storedPath, err := a.Save(ctx, []byte("x"), "a.pdf")
	require.NoError(t, err)

	// A leftover temp file from a crashed write must not be swept.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "files/private/stale.pdf.tmp"), []byte("partial"), 0o600))

	paths, err := a.ListStored(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{storedPath}, paths)
}

func TestAdapter_BackupMissingSource(t *testing.T) {
	a := newAdapter(t)

	err := a.Backup(context.Background(), "files/private/gone.pdf", "2026-08-28")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
