package file_test

import (
	"context"
	"testing"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/repository"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/storage"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/access"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/audit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func liveFile(ownerID uuid.UUID, content []byte) *domain.File {
	return &domain.File{
		ID:           uuid.New(),
		OriginalName: "report.pdf",
		MimeType:     "application/pdf",
		StoredPath:   "files/private/main_1_aa_report.pdf",
		SizeBytes:    int64(len(content)),
		Owners:       domain.Owners{Primary: ownerID},
	}
}

func TestFileService_Download_OwnerView(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockBlobs := storage.NewMockBlobStore()
	mockAudit := audit.NewMockRecorder()
	service := newTestService(mockUow, mockBlobs, mockAudit)

	ownerID := uuid.New()
	content := []byte("pdf bytes")
	f := liveFile(ownerID, content)

	mockUow.Files.On("FindByID", ctx, f.ID).Return(f, nil)
	mockBlobs.On("Exists", mock.Anything, f.StoredPath).Return(true, nil)
	mockBlobs.On("Read", mock.Anything, f.StoredPath).Return(content, nil)
	mockAudit.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditFileViewed && e.UserID != nil && *e.UserID == ownerID
	})).Return()

	// Act
	res, err := service.Download(ctx, f.ID, access.SessionActor(ownerID), false, port.RequestMeta{})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, content, res.Content)
	assert.Equal(t, f, res.File)
	mockAudit.AssertExpectations(t)
}

func TestFileService_Download_ForceDownloadAuditsDownload(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockBlobs := storage.NewMockBlobStore()
	mockAudit := audit.NewMockRecorder()
	service := newTestService(mockUow, mockBlobs, mockAudit)

	ownerID := uuid.New()
	content := []byte("pdf bytes")
	f := liveFile(ownerID, content)

	mockUow.Files.On("FindByID", ctx, f.ID).Return(f, nil)
	mockBlobs.On("Exists", mock.Anything, f.StoredPath).Return(true, nil)
	mockBlobs.On("Read", mock.Anything, f.StoredPath).Return(content, nil)
	mockAudit.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditFileDownloaded
	})).Return()

	_, err := service.Download(ctx, f.ID, access.SessionActor(ownerID), true, port.RequestMeta{})

	assert.NoError(t, err)
	mockAudit.AssertExpectations(t)
}

func TestFileService_Download_TokenActorAuditsAnonymously(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockBlobs := storage.NewMockBlobStore()
	mockAudit := audit.NewMockRecorder()
	service := newTestService(mockUow, mockBlobs, mockAudit)

	content := []byte("pdf bytes")
	f := liveFile(uuid.New(), content)

	mockUow.Files.On("FindByID", ctx, f.ID).Return(f, nil)
	mockBlobs.On("Exists", mock.Anything, f.StoredPath).Return(true, nil)
	mockBlobs.On("Read", mock.Anything, f.StoredPath).Return(content, nil)
	mockAudit.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditFileDownloadedSigned && e.UserID == nil
	})).Return()

	// Act: the bearer of a valid token for this file, no session.
	res, err := service.Download(ctx, f.ID, access.TokenActor(f.ID), true, port.RequestMeta{})

	assert.NoError(t, err)
	assert.Equal(t, content, res.Content)
	mockAudit.AssertExpectations(t)
}

func TestFileService_Download_NonOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockBlobs := storage.NewMockBlobStore()
	service := newTestService(mockUow, mockBlobs, audit.NewMockRecorder())

	f := liveFile(uuid.New(), []byte("x"))
	mockUow.Files.On("FindByID", ctx, f.ID).Return(f, nil)

	_, err := service.Download(ctx, f.ID, access.SessionActor(uuid.New()), false, port.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	mockBlobs.AssertNotCalled(t, "Read", mock.Anything, mock.Anything)
}

func TestFileService_Download_SoftDeletedIsGone(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockBlobs := storage.NewMockBlobStore()
	service := newTestService(mockUow, mockBlobs, audit.NewMockRecorder())

	ownerID := uuid.New()
	f := liveFile(ownerID, []byte("x"))
	deletedAt := time.Now()
	f.DeletedAt = &deletedAt

	mockUow.Files.On("FindByID", ctx, f.ID).Return(f, nil)

	// Even the owner cannot read a soft-deleted file directly.
	_, err := service.Download(ctx, f.ID, access.SessionActor(ownerID), false, port.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrGone)
}

func TestFileService_Download_MissingBlobIsNotFound(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockBlobs := storage.NewMockBlobStore()
	service := newTestService(mockUow, mockBlobs, audit.NewMockRecorder())

	ownerID := uuid.New()
	f := liveFile(ownerID, []byte("x"))

	mockUow.Files.On("FindByID", ctx, f.ID).Return(f, nil)
	mockBlobs.On("Exists", mock.Anything, f.StoredPath).Return(false, nil)

	_, err := service.Download(ctx, f.ID, access.SessionActor(ownerID), false, port.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileService_Download_SizeMismatchFailsClosed(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockBlobs := storage.NewMockBlobStore()
	mockAudit := audit.NewMockRecorder()
	service := newTestService(mockUow, mockBlobs, mockAudit)

	ownerID := uuid.New()
	f := liveFile(ownerID, []byte("expected content"))

	mockUow.Files.On("FindByID", ctx, f.ID).Return(f, nil)
	mockBlobs.On("Exists", mock.Anything, f.StoredPath).Return(true, nil)
	mockBlobs.On("Read", mock.Anything, f.StoredPath).Return([]byte("truncated"), nil)

	res, err := service.Download(ctx, f.ID, access.SessionActor(ownerID), false, port.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrIntegrity)
	assert.Nil(t, res)
	mockAudit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestFileService_Stat_Success(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockBlobs := storage.NewMockBlobStore()
	service := newTestService(mockUow, mockBlobs, audit.NewMockRecorder())

	ownerID := uuid.New()
	f := liveFile(ownerID, []byte("x"))

	mockUow.Files.On("FindByID", ctx, f.ID).Return(f, nil)
	mockBlobs.On("Exists", mock.Anything, f.StoredPath).Return(true, nil)

	got, err := service.Stat(ctx, f.ID, access.SessionActor(ownerID))

	assert.NoError(t, err)
	assert.Equal(t, f, got)
	mockBlobs.AssertNotCalled(t, "Read", mock.Anything, mock.Anything)
}
