package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/repository"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/storage"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/audit"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLifecycleService_DailyBackupSweep_CopiesEveryFile(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockBlobs := storage.NewMockBlobStore()
	mockAudit := audit.NewMockRecorder()
	service := lifecycle.NewLifecycleService(repository.NewMockUnitOfWork(), mockBlobs, mockAudit, testCfg(), testLogger())

	today := time.Now().UTC().Format("2006-01-02")
	paths := []string{"files/private/a.pdf", "files/private/b.pdf"}

	mockBlobs.On("ListStored", ctx).Return(paths, nil)
	for _, p := range paths {
		mockBlobs.On("Backup", mock.Anything, p, today).Return(nil)
	}
	mockAudit.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditDailyBackupCompleted && e.UserID == nil
	})).Return()

	// Act
	err := service.DailyBackupSweep(ctx)

	// Assert
	assert.NoError(t, err)
	mockBlobs.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestLifecycleService_DailyBackupSweep_ContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	mockBlobs := storage.NewMockBlobStore()
	mockAudit := audit.NewMockRecorder().Relaxed()
	service := lifecycle.NewLifecycleService(repository.NewMockUnitOfWork(), mockBlobs, mockAudit, testCfg(), testLogger())

	today := time.Now().UTC().Format("2006-01-02")

	mockBlobs.On("ListStored", ctx).Return([]string{"bad.pdf", "good.pdf"}, nil)
	mockBlobs.On("Backup", mock.Anything, "bad.pdf", today).Return(errors.New("io error"))
	mockBlobs.On("Backup", mock.Anything, "good.pdf", today).Return(nil)

	err := service.DailyBackupSweep(ctx)

	// One bad file never fails the sweep; the rest still gets copied.
	assert.NoError(t, err)
	mockBlobs.AssertExpectations(t)
}

func TestLifecycleService_DailyBackupSweep_ListFailureAudited(t *testing.T) {
	ctx := context.Background()
	mockBlobs := storage.NewMockBlobStore()
	mockAudit := audit.NewMockRecorder()
	service := lifecycle.NewLifecycleService(repository.NewMockUnitOfWork(), mockBlobs, mockAudit, testCfg(), testLogger())

	listErr := errors.New("storage offline")
	mockBlobs.On("ListStored", ctx).Return([]string(nil), listErr)
	mockAudit.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditDailyBackupFailed
	})).Return()

	err := service.DailyBackupSweep(ctx)

	assert.ErrorIs(t, err, listErr)
	mockAudit.AssertExpectations(t)
}

func TestLifecycleService_PruneBackups_RemovesOnlyExpired(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockBlobs := storage.NewMockBlobStore()
	mockAudit := audit.NewMockRecorder().Relaxed()
	service := lifecycle.NewLifecycleService(repository.NewMockUnitOfWork(), mockBlobs, mockAudit, testCfg(), testLogger())

	now := time.Now().UTC()
	old := now.AddDate(0, 0, -45).Format("2006-01-02")
	recent := now.AddDate(0, 0, -5).Format("2006-01-02")

	mockBlobs.On("ListBackupDates", ctx).Return([]string{old, recent, "not-a-date"}, nil)
	mockBlobs.On("DeleteBackupDate", ctx, old).Return(nil)

	// Act
	err := service.PruneBackups(ctx, 30)

	// Assert
	assert.NoError(t, err)
	mockBlobs.AssertExpectations(t)
	mockBlobs.AssertNotCalled(t, "DeleteBackupDate", ctx, recent)
	mockBlobs.AssertNotCalled(t, "DeleteBackupDate", ctx, "not-a-date")
}

func TestLifecycleService_PruneBackups_InvalidRetention(t *testing.T) {
	service := lifecycle.NewLifecycleService(repository.NewMockUnitOfWork(), storage.NewMockBlobStore(), audit.NewMockRecorder(), testCfg(), testLogger())

	err := service.PruneBackups(context.Background(), 0)

	assert.Error(t, err)
}
