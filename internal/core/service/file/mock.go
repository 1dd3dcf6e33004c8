package file

import (
	"context"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/access"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFileService is a mock implementation of port.FileService
type MockFileService struct {
	mock.Mock
}

// NewMockFileService creates a new MockFileService
func NewMockFileService() *MockFileService {
	return &MockFileService{}
}

func (m *MockFileService) Upload(ctx context.Context, req port.UploadRequest) (*domain.File, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.File), args.Error(1)
}

func (m *MockFileService) Download(ctx context.Context, fileID uuid.UUID, actor access.Actor, forceDownload bool, meta port.RequestMeta) (*port.DownloadResult, error) {
	args := m.Called(ctx, fileID, actor, forceDownload, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DownloadResult), args.Error(1)
}

func (m *MockFileService) Stat(ctx context.Context, fileID uuid.UUID, actor access.Actor) (*domain.File, error) {
	args := m.Called(ctx, fileID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.File), args.Error(1)
}

func (m *MockFileService) IssueSignedURL(ctx context.Context, fileID uuid.UUID, actor access.Actor, meta port.RequestMeta) (string, time.Time, error) {
	args := m.Called(ctx, fileID, actor, meta)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockFileService) Search(ctx context.Context, ownerID uuid.UUID, q domain.FileSearchQuery) ([]domain.File, int, error) {
	args := m.Called(ctx, ownerID, q)
	return args.Get(0).([]domain.File), args.Int(1), args.Error(2)
}

func (m *MockFileService) Trash(ctx context.Context, ownerID uuid.UUID) ([]domain.File, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.File), args.Error(1)
}
