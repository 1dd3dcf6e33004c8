package lifecycle

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLifecycleService is a mock implementation of port.LifecycleService
type MockLifecycleService struct {
	mock.Mock
}

func NewMockLifecycleService() *MockLifecycleService {
	return &MockLifecycleService{}
}

func (m *MockLifecycleService) SoftDelete(ctx context.Context, fileID, actorID uuid.UUID, meta port.RequestMeta) error {
	args := m.Called(ctx, fileID, actorID, meta)
	return args.Error(0)
}

func (m *MockLifecycleService) Restore(ctx context.Context, fileID, actorID uuid.UUID, meta port.RequestMeta) error {
	args := m.Called(ctx, fileID, actorID, meta)
	return args.Error(0)
}

func (m *MockLifecycleService) DailyBackupSweep(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleService) PruneBackups(ctx context.Context, retainDays int) error {
	args := m.Called(ctx, retainDays)
	return args.Error(0)
}
