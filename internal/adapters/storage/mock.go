package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBlobStore is a mock implementation of port.BlobStore
type MockBlobStore struct {
	mock.Mock
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{}
}

func (m *MockBlobStore) Save(ctx context.Context, content []byte, originalName string) (string, error) {
	args := m.Called(ctx, content, originalName)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Read(ctx context.Context, storedPath string) ([]byte, error) {
	args := m.Called(ctx, storedPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStore) Exists(ctx context.Context, storedPath string) (bool, error) {
	args := m.Called(ctx, storedPath)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, storedPath string) error {
	args := m.Called(ctx, storedPath)
	return args.Error(0)
}

func (m *MockBlobStore) SaveHashArtifact(ctx context.Context, digest, originalName string) (string, error) {
	args := m.Called(ctx, digest, originalName)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) ReadHashArtifact(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) HashArtifactExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlobStore) DeleteHashArtifact(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockBlobStore) Backup(ctx context.Context, storedPath, date string) error {
	args := m.Called(ctx, storedPath, date)
	return args.Error(0)
}

func (m *MockBlobStore) ListStored(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBlobStore) ListBackupDates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBlobStore) DeleteBackupDate(ctx context.Context, date string) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}
