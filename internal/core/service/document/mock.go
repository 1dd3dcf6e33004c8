package document

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDocumentService is a mock implementation of port.DocumentService
type MockDocumentService struct {
	mock.Mock
}

// NewMockDocumentService creates a new MockDocumentService
func NewMockDocumentService() *MockDocumentService {
	return &MockDocumentService{}
}

func (m *MockDocumentService) Create(ctx context.Context, req port.CreateDocumentRequest) (*domain.Document, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id uuid.UUID, meta port.RequestMeta) (*port.DocumentWithSteps, error) {
	args := m.Called(ctx, id, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DocumentWithSteps), args.Error(1)
}

func (m *MockDocumentService) GetByShareableLink(ctx context.Context, link string) (*port.DocumentWithSteps, error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DocumentWithSteps), args.Error(1)
}

func (m *MockDocumentService) Transition(ctx context.Context, id uuid.UUID, to domain.VerificationStatus, anchor *domain.Anchor, actorID *uuid.UUID, meta port.RequestMeta) (*domain.Document, error) {
	args := m.Called(ctx, id, to, anchor, actorID, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, userID uuid.UUID, filter domain.DocumentFilter) ([]domain.Document, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentService) Stats(ctx context.Context, userID uuid.UUID) (*domain.DocumentStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentStats), args.Error(1)
}

func (m *MockDocumentService) HashArtifact(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}
