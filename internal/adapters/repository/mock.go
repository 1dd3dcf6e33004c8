package repository

import (
	"context"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

func NewMockFileRepository() *MockFileRepository {
	return &MockFileRepository{}
}

func (m *MockFileRepository) Create(ctx context.Context, file *domain.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.File), args.Error(1)
}

func (m *MockFileRepository) Search(ctx context.Context, ownerID uuid.UUID, q domain.FileSearchQuery) ([]domain.File, int, error) {
	args := m.Called(ctx, ownerID, q)
	return args.Get(0).([]domain.File), args.Int(1), args.Error(2)
}

func (m *MockFileRepository) ListTrash(ctx context.Context, ownerID uuid.UUID) ([]domain.File, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.File), args.Error(1)
}

func (m *MockFileRepository) SetDeletedAt(ctx context.Context, id uuid.UUID, deletedAt *time.Time) error {
	args := m.Called(ctx, id, deletedAt)
	return args.Error(0)
}

type MockDocumentRepository struct {
	mock.Mock
}

func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{}
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByShareableLink(ctx context.Context, link string) (*domain.Document, error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ExistsByHash(ctx context.Context, contentHash string) (bool, error) {
	args := m.Called(ctx, contentHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, anchor *domain.Anchor, verifiedAt *time.Time) error {
	args := m.Called(ctx, id, status, anchor, verifiedAt)
	return args.Error(0)
}

func (m *MockDocumentRepository) List(ctx context.Context, userID uuid.UUID, filter domain.DocumentFilter) ([]domain.Document, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) Stats(ctx context.Context, userID uuid.UUID) (*domain.DocumentStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentStats), args.Error(1)
}

type MockStepRepository struct {
	mock.Mock
}

func NewMockStepRepository() *MockStepRepository {
	return &MockStepRepository{}
}

func (m *MockStepRepository) Append(ctx context.Context, step *domain.VerificationStep) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

func (m *MockStepRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.VerificationStep, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).([]domain.VerificationStep), args.Error(1)
}

func (m *MockStepRepository) CloseInFlight(ctx context.Context, documentID uuid.UUID, status domain.StepStatus, completedAt time.Time) error {
	args := m.Called(ctx, documentID, status, completedAt)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockUnitOfWork hands out the mock repositories directly; Execute runs the
// callback against itself, so transactional code paths are exercised without
// a database.
type MockUnitOfWork struct {
	mock.Mock
	Files     *MockFileRepository
	Documents *MockDocumentRepository
	Steps     *MockStepRepository
	Audits    *MockAuditRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Files:     NewMockFileRepository(),
		Documents: NewMockDocumentRepository(),
		Steps:     NewMockStepRepository(),
		Audits:    NewMockAuditRepository(),
	}
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	return fn(m)
}

func (m *MockUnitOfWork) FileRepo() port.FileRepository {
	return m.Files
}

func (m *MockUnitOfWork) DocumentRepo() port.DocumentRepository {
	return m.Documents
}

func (m *MockUnitOfWork) StepRepo() port.StepRepository {
	return m.Steps
}

func (m *MockUnitOfWork) AuditRepo() port.AuditRepository {
	return m.Audits
}
