package audit

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockRecorder is a mock implementation of port.AuditRecorder
type MockRecorder struct {
	mock.Mock
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

func (m *MockRecorder) Record(ctx context.Context, entry domain.AuditEntry) {
	m.Called(ctx, entry)
}

// Relaxed tells the mock to accept any Record call without prior expectation.
func (m *MockRecorder) Relaxed() *MockRecorder {
	m.On("Record", mock.Anything, mock.Anything).Maybe()
	return m
}
