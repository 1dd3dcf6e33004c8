package eventbroker

import (
	"context"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of port.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.DocumentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
