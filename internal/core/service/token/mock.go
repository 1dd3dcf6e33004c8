package token

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockIssuer is a mock implementation of port.TokenIssuer
type MockIssuer struct {
	mock.Mock
}

func NewMockIssuer() *MockIssuer {
	return &MockIssuer{}
}

func (m *MockIssuer) Issue(fileID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	args := m.Called(fileID, ttl)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockIssuer) Validate(tok string) (uuid.UUID, time.Time, error) {
	args := m.Called(tok)
	return args.Get(0).(uuid.UUID), args.Get(1).(time.Time), args.Error(2)
}
