package verifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/document"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/verifier"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eventBytes(t *testing.T, event domain.DocumentEvent) []byte {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func TestVerifierService_PendingMovesToProcessing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockDocs := document.NewMockDocumentService()
	service := verifier.NewVerifierService(mockDocs, testLogger())

	docID := uuid.New()
	mockDocs.On("Transition", ctx, docID, domain.StatusProcessing, (*domain.Anchor)(nil), (*uuid.UUID)(nil), port.RequestMeta{}).
		Return(&domain.Document{ID: docID, Status: domain.StatusProcessing}, nil)

	// Act
	err := service.HandleMessage(ctx, eventBytes(t, domain.DocumentEvent{
		DocumentID:  docID,
		Status:      domain.StatusPending,
		ContentHash: "abc",
		OccurredAt:  time.Now(),
	}))

	// Assert
	assert.NoError(t, err)
	mockDocs.AssertExpectations(t)
}

func TestVerifierService_ProcessingAnchorsAndVerifies(t *testing.T) {
	ctx := context.Background()
	mockDocs := document.NewMockDocumentService()
	service := verifier.NewVerifierService(mockDocs, testLogger())

	docID := uuid.New()
	mockDocs.On("Transition", ctx, docID, domain.StatusVerified, mock.MatchedBy(func(a *domain.Anchor) bool {
		return a != nil && !a.Empty() && a.BlockchainHash != "" && a.TransactionID != ""
	}), (*uuid.UUID)(nil), port.RequestMeta{}).
		Return(&domain.Document{ID: docID, Status: domain.StatusVerified}, nil)

	err := service.HandleMessage(ctx, eventBytes(t, domain.DocumentEvent{
		DocumentID:  docID,
		Status:      domain.StatusProcessing,
		ContentHash: "abc",
	}))

	assert.NoError(t, err)
	mockDocs.AssertExpectations(t)
}

func TestVerifierService_TerminalStatusesIgnored(t *testing.T) {
	for _, status := range []domain.VerificationStatus{domain.StatusVerified, domain.StatusFailed, domain.StatusExpired} {
		t.Run(string(status), func(t *testing.T) {
			mockDocs := document.NewMockDocumentService()
			service := verifier.NewVerifierService(mockDocs, testLogger())

			err := service.HandleMessage(context.Background(), eventBytes(t, domain.DocumentEvent{
				DocumentID: uuid.New(),
				Status:     status,
			}))

			assert.NoError(t, err)
			mockDocs.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestVerifierService_StaleEventAcked(t *testing.T) {
	// A redelivery arrives after the document already advanced; the illegal
	// transition must not bounce the message back to the broker.
	ctx := context.Background()
	mockDocs := document.NewMockDocumentService()
	service := verifier.NewVerifierService(mockDocs, testLogger())

	docID := uuid.New()
	mockDocs.On("Transition", ctx, docID, domain.StatusProcessing, (*domain.Anchor)(nil), (*uuid.UUID)(nil), port.RequestMeta{}).
		Return(nil, domain.ErrIllegalTransition)

	err := service.HandleMessage(ctx, eventBytes(t, domain.DocumentEvent{
		DocumentID: docID,
		Status:     domain.StatusPending,
	}))

	assert.NoError(t, err)
}

func TestVerifierService_TransientErrorPropagates(t *testing.T) {
	ctx := context.Background()
	mockDocs := document.NewMockDocumentService()
	service := verifier.NewVerifierService(mockDocs, testLogger())

	docID := uuid.New()
	dbErr := errors.New("connection reset")
	mockDocs.On("Transition", ctx, docID, domain.StatusProcessing, (*domain.Anchor)(nil), (*uuid.UUID)(nil), port.RequestMeta{}).
		Return(nil, dbErr)

	err := service.HandleMessage(ctx, eventBytes(t, domain.DocumentEvent{
		DocumentID: docID,
		Status:     domain.StatusPending,
	}))

	assert.ErrorIs(t, err, dbErr)
}

func TestVerifierService_MalformedPayloadRejected(t *testing.T) {
	service := verifier.NewVerifierService(document.NewMockDocumentService(), testLogger())

	err := service.HandleMessage(context.Background(), []byte("not json"))

	assert.Error(t, err)
}
