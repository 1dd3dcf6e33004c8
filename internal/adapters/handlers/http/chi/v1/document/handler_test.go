package document_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	documenthandler "github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/v1/document"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/document"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func stubAuth(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func passthrough(next http.Handler) http.Handler { return next }

func storedDocument(userID uuid.UUID) *domain.Document {
	return &domain.Document{
		ID:            uuid.New(),
		Title:         "Employment Contract",
		Type:          domain.DocumentTypeContract,
		FileName:      "contract.pdf",
		FileSize:      2048,
		MimeType:      "application/pdf",
		ContentHash:   "c0ffee",
		Status:        domain.StatusPending,
		ShareableLink: "deadbeef",
		UserID:        userID,
		CreatedAt:     time.Now(),
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestCreateDocumentV1(t *testing.T) {
	userID := uuid.New()

	t.Run("success - create document", func(t *testing.T) {
		// Arrange
		content := []byte("contract body")
		created := storedDocument(userID)

		mockService := document.NewMockDocumentService()
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(req port.CreateDocumentRequest) bool {
			return req.Title == "Employment Contract" &&
				req.Type == domain.DocumentTypeContract &&
				req.FileName == "contract.pdf" &&
				bytes.Equal(req.Content, content) &&
				req.UserID == userID
		})).Return(created, nil)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		body, contentType := multipartBody(t, map[string]string{
			"title": "Employment Contract",
			"type":  "CONTRACT",
		}, "contract.pdf", content)
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp documenthandler.V1DocumentResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, created.ID, resp.DocumentID)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "deadbeef", resp.ShareableLink)
		assert.Nil(t, resp.Anchor)

		mockService.AssertExpectations(t)
	})

	t.Run("error - duplicate content conflicts", func(t *testing.T) {
		// Arrange
		mockService := document.NewMockDocumentService()
		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, domain.ErrDuplicateContent)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		body, contentType := multipartBody(t, map[string]string{"title": "Dup", "type": "CONTRACT"}, "dup.pdf", []byte("same bytes"))
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusConflict, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - validation failure", func(t *testing.T) {
		// Arrange
		mockService := document.NewMockDocumentService()
		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, domain.NewValidationError("type", "unknown document type"))

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		body, contentType := multipartBody(t, map[string]string{"title": "X", "type": "SCROLL"}, "x.pdf", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error - missing file part", func(t *testing.T) {
		// Arrange
		mockService := document.NewMockDocumentService()
		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("title", "No File"))
		require.NoError(t, writer.Close())
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create")
	})
}

func TestGetDocumentV1(t *testing.T) {
	userID := uuid.New()

	t.Run("success - document with steps", func(t *testing.T) {
		// Arrange
		doc := storedDocument(userID)
		completedAt := time.Now()
		steps := []domain.VerificationStep{
			{
				ID:          uuid.New(),
				DocumentID:  doc.ID,
				Type:        domain.StepFileUpload,
				Status:      domain.StepCompleted,
				Metadata:    map[string]any{"file_size": float64(2048)},
				StartedAt:   time.Now().Add(-time.Minute),
				CompletedAt: &completedAt,
			},
		}

		mockService := document.NewMockDocumentService()
		mockService.On("Get", mock.Anything, doc.ID, mock.Anything).
			Return(&port.DocumentWithSteps{Document: doc, Steps: steps}, nil)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/"+doc.ID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var resp documenthandler.V1DocumentWithStepsResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, doc.ID, resp.Document.DocumentID)
		require.Len(t, resp.Steps, 1)
		assert.Equal(t, "FILE_UPLOAD", resp.Steps[0].Type)
		assert.Equal(t, "COMPLETED", resp.Steps[0].Status)

		mockService.AssertExpectations(t)
	})

	t.Run("error - not found", func(t *testing.T) {
		// Arrange
		documentID := uuid.New()
		mockService := document.NewMockDocumentService()
		mockService.On("Get", mock.Anything, documentID, mock.Anything).
			Return(nil, domain.ErrNotFound)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/"+documentID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("success - public lookup by shareable link", func(t *testing.T) {
		// Arrange
		doc := storedDocument(userID)
		mockService := document.NewMockDocumentService()
		mockService.On("GetByShareableLink", mock.Anything, "deadbeef").
			Return(&port.DocumentWithSteps{Document: doc, Steps: []domain.VerificationStep{}}, nil)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		// no auth middleware on the public group is the behavior under test
		h := handler.Routes(func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "authentication required", http.StatusUnauthorized)
			})
		}, passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/public/deadbeef", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - unknown link", func(t *testing.T) {
		// Arrange
		mockService := document.NewMockDocumentService()
		mockService.On("GetByShareableLink", mock.Anything, "unknown").
			Return(nil, domain.ErrNotFound)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/public/unknown", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetHashArtifactV1(t *testing.T) {
	userID := uuid.New()

	t.Run("success - artifact served as text", func(t *testing.T) {
		// Arrange
		mockService := document.NewMockDocumentService()
		mockService.On("HashArtifact", mock.Anything, "hash_123_abc_contract.hash").
			Return("c0ffee", nil)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/hashes/hash_123_abc_contract.hash", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		// The artifact is immutable, so the response is cacheable by anyone
		// for a long horizon.
		assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))
		assert.Equal(t, "c0ffee", w.Body.String())

		mockService.AssertExpectations(t)
	})

	t.Run("error - traversal attempt maps to not found", func(t *testing.T) {
		// Arrange
		mockService := document.NewMockDocumentService()
		mockService.On("HashArtifact", mock.Anything, mock.Anything).
			Return("", domain.ErrPathViolation)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/hashes/..%2Fsecret", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateStatusV1(t *testing.T) {
	userID := uuid.New()

	t.Run("success - verify with anchor", func(t *testing.T) {
		// Arrange
		doc := storedDocument(userID)
		doc.Status = domain.StatusVerified
		verifiedAt := time.Now()
		doc.VerifiedAt = &verifiedAt
		doc.Anchor = domain.Anchor{
			BlockchainHash:  "0xabc",
			TransactionID:   "0xdef",
			BlockNumber:     "42",
			NetworkID:       "1337",
			ContractAddress: "0x123",
		}

		mockService := document.NewMockDocumentService()
		mockService.On("Transition", mock.Anything, doc.ID, domain.StatusVerified,
			mock.MatchedBy(func(anchor *domain.Anchor) bool {
				return anchor != nil && anchor.BlockchainHash == "0xabc" && anchor.NetworkID == "1337"
			}), &userID, mock.Anything).
			Return(doc, nil)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		body := `{"status":"VERIFIED","anchor":{"blockchain_hash":"0xabc","transaction_id":"0xdef","block_number":"42","network_id":"1337","contract_address":"0x123"}}`
		req := httptest.NewRequest(http.MethodPatch, "/"+doc.ID.String()+"/status", bytes.NewBufferString(body))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var resp documenthandler.V1DocumentResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "VERIFIED", resp.Status)
		require.NotNil(t, resp.Anchor)
		assert.Equal(t, "0xabc", resp.Anchor.BlockchainHash)

		mockService.AssertExpectations(t)
	})

	t.Run("error - illegal transition conflicts", func(t *testing.T) {
		// Arrange
		documentID := uuid.New()
		mockService := document.NewMockDocumentService()
		mockService.On("Transition", mock.Anything, documentID, domain.StatusVerified, (*domain.Anchor)(nil), &userID, mock.Anything).
			Return(nil, fmt.Errorf("%w: PENDING -> VERIFIED", domain.ErrIllegalTransition))

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodPatch, "/"+documentID.String()+"/status", bytes.NewBufferString(`{"status":"VERIFIED"}`))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("error - missing status", func(t *testing.T) {
		// Arrange
		mockService := document.NewMockDocumentService()
		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodPatch, "/"+uuid.NewString()+"/status", bytes.NewBufferString(`{}`))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Transition")
	})

	t.Run("error - anchor required for verified", func(t *testing.T) {
		// Arrange
		documentID := uuid.New()
		mockService := document.NewMockDocumentService()
		mockService.On("Transition", mock.Anything, documentID, domain.StatusVerified, (*domain.Anchor)(nil), &userID, mock.Anything).
			Return(nil, domain.NewValidationError("anchor", "anchor is required to verify"))

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodPatch, "/"+documentID.String()+"/status", bytes.NewBufferString(`{"status":"VERIFIED"}`))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListDocumentsV1(t *testing.T) {
	userID := uuid.New()

	t.Run("success - list with filters", func(t *testing.T) {
		// Arrange
		doc := storedDocument(userID)
		mockService := document.NewMockDocumentService()
		mockService.On("List", mock.Anything, userID, domain.DocumentFilter{
			Status: domain.StatusPending,
			Type:   domain.DocumentTypeContract,
			Limit:  5,
		}).Return([]domain.Document{*doc}, nil)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/?status=PENDING&type=CONTRACT&limit=5", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var resp []documenthandler.V1DocumentResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, doc.ID, resp[0].DocumentID)

		mockService.AssertExpectations(t)
	})

	t.Run("error - invalid limit", func(t *testing.T) {
		// Arrange
		mockService := document.NewMockDocumentService()
		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/?limit=many", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "List")
	})
}

func TestGetStatsV1(t *testing.T) {
	userID := uuid.New()

	t.Run("success - per status counts", func(t *testing.T) {
		// Arrange
		stats := &domain.DocumentStats{Total: 4, Pending: 1, Processing: 1, Verified: 2}
		mockService := document.NewMockDocumentService()
		mockService.On("Stats", mock.Anything, userID).Return(stats, nil)

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/stats", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var resp domain.DocumentStats
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 4, resp.Total)
		assert.Equal(t, 2, resp.Verified)

		mockService.AssertExpectations(t)
	})

	t.Run("error - service failure", func(t *testing.T) {
		// Arrange
		mockService := document.NewMockDocumentService()
		mockService.On("Stats", mock.Anything, userID).
			Return(nil, errors.New("database connection lost"))

		handler := documenthandler.NewDocumentHandlerV1(mockService, discardLogger)
		h := handler.Routes(stubAuth(userID), passthrough)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/stats", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
