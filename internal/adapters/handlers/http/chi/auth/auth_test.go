package auth_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestMiddleware(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userID := uuid.New()

	var seenUserID uuid.UUID
	var seenOK bool
	protected := auth.Middleware(testSecret, discardLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, seenOK = auth.UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("success - valid token", func(t *testing.T) {
		// Arrange
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		// Act
		protected.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, seenOK)
		assert.Equal(t, userID, seenUserID)
	})

	t.Run("error - missing header", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		// Act
		protected.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("error - wrong secret", func(t *testing.T) {
		// Arrange
		token := signToken(t, "other-secret", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		// Act
		protected.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("error - expired token", func(t *testing.T) {
		// Arrange
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		// Act
		protected.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("error - subject is not a uuid", func(t *testing.T) {
		// Arrange
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "not-a-uuid",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		// Act
		protected.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
