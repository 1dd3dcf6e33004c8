package file

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/access"
)

// V1SignedURLResponse is the response to issue a signed download URL
type V1SignedURLResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	DownloadURL string    `json:"download_url"`
}

// IssueSignedURLV1 is the function that issues a time-limited download token
// for a file the caller owns.
func (h *HandlerV1) IssueSignedURLV1(w http.ResponseWriter, r *http.Request) {

	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	fileID, err := uuid.Parse(chi.URLParam(r, "fileID"))
	if err != nil {
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	token, expiresAt, err := h.fileService.IssueSignedURL(r.Context(), fileID, access.SessionActor(userID), requestMeta(r))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrGone):
		http.Error(w, "file no longer available", http.StatusGone)
		return
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "access denied", http.StatusForbidden)
		return
	case err != nil:
		h.logger.Error("error issuing signed url", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1SignedURLResponse{
			Token:       token,
			ExpiresAt:   expiresAt,
			DownloadURL: "/api/v1/files/signed/" + token,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

// SignedDownloadV1 is the function that serves a file to the anonymous bearer
// of a valid signed token. No session is required.
func (h *HandlerV1) SignedDownloadV1(w http.ResponseWriter, r *http.Request) {

	raw := chi.URLParam(r, "token")
	if raw == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	fileID, _, err := h.tokenIssuer.Validate(raw)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	forceDownload := r.URL.Query().Get("download") == "true"

	result, err := h.fileService.Download(r.Context(), fileID, access.TokenActor(fileID), forceDownload, requestMeta(r))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrGone):
		http.Error(w, "file no longer available", http.StatusGone)
		return
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "access denied", http.StatusForbidden)
		return
	case errors.Is(err, domain.ErrIntegrity):
		h.logger.Error("integrity check failed", "file_id", fileID)
		http.Error(w, "integrity check failed", http.StatusInternalServerError)
		return
	case err != nil:
		h.logger.Error("error serving signed download", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		writeFileHeaders(w, result.File, forceDownload)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(result.Content); err != nil {
			h.logger.Error("error writing file body", "error", err)
		}
		return
	}
}
