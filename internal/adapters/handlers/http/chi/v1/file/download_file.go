package file

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/access"
)

// previewCacheSeconds is how long a browser may keep an inline preview.
const previewCacheSeconds = 3600

func writeFileHeaders(w http.ResponseWriter, f *domain.File, forceDownload bool) {
	// Inline previews may sit in the owner's browser cache for a bounded
	// window; forced downloads are never cached.
	disposition := "inline"
	cacheControl := fmt.Sprintf("private, max-age=%d", previewCacheSeconds)
	if forceDownload {
		disposition = "attachment"
		cacheControl = "private, no-store"
	}
	w.Header().Set("Content-Type", f.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(f.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, f.OriginalName))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", cacheControl)
}

// DownloadFileV1 is the function that handles file download. The download
// query flag switches the disposition from inline to attachment.
func (h *HandlerV1) DownloadFileV1(w http.ResponseWriter, r *http.Request) {

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

	forceDownload := r.URL.Query().Get("download") == "true"

	result, err := h.fileService.Download(r.Context(), fileID, access.SessionActor(userID), forceDownload, requestMeta(r))
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
	case errors.Is(err, domain.ErrTimeout):
		http.Error(w, "storage timeout", http.StatusGatewayTimeout)
		return
	case err != nil:
		h.logger.Error("error downloading file", "error", err)
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

// StatFileV1 is the function that handles the HEAD availability check.
func (h *HandlerV1) StatFileV1(w http.ResponseWriter, r *http.Request) {

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

	f, err := h.fileService.Stat(r.Context(), fileID, access.SessionActor(userID))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrGone):
		w.WriteHeader(http.StatusGone)
		return
	case errors.Is(err, domain.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		return
	case err != nil:
		h.logger.Error("error checking file", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	default:
		writeFileHeaders(w, f, false)
		w.WriteHeader(http.StatusOK)
		return
	}
}
