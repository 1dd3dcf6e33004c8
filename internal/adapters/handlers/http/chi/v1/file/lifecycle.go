package file

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
)

// SoftDeleteFileV1 is the function that handles soft delete. The file is
// backed up before it is marked deleted.
func (h *HandlerV1) SoftDeleteFileV1(w http.ResponseWriter, r *http.Request) {

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

	err = h.lifecycleService.SoftDelete(r.Context(), fileID, userID, requestMeta(r))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrGone):
		http.Error(w, "file already deleted", http.StatusGone)
		return
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "access denied", http.StatusForbidden)
		return
	case err != nil:
		h.logger.Error("error soft deleting file", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}

// RestoreFileV1 is the function that brings a soft-deleted file back.
func (h *HandlerV1) RestoreFileV1(w http.ResponseWriter, r *http.Request) {

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

	err = h.lifecycleService.Restore(r.Context(), fileID, userID, requestMeta(r))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrNotDeleted):
		http.Error(w, "file is not deleted", http.StatusConflict)
		return
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "access denied", http.StatusForbidden)
		return
	case err != nil:
		h.logger.Error("error restoring file", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}
