package document

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
)

// V1DocumentWithStepsResponse is a document with its ordered step log
type V1DocumentWithStepsResponse struct {
	Document V1DocumentResponse `json:"document"`
	Steps    []V1StepResponse   `json:"steps"`
}

// GetDocumentV1 is the function that returns a document with its step log.
func (h *HandlerV1) GetDocumentV1(w http.ResponseWriter, r *http.Request) {

	if _, ok := auth.UserID(r.Context()); !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	documentID, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	result, err := h.documentService.Get(r.Context(), documentID, requestMeta(r))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "document not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting document", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1DocumentWithStepsResponse{
			Document: toDocumentResponse(result.Document),
			Steps:    toStepResponses(result.Steps),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

// GetSharedDocumentV1 is the function that serves the public verify page
// lookup. Possession of the shareable link is the only credential; the raw
// file bytes are never exposed here.
func (h *HandlerV1) GetSharedDocumentV1(w http.ResponseWriter, r *http.Request) {

	link := chi.URLParam(r, "link")
	if link == "" {
		http.Error(w, "link is required", http.StatusBadRequest)
		return
	}

	result, err := h.documentService.GetByShareableLink(r.Context(), link)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "document not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting shared document", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1DocumentWithStepsResponse{
			Document: toDocumentResponse(result.Document),
			Steps:    toStepResponses(result.Steps),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

// GetHashArtifactV1 is the function that serves a detached hash artifact by
// its stored name.
func (h *HandlerV1) GetHashArtifactV1(w http.ResponseWriter, r *http.Request) {

	name := chi.URLParam(r, "name")
	if name == "" {
		http.Error(w, "artifact name is required", http.StatusBadRequest)
		return
	}

	hash, err := h.documentService.HashArtifact(r.Context(), name)
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrPathViolation):
		http.Error(w, "artifact not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error reading hash artifact", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		// The digest never changes once written, so anyone may cache it
		// for a year.
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(hash)); err != nil {
			h.logger.Error("error writing response", "error", err)
		}
		return
	}
}
