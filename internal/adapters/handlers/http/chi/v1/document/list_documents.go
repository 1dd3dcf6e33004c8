package document

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
)

// ListDocumentsV1 is the function that lists the caller's documents with
// optional status and type filters.
func (h *HandlerV1) ListDocumentsV1(w http.ResponseWriter, r *http.Request) {

	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	values := r.URL.Query()
	filter := domain.DocumentFilter{
		Status: domain.VerificationStatus(values.Get("status")),
		Type:   domain.DocumentType(values.Get("type")),
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		filter.Limit = n
	}
	if raw := values.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid offset", http.StatusBadRequest)
			return
		}
		filter.Offset = n
	}

	documents, err := h.documentService.List(r.Context(), userID, filter)
	if err != nil {
		h.logger.Error("error listing documents", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := make([]V1DocumentResponse, 0, len(documents))
	for i := range documents {
		resp = append(resp, toDocumentResponse(&documents[i]))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

// GetStatsV1 is the function that returns per-status document counts for the
// caller.
func (h *HandlerV1) GetStatsV1(w http.ResponseWriter, r *http.Request) {

	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	stats, err := h.documentService.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error("error getting document stats", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
