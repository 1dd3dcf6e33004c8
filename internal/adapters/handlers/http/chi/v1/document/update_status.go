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

// V1UpdateStatusRequest is the request to move a document through the
// verification state machine
type V1UpdateStatusRequest struct {
	Status string `json:"status"`
	Anchor *struct {
		BlockchainHash  string `json:"blockchain_hash"`
		TransactionID   string `json:"transaction_id"`
		BlockNumber     string `json:"block_number"`
		NetworkID       string `json:"network_id"`
		ContractAddress string `json:"contract_address"`
	} `json:"anchor,omitempty"`
}

// UpdateStatusV1 is the function that handles a status transition request.
func (h *HandlerV1) UpdateStatusV1(w http.ResponseWriter, r *http.Request) {

	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	documentID, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	var req V1UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	var anchor *domain.Anchor
	if req.Anchor != nil {
		anchor = &domain.Anchor{
			BlockchainHash:  req.Anchor.BlockchainHash,
			TransactionID:   req.Anchor.TransactionID,
			BlockNumber:     req.Anchor.BlockNumber,
			NetworkID:       req.Anchor.NetworkID,
			ContractAddress: req.Anchor.ContractAddress,
		}
	}

	updated, err := h.documentService.Transition(r.Context(), documentID, domain.VerificationStatus(req.Status), anchor, &userID, requestMeta(r))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "document not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrIllegalTransition):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error updating document status", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := toDocumentResponse(updated)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
