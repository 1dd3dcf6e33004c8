package document

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

const multipartMaxMemory = 32 << 20 // 32mb before spooling to disk

// CreateDocumentV1 is the function that registers a document for verification
// from a multipart upload.
func (h *HandlerV1) CreateDocumentV1(w http.ResponseWriter, r *http.Request) {

	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file part is required", http.StatusBadRequest)
		return
	}
	defer part.Close()

	content, err := io.ReadAll(part)
	if err != nil {
		h.logger.Error("error reading upload body", "error", err)
		http.Error(w, "error reading file", http.StatusBadRequest)
		return
	}

	created, err := h.documentService.Create(r.Context(), port.CreateDocumentRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Type:        domain.DocumentType(r.FormValue("type")),
		Content:     content,
		FileName:    header.Filename,
		MimeType:    header.Header.Get("Content-Type"),
		UserID:      userID,
		Meta:        requestMeta(r),
	})
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrDuplicateContent):
		http.Error(w, "document with identical content already exists", http.StatusConflict)
		return
	case errors.Is(err, domain.ErrTimeout):
		http.Error(w, "storage timeout", http.StatusGatewayTimeout)
		return
	case err != nil:
		h.logger.Error("error creating document", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := toDocumentResponse(created)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
