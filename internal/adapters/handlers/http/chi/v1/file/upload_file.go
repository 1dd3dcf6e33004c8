package file

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

const multipartMaxMemory = 32 << 20 // 32mb before spooling to disk

// V1UploadFileResponse is the response to upload a file
type V1UploadFileResponse struct {
	FileID       uuid.UUID `json:"file_id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Description  string    `json:"description,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Keywords     []string  `json:"keywords,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UploadFileV1 is the function that handles multipart file upload
func (h *HandlerV1) UploadFileV1(w http.ResponseWriter, r *http.Request) {

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

	var tags []string
	if raw := r.FormValue("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	var delegateOwner *uuid.UUID
	if raw := r.FormValue("owner_id"); raw != "" {
		ownerID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			http.Error(w, "invalid owner_id", http.StatusBadRequest)
			return
		}
		delegateOwner = &ownerID
	}

	uploaded, err := h.fileService.Upload(r.Context(), port.UploadRequest{
		Content:       content,
		OriginalName:  header.Filename,
		MimeType:      header.Header.Get("Content-Type"),
		Description:   r.FormValue("description"),
		Tags:          tags,
		UserID:        userID,
		DelegateOwner: delegateOwner,
		Meta:          requestMeta(r),
	})
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrTimeout):
		http.Error(w, "storage timeout", http.StatusGatewayTimeout)
		return
	case err != nil:
		h.logger.Error("error uploading file", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1UploadFileResponse{
			FileID:       uploaded.ID,
			OriginalName: uploaded.OriginalName,
			MimeType:     uploaded.MimeType,
			SizeBytes:    uploaded.SizeBytes,
			Description:  uploaded.Description,
			Tags:         uploaded.Tags,
			Keywords:     uploaded.Keywords,
			CreatedAt:    uploaded.CreatedAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
