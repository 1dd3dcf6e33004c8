package file

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
)

// V1FileResponse is a file record in listing responses
type V1FileResponse struct {
	FileID       uuid.UUID  `json:"file_id"`
	OriginalName string     `json:"original_name"`
	MimeType     string     `json:"mime_type"`
	SizeBytes    int64      `json:"size_bytes"`
	Description  string     `json:"description,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Keywords     []string   `json:"keywords,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// V1SearchFilesResponse is the response to search files
type V1SearchFilesResponse struct {
	Files []V1FileResponse `json:"files"`
	Total int              `json:"total"`
}

func toFileResponse(f domain.File) V1FileResponse {
	return V1FileResponse{
		FileID:       f.ID,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		SizeBytes:    f.SizeBytes,
		Description:  f.Description,
		Tags:         f.Tags,
		Keywords:     f.Keywords,
		DeletedAt:    f.DeletedAt,
		CreatedAt:    f.CreatedAt,
	}
}

func parseSearchQuery(r *http.Request) (domain.FileSearchQuery, error) {
	values := r.URL.Query()

	q := domain.FileSearchQuery{
		Query:    values.Get("q"),
		Category: domain.FileCategory(values.Get("category")),
	}

	if raw := values.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				q.Tags = append(q.Tags, tag)
			}
		}
	}

	for _, field := range []struct {
		name string
		dst  *int64
	}{
		{"min_size", &q.MinSize},
		{"max_size", &q.MaxSize},
	} {
		if raw := values.Get(field.name); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 0 {
				return q, errors.New("invalid " + field.name)
			}
			*field.dst = n
		}
	}

	for _, field := range []struct {
		name string
		dst  **time.Time
	}{
		{"from", &q.From},
		{"to", &q.To},
	} {
		if raw := values.Get(field.name); raw != "" {
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return q, errors.New("invalid " + field.name)
			}
			*field.dst = &ts
		}
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("invalid limit")
		}
		q.Limit = n
	}
	if raw := values.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("invalid offset")
		}
		q.Offset = n
	}

	return q, nil
}

// SearchFilesV1 is the function that handles file search with free-text and
// structured filters.
func (h *HandlerV1) SearchFilesV1(w http.ResponseWriter, r *http.Request) {

	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	query, err := parseSearchQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	files, total, err := h.fileService.Search(r.Context(), userID, query)
	if err != nil {
		h.logger.Error("error searching files", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := V1SearchFilesResponse{Files: make([]V1FileResponse, 0, len(files)), Total: total}
	for _, f := range files {
		resp.Files = append(resp.Files, toFileResponse(f))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

// ListTrashV1 is the function that lists the caller's soft-deleted files.
func (h *HandlerV1) ListTrashV1(w http.ResponseWriter, r *http.Request) {

	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	files, err := h.fileService.Trash(r.Context(), userID)
	if err != nil {
		h.logger.Error("error listing trash", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := make([]V1FileResponse, 0, len(files))
	for _, f := range files {
		resp = append(resp, toFileResponse(f))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
