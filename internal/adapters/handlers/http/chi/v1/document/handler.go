package document

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

// HandlerV1 is the handler for v1 documents routes
type HandlerV1 struct {
	documentService port.DocumentService
	logger          *slog.Logger
}

// NewDocumentHandlerV1 creates HandlerV1
func NewDocumentHandlerV1(service port.DocumentService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		documentService: service,
		logger:          logger,
	}
}

// Routes exposes handler routes. The shareable-link and hash-artifact lookups
// are public: the link itself is the credential for the verify page.
func (h *HandlerV1) Routes(authenticate, uploadLimit func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/public/{link}", h.GetSharedDocumentV1)
	router.Get("/hashes/{name}", h.GetHashArtifactV1)

	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.With(uploadLimit).Post("/", h.CreateDocumentV1)
		r.Get("/", h.ListDocumentsV1)
		r.Get("/stats", h.GetStatsV1)
		r.Get("/{documentID}", h.GetDocumentV1)
		r.Patch("/{documentID}/status", h.UpdateStatusV1)
	})

	return router
}

func requestMeta(r *http.Request) port.RequestMeta {
	return port.RequestMeta{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

// V1AnchorResponse mirrors the persisted blockchain anchoring metadata
type V1AnchorResponse struct {
	BlockchainHash  string `json:"blockchain_hash,omitempty"`
	TransactionID   string `json:"transaction_id,omitempty"`
	BlockNumber     string `json:"block_number,omitempty"`
	NetworkID       string `json:"network_id,omitempty"`
	ContractAddress string `json:"contract_address,omitempty"`
}

// V1DocumentResponse is a document record in responses
type V1DocumentResponse struct {
	DocumentID    uuid.UUID         `json:"document_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	Type          string            `json:"type"`
	FileName      string            `json:"file_name"`
	FileSize      int64             `json:"file_size"`
	MimeType      string            `json:"mime_type"`
	ContentHash   string            `json:"content_hash"`
	Status        string            `json:"status"`
	Anchor        *V1AnchorResponse `json:"anchor,omitempty"`
	VerifiedAt    *time.Time        `json:"verified_at,omitempty"`
	ShareableLink string            `json:"shareable_link"`
	CreatedAt     time.Time         `json:"created_at"`
}

// V1StepResponse is one append-only verification step
type V1StepResponse struct {
	StepID      uuid.UUID      `json:"step_id"`
	Type        string         `json:"type"`
	Status      string         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

func toDocumentResponse(d *domain.Document) V1DocumentResponse {
	resp := V1DocumentResponse{
		DocumentID:    d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Type:          string(d.Type),
		FileName:      d.FileName,
		FileSize:      d.FileSize,
		MimeType:      d.MimeType,
		ContentHash:   d.ContentHash,
		Status:        string(d.Status),
		VerifiedAt:    d.VerifiedAt,
		ShareableLink: d.ShareableLink,
		CreatedAt:     d.CreatedAt,
	}
	if !d.Anchor.Empty() {
		resp.Anchor = &V1AnchorResponse{
			BlockchainHash:  d.Anchor.BlockchainHash,
			TransactionID:   d.Anchor.TransactionID,
			BlockNumber:     d.Anchor.BlockNumber,
			NetworkID:       d.Anchor.NetworkID,
			ContractAddress: d.Anchor.ContractAddress,
		}
	}
	return resp
}

func toStepResponses(steps []domain.VerificationStep) []V1StepResponse {
	resp := make([]V1StepResponse, 0, len(steps))
	for _, s := range steps {
		resp = append(resp, V1StepResponse{
			StepID:      s.ID,
			Type:        string(s.Type),
			Status:      string(s.Status),
			Message:     s.Message,
			Metadata:    s.Metadata,
			StartedAt:   s.StartedAt,
			CompletedAt: s.CompletedAt,
		})
	}
	return resp
}
