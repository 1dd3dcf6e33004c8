package file

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

// HandlerV1 is the handler for v1 files routes
type HandlerV1 struct {
	fileService      port.FileService
	lifecycleService port.LifecycleService
	tokenIssuer      port.TokenIssuer
	logger           *slog.Logger
}

// NewFileHandlerV1 creates HandlerV1
func NewFileHandlerV1(fileService port.FileService, lifecycleService port.LifecycleService, tokenIssuer port.TokenIssuer, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		fileService:      fileService,
		lifecycleService: lifecycleService,
		tokenIssuer:      tokenIssuer,
		logger:           logger,
	}
}

// Routes exposes handler routes. Signed downloads stay outside the
// authenticated group: the token in the path is the whole credential.
func (h *HandlerV1) Routes(authenticate, uploadLimit func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/signed/{token}", h.SignedDownloadV1)

	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.With(uploadLimit).Post("/", h.UploadFileV1)
		r.Get("/search", h.SearchFilesV1)
		r.Get("/trash", h.ListTrashV1)
		r.Get("/{fileID}", h.DownloadFileV1)
		r.Head("/{fileID}", h.StatFileV1)
		r.Post("/{fileID}/signed-url", h.IssueSignedURLV1)
		r.Delete("/{fileID}", h.SoftDeleteFileV1)
		r.Post("/{fileID}/restore", h.RestoreFileV1)
	})

	return router
}

func requestMeta(r *http.Request) port.RequestMeta {
	return port.RequestMeta{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
