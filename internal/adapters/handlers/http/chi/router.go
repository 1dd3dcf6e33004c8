package chi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/auth"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/v1/document"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/v1/file"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

// RouterConfig bundles the cross-cutting dependencies of the HTTP surface.
type RouterConfig struct {
	JWTSecret       string
	Env             string
	MaxRequestSize  int64
	RateLimitMax    int
	RateLimitWindow time.Duration
	Counter         port.CounterStore
}

// NewRouter builds http.Handler with chi
func NewRouter(logger *slog.Logger, fileHandler *file.HandlerV1, documentHandler *document.HandlerV1, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.RequestSize(cfg.MaxRequestSize))

	if cfg.Env != "prod" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link", "X-RateLimit-Reset"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	authenticate := auth.Middleware(cfg.JWTSecret, logger)
	uploadLimit := RateLimitMiddleware(cfg.Counter, cfg.RateLimitMax, cfg.RateLimitWindow, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/files", fileHandler.Routes(authenticate, uploadLimit))
		r.Mount("/documents", documentHandler.Routes(authenticate, uploadLimit))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})

	return r
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
