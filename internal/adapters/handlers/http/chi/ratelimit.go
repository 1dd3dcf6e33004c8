package chi

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

// RateLimitMiddleware caps upload attempts per client IP within a fixed
// window. The counter store is pluggable so multi-instance deployments can
// share one window in Redis. Counter failures let the request through: upload
// availability outranks the limit.
func RateLimitMiddleware(counter port.CounterStore, max int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if host, _, err := net.SplitHostPort(key); err == nil {
				key = host
			}

			count, resetAt, err := counter.Incr(r.Context(), key, window)
			if err != nil {
				logger.Warn("rate limit counter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if count > max {
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
				http.Error(w, "too many upload attempts", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
