package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest"
	"github.com/vouh/Spectre-payment-server/internal/metrics"
)

type retryAfterer interface {
	RetryAfter(clientKey string) time.Duration
}

// RateLimit rejects requests the limiter does not admit with 429. When
// trustProxy is set the client key is the first X-Forwarded-For hop.
func RateLimit(limiter application.RateLimiter, trustProxy bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r, trustProxy)
			if limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			metrics.RateLimited.Inc()
			if ra, ok := limiter.(retryAfterer); ok {
				if wait := ra.RetryAfter(key); wait > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				}
			}

			logger.Warn("rate limited", "client", key, "path", r.URL.Path)
			rest.WriteError(w, application.NewRateLimitedError(), nil)
		})
	}
}

// ClientIP returns the remote host, or the first forwarded hop when trustProxy is set.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
