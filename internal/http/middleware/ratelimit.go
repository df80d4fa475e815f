package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/ratelimiter"
)

// RateLimit rejects requests once the caller exceeds the namespace policy.
// Authenticated callers are keyed by user id, anonymous ones by remote address.
func RateLimit(rl *ratelimiter.RateLimiter, namespace string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := domain.UserIDFromContext(r.Context())
			if key == "" {
				key = clientIP(r)
			}
			if !rl.Allow(namespace, key) {
				w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(namespace, key)))
				writeError(w, domain.ErrRateLimited.Error(), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
