package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/ratelimiter"
)

func TestRateLimit(t *testing.T) {
	rl := ratelimiter.NewRateLimiter()
	defer rl.Stop()
	rl.SetPolicy("ai", 2, time.Minute)

	handler := RateLimit(rl, "ai")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/analyze", nil)
		req = req.WithContext(context.WithValue(req.Context(), domain.UserIDKey, userID))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call("user-1").Code)
	assert.Equal(t, http.StatusOK, call("user-1").Code)
	limited := call("user-1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"too many requests"}`, limited.Body.String())

	assert.Equal(t, http.StatusOK, call("user-2").Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:5123"
	assert.Equal(t, "10.0.0.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}
