package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	var reached bool
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("default origin", func(t *testing.T) {
		t.Setenv("CORS_ALLOW_ORIGIN", "")
		reached = false
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))

		assert.True(t, reached)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Organization-ID")
	})

	t.Run("custom origin", func(t *testing.T) {
		t.Setenv("CORS_ALLOW_ORIGIN", "https://app.salesflow.example")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))

		assert.Equal(t, "https://app.salesflow.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight stops here", func(t *testing.T) {
		reached = false
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/contacts", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, reached)
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})
}
