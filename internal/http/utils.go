package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/service/llm"
	"github.com/salesflow/crm/pkg/logger"
)

const maxBodyBytes = 2 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error onto a status code. Unexpected errors are
// logged and answered with a generic message.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error) {
	var (
		validation domain.ValidationError
		permission *domain.PermissionError
		conflict   *domain.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		WriteJSONError(w, validation.Message, http.StatusBadRequest)
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionExpired):
		WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.As(err, &permission):
		WriteJSONError(w, permission.Message, http.StatusForbidden)
	case domain.IsNotFound(err), errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &conflict):
		WriteJSONError(w, conflict.Message, http.StatusConflict)
	case errors.Is(err, domain.ErrRateLimited):
		WriteJSONError(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, llm.ErrUnparseable), errors.Is(err, llm.ErrNotConfigured):
		log.WithField("error", err.Error()).Error("AI request failed")
		WriteJSONError(w, err.Error(), http.StatusInternalServerError)
	default:
		log.WithField("error", err.Error()).Error("Request failed")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON reads a bounded JSON body into v and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// organizationID reads the organization scope from the X-Organization-ID header,
// falling back to the organization_id query parameter.
func organizationID(r *http.Request) string {
	if id := r.Header.Get("X-Organization-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("organization_id")
}

// requireOrganization writes a 400 when the request carries no organization scope.
func requireOrganization(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := organizationID(r)
	if id == "" {
		WriteJSONError(w, "organization id is required (X-Organization-ID header)", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// methods dispatches on the request method and answers 405 for anything unregistered.
type methods map[string]http.HandlerFunc

func (m methods) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.Method]; ok {
		h(w, r)
		return
	}
	WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// Middleware wraps a handler; handlers receive the authentication middleware this way.
type Middleware func(http.Handler) http.Handler
