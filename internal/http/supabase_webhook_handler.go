package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

// SupabaseWebhookHandler receives Supabase auth hooks and mirrors new users locally.
type SupabaseWebhookHandler struct {
	userService domain.UserService
	secret      string
	logger      logger.Logger
}

func NewSupabaseWebhookHandler(userService domain.UserService, secret string, logger logger.Logger) *SupabaseWebhookHandler {
	return &SupabaseWebhookHandler{userService: userService, secret: secret, logger: logger}
}

func (h *SupabaseWebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/webhooks/supabase/auth", methods{http.MethodPost: h.handleAuthEvent})
}

func (h *SupabaseWebhookHandler) handleAuthEvent(w http.ResponseWriter, r *http.Request) {
	body, ok := readSignedWebhook(w, r, h.secret, h.logger)
	if !ok {
		return
	}
	var event domain.SupabaseAuthEvent
	if err := json.Unmarshal(body, &event); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := event.Validate(); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	switch event.Type {
	case domain.SupabaseEventUserCreated, domain.SupabaseEventUserUpdated:
		if _, err := h.userService.HandleExternalUserCreated(r.Context(), event.User.ID, event.User.Email, event.User.DisplayName()); err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
	default:
		h.logger.WithField("type", event.Type).Debug("Ignoring Supabase auth event")
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// readSignedWebhook reads the body and checks its Standard Webhooks signature.
// Failures are answered with 400 (unreadable) or 401 (bad signature).
func readSignedWebhook(w http.ResponseWriter, r *http.Request, secret string, log logger.Logger) ([]byte, bool) {
	if r.Header.Get("webhook-id") == "" || r.Header.Get("webhook-timestamp") == "" || r.Header.Get("webhook-signature") == "" {
		WriteJSONError(w, "Missing required webhook headers", http.StatusBadRequest)
		return nil, false
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	if err := domain.VerifyWebhookSignature(body, r.Header, secret); err != nil {
		log.WithField("path", r.URL.Path).WithField("error", err.Error()).Warn("Rejected webhook")
		WriteJSONError(w, "Invalid webhook signature", http.StatusUnauthorized)
		return nil, false
	}
	return body, true
}
