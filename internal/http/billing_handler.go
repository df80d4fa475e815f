package http

import (
	"encoding/json"
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

// BillingHandler serves plans, the organization subscription and the billing provider webhook.
type BillingHandler struct {
	service       domain.SubscriptionService
	webhookSecret string
	logger        logger.Logger
}

func NewBillingHandler(service domain.SubscriptionService, webhookSecret string, logger logger.Logger) *BillingHandler {
	return &BillingHandler{service: service, webhookSecret: webhookSecret, logger: logger}
}

func (h *BillingHandler) RegisterRoutes(mux *http.ServeMux, requireAuth Middleware) {
	mux.Handle("/api/billing/plans", requireAuth(methods{http.MethodGet: h.plans}))
	mux.Handle("/api/billing/subscription", requireAuth(methods{
		http.MethodGet:  h.get,
		http.MethodPost: h.changePlan,
	}))
	mux.Handle("/api/billing/subscription/cancel", requireAuth(methods{http.MethodPost: h.cancel}))
	mux.Handle("/api/billing/usage", requireAuth(methods{http.MethodGet: h.usage}))
	mux.Handle("/webhooks/billing", methods{http.MethodPost: h.webhook})
}

func (h *BillingHandler) plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": h.service.Plans()})
}

func (h *BillingHandler) get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	sub, err := h.service.Get(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *BillingHandler) changePlan(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.ChangePlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sub, err := h.service.ChangePlan(r.Context(), orgID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *BillingHandler) cancel(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	sub, err := h.service.Cancel(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *BillingHandler) usage(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	usage, err := h.service.Usage(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

func (h *BillingHandler) webhook(w http.ResponseWriter, r *http.Request) {
	body, ok := readSignedWebhook(w, r, h.webhookSecret, h.logger)
	if !ok {
		return
	}
	var event domain.BillingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.logger.WithField("type", event.Type).WithField("organization_id", event.Data.OrganizationID).Info("Received billing webhook")
	if err := h.service.HandleWebhook(r.Context(), event); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
