package http

import (
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

// IntegrationHandler serves the Metakocka ERP connection, its product catalogue and
// the push endpoints for contacts and won opportunities.
type IntegrationHandler struct {
	service domain.ERPService
	logger  logger.Logger
}

func NewIntegrationHandler(service domain.ERPService, logger logger.Logger) *IntegrationHandler {
	return &IntegrationHandler{service: service, logger: logger}
}

func (h *IntegrationHandler) RegisterRoutes(mux *http.ServeMux, requireAuth Middleware) {
	mux.Handle("/api/integrations/metakocka", requireAuth(methods{
		http.MethodGet:    h.getCredentials,
		http.MethodPut:    h.saveCredentials,
		http.MethodDelete: h.deleteCredentials,
	}))
	mux.Handle("/api/integrations/metakocka/sync-products", requireAuth(methods{http.MethodPost: h.syncProducts}))
	mux.Handle("/api/integrations/metakocka/products", requireAuth(methods{http.MethodGet: h.listProducts}))
	mux.Handle("/api/contacts/{id}/metakocka", requireAuth(methods{http.MethodPost: h.pushContact}))
	mux.Handle("/api/opportunities/{id}/metakocka-order", requireAuth(methods{http.MethodPost: h.pushOrder}))
}

func (h *IntegrationHandler) getCredentials(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	creds, err := h.service.GetCredentials(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, creds)
}

func (h *IntegrationHandler) saveCredentials(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.SaveMetakockaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	creds, err := h.service.SaveCredentials(r.Context(), orgID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, creds)
}

func (h *IntegrationHandler) deleteCredentials(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCredentials(r.Context(), orgID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *IntegrationHandler) syncProducts(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	result, err := h.service.SyncProducts(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *IntegrationHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	products, err := h.service.ListProducts(r.Context(), orgID, r.URL.Query().Get("search"), queryInt(r, "limit", domain.DefaultPageLimit))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *IntegrationHandler) pushContact(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	contact, err := h.service.PushContact(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *IntegrationHandler) pushOrder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.PushOrderRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	opp, err := h.service.PushOpportunityOrder(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, opp)
}
