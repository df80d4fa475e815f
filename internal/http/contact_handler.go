package http

import (
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

type ContactHandler struct {
	service domain.ContactService
	logger  logger.Logger
}

func NewContactHandler(service domain.ContactService, logger logger.Logger) *ContactHandler {
	return &ContactHandler{service: service, logger: logger}
}

func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux, requireAuth Middleware) {
	mux.Handle("/api/contacts", requireAuth(methods{
		http.MethodGet:  h.list,
		http.MethodPost: h.create,
	}))
	mux.Handle("/api/contacts/import", requireAuth(methods{http.MethodPost: h.importContacts}))
	mux.Handle("/api/contacts/{id}", requireAuth(methods{
		http.MethodGet:    h.get,
		http.MethodPut:    h.update,
		http.MethodDelete: h.delete,
	}))
	mux.Handle("/api/contacts/{id}/emails", requireAuth(methods{http.MethodGet: h.listEmails}))
}

func (h *ContactHandler) list(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	req := domain.ListContactsRequest{OrganizationID: orgID}
	if err := req.FromQuery(r.URL.Query()); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ContactHandler) create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var contact domain.Contact
	if !decodeJSON(w, r, &contact) {
		return
	}
	created, err := h.service.Create(r.Context(), orgID, &contact)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContactHandler) get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	contact, err := h.service.Get(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.UpdateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	contact, err := h.service.Update(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) delete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), orgID, r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContactHandler) importContacts(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.ImportContactsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.Import(r.Context(), orgID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ContactHandler) listEmails(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var page domain.Page
	if err := page.FromQuery(r.URL.Query()); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	resp, err := h.service.ListEmails(r.Context(), orgID, r.PathValue("id"), page)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
