package http

import (
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

// SupplierHandler serves the supplier directory and AI sourcing requests.
type SupplierHandler struct {
	service domain.SupplierService
	logger  logger.Logger
}

func NewSupplierHandler(service domain.SupplierService, logger logger.Logger) *SupplierHandler {
	return &SupplierHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the supplier routes; limit throttles the endpoints that reach
// out to websites or the AI provider.
func (h *SupplierHandler) RegisterRoutes(mux *http.ServeMux, requireAuth, limit Middleware) {
	mux.Handle("/api/suppliers", requireAuth(methods{
		http.MethodGet:  h.list,
		http.MethodPost: h.create,
	}))
	mux.Handle("/api/suppliers/{id}", requireAuth(methods{
		http.MethodGet:    h.get,
		http.MethodPut:    h.update,
		http.MethodDelete: h.delete,
	}))
	mux.Handle("/api/suppliers/enrich/{id}", requireAuth(limit(methods{http.MethodPost: h.enrich})))

	mux.Handle("/api/sourcing", requireAuth(methods{
		http.MethodGet:  h.listSourcing,
		http.MethodPost: limit(http.HandlerFunc(h.source)).ServeHTTP,
	}))
	mux.Handle("/api/sourcing/{id}", requireAuth(methods{http.MethodGet: h.getSourcing}))
	mux.Handle("/api/sourcing/{id}/accept", requireAuth(methods{http.MethodPost: h.accept}))
}

func (h *SupplierHandler) list(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	suppliers, err := h.service.List(r.Context(), orgID, r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"suppliers": suppliers})
}

func (h *SupplierHandler) create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var s domain.Supplier
	if !decodeJSON(w, r, &s) {
		return
	}
	created, err := h.service.Create(r.Context(), orgID, &s)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *SupplierHandler) get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	s, err := h.service.Get(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SupplierHandler) update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var s domain.Supplier
	if !decodeJSON(w, r, &s) {
		return
	}
	updated, err := h.service.Update(r.Context(), orgID, r.PathValue("id"), &s)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *SupplierHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func (h *SupplierHandler) enrich(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	s, err := h.service.Enrich(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SupplierHandler) source(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.CreateSourcingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sourcing, err := h.service.Source(r.Context(), orgID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	// failed requests are stored too; the status field tells them apart
	writeJSON(w, http.StatusCreated, sourcing)
}

func (h *SupplierHandler) listSourcing(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	requests, err := h.service.ListSourcing(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (h *SupplierHandler) getSourcing(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	sourcing, err := h.service.GetSourcing(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sourcing)
}

func (h *SupplierHandler) accept(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.AcceptSuggestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.service.AcceptSuggestion(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}
