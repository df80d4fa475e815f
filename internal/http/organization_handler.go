package http

import (
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

type OrganizationHandler struct {
	service domain.OrganizationService
	logger  logger.Logger
}

func NewOrganizationHandler(service domain.OrganizationService, logger logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{service: service, logger: logger}
}

func (h *OrganizationHandler) RegisterRoutes(mux *http.ServeMux, requireAuth Middleware) {
	mux.Handle("/api/organizations", requireAuth(methods{
		http.MethodGet:  h.list,
		http.MethodPost: h.create,
	}))
	mux.Handle("/api/organizations/{id}", requireAuth(methods{
		http.MethodGet:    h.get,
		http.MethodPut:    h.update,
		http.MethodDelete: h.delete,
	}))
	mux.Handle("/api/organizations/{id}/members", requireAuth(methods{
		http.MethodGet:  h.listMembers,
		http.MethodPost: h.addMember,
	}))
	mux.Handle("/api/organizations/{id}/members/{userID}", requireAuth(methods{
		http.MethodDelete: h.removeMember,
	}))
	mux.Handle("/api/organizations/{id}/members/{userID}/role", requireAuth(methods{
		http.MethodPut: h.changeRole,
	}))
	mux.Handle("/api/admin/organizations/{id}/branding", requireAuth(methods{
		http.MethodGet: h.getBranding,
		http.MethodPut: h.updateBranding,
	}))
}

func (h *OrganizationHandler) list(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.service.ListMine(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"organizations": orgs})
}

func (h *OrganizationHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrganizationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	org, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) get(w http.ResponseWriter, r *http.Request) {
	org, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateOrganizationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	org, err := h.service.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrganizationHandler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

func (h *OrganizationHandler) addMember(w http.ResponseWriter, r *http.Request) {
	var req domain.AddMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	member, err := h.service.AddMember(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *OrganizationHandler) removeMember(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveMember(r.Context(), r.PathValue("id"), r.PathValue("userID")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrganizationHandler) changeRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role domain.MemberRole `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.service.ChangeMemberRole(r.Context(), r.PathValue("id"), r.PathValue("userID"), req.Role); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *OrganizationHandler) getBranding(w http.ResponseWriter, r *http.Request) {
	branding, err := h.service.GetBranding(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, branding)
}

func (h *OrganizationHandler) updateBranding(w http.ResponseWriter, r *http.Request) {
	var branding domain.Branding
	if !decodeJSON(w, r, &branding) {
		return
	}
	updated, err := h.service.UpdateBranding(r.Context(), r.PathValue("id"), &branding)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
