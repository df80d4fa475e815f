package http

import (
	"context"
	"net/http"
	"time"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

type FollowupHandler struct {
	service domain.FollowupService
	logger  logger.Logger
}

func NewFollowupHandler(service domain.FollowupService, logger logger.Logger) *FollowupHandler {
	return &FollowupHandler{service: service, logger: logger}
}

func (h *FollowupHandler) RegisterRoutes(mux *http.ServeMux, requireAuth Middleware) {
	mux.Handle("/api/email/followups", requireAuth(methods{
		http.MethodGet:  h.list,
		http.MethodPost: h.create,
	}))
	mux.Handle("/api/email/followups/{id}", requireAuth(methods{
		http.MethodGet:    h.get,
		http.MethodPut:    h.update,
		http.MethodDelete: h.delete,
	}))
	mux.Handle("/api/email/followups/{id}/snooze", requireAuth(methods{http.MethodPost: h.snooze}))
	mux.Handle("/api/email/followups/{id}/complete", requireAuth(methods{http.MethodPost: h.action(h.service.Complete)}))
	mux.Handle("/api/email/followups/{id}/cancel", requireAuth(methods{http.MethodPost: h.action(h.service.Cancel)}))
	mux.Handle("/api/email/followups/{id}/draft", requireAuth(methods{http.MethodPost: h.action(h.service.Draft)}))
	mux.Handle("/api/email/followups/{id}/send", requireAuth(methods{http.MethodPost: h.action(h.service.Send)}))
}

func (h *FollowupHandler) list(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	req := domain.ListFollowupsRequest{OrganizationID: orgID}
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

func (h *FollowupHandler) create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.CreateFollowupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	f, err := h.service.Create(r.Context(), orgID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FollowupHandler) get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	f, err := h.service.Get(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FollowupHandler) update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.UpdateFollowupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	f, err := h.service.Update(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FollowupHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func (h *FollowupHandler) snooze(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req struct {
		Until time.Time `json:"until"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Until.IsZero() {
		WriteJSONError(w, "until is required", http.StatusBadRequest)
		return
	}
	f, err := h.service.Snooze(r.Context(), orgID, r.PathValue("id"), req.Until)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

type followupAction func(ctx context.Context, organizationID, id string) (*domain.Followup, error)

// action adapts a status-changing service call that takes only the follow-up id.
func (h *FollowupHandler) action(fn followupAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}
		f, err := fn(r.Context(), orgID, r.PathValue("id"))
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}
