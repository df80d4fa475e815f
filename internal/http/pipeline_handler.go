package http

import (
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

type PipelineHandler struct {
	service domain.PipelineService
	logger  logger.Logger
}

func NewPipelineHandler(service domain.PipelineService, logger logger.Logger) *PipelineHandler {
	return &PipelineHandler{service: service, logger: logger}
}

func (h *PipelineHandler) RegisterRoutes(mux *http.ServeMux, requireAuth Middleware) {
	mux.Handle("/api/pipelines", requireAuth(methods{
		http.MethodGet:  h.listPipelines,
		http.MethodPost: h.createPipeline,
	}))
	mux.Handle("/api/pipelines/{id}", requireAuth(methods{
		http.MethodGet:    h.getPipeline,
		http.MethodPut:    h.updatePipeline,
		http.MethodDelete: h.deletePipeline,
	}))
	mux.Handle("/api/pipelines/{id}/stages/order", requireAuth(methods{http.MethodPut: h.reorderStages}))
	mux.Handle("/api/pipelines/{id}/summary", requireAuth(methods{http.MethodGet: h.summary}))

	mux.Handle("/api/opportunities", requireAuth(methods{
		http.MethodGet:  h.listOpportunities,
		http.MethodPost: h.createOpportunity,
	}))
	mux.Handle("/api/opportunities/{id}", requireAuth(methods{
		http.MethodGet:    h.getOpportunity,
		http.MethodPut:    h.updateOpportunity,
		http.MethodDelete: h.deleteOpportunity,
	}))
	mux.Handle("/api/opportunities/{id}/move", requireAuth(methods{http.MethodPost: h.moveOpportunity}))
}

func (h *PipelineHandler) listPipelines(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	pipelines, err := h.service.ListPipelines(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"pipelines": pipelines})
}

func (h *PipelineHandler) createPipeline(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var p domain.Pipeline
	if !decodeJSON(w, r, &p) {
		return
	}
	created, err := h.service.CreatePipeline(r.Context(), orgID, &p)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PipelineHandler) getPipeline(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetPipeline(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PipelineHandler) updatePipeline(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var p domain.Pipeline
	if !decodeJSON(w, r, &p) {
		return
	}
	updated, err := h.service.UpdatePipeline(r.Context(), orgID, r.PathValue("id"), &p)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PipelineHandler) deletePipeline(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	if err := h.service.DeletePipeline(r.Context(), orgID, r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PipelineHandler) reorderStages(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.ReorderStagesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.service.ReorderStages(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PipelineHandler) summary(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	s, err := h.service.Summary(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *PipelineHandler) listOpportunities(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	req := domain.ListOpportunitiesRequest{
		OrganizationID: orgID,
		PipelineID:     q.Get("pipeline_id"),
		StageID:        q.Get("stage_id"),
		Status:         domain.OpportunityStatus(q.Get("status")),
		ContactID:      q.Get("contact_id"),
	}
	switch req.Status {
	case "", domain.OpportunityOpen, domain.OpportunityWon, domain.OpportunityLost:
	default:
		WriteJSONError(w, "invalid status", http.StatusBadRequest)
		return
	}
	if err := req.Page.FromQuery(q); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	resp, err := h.service.ListOpportunities(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PipelineHandler) createOpportunity(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var o domain.Opportunity
	if !decodeJSON(w, r, &o) {
		return
	}
	created, err := h.service.CreateOpportunity(r.Context(), orgID, &o)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PipelineHandler) getOpportunity(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	o, err := h.service.GetOpportunity(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *PipelineHandler) updateOpportunity(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.UpdateOpportunityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := h.service.UpdateOpportunity(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *PipelineHandler) deleteOpportunity(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteOpportunity(r.Context(), orgID, r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PipelineHandler) moveOpportunity(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req struct {
		StageID string `json:"stage_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.StageID == "" {
		WriteJSONError(w, "stage_id is required", http.StatusBadRequest)
		return
	}
	o, err := h.service.MoveOpportunity(r.Context(), orgID, r.PathValue("id"), req.StageID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
