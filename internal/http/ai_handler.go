package http

import (
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

// AIHandler exposes email analysis, reply drafting and the AI activity log.
type AIHandler struct {
	service domain.AIService
	logger  logger.Logger
}

func NewAIHandler(service domain.AIService, logger logger.Logger) *AIHandler {
	return &AIHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the AI routes. limit throttles the endpoints that call a provider;
// it runs after authentication so callers are keyed by user.
func (h *AIHandler) RegisterRoutes(mux *http.ServeMux, requireAuth, limit Middleware) {
	mux.Handle("/api/ai/emails/{id}/analyze", requireAuth(limit(methods{http.MethodPost: h.analyze})))
	mux.Handle("/api/ai/emails/{id}/analysis", requireAuth(methods{http.MethodGet: h.getAnalysis}))
	mux.Handle("/api/ai/emails/{id}/draft-reply", requireAuth(limit(methods{http.MethodPost: h.draftReply})))
	mux.Handle("/api/ai/activity", requireAuth(methods{http.MethodGet: h.listActivity}))
}

func (h *AIHandler) analyze(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	analysis, err := h.service.AnalyzeEmail(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *AIHandler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	analysis, err := h.service.GetAnalysis(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *AIHandler) draftReply(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.DraftReplyRequest
	// an empty body means no extra instructions
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	draft, err := h.service.DraftReply(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *AIHandler) listActivity(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	req := domain.ListAIActivityRequest{
		OrganizationID: orgID,
		Kind:           domain.AIActivityKind(q.Get("kind")),
	}
	if err := req.Page.FromQuery(q); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	resp, err := h.service.ListActivity(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
