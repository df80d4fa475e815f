package http

import (
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

// EmailHandler serves mailbox accounts, the synced message index and sync jobs.
type EmailHandler struct {
	accounts domain.EmailAccountService
	sync     domain.EmailSyncService
	logger   logger.Logger
}

func NewEmailHandler(accounts domain.EmailAccountService, sync domain.EmailSyncService, logger logger.Logger) *EmailHandler {
	return &EmailHandler{accounts: accounts, sync: sync, logger: logger}
}

func (h *EmailHandler) RegisterRoutes(mux *http.ServeMux, requireAuth Middleware) {
	mux.Handle("/api/email/accounts", requireAuth(methods{
		http.MethodGet:  h.listAccounts,
		http.MethodPost: h.createAccount,
	}))
	mux.Handle("/api/email/accounts/{id}", requireAuth(methods{
		http.MethodGet:    h.getAccount,
		http.MethodPut:    h.updateAccount,
		http.MethodDelete: h.deleteAccount,
	}))
	mux.Handle("/api/email/accounts/{id}/test", requireAuth(methods{http.MethodPost: h.testAccount}))
	mux.Handle("/api/email/accounts/{id}/sync", requireAuth(methods{http.MethodPost: h.syncAccount}))

	mux.Handle("/api/email/messages", requireAuth(methods{http.MethodGet: h.listMessages}))
	mux.Handle("/api/email/messages/{id}", requireAuth(methods{http.MethodGet: h.getMessage}))
	mux.Handle("/api/email/sync-jobs", requireAuth(methods{http.MethodGet: h.listJobs}))
}

func (h *EmailHandler) listAccounts(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	accounts, err := h.accounts.List(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

func (h *EmailHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.CreateEmailAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := h.accounts.Create(r.Context(), orgID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *EmailHandler) getAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	account, err := h.accounts.Get(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *EmailHandler) updateAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	var req domain.UpdateEmailAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := h.accounts.Update(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *EmailHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	if err := h.accounts.Delete(r.Context(), orgID, r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EmailHandler) testAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	if err := h.accounts.TestConnection(r.Context(), orgID, r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// syncAccount starts a manual sync; the job runs in the background.
func (h *EmailHandler) syncAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	job, err := h.sync.TriggerSync(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (h *EmailHandler) listMessages(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	req := domain.ListEmailsRequest{
		OrganizationID: orgID,
		AccountID:      q.Get("account_id"),
		ContactID:      q.Get("contact_id"),
		ThreadID:       q.Get("thread_id"),
		Direction:      domain.EmailDirection(q.Get("direction")),
	}
	switch req.Direction {
	case "", domain.DirectionInbound, domain.DirectionOutbound:
	default:
		WriteJSONError(w, "direction must be inbound or outbound", http.StatusBadRequest)
		return
	}
	if err := req.Page.FromQuery(q); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	resp, err := h.sync.ListMessages(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EmailHandler) getMessage(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	msg, err := h.sync.GetMessage(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *EmailHandler) listJobs(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireOrganization(w, r)
	if !ok {
		return
	}
	jobs, err := h.sync.ListJobs(r.Context(), orgID, r.URL.Query().Get("account_id"), queryInt(r, "limit", 20))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}
