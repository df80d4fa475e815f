package http

import (
	"net/http"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

type UserHandler struct {
	userService domain.UserService
	logger      logger.Logger
}

func NewUserHandler(userService domain.UserService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input domain.SignInInput
	if !decodeJSON(w, r, &input) {
		return
	}

	code, err := h.userService.SignIn(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	// Outside production the code comes back in the response instead of by mail.
	response := map[string]string{
		"message": "Magic code sent to your email",
	}
	if code != "" {
		response["code"] = code
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *UserHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var input domain.VerifyCodeInput
	if !decodeJSON(w, r, &input) {
		return
	}

	response, err := h.userService.VerifyCode(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// GetCurrentUser returns the authenticated user and their organizations.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	current, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Logout(r.Context()); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, requireAuth Middleware) {
	mux.Handle("/api/user.signin", methods{http.MethodPost: h.SignIn})
	mux.Handle("/api/user.verify", methods{http.MethodPost: h.VerifyCode})

	mux.Handle("/api/user.me", requireAuth(methods{http.MethodGet: h.GetCurrentUser}))
	mux.Handle("/api/user.logout", requireAuth(methods{http.MethodPost: h.Logout}))
}
