package http

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/pkg/logger"
)

func setupUserHandler(t *testing.T) (*http.ServeMux, *mocks.MockUserService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)
	mux := http.NewServeMux()
	NewUserHandler(svc, logger.NewTestLogger(t)).RegisterRoutes(mux, passthrough)
	return mux, svc
}

func TestUserHandler_SignIn(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		err    error
		status int
		body   string
	}{
		{"production mails the code", "", nil, http.StatusOK, `{"message":"Magic code sent to your email"}`},
		{"development returns the code", "123456", nil, http.StatusOK, `{"message":"Magic code sent to your email","code":"123456"}`},
		{"invalid email", "", domain.NewValidationError("invalid email"), http.StatusBadRequest, `{"error":"invalid email"}`},
		{"rate limited", "", domain.ErrRateLimited, http.StatusTooManyRequests, `{"error":"too many requests"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, svc := setupUserHandler(t)
			svc.EXPECT().SignIn(gomock.Any(), domain.SignInInput{Email: "ana@client.com"}).Return(tt.code, tt.err)

			w := serve(t, mux, http.MethodPost, "/api/user.signin", domain.SignInInput{Email: "ana@client.com"})
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestUserHandler_VerifyCode(t *testing.T) {
	mux, svc := setupUserHandler(t)
	svc.EXPECT().VerifyCode(gomock.Any(), domain.VerifyCodeInput{Email: "ana@client.com", Code: "000000"}).
		Return(nil, domain.ErrUnauthorized)

	w := serve(t, mux, http.MethodPost, "/api/user.verify", domain.VerifyCodeInput{Email: "ana@client.com", Code: "000000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Me(t *testing.T) {
	mux, svc := setupUserHandler(t)
	svc.EXPECT().GetCurrentUser(gomock.Any()).Return(&domain.CurrentUser{
		User:          &domain.User{ID: "user-1", Email: "ana@client.com"},
		Organizations: []*domain.OrganizationWithRole{},
	}, nil)

	w := serve(t, mux, http.MethodGet, "/api/user.me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.CurrentUser
	decodeBody(t, w, &got)
	assert.Equal(t, "user-1", got.User.ID)

	w = serve(t, mux, http.MethodPost, "/api/user.signin", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Logout(t *testing.T) {
	mux, svc := setupUserHandler(t)
	svc.EXPECT().Logout(gomock.Any()).Return(nil)

	w := serve(t, mux, http.MethodPost, "/api/user.logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, mux, http.MethodGet, "/api/user.logout", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
