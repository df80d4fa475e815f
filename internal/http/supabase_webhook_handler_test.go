package http

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/pkg/logger"
)

var testWebhookSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("webhook-signing-key-for-tests"))

// signedRequest builds a POST carrying a valid Standard Webhooks signature for payload.
func signedRequest(t *testing.T, path, secret string, payload []byte) *http.Request {
	t.Helper()
	wh, err := svix.NewWebhook(secret)
	require.NoError(t, err)
	now := time.Now()
	sig, err := wh.Sign("msg_1", now, payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("webhook-id", "msg_1")
	req.Header.Set("webhook-timestamp", strconv.FormatInt(now.Unix(), 10))
	req.Header.Set("webhook-signature", sig)
	return req
}

func setupSupabaseWebhookHandler(t *testing.T) (*http.ServeMux, *mocks.MockUserService) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserService(ctrl)
	mux := http.NewServeMux()
	NewSupabaseWebhookHandler(users, testWebhookSecret, logger.NewTestLogger(t)).RegisterRoutes(mux)
	return mux, users
}

func TestSupabaseWebhookHandler(t *testing.T) {
	t.Run("user created", func(t *testing.T) {
		mux, users := setupSupabaseWebhookHandler(t)
		users.EXPECT().HandleExternalUserCreated(gomock.Any(), "sb-1", "ana@acme.com", "Ana Novak").
			Return(&domain.User{ID: "user-1"}, nil)

		payload := []byte(`{"type":"user.created","user":{"id":"sb-1","email":"ana@acme.com","user_metadata":{"full_name":"Ana Novak"}}}`)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, signedRequest(t, "/webhooks/supabase/auth", testWebhookSecret, payload))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other events are acknowledged", func(t *testing.T) {
		mux, _ := setupSupabaseWebhookHandler(t)
		payload := []byte(`{"type":"user.deleted","user":{"id":"sb-1","email":"ana@acme.com"}}`)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, signedRequest(t, "/webhooks/supabase/auth", testWebhookSecret, payload))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		mux, _ := setupSupabaseWebhookHandler(t)
		other := "whsec_" + base64.StdEncoding.EncodeToString([]byte("someone-else"))
		payload := []byte(`{"type":"user.created","user":{"id":"sb-1","email":"ana@acme.com"}}`)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, signedRequest(t, "/webhooks/supabase/auth", other, payload))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing headers", func(t *testing.T) {
		mux, _ := setupSupabaseWebhookHandler(t)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/supabase/auth", bytes.NewReader([]byte(`{}`))))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing user fields", func(t *testing.T) {
		mux, _ := setupSupabaseWebhookHandler(t)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, signedRequest(t, "/webhooks/supabase/auth", testWebhookSecret, []byte(`{"type":"user.created","user":{}}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		mux, _ := setupSupabaseWebhookHandler(t)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/webhooks/supabase/auth", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
