package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/pkg/logger"
)

func setupEmailHandler(t *testing.T) (*http.ServeMux, *mocks.MockEmailAccountService, *mocks.MockEmailSyncService) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockEmailAccountService(ctrl)
	sync := mocks.NewMockEmailSyncService(ctrl)
	mux := http.NewServeMux()
	NewEmailHandler(accounts, sync, logger.NewTestLogger(t)).RegisterRoutes(mux, passthrough)
	return mux, accounts, sync
}

func TestEmailHandler_CreateAccount(t *testing.T) {
	t.Run("secrets are not echoed", func(t *testing.T) {
		mux, accounts, _ := setupEmailHandler(t)
		accounts.EXPECT().Create(gomock.Any(), "org-1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, req domain.CreateEmailAccountRequest) (*domain.EmailAccount, error) {
			assert.Equal(t, "hunter2", req.Password)
			return &domain.EmailAccount{ID: "acc-1", EmailAddress: req.EmailAddress, EncryptedPassword: "deadbeef"}, nil
		})

		w := serve(t, mux, http.MethodPost, "/api/email/accounts", map[string]interface{}{
			"provider": "imap", "email_address": "sales@acme.com", "imap_host": "imap.acme.com",
			"imap_port": 993, "username": "sales", "password": "hunter2",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "deadbeef")
		assert.NotContains(t, w.Body.String(), "hunter2")
	})

	t.Run("connection test failure", func(t *testing.T) {
		mux, accounts, _ := setupEmailHandler(t)
		accounts.EXPECT().Create(gomock.Any(), "org-1", gomock.Any()).
			Return(nil, domain.NewValidationError("connection test failed: authentication failed"))

		w := serve(t, mux, http.MethodPost, "/api/email/accounts", map[string]string{"provider": "imap"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmailHandler_SyncAccount(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		mux, _, sync := setupEmailHandler(t)
		sync.EXPECT().TriggerSync(gomock.Any(), "org-1", "acc-1").
			Return(&domain.EmailSyncJob{ID: "job-1", Type: domain.SyncJobManual, Status: domain.SyncJobPending}, nil)

		w := serve(t, mux, http.MethodPost, "/api/email/accounts/acc-1/sync", nil)
		require.Equal(t, http.StatusAccepted, w.Code)
		var job domain.EmailSyncJob
		decodeBody(t, w, &job)
		assert.Equal(t, "job-1", job.ID)
	})

	t.Run("already syncing", func(t *testing.T) {
		mux, _, sync := setupEmailHandler(t)
		sync.EXPECT().TriggerSync(gomock.Any(), "org-1", "acc-1").Return(nil, domain.NewConflictError("account is already syncing"))

		w := serve(t, mux, http.MethodPost, "/api/email/accounts/acc-1/sync", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmailHandler_ListMessages(t *testing.T) {
	mux, _, sync := setupEmailHandler(t)
	sync.EXPECT().ListMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.ListEmailsRequest) (*domain.ListEmailsResponse, error) {
		assert.Equal(t, "acc-1", req.AccountID)
		assert.Equal(t, domain.DirectionInbound, req.Direction)
		return &domain.ListEmailsResponse{Emails: []*domain.EmailIndex{{ID: "email-1"}}}, nil
	})

	w := serve(t, mux, http.MethodGet, "/api/email/messages?account_id=acc-1&direction=inbound", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, mux, http.MethodGet, "/api/email/messages?direction=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmailHandler_GetMessageAndJobs(t *testing.T) {
	mux, _, sync := setupEmailHandler(t)
	sync.EXPECT().GetMessage(gomock.Any(), "org-1", "email-1").Return(&domain.EmailWithContent{
		EmailIndex: domain.EmailIndex{ID: "email-1", Subject: "Quote"},
		Content:    &domain.EmailContentCache{TextBody: "Hello"},
	}, nil)
	sync.EXPECT().ListJobs(gomock.Any(), "org-1", "acc-1", 5).Return([]*domain.EmailSyncJob{}, nil)

	w := serve(t, mux, http.MethodGet, "/api/email/messages/email-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")

	w = serve(t, mux, http.MethodGet, "/api/email/sync-jobs?account_id=acc-1&limit=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
