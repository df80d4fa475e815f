package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/pkg/logger"
)

func setupFollowupHandler(t *testing.T) (*http.ServeMux, *mocks.MockFollowupService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockFollowupService(ctrl)
	mux := http.NewServeMux()
	NewFollowupHandler(svc, logger.NewTestLogger(t)).RegisterRoutes(mux, passthrough)
	return mux, svc
}

func TestFollowupHandler_List(t *testing.T) {
	t.Run("filters are parsed", func(t *testing.T) {
		mux, svc := setupFollowupHandler(t)
		svc.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.ListFollowupsRequest) (*domain.ListFollowupsResponse, error) {
			assert.Equal(t, "org-1", req.OrganizationID)
			assert.Equal(t, domain.FollowupPending, req.Status)
			require.NotNil(t, req.DueBefore)
			assert.Equal(t, 2026, req.DueBefore.Year())
			return &domain.ListFollowupsResponse{Followups: []*domain.Followup{{ID: "fu-1"}}}, nil
		})

		w := serve(t, mux, http.MethodGet, "/api/email/followups?status=pending&due_before=2026-03-01T00:00:00Z", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp domain.ListFollowupsResponse
		decodeBody(t, w, &resp)
		assert.Len(t, resp.Followups, 1)
	})

	t.Run("bad due_before", func(t *testing.T) {
		mux, _ := setupFollowupHandler(t)
		w := serve(t, mux, http.MethodGet, "/api/email/followups?due_before=tomorrow", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFollowupHandler_Create(t *testing.T) {
	mux, svc := setupFollowupHandler(t)
	svc.EXPECT().Create(gomock.Any(), "org-1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, req domain.CreateFollowupRequest) (*domain.Followup, error) {
		assert.Equal(t, []string{"buyer@client.com"}, req.Recipients)
		return &domain.Followup{ID: "fu-1", Status: domain.FollowupPending}, nil
	})

	w := serve(t, mux, http.MethodPost, "/api/email/followups", map[string]interface{}{
		"recipients": []string{"buyer@client.com"}, "subject": "Quote",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFollowupHandler_Snooze(t *testing.T) {
	until := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("ok", func(t *testing.T) {
		mux, svc := setupFollowupHandler(t)
		svc.EXPECT().Snooze(gomock.Any(), "org-1", "fu-1", until).
			Return(&domain.Followup{ID: "fu-1", Status: domain.FollowupSnoozed, SnoozedUntil: &until}, nil)

		w := serve(t, mux, http.MethodPost, "/api/email/followups/fu-1/snooze", map[string]string{"until": "2026-03-02T09:00:00Z"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing until", func(t *testing.T) {
		mux, _ := setupFollowupHandler(t)
		w := serve(t, mux, http.MethodPost, "/api/email/followups/fu-1/snooze", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("terminal follow-up", func(t *testing.T) {
		mux, svc := setupFollowupHandler(t)
		svc.EXPECT().Snooze(gomock.Any(), "org-1", "fu-1", until).
			Return(nil, domain.ErrInvalidStatusTransition("follow-up", string(domain.FollowupCompleted), string(domain.FollowupSnoozed)))

		w := serve(t, mux, http.MethodPost, "/api/email/followups/fu-1/snooze", map[string]string{"until": "2026-03-02T09:00:00Z"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestFollowupHandler_Actions(t *testing.T) {
	mux, svc := setupFollowupHandler(t)
	svc.EXPECT().Complete(gomock.Any(), "org-1", "fu-1").Return(&domain.Followup{ID: "fu-1", Status: domain.FollowupCompleted}, nil)
	svc.EXPECT().Cancel(gomock.Any(), "org-1", "fu-2").Return(&domain.Followup{ID: "fu-2", Status: domain.FollowupCancelled}, nil)
	svc.EXPECT().Draft(gomock.Any(), "org-1", "fu-3").Return(&domain.Followup{ID: "fu-3", AIGenerated: true}, nil)
	svc.EXPECT().Send(gomock.Any(), "org-1", "fu-4").Return(nil, domain.NewPlanLimitError("emails", 100))

	for path, want := range map[string]int{
		"/api/email/followups/fu-1/complete": http.StatusOK,
		"/api/email/followups/fu-2/cancel":   http.StatusOK,
		"/api/email/followups/fu-3/draft":    http.StatusOK,
		"/api/email/followups/fu-4/send":     http.StatusForbidden,
	} {
		w := serve(t, mux, http.MethodPost, path, nil)
		assert.Equal(t, want, w.Code, path)
	}

	w := serve(t, mux, http.MethodGet, "/api/email/followups/fu-1/complete", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
