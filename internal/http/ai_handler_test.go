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
	"github.com/salesflow/crm/internal/http/middleware"
	"github.com/salesflow/crm/internal/service/llm"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/ratelimiter"
)

func setupAIHandler(t *testing.T, limit Middleware) (*http.ServeMux, *mocks.MockAIService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAIService(ctrl)
	mux := http.NewServeMux()
	NewAIHandler(svc, logger.NewTestLogger(t)).RegisterRoutes(mux, passthrough, limit)
	return mux, svc
}

func TestAIHandler_Analyze(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		mux, svc := setupAIHandler(t, passthrough)
		svc.EXPECT().AnalyzeEmail(gomock.Any(), "org-1", "email-1").Return(&domain.EmailAnalysis{
			EmailIndexID: "email-1", Summary: "Price negotiation", Sentiment: domain.SentimentNeutral,
		}, nil)

		w := serve(t, mux, http.MethodPost, "/api/ai/emails/email-1/analyze", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var analysis domain.EmailAnalysis
		decodeBody(t, w, &analysis)
		assert.Equal(t, "Price negotiation", analysis.Summary)
	})

	t.Run("unparseable provider reply", func(t *testing.T) {
		mux, svc := setupAIHandler(t, passthrough)
		svc.EXPECT().AnalyzeEmail(gomock.Any(), "org-1", "email-1").Return(nil, llm.ErrUnparseable)

		w := serve(t, mux, http.MethodPost, "/api/ai/emails/email-1/analyze", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "could not be parsed")
	})

	t.Run("throttled", func(t *testing.T) {
		rl := ratelimiter.NewRateLimiter()
		defer rl.Stop()
		rl.SetPolicy("ai", 1, time.Minute)
		mux, svc := setupAIHandler(t, middleware.RateLimit(rl, "ai"))
		svc.EXPECT().AnalyzeEmail(gomock.Any(), "org-1", "email-1").Return(&domain.EmailAnalysis{}, nil).Times(1)

		assert.Equal(t, http.StatusOK, serve(t, mux, http.MethodPost, "/api/ai/emails/email-1/analyze", nil).Code)
		w := serve(t, mux, http.MethodPost, "/api/ai/emails/email-1/analyze", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})
}

func TestAIHandler_GetAnalysis(t *testing.T) {
	mux, svc := setupAIHandler(t, passthrough)
	svc.EXPECT().GetAnalysis(gomock.Any(), "org-1", "email-2").Return(nil, domain.NewNotFound("email analysis", "email-2"))

	w := serve(t, mux, http.MethodGet, "/api/ai/emails/email-2/analysis", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAIHandler_DraftReply(t *testing.T) {
	t.Run("with instructions", func(t *testing.T) {
		mux, svc := setupAIHandler(t, passthrough)
		svc.EXPECT().DraftReply(gomock.Any(), "org-1", "email-1", domain.DraftReplyRequest{Instructions: "offer 5%"}).
			Return(&domain.Draft{Subject: "Re: pricing", Body: "We can do 5%."}, nil)

		w := serve(t, mux, http.MethodPost, "/api/ai/emails/email-1/draft-reply", map[string]string{"instructions": "offer 5%"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"subject":"Re: pricing","body":"We can do 5%."}`, w.Body.String())
	})

	t.Run("empty body", func(t *testing.T) {
		mux, svc := setupAIHandler(t, passthrough)
		svc.EXPECT().DraftReply(gomock.Any(), "org-1", "email-1", domain.DraftReplyRequest{}).Return(&domain.Draft{}, nil)

		w := serve(t, mux, http.MethodPost, "/api/ai/emails/email-1/draft-reply", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("quota exhausted", func(t *testing.T) {
		mux, svc := setupAIHandler(t, passthrough)
		svc.EXPECT().DraftReply(gomock.Any(), "org-1", "email-1", gomock.Any()).
			Return(nil, domain.NewPlanLimitError("ai_tokens", 10000))

		w := serve(t, mux, http.MethodPost, "/api/ai/emails/email-1/draft-reply", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAIHandler_ListActivity(t *testing.T) {
	mux, svc := setupAIHandler(t, passthrough)
	svc.EXPECT().ListActivity(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.ListAIActivityRequest) (*domain.ListAIActivityResponse, error) {
		assert.Equal(t, domain.AIKindDraftReply, req.Kind)
		assert.Equal(t, 5, req.Limit)
		return &domain.ListAIActivityResponse{Activity: []*domain.AIActivity{}}, nil
	})

	w := serve(t, mux, http.MethodGet, "/api/ai/activity?kind=draft_reply&limit=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
