package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/internal/service/llm"
	"github.com/salesflow/crm/pkg/logger"
)

type aiDeps struct {
	client   *mocks.MockLLMClient
	repo     *mocks.MockAIRepository
	emails   *mocks.MockEmailRepository
	contacts *mocks.MockContactRepository
	orgs     *mocks.MockOrganizationRepository
	subs     *mocks.MockSubscriptionService
	auth     *mocks.MockAuthService
}

func setupAIService(t *testing.T) (*AIService, aiDeps) {
	ctrl := gomock.NewController(t)
	deps := aiDeps{
		client:   mocks.NewMockLLMClient(ctrl),
		repo:     mocks.NewMockAIRepository(ctrl),
		emails:   mocks.NewMockEmailRepository(ctrl),
		contacts: mocks.NewMockContactRepository(ctrl),
		orgs:     mocks.NewMockOrganizationRepository(ctrl),
		subs:     mocks.NewMockSubscriptionService(ctrl),
		auth:     mocks.NewMockAuthService(ctrl),
	}
	deps.client.EXPECT().Provider().Return(domain.LLMProviderAnthropic).AnyTimes()
	svc := NewAIService(AIServiceConfig{
		Client:                 deps.client,
		Repository:             deps.repo,
		EmailRepository:        deps.emails,
		ContactRepository:      deps.contacts,
		OrganizationRepository: deps.orgs,
		SubscriptionService:    deps.subs,
		AuthService:            deps.auth,
		Logger:                 logger.NewTestLogger(t),
	})
	svc.now = func() time.Time { return followupNow }
	return svc, deps
}

func inboundEmailWithContent() *domain.EmailWithContent {
	email := outboundEmail()
	email.Direction = domain.DirectionInbound
	email.FromAddress = "buyer@client.com"
	email.Content = &domain.EmailContentCache{HTMLBody: "<p>Can you <b>lower</b> the price?</p>"}
	return email
}

func TestAIService_AnalyzeEmail(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1"}

	t.Run("stores parsed analysis and logs usage", func(t *testing.T) {
		svc, deps := setupAIService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.emails.EXPECT().GetByID(gomock.Any(), "org-1", "email-1").Return(inboundEmailWithContent(), nil)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceAITokens, int64(1)).Return(nil)
		deps.client.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
			assert.True(t, req.JSON)
			assert.Contains(t, req.Prompt, "Can you lower the price?")
			return &domain.CompletionResponse{
				Text:        "```json\n{\"summary\":\"Price negotiation\",\"sentiment\":\"Neutral\",\"intent\":\"discount\",\"priority\":\"urgent\",\"action_items\":[\"Send revised quote\",\" \"],\"suggested_reply\":\"Sure\"}\n```",
				Model:       "claude-sonnet-4-5-20250929",
				InputTokens: 300, OutputTokens: 60,
			}, nil
		})
		deps.repo.EXPECT().LogActivity(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.AIActivity) error {
			assert.Equal(t, domain.AIActivitySucceeded, a.Status)
			assert.Equal(t, domain.AIKindAnalyzeEmail, a.Kind)
			require.NotNil(t, a.UserID)
			assert.Equal(t, "user-1", *a.UserID)
			assert.Greater(t, a.CostUSD, 0.0)
			return nil
		})
		deps.subs.EXPECT().RecordAITokens(gomock.Any(), "org-1", int64(360)).Return(nil)
		deps.repo.EXPECT().UpsertAnalysis(gomock.Any(), gomock.Any()).Return(nil)

		analysis, err := svc.AnalyzeEmail(ctx, "org-1", "email-1")
		require.NoError(t, err)
		assert.Equal(t, "Price negotiation", analysis.Summary)
		assert.Equal(t, domain.SentimentNeutral, analysis.Sentiment)
		assert.Equal(t, domain.PriorityMedium, analysis.Priority)
		assert.Equal(t, []string{"Send revised quote"}, analysis.ActionItems)
	})

	t.Run("unparseable reply is logged as failed", func(t *testing.T) {
		svc, deps := setupAIService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.emails.EXPECT().GetByID(gomock.Any(), "org-1", "email-1").Return(inboundEmailWithContent(), nil)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceAITokens, int64(1)).Return(nil)
		deps.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(&domain.CompletionResponse{
			Text: "I'd rather not.", Model: "m", InputTokens: 10, OutputTokens: 4,
		}, nil)
		deps.repo.EXPECT().LogActivity(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.AIActivity) error {
			assert.Equal(t, domain.AIActivityFailed, a.Status)
			assert.Equal(t, "AI response could not be parsed", a.Error)
			return nil
		})
		deps.subs.EXPECT().RecordAITokens(gomock.Any(), "org-1", int64(14)).Return(nil)

		_, err := svc.AnalyzeEmail(ctx, "org-1", "email-1")
		assert.ErrorIs(t, err, llm.ErrUnparseable)
	})

	t.Run("quota exhausted", func(t *testing.T) {
		svc, deps := setupAIService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.emails.EXPECT().GetByID(gomock.Any(), "org-1", "email-1").Return(inboundEmailWithContent(), nil)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceAITokens, int64(1)).
			Return(domain.NewPlanLimitError("ai_tokens", 10000))

		_, err := svc.AnalyzeEmail(ctx, "org-1", "email-1")
		var perr *domain.PermissionError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("provider error", func(t *testing.T) {
		svc, deps := setupAIService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.emails.EXPECT().GetByID(gomock.Any(), "org-1", "email-1").Return(inboundEmailWithContent(), nil)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceAITokens, int64(1)).Return(nil)
		deps.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(nil, errors.New("overloaded"))
		deps.repo.EXPECT().LogActivity(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.AIActivity) error {
			assert.Equal(t, domain.AIActivityFailed, a.Status)
			assert.Zero(t, a.InputTokens)
			return nil
		})

		_, err := svc.AnalyzeEmail(ctx, "org-1", "email-1")
		assert.EqualError(t, err, "overloaded")
	})
}

func TestAIService_DraftFollowup(t *testing.T) {
	svc, deps := setupAIService(t)
	sent := followupNow.AddDate(0, 0, -5)
	emailID, contactID := "email-1", "contact-1"
	f := &domain.Followup{
		ID: "fu-1", OrganizationID: "org-1", Subject: "Quote for 200 units",
		Recipients: []string{"buyer@client.com"}, OriginalSentAt: &sent, EmailIndexID: &emailID, ContactID: &contactID,
	}
	deps.contacts.EXPECT().GetByID(gomock.Any(), "org-1", "contact-1").Return(&domain.Contact{FirstName: "Ana", LastName: "Novak", Company: "Client d.o.o."}, nil)
	deps.emails.EXPECT().GetByID(gomock.Any(), "org-1", "email-1").Return(nil, domain.NewNotFound("email", "email-1"))
	deps.orgs.EXPECT().GetBranding(gomock.Any(), "org-1").Return(&domain.Branding{EmailSignature: "Best,\nSales team"}, nil)
	deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceAITokens, int64(1)).Return(nil)
	deps.client.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
		assert.Contains(t, req.Prompt, "sent 5 days ago")
		assert.Contains(t, req.Prompt, "Ana Novak from Client d.o.o.")
		return &domain.CompletionResponse{Text: `{"body":"Hi, any thoughts on the quote?"}`, Model: "m"}, nil
	})
	deps.repo.EXPECT().LogActivity(gomock.Any(), gomock.Any()).Return(nil)

	draft, err := svc.DraftFollowup(context.Background(), "org-1", f)
	require.NoError(t, err)
	assert.Equal(t, "Re: Quote for 200 units", draft.Subject)
	assert.Equal(t, "Hi, any thoughts on the quote?\n\nBest,\nSales team", draft.Body)
}

func TestAIService_DraftReply(t *testing.T) {
	svc, deps := setupAIService(t)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
	deps.emails.EXPECT().GetByID(gomock.Any(), "org-1", "email-1").Return(inboundEmailWithContent(), nil)
	deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceAITokens, int64(1)).Return(nil)
	deps.client.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
		assert.Contains(t, req.Prompt, "Instructions: offer 5%")
		return &domain.CompletionResponse{Text: `{"subject":"Re: pricing","body":"We can do 5%."}`, Model: "m", InputTokens: 5, OutputTokens: 5}, nil
	})
	deps.repo.EXPECT().LogActivity(gomock.Any(), gomock.Any()).Return(nil)
	deps.subs.EXPECT().RecordAITokens(gomock.Any(), "org-1", int64(10)).Return(nil)

	draft, err := svc.DraftReply(context.Background(), "org-1", "email-1", domain.DraftReplyRequest{Instructions: "offer 5%"})
	require.NoError(t, err)
	assert.Equal(t, "Re: pricing", draft.Subject)
}
