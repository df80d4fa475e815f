package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/pkg/logger"
)

type supplierDeps struct {
	repo *mocks.MockSupplierRepository
	ai   *mocks.MockAIService
	auth *mocks.MockAuthService
}

func setupSupplierService(t *testing.T, client domain.HTTPClient) (*SupplierService, supplierDeps) {
	ctrl := gomock.NewController(t)
	deps := supplierDeps{
		repo: mocks.NewMockSupplierRepository(ctrl),
		ai:   mocks.NewMockAIService(ctrl),
		auth: mocks.NewMockAuthService(ctrl),
	}
	svc := NewSupplierService(deps.repo, deps.ai, client, deps.auth, logger.NewTestLogger(t))
	svc.now = func() time.Time { return followupNow }
	return svc, deps
}

func TestSupplierService_Create(t *testing.T) {
	svc, deps := setupSupplierService(t, nil)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)

	_, err := svc.Create(context.Background(), "org-1", &domain.Supplier{Name: "Acme", Rating: 7})
	var verr domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSupplierService_Enrich(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SalesflowBot/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Steel Parts Ltd</title>
			<meta name="description" content="Precision steel parts since 1987"></head>
			<body><a href="mailto:Sales@SteelParts.example?subject=Hi">Mail</a>
			<a href="tel:+386 1 234 5678">Call</a></body></html>`))
	}))
	defer server.Close()

	svc, deps := setupSupplierService(t, server.Client())
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
	deps.repo.EXPECT().GetByID(gomock.Any(), "org-1", "sup-1").Return(&domain.Supplier{
		ID: "sup-1", OrganizationID: "org-1", Name: "Steel Parts", Website: server.URL, Phone: "+386 40 000 000",
	}, nil)
	deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	supplier, err := svc.Enrich(context.Background(), "org-1", "sup-1")
	require.NoError(t, err)
	assert.Equal(t, "Precision steel parts since 1987", supplier.Description)
	assert.Equal(t, "sales@steelparts.example", supplier.Email)
	assert.Equal(t, "+386 40 000 000", supplier.Phone)
}

func TestSupplierService_EnrichWithoutWebsite(t *testing.T) {
	svc, deps := setupSupplierService(t, nil)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
	deps.repo.EXPECT().GetByID(gomock.Any(), "org-1", "sup-1").Return(&domain.Supplier{ID: "sup-1", Name: "X"}, nil)

	_, err := svc.Enrich(context.Background(), "org-1", "sup-1")
	var verr domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSupplierService_Source(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1"}

	t.Run("stores suggestions", func(t *testing.T) {
		svc, deps := setupSupplierService(t, nil)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.repo.EXPECT().List(gomock.Any(), "org-1", "").Return([]*domain.Supplier{{Name: "Screws d.o.o."}}, nil)
		deps.ai.EXPECT().Complete(gomock.Any(), "org-1", domain.AIKindSourcing, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ domain.AIActivityKind, entityID string, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
				assert.NotEmpty(t, entityID)
				assert.Contains(t, req.Prompt, "Quantity needed: 500")
				assert.Contains(t, req.Prompt, "do not suggest these again: Screws d.o.o.")
				return &domain.CompletionResponse{Text: `{"suppliers":[{"name":"Bolt GmbH","website":"bolt.example.de","country":"DE","reason":"ISO certified"},{"name":""}]}`}, nil
			})
		deps.repo.EXPECT().CreateSourcingRequest(gomock.Any(), gomock.Any()).Return(nil)

		req, err := svc.Source(ctx, "org-1", domain.CreateSourcingRequest{Query: "M8 stainless bolts", Quantity: 500})
		require.NoError(t, err)
		assert.Equal(t, domain.SourcingCompleted, req.Status)
		require.Len(t, req.Suggestions, 1)
		assert.Equal(t, "Bolt GmbH", req.Suggestions[0].Name)
	})

	t.Run("unusable reply is stored as failed", func(t *testing.T) {
		svc, deps := setupSupplierService(t, nil)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.repo.EXPECT().List(gomock.Any(), "org-1", "").Return(nil, nil)
		deps.ai.EXPECT().Complete(gomock.Any(), "org-1", domain.AIKindSourcing, gomock.Any(), gomock.Any()).
			Return(&domain.CompletionResponse{Text: "no idea"}, nil)
		deps.repo.EXPECT().CreateSourcingRequest(gomock.Any(), gomock.Any()).Return(nil)

		req, err := svc.Source(ctx, "org-1", domain.CreateSourcingRequest{Query: "widgets"})
		require.NoError(t, err)
		assert.Equal(t, domain.SourcingFailed, req.Status)
		assert.Equal(t, "AI response could not be parsed", req.Error)
	})

	t.Run("provider failure is stored as failed", func(t *testing.T) {
		svc, deps := setupSupplierService(t, nil)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.repo.EXPECT().List(gomock.Any(), "org-1", "").Return(nil, nil)
		deps.ai.EXPECT().Complete(gomock.Any(), "org-1", domain.AIKindSourcing, gomock.Any(), gomock.Any()).
			Return(nil, errors.New("timeout"))
		deps.repo.EXPECT().CreateSourcingRequest(gomock.Any(), gomock.Any()).Return(nil)

		req, err := svc.Source(ctx, "org-1", domain.CreateSourcingRequest{Query: "widgets"})
		require.NoError(t, err)
		assert.Equal(t, domain.SourcingFailed, req.Status)
	})

	t.Run("quota errors are returned", func(t *testing.T) {
		svc, deps := setupSupplierService(t, nil)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.repo.EXPECT().List(gomock.Any(), "org-1", "").Return(nil, nil)
		deps.ai.EXPECT().Complete(gomock.Any(), "org-1", domain.AIKindSourcing, gomock.Any(), gomock.Any()).
			Return(nil, domain.NewPlanLimitError("ai_tokens", 1000))

		_, err := svc.Source(ctx, "org-1", domain.CreateSourcingRequest{Query: "widgets"})
		var perr *domain.PermissionError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestSupplierService_AcceptSuggestion(t *testing.T) {
	ctx := context.Background()
	sourcing := &domain.SourcingRequest{
		ID: "src-1", OrganizationID: "org-1",
		Suggestions: domain.Suggestions{
			{Name: "Bolt GmbH", Website: "not a url", Country: "DE", Reason: "ISO certified"},
		},
	}

	t.Run("creates ai supplier", func(t *testing.T) {
		svc, deps := setupSupplierService(t, nil)
		expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
		deps.repo.EXPECT().GetSourcingRequest(gomock.Any(), "org-1", "src-1").Return(sourcing, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		supplier, err := svc.AcceptSuggestion(ctx, "org-1", "src-1", domain.AcceptSuggestionRequest{Index: 0})
		require.NoError(t, err)
		assert.Equal(t, domain.SupplierSourceAI, supplier.Source)
		assert.Equal(t, "ISO certified", supplier.Description)
		assert.Empty(t, supplier.Website)
	})

	t.Run("index out of range", func(t *testing.T) {
		svc, deps := setupSupplierService(t, nil)
		expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
		deps.repo.EXPECT().GetSourcingRequest(gomock.Any(), "org-1", "src-1").Return(sourcing, nil)

		_, err := svc.AcceptSuggestion(ctx, "org-1", "src-1", domain.AcceptSuggestionRequest{Index: 3})
		var verr domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
