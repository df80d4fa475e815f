package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/pkg/crypto"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/metakocka"
)

type erpDeps struct {
	repo      *mocks.MockERPRepository
	client    *mocks.MockMetakockaClient
	contacts  *mocks.MockContactRepository
	pipelines *mocks.MockPipelineRepository
	auth      *mocks.MockAuthService
}

func setupERPService(t *testing.T) (*ERPService, erpDeps) {
	ctrl := gomock.NewController(t)
	deps := erpDeps{
		repo:      mocks.NewMockERPRepository(ctrl),
		client:    mocks.NewMockMetakockaClient(ctrl),
		contacts:  mocks.NewMockContactRepository(ctrl),
		pipelines: mocks.NewMockPipelineRepository(ctrl),
		auth:      mocks.NewMockAuthService(ctrl),
	}
	svc := NewERPService(deps.repo, deps.client, deps.contacts, deps.pipelines, deps.auth, testSecretKey, logger.NewTestLogger(t))
	svc.now = func() time.Time { return followupNow }
	return svc, deps
}

func storedCredentials(t *testing.T) *domain.MetakockaCredentials {
	enc, err := crypto.EncryptString("mk-secret", testSecretKey)
	require.NoError(t, err)
	return &domain.MetakockaCredentials{OrganizationID: "org-1", CompanyID: "4242", EncryptedSecretKey: enc, Enabled: true}
}

var mkCreds = metakocka.Credentials{CompanyID: "4242", SecretKey: "mk-secret"}

func TestERPService_SaveCredentials(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: "user-1"}

	t.Run("tests and encrypts", func(t *testing.T) {
		svc, deps := setupERPService(t)
		expectMember(deps.auth, "org-1", admin, domain.RoleAdmin)
		deps.client.EXPECT().TestConnection(gomock.Any(), mkCreds).Return(nil)
		deps.repo.EXPECT().SaveCredentials(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.MetakockaCredentials) error {
			plain, err := crypto.DecryptFromHexString(c.EncryptedSecretKey, testSecretKey)
			require.NoError(t, err)
			assert.Equal(t, "mk-secret", plain)
			return nil
		})

		creds, err := svc.SaveCredentials(ctx, "org-1", domain.SaveMetakockaRequest{CompanyID: " 4242 ", SecretKey: "mk-secret"})
		require.NoError(t, err)
		assert.True(t, creds.Enabled)
	})

	t.Run("members cannot configure", func(t *testing.T) {
		svc, deps := setupERPService(t)
		expectMember(deps.auth, "org-1", admin, domain.RoleMember)

		_, err := svc.SaveCredentials(ctx, "org-1", domain.SaveMetakockaRequest{CompanyID: "4242", SecretKey: "k"})
		var perr *domain.PermissionError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		svc, deps := setupERPService(t)
		expectMember(deps.auth, "org-1", admin, domain.RoleAdmin)
		deps.client.EXPECT().TestConnection(gomock.Any(), mkCreds).Return(&metakocka.APIError{Method: "product_list", Code: "1", Message: "wrong secret"})

		_, err := svc.SaveCredentials(ctx, "org-1", domain.SaveMetakockaRequest{CompanyID: "4242", SecretKey: "mk-secret"})
		var verr domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "wrong secret")
	})
}

func TestERPService_SyncProducts(t *testing.T) {
	svc, deps := setupERPService(t)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
	deps.repo.EXPECT().GetCredentials(gomock.Any(), "org-1").Return(storedCredentials(t), nil)

	full := make([]metakocka.Product, productPageSize)
	for i := range full {
		full[i] = metakocka.Product{MkID: "p", Code: "C", Name: "N"}
	}
	gomock.InOrder(
		deps.client.EXPECT().ListProducts(gomock.Any(), mkCreds, 0, productPageSize).Return(full, nil),
		deps.client.EXPECT().ListProducts(gomock.Any(), mkCreds, productPageSize, productPageSize).
			Return([]metakocka.Product{{MkID: "last", Code: "X", Name: "Widget", SalesPrice: 9.5}}, nil),
	)
	deps.repo.EXPECT().UpsertProducts(gomock.Any(), "org-1", gomock.Len(productPageSize)).Return(productPageSize, nil)
	deps.repo.EXPECT().UpsertProducts(gomock.Any(), "org-1", gomock.Len(1)).Return(1, nil)
	deps.repo.EXPECT().TouchLastSync(gomock.Any(), "org-1", followupNow).Return(nil)

	result, err := svc.SyncProducts(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, productPageSize+1, result.Fetched)
	assert.Equal(t, productPageSize+1, result.Upserted)
}

func TestERPService_NotConnected(t *testing.T) {
	svc, deps := setupERPService(t)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
	deps.repo.EXPECT().GetCredentials(gomock.Any(), "org-1").Return(nil, domain.NewNotFound("metakocka credentials", "org-1"))

	_, err := svc.SyncProducts(context.Background(), "org-1")
	var verr domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestERPService_PushContact(t *testing.T) {
	svc, deps := setupERPService(t)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
	deps.contacts.EXPECT().GetByID(gomock.Any(), "org-1", "contact-1").Return(&domain.Contact{
		ID: "contact-1", FirstName: "Ana", LastName: "Novak", Email: "ana@client.com", Company: "Client d.o.o.",
	}, nil)
	deps.repo.EXPECT().GetCredentials(gomock.Any(), "org-1").Return(storedCredentials(t), nil)
	deps.client.EXPECT().AddPartner(gomock.Any(), mkCreds, gomock.Any()).DoAndReturn(func(_ context.Context, _ metakocka.Credentials, p metakocka.Partner) (string, error) {
		assert.Equal(t, "Client d.o.o.", p.Name)
		assert.Equal(t, "Ana Novak", p.ContactName)
		assert.Equal(t, "business", p.BusinessType)
		return "mk-partner-9", nil
	})
	deps.contacts.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	contact, err := svc.PushContact(context.Background(), "org-1", "contact-1")
	require.NoError(t, err)
	require.NotNil(t, contact.MetakockaPartnerID)
	assert.Equal(t, "mk-partner-9", *contact.MetakockaPartnerID)
}

func TestERPService_PushOpportunityOrder(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1"}
	contactID := "contact-1"

	t.Run("value becomes a single line", func(t *testing.T) {
		svc, deps := setupERPService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.pipelines.EXPECT().GetOpportunity(gomock.Any(), "org-1", "opp-1").Return(&domain.Opportunity{
			ID: "opp-1", Title: "200 units", Value: 1250000, Currency: "EUR", ContactID: &contactID, Status: domain.OpportunityWon,
		}, nil)
		deps.contacts.EXPECT().GetByID(gomock.Any(), "org-1", "contact-1").Return(&domain.Contact{ID: "contact-1", Email: "ana@client.com"}, nil)
		deps.repo.EXPECT().GetCredentials(gomock.Any(), "org-1").Return(storedCredentials(t), nil)
		deps.client.EXPECT().PutSalesOrder(gomock.Any(), mkCreds, gomock.Any()).DoAndReturn(func(_ context.Context, _ metakocka.Credentials, o metakocka.SalesOrder) (string, error) {
			require.Len(t, o.Lines, 1)
			assert.Equal(t, 12500.0, o.Lines[0].Price)
			assert.Equal(t, "opp-1", o.Reference)
			assert.Equal(t, "ana@client.com", o.Partner.Name)
			return "order-77", nil
		})
		deps.pipelines.EXPECT().UpdateOpportunity(gomock.Any(), gomock.Any()).Return(nil)

		opp, err := svc.PushOpportunityOrder(ctx, "org-1", "opp-1", domain.PushOrderRequest{})
		require.NoError(t, err)
		assert.Equal(t, "order-77", *opp.MetakockaOrderID)
	})

	t.Run("already pushed", func(t *testing.T) {
		svc, deps := setupERPService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		orderID := "order-1"
		deps.pipelines.EXPECT().GetOpportunity(gomock.Any(), "org-1", "opp-1").Return(&domain.Opportunity{ID: "opp-1", MetakockaOrderID: &orderID}, nil)

		_, err := svc.PushOpportunityOrder(ctx, "org-1", "opp-1", domain.PushOrderRequest{})
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("needs a contact", func(t *testing.T) {
		svc, deps := setupERPService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.pipelines.EXPECT().GetOpportunity(gomock.Any(), "org-1", "opp-1").Return(&domain.Opportunity{ID: "opp-1", Status: domain.OpportunityWon}, nil)

		_, err := svc.PushOpportunityOrder(ctx, "org-1", "opp-1", domain.PushOrderRequest{})
		var verr domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("open opportunity is refused", func(t *testing.T) {
		svc, deps := setupERPService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.pipelines.EXPECT().GetOpportunity(gomock.Any(), "org-1", "opp-1").Return(&domain.Opportunity{
			ID: "opp-1", Status: domain.OpportunityOpen, ContactID: &contactID,
		}, nil)

		_, err := svc.PushOpportunityOrder(ctx, "org-1", "opp-1", domain.PushOrderRequest{})
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}
