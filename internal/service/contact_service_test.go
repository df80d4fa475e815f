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
	"github.com/salesflow/crm/pkg/logger"
)

type contactDeps struct {
	repo      *mocks.MockContactRepository
	emailRepo *mocks.MockEmailRepository
	auth      *mocks.MockAuthService
	subs      *mocks.MockSubscriptionService
}

func setupContactService(t *testing.T) (*ContactService, contactDeps) {
	ctrl := gomock.NewController(t)
	deps := contactDeps{
		repo:      mocks.NewMockContactRepository(ctrl),
		emailRepo: mocks.NewMockEmailRepository(ctrl),
		auth:      mocks.NewMockAuthService(ctrl),
		subs:      mocks.NewMockSubscriptionService(ctrl),
	}
	return NewContactService(deps.repo, deps.emailRepo, deps.auth, deps.subs, logger.NewTestLogger(t)), deps
}

func TestContactService_Create(t *testing.T) {
	user := &domain.User{ID: "user-1"}

	t.Run("defaults and owner", func(t *testing.T) {
		svc, deps := setupContactService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceContacts, int64(1)).Return(nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Contact) error {
			assert.Equal(t, "org-1", c.OrganizationID)
			assert.Equal(t, "ana@example.com", c.Email)
			assert.Equal(t, domain.ContactStatusLead, c.Status)
			assert.Equal(t, domain.ContactSourceManual, c.Source)
			require.NotNil(t, c.OwnerID)
			assert.Equal(t, "user-1", *c.OwnerID)
			c.ID = "contact-1"
			return nil
		})

		c, err := svc.Create(context.Background(), "org-1", &domain.Contact{Email: " ANA@example.com", FirstName: "Ana"})
		require.NoError(t, err)
		assert.Equal(t, "contact-1", c.ID)
	})

	t.Run("needs email or name", func(t *testing.T) {
		svc, deps := setupContactService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		_, err := svc.Create(context.Background(), "org-1", &domain.Contact{Phone: "+386 1 234 567"})
		var ve domain.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("plan limit", func(t *testing.T) {
		svc, deps := setupContactService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceContacts, int64(1)).Return(domain.NewPlanLimitError("contacts", 100))
		_, err := svc.Create(context.Background(), "org-1", &domain.Contact{Email: "ana@example.com"})
		var pe *domain.PermissionError
		assert.True(t, errors.As(err, &pe))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, deps := setupContactService(t)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceContacts, int64(1)).Return(nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.NewConflictError("contact with email %s already exists", "ana@example.com"))
		_, err := svc.Create(context.Background(), "org-1", &domain.Contact{Email: "ana@example.com"})
		var ce *domain.ConflictError
		assert.True(t, errors.As(err, &ce))
	})

	t.Run("not a member", func(t *testing.T) {
		svc, deps := setupContactService(t)
		deps.auth.EXPECT().AuthenticateUserForOrganization(gomock.Any(), "org-1").
			Return(nil, nil, nil, domain.NewPermissionError("not a member of this organization"))
		_, err := svc.Create(context.Background(), "org-1", &domain.Contact{Email: "ana@example.com"})
		var pe *domain.PermissionError
		assert.True(t, errors.As(err, &pe))
	})
}

func TestContactService_Update(t *testing.T) {
	svc, deps := setupContactService(t)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
	deps.repo.EXPECT().GetByID(gomock.Any(), "org-1", "contact-1").Return(&domain.Contact{
		ID: "contact-1", OrganizationID: "org-1", Email: "ana@example.com", Status: domain.ContactStatusLead,
	}, nil)
	deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	status := domain.ContactStatusCustomer
	company := "Acme"
	c, err := svc.Update(context.Background(), "org-1", "contact-1", domain.UpdateContactRequest{Status: &status, Company: &company})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusCustomer, c.Status)
	assert.Equal(t, "Acme", c.Company)
}

func TestContactService_Import(t *testing.T) {
	svc, deps := setupContactService(t)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
	deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceContacts, int64(2)).Return(nil)
	deps.repo.EXPECT().BulkUpsert(gomock.Any(), "org-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, contacts []*domain.Contact) (int, int, error) {
			require.Len(t, contacts, 2)
			assert.Equal(t, domain.ContactSourceImport, contacts[0].Source)
			return 1, 1, nil
		})

	res, err := svc.Import(context.Background(), "org-1", domain.ImportContactsRequest{Contacts: []*domain.Contact{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
		{Email: "A@example.com"},
		{Email: "not-an-email"},
		{FirstName: "No Email"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 3, res.Failed)
	assert.Len(t, res.Errors, 3)
}

func TestContactService_ListEmails(t *testing.T) {
	svc, deps := setupContactService(t)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)
	deps.repo.EXPECT().GetByID(gomock.Any(), "org-1", "contact-1").Return(&domain.Contact{ID: "contact-1", Email: "ana@example.com"}, nil)
	deps.emailRepo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.ListEmailsRequest) (*domain.ListEmailsResponse, error) {
		assert.Equal(t, []string{"ana@example.com"}, req.Addresses)
		assert.Equal(t, "contact-1", req.ContactID)
		return &domain.ListEmailsResponse{Emails: []*domain.EmailIndex{{ID: "email-1"}}}, nil
	})

	res, err := svc.ListEmails(context.Background(), "org-1", "contact-1", domain.Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, res.Emails, 1)
}

func TestContactService_LinkMessage(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	org := &domain.Organization{ID: "org-1"}

	t.Run("existing contact is touched", func(t *testing.T) {
		svc, deps := setupContactService(t)
		deps.repo.EXPECT().FindByEmails(gomock.Any(), "org-1", []string{"ana@example.com"}).
			Return(map[string]*domain.Contact{"ana@example.com": {ID: "contact-1"}}, nil)
		deps.repo.EXPECT().TouchLastContacted(gomock.Any(), "org-1", "contact-1", at).Return(nil)

		c, err := svc.LinkMessage(context.Background(), org, []string{"ana@example.com"}, at)
		require.NoError(t, err)
		assert.Equal(t, "contact-1", c.ID)
	})

	t.Run("unknown address without auto create", func(t *testing.T) {
		svc, deps := setupContactService(t)
		deps.repo.EXPECT().FindByEmails(gomock.Any(), "org-1", gomock.Any()).Return(map[string]*domain.Contact{}, nil)

		c, err := svc.LinkMessage(context.Background(), org, []string{"new@example.com"}, at)
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("unknown address auto created", func(t *testing.T) {
		svc, deps := setupContactService(t)
		autoOrg := &domain.Organization{ID: "org-1", Settings: domain.OrganizationSettings{AutoCreateContacts: true}}
		deps.repo.EXPECT().FindByEmails(gomock.Any(), "org-1", gomock.Any()).Return(map[string]*domain.Contact{}, nil)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceContacts, int64(1)).Return(nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Contact) error {
			assert.Equal(t, domain.ContactSourceEmailSync, c.Source)
			assert.Equal(t, "new@example.com", c.Email)
			return nil
		})

		c, err := svc.LinkMessage(context.Background(), autoOrg, []string{"new@example.com"}, at)
		require.NoError(t, err)
		require.NotNil(t, c)
	})
}
