package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/pkg/crypto"
	"github.com/salesflow/crm/pkg/logger"
)

const testSecretKey = "test-secret-key"

type fakeRefresher struct {
	token *oauth2.Token
	err   error
	calls int
}

func (f *fakeRefresher) Refresh(ctx context.Context, account *domain.EmailAccount) (*oauth2.Token, error) {
	f.calls++
	return f.token, f.err
}

type emailAccountDeps struct {
	repo      *mocks.MockEmailAccountRepository
	factory   *mocks.MockMailboxFactory
	provider  *mocks.MockMailboxProvider
	auth      *mocks.MockAuthService
	subs      *mocks.MockSubscriptionService
	refresher *fakeRefresher
}

func setupEmailAccountService(t *testing.T, now time.Time) (*EmailAccountService, emailAccountDeps) {
	ctrl := gomock.NewController(t)
	deps := emailAccountDeps{
		repo:      mocks.NewMockEmailAccountRepository(ctrl),
		factory:   mocks.NewMockMailboxFactory(ctrl),
		provider:  mocks.NewMockMailboxProvider(ctrl),
		auth:      mocks.NewMockAuthService(ctrl),
		subs:      mocks.NewMockSubscriptionService(ctrl),
		refresher: &fakeRefresher{},
	}
	svc := NewEmailAccountService(EmailAccountServiceConfig{
		Repository:          deps.repo,
		MailboxFactory:      deps.factory,
		TokenRefresher:      deps.refresher,
		AuthService:         deps.auth,
		SubscriptionService: deps.subs,
		SecretKey:           testSecretKey,
		Logger:              logger.NewTestLogger(t),
	})
	svc.now = func() time.Time { return now }
	return svc, deps
}

func TestEmailAccountService_Create(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1"}
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	imapReq := domain.CreateEmailAccountRequest{
		Provider:     domain.ProviderIMAP,
		EmailAddress: "Sales@Example.com",
		IMAPHost:     "imap.example.com",
		Password:     "hunter2",
	}

	t.Run("tests connection and encrypts secrets", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, now)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceEmailAccounts, int64(1)).Return(nil)
		deps.factory.EXPECT().For(gomock.Any()).Return(deps.provider, nil)
		deps.provider.EXPECT().Test(gomock.Any()).Return(nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.EmailAccount) error {
			assert.Equal(t, "sales@example.com", a.EmailAddress)
			assert.Equal(t, 993, a.IMAPPort)
			assert.Equal(t, "user-1", a.UserID)
			require.NotEmpty(t, a.EncryptedPassword)
			plain, err := crypto.DecryptFromHexString(a.EncryptedPassword, testSecretKey)
			require.NoError(t, err)
			assert.Equal(t, "hunter2", plain)
			a.ID = "acc-1"
			return nil
		})

		account, err := svc.Create(ctx, "org-1", imapReq)
		require.NoError(t, err)
		assert.Equal(t, "acc-1", account.ID)
	})

	t.Run("failed connection test", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, now)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceEmailAccounts, int64(1)).Return(nil)
		deps.factory.EXPECT().For(gomock.Any()).Return(deps.provider, nil)
		deps.provider.EXPECT().Test(gomock.Any()).Return(errors.New("authentication failed"))

		_, err := svc.Create(ctx, "org-1", imapReq)
		var verr domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "authentication failed")
	})

	t.Run("skip test", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, now)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceEmailAccounts, int64(1)).Return(nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		req := imapReq
		req.SkipTest = true
		_, err := svc.Create(ctx, "org-1", req)
		require.NoError(t, err)
	})

	t.Run("plan limit", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, now)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceEmailAccounts, int64(1)).
			Return(domain.NewPlanLimitError("email_accounts", 1))

		_, err := svc.Create(ctx, "org-1", imapReq)
		var perr *domain.PermissionError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("oauth account needs a token", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, now)
		expectMember(deps.auth, "org-1", user, domain.RoleMember)

		_, err := svc.Create(ctx, "org-1", domain.CreateEmailAccountRequest{Provider: domain.ProviderMicrosoft, EmailAddress: "a@b.com"})
		var verr domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestEmailAccountService_Update(t *testing.T) {
	ctx := context.Background()
	owner := &domain.User{ID: "user-1"}
	other := &domain.User{ID: "user-2"}
	stored := func() *domain.EmailAccount {
		return &domain.EmailAccount{
			ID: "acc-1", OrganizationID: "org-1", UserID: "user-1", Provider: domain.ProviderIMAP,
			EmailAddress: "sales@example.com", IMAPHost: "imap.example.com", IMAPPort: 993,
			EncryptedPassword: "stored",
		}
	}

	t.Run("new password is re-encrypted", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, time.Now())
		expectMember(deps.auth, "org-1", owner, domain.RoleMember)
		deps.repo.EXPECT().GetByID(gomock.Any(), "org-1", "acc-1").Return(stored(), nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.EmailAccount) error {
			assert.NotEqual(t, "stored", a.EncryptedPassword)
			assert.False(t, a.SyncEnabled)
			return nil
		})

		pw, off := "new-pass", false
		_, err := svc.Update(ctx, "org-1", "acc-1", domain.UpdateEmailAccountRequest{Password: &pw, SyncEnabled: &off})
		require.NoError(t, err)
	})

	t.Run("other members need admin", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, time.Now())
		expectMember(deps.auth, "org-1", other, domain.RoleMember)
		deps.repo.EXPECT().GetByID(gomock.Any(), "org-1", "acc-1").Return(stored(), nil)

		name := "x"
		_, err := svc.Update(ctx, "org-1", "acc-1", domain.UpdateEmailAccountRequest{DisplayName: &name})
		var perr *domain.PermissionError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("admin may delete", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, time.Now())
		expectMember(deps.auth, "org-1", other, domain.RoleAdmin)
		deps.repo.EXPECT().GetByID(gomock.Any(), "org-1", "acc-1").Return(stored(), nil)
		deps.repo.EXPECT().Delete(gomock.Any(), "org-1", "acc-1").Return(nil)

		require.NoError(t, svc.Delete(ctx, "org-1", "acc-1"))
	})
}

func TestEmailAccountService_EnsureFreshToken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("token far from expiry is left alone", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, now)
		expires := now.Add(time.Hour)
		account := &domain.EmailAccount{ID: "acc-1", Provider: domain.ProviderGoogle, TokenExpiresAt: &expires}

		require.NoError(t, svc.EnsureFreshToken(ctx, account))
		assert.Equal(t, 0, deps.refresher.calls)
	})

	t.Run("expiring token is refreshed and stored", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, now)
		expires := now.Add(2 * time.Minute)
		newExpiry := now.Add(time.Hour)
		deps.refresher.token = &oauth2.Token{AccessToken: "fresh", Expiry: newExpiry}
		account := &domain.EmailAccount{ID: "acc-1", Provider: domain.ProviderMicrosoft, TokenExpiresAt: &expires, AccessToken: "old", RefreshToken: "r1"}

		deps.repo.EXPECT().UpdateTokens(gomock.Any(), "acc-1", gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, encAccess, encRefresh string, at *time.Time) error {
				access, err := crypto.DecryptFromHexString(encAccess, testSecretKey)
				require.NoError(t, err)
				assert.Equal(t, "fresh", access)
				refresh, err := crypto.DecryptFromHexString(encRefresh, testSecretKey)
				require.NoError(t, err)
				assert.Equal(t, "r1", refresh)
				require.NotNil(t, at)
				assert.True(t, at.Equal(newExpiry))
				return nil
			})

		require.NoError(t, svc.EnsureFreshToken(ctx, account))
		assert.Equal(t, "fresh", account.AccessToken)
		assert.Equal(t, "r1", account.RefreshToken)
	})

	t.Run("refresh failure", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, now)
		expires := now.Add(-time.Minute)
		deps.refresher.err = errors.New("invalid_grant")
		account := &domain.EmailAccount{ID: "acc-1", Provider: domain.ProviderGoogle, TokenExpiresAt: &expires, RefreshToken: "r1"}

		assert.Error(t, svc.EnsureFreshToken(ctx, account))
	})

	t.Run("imap accounts never refresh", func(t *testing.T) {
		svc, deps := setupEmailAccountService(t, now)
		expires := now.Add(-time.Minute)
		require.NoError(t, svc.EnsureFreshToken(ctx, &domain.EmailAccount{Provider: domain.ProviderIMAP, TokenExpiresAt: &expires}))
		assert.Equal(t, 0, deps.refresher.calls)
	})
}

func TestEmailAccountService_Load(t *testing.T) {
	svc, deps := setupEmailAccountService(t, time.Now())
	enc, err := crypto.EncryptString("hunter2", testSecretKey)
	require.NoError(t, err)
	deps.repo.EXPECT().GetByID(gomock.Any(), "org-1", "acc-1").Return(&domain.EmailAccount{
		ID: "acc-1", Provider: domain.ProviderIMAP, EncryptedPassword: enc,
	}, nil)

	account, err := svc.Load(context.Background(), "org-1", "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", account.Password)
}
