package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/tracing"
)

const connectionTestTimeout = 30 * time.Second

// TokenRefresher is satisfied by mailbox.TokenRefresher.
type TokenRefresher interface {
	Refresh(ctx context.Context, account *domain.EmailAccount) (*oauth2.Token, error)
}

type EmailAccountService struct {
	repo          domain.EmailAccountRepository
	factory       domain.MailboxFactory
	refresher     TokenRefresher
	authService   domain.AuthService
	subscriptions domain.SubscriptionService
	secretKey     string
	logger        logger.Logger
	now           func() time.Time
}

type EmailAccountServiceConfig struct {
	Repository          domain.EmailAccountRepository
	MailboxFactory      domain.MailboxFactory
	TokenRefresher      TokenRefresher
	AuthService         domain.AuthService
	SubscriptionService domain.SubscriptionService
	SecretKey           string
	Logger              logger.Logger
}

func NewEmailAccountService(cfg EmailAccountServiceConfig) *EmailAccountService {
	return &EmailAccountService{
		repo:          cfg.Repository,
		factory:       cfg.MailboxFactory,
		refresher:     cfg.TokenRefresher,
		authService:   cfg.AuthService,
		subscriptions: cfg.SubscriptionService,
		secretKey:     cfg.SecretKey,
		logger:        cfg.Logger,
		now:           time.Now,
	}
}

var _ domain.EmailAccountService = (*EmailAccountService)(nil)

func (s *EmailAccountService) List(ctx context.Context, organizationID string) ([]*domain.EmailAccount, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, organizationID)
}

func (s *EmailAccountService) Create(ctx context.Context, organizationID string, req domain.CreateEmailAccountRequest) (*domain.EmailAccount, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "EmailAccountService", "Create")
	defer span.End()

	ctx, user, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	account := req.ToAccount(organizationID, user.ID)
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.subscriptions.CheckLimit(ctx, organizationID, domain.ResourceEmailAccounts, 1); err != nil {
		return nil, err
	}
	if !req.SkipTest {
		if err := s.testAccount(ctx, account); err != nil {
			return nil, err
		}
	}

	if err := account.EncryptSecrets(s.secretKey); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, account); err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithFields(map[string]interface{}{
			"organization_id": organizationID,
			"email_address":   account.EmailAddress,
			"error":           err.Error(),
		}).Error("Failed to create email account")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"organization_id": organizationID,
		"account_id":      account.ID,
		"provider":        account.Provider,
	}).Info("Email account connected")
	return account, nil
}

func (s *EmailAccountService) Get(ctx context.Context, organizationID, id string) (*domain.EmailAccount, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, organizationID, id)
}

// canManage lets the connecting user or an admin change an account.
func canManage(ctx context.Context, user *domain.User, account *domain.EmailAccount) error {
	if account.UserID == user.ID {
		return nil
	}
	return domain.RequireRole(ctx, domain.RoleAdmin)
}

func (s *EmailAccountService) Update(ctx context.Context, organizationID, id string, req domain.UpdateEmailAccountRequest) (*domain.EmailAccount, error) {
	ctx, user, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if err := canManage(ctx, user, account); err != nil {
		return nil, err
	}

	req.Apply(account)
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if req.Password != nil {
		if err := account.EncryptSecrets(s.secretKey); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, account); err != nil {
		s.logger.WithField("account_id", id).WithField("error", err.Error()).Error("Failed to update email account")
		return nil, err
	}
	return account, nil
}

// Delete removes the account; indexed messages and cached content cascade.
func (s *EmailAccountService) Delete(ctx context.Context, organizationID, id string) error {
	ctx, user, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	account, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if err := canManage(ctx, user, account); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, organizationID, id); err != nil {
		s.logger.WithField("account_id", id).WithField("error", err.Error()).Error("Failed to delete email account")
		return err
	}
	return nil
}

func (s *EmailAccountService) TestConnection(ctx context.Context, organizationID, id string) error {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	account, err := s.Load(ctx, organizationID, id)
	if err != nil {
		return err
	}
	return s.testAccount(ctx, account)
}

func (s *EmailAccountService) testAccount(ctx context.Context, account *domain.EmailAccount) error {
	provider, err := s.factory.For(account)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, connectionTestTimeout)
	defer cancel()

	if err := provider.Test(ctx); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"account_id":    account.ID,
			"email_address": account.EmailAddress,
			"error":         err.Error(),
		}).Warn("Email account connection test failed")
		return domain.NewValidationError(fmt.Sprintf("connection test failed: %s", err.Error()))
	}
	return nil
}

// Load is used by background jobs and carries no user check.
func (s *EmailAccountService) Load(ctx context.Context, organizationID, id string) (*domain.EmailAccount, error) {
	account, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if err := account.DecryptSecrets(s.secretKey); err != nil {
		return nil, err
	}
	if err := s.EnsureFreshToken(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// EnsureFreshToken refreshes an OAuth token expiring within the refresh window and persists it.
// The account must carry decrypted secrets.
func (s *EmailAccountService) EnsureFreshToken(ctx context.Context, account *domain.EmailAccount) error {
	if !account.NeedsTokenRefresh(s.now()) {
		return nil
	}
	ctx, span := tracing.StartServiceSpan(ctx, "EmailAccountService", "EnsureFreshToken")
	defer span.End()

	token, err := s.refresher.Refresh(ctx, account)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithFields(map[string]interface{}{
			"account_id": account.ID,
			"provider":   account.Provider,
			"error":      err.Error(),
		}).Error("Failed to refresh OAuth token")
		return err
	}

	account.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		account.RefreshToken = token.RefreshToken
	}
	var expiresAt *time.Time
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC()
		expiresAt = &expiry
	}
	account.TokenExpiresAt = expiresAt

	if err := account.EncryptSecrets(s.secretKey); err != nil {
		return err
	}
	if err := s.repo.UpdateTokens(ctx, account.ID, account.EncryptedAccessToken, account.EncryptedRefreshToken, expiresAt); err != nil {
		s.logger.WithField("account_id", account.ID).WithField("error", err.Error()).Error("Failed to store refreshed token")
		return err
	}

	s.logger.WithField("account_id", account.ID).Debug("OAuth token refreshed")
	return nil
}
