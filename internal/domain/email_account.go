package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/salesflow/crm/pkg/crypto"
)

//go:generate mockgen -destination mocks/mock_email_account_repository.go -package mocks github.com/salesflow/crm/internal/domain EmailAccountRepository,EmailAccountService

type EmailProviderKind string

const (
	ProviderIMAP      EmailProviderKind = "imap"
	ProviderMicrosoft EmailProviderKind = "microsoft"
	ProviderGoogle    EmailProviderKind = "google"
)

func (k EmailProviderKind) IsOAuth() bool {
	return k == ProviderMicrosoft || k == ProviderGoogle
}

type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusError   SyncStatus = "error"
)

// TokenRefreshWindow is how close to expiry an OAuth token gets refreshed.
const TokenRefreshWindow = 5 * time.Minute

type EmailAccount struct {
	ID             string            `json:"id"`
	OrganizationID string            `json:"organization_id"`
	UserID         string            `json:"user_id"`
	Provider       EmailProviderKind `json:"provider"`
	EmailAddress   string            `json:"email_address"`
	DisplayName    string            `json:"display_name"`
	IMAPHost       string            `json:"imap_host,omitempty"`
	IMAPPort       int               `json:"imap_port,omitempty"`
	IMAPUseTLS     bool              `json:"imap_use_tls"`
	SMTPHost       string            `json:"smtp_host,omitempty"`
	SMTPPort       int               `json:"smtp_port,omitempty"`
	Username       string            `json:"username,omitempty"`

	EncryptedPassword     string `json:"-"`
	EncryptedAccessToken  string `json:"-"`
	EncryptedRefreshToken string `json:"-"`

	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	SyncEnabled    bool       `json:"sync_enabled"`
	SyncStatus     SyncStatus `json:"sync_status"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	LastSyncCursor string     `json:"last_sync_cursor,omitempty"`
	LastError      string     `json:"last_error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// decrypted secrets, never stored nor serialized
	Password     string `json:"-"`
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
}

func (a *EmailAccount) Validate() error {
	a.EmailAddress = strings.ToLower(strings.TrimSpace(a.EmailAddress))
	if !govalidator.IsEmail(a.EmailAddress) {
		return NewValidationError("invalid email_address")
	}
	switch a.Provider {
	case ProviderIMAP:
		if a.IMAPHost == "" {
			return NewValidationError("imap_host is required for imap accounts")
		}
		if a.IMAPPort == 0 {
			a.IMAPPort = 993
		}
		if a.SMTPPort == 0 && a.SMTPHost != "" {
			a.SMTPPort = 587
		}
		if a.Username == "" {
			a.Username = a.EmailAddress
		}
		if a.Password == "" && a.EncryptedPassword == "" {
			return NewValidationError("password is required for imap accounts")
		}
	case ProviderMicrosoft, ProviderGoogle:
		if a.AccessToken == "" && a.EncryptedAccessToken == "" {
			return NewValidationError("access_token is required for oauth accounts")
		}
	default:
		return NewValidationError("provider must be imap, microsoft or google")
	}
	if a.IMAPPort < 0 || a.IMAPPort > 65535 || a.SMTPPort < 0 || a.SMTPPort > 65535 {
		return NewValidationError("invalid port")
	}
	if a.SyncStatus == "" {
		a.SyncStatus = SyncStatusIdle
	}
	return nil
}

// NeedsTokenRefresh reports whether an OAuth token expires within the refresh window.
func (a *EmailAccount) NeedsTokenRefresh(now time.Time) bool {
	if !a.Provider.IsOAuth() || a.TokenExpiresAt == nil {
		return false
	}
	return a.TokenExpiresAt.Before(now.Add(TokenRefreshWindow))
}

func (a *EmailAccount) EncryptSecrets(passphrase string) error {
	var err error
	if a.Password != "" {
		if a.EncryptedPassword, err = crypto.EncryptString(a.Password, passphrase); err != nil {
			return fmt.Errorf("failed to encrypt password: %w", err)
		}
	}
	if a.AccessToken != "" {
		if a.EncryptedAccessToken, err = crypto.EncryptString(a.AccessToken, passphrase); err != nil {
			return fmt.Errorf("failed to encrypt access token: %w", err)
		}
	}
	if a.RefreshToken != "" {
		if a.EncryptedRefreshToken, err = crypto.EncryptString(a.RefreshToken, passphrase); err != nil {
			return fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
	}
	return nil
}

func (a *EmailAccount) DecryptSecrets(passphrase string) error {
	var err error
	if a.EncryptedPassword != "" {
		if a.Password, err = crypto.DecryptFromHexString(a.EncryptedPassword, passphrase); err != nil {
			return fmt.Errorf("failed to decrypt password: %w", err)
		}
	}
	if a.EncryptedAccessToken != "" {
		if a.AccessToken, err = crypto.DecryptFromHexString(a.EncryptedAccessToken, passphrase); err != nil {
			return fmt.Errorf("failed to decrypt access token: %w", err)
		}
	}
	if a.EncryptedRefreshToken != "" {
		if a.RefreshToken, err = crypto.DecryptFromHexString(a.EncryptedRefreshToken, passphrase); err != nil {
			return fmt.Errorf("failed to decrypt refresh token: %w", err)
		}
	}
	return nil
}

// CreateEmailAccountRequest carries plaintext secrets from the API.
type CreateEmailAccountRequest struct {
	Provider       EmailProviderKind `json:"provider"`
	EmailAddress   string            `json:"email_address"`
	DisplayName    string            `json:"display_name"`
	IMAPHost       string            `json:"imap_host"`
	IMAPPort       int               `json:"imap_port"`
	IMAPUseTLS     *bool             `json:"imap_use_tls"`
	SMTPHost       string            `json:"smtp_host"`
	SMTPPort       int               `json:"smtp_port"`
	Username       string            `json:"username"`
	Password       string            `json:"password"`
	AccessToken    string            `json:"access_token"`
	RefreshToken   string            `json:"refresh_token"`
	TokenExpiresAt *time.Time        `json:"token_expires_at"`
	SyncEnabled    *bool             `json:"sync_enabled"`
	SkipTest       bool              `json:"skip_test"`
}

func (r *CreateEmailAccountRequest) ToAccount(organizationID, userID string) *EmailAccount {
	a := &EmailAccount{
		OrganizationID: organizationID,
		UserID:         userID,
		Provider:       r.Provider,
		EmailAddress:   r.EmailAddress,
		DisplayName:    r.DisplayName,
		IMAPHost:       r.IMAPHost,
		IMAPPort:       r.IMAPPort,
		IMAPUseTLS:     true,
		SMTPHost:       r.SMTPHost,
		SMTPPort:       r.SMTPPort,
		Username:       r.Username,
		Password:       r.Password,
		AccessToken:    r.AccessToken,
		RefreshToken:   r.RefreshToken,
		TokenExpiresAt: r.TokenExpiresAt,
		SyncEnabled:    true,
		SyncStatus:     SyncStatusIdle,
	}
	if r.IMAPUseTLS != nil {
		a.IMAPUseTLS = *r.IMAPUseTLS
	}
	if r.SyncEnabled != nil {
		a.SyncEnabled = *r.SyncEnabled
	}
	return a
}

type UpdateEmailAccountRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	IMAPHost    *string `json:"imap_host,omitempty"`
	IMAPPort    *int    `json:"imap_port,omitempty"`
	IMAPUseTLS  *bool   `json:"imap_use_tls,omitempty"`
	SMTPHost    *string `json:"smtp_host,omitempty"`
	SMTPPort    *int    `json:"smtp_port,omitempty"`
	Username    *string `json:"username,omitempty"`
	Password    *string `json:"password,omitempty"`
	SyncEnabled *bool   `json:"sync_enabled,omitempty"`
}

func (r *UpdateEmailAccountRequest) Apply(a *EmailAccount) {
	if r.DisplayName != nil {
		a.DisplayName = *r.DisplayName
	}
	if r.IMAPHost != nil {
		a.IMAPHost = *r.IMAPHost
	}
	if r.IMAPPort != nil {
		a.IMAPPort = *r.IMAPPort
	}
	if r.IMAPUseTLS != nil {
		a.IMAPUseTLS = *r.IMAPUseTLS
	}
	if r.SMTPHost != nil {
		a.SMTPHost = *r.SMTPHost
	}
	if r.SMTPPort != nil {
		a.SMTPPort = *r.SMTPPort
	}
	if r.Username != nil {
		a.Username = *r.Username
	}
	if r.Password != nil {
		a.Password = *r.Password
	}
	if r.SyncEnabled != nil {
		a.SyncEnabled = *r.SyncEnabled
	}
}

// SyncState is the subset of account columns written by the sync job.
type SyncState struct {
	Status     SyncStatus
	Cursor     *string
	LastSyncAt *time.Time
	LastError  *string
}

type EmailAccountRepository interface {
	Create(ctx context.Context, account *EmailAccount) error
	GetByID(ctx context.Context, organizationID, id string) (*EmailAccount, error)
	List(ctx context.Context, organizationID string) ([]*EmailAccount, error)
	// ListSyncEnabled returns accounts of every active organization with sync turned on.
	ListSyncEnabled(ctx context.Context) ([]*EmailAccount, error)
	Update(ctx context.Context, account *EmailAccount) error
	UpdateSyncState(ctx context.Context, id string, state SyncState) error
	UpdateTokens(ctx context.Context, id, encryptedAccess, encryptedRefresh string, expiresAt *time.Time) error
	Delete(ctx context.Context, organizationID, id string) error
	Count(ctx context.Context, organizationID string) (int, error)
}

type EmailAccountService interface {
	List(ctx context.Context, organizationID string) ([]*EmailAccount, error)
	Create(ctx context.Context, organizationID string, req CreateEmailAccountRequest) (*EmailAccount, error)
	Get(ctx context.Context, organizationID, id string) (*EmailAccount, error)
	Update(ctx context.Context, organizationID, id string, req UpdateEmailAccountRequest) (*EmailAccount, error)
	Delete(ctx context.Context, organizationID, id string) error
	TestConnection(ctx context.Context, organizationID, id string) error
	// Load returns the account with decrypted secrets and a fresh OAuth token.
	Load(ctx context.Context, organizationID, id string) (*EmailAccount, error)
	EnsureFreshToken(ctx context.Context, account *EmailAccount) error
}
