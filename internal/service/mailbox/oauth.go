package mailbox

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/salesflow/crm/internal/domain"
)

type OAuthSettings struct {
	MicrosoftClientID     string
	MicrosoftClientSecret string
	MicrosoftTenant       string
	GoogleClientID        string
	GoogleClientSecret    string
	RedirectURL           string
}

// TokenRefresher exchanges stored refresh tokens for new access tokens.
type TokenRefresher struct {
	microsoft  *oauth2.Config
	google     *oauth2.Config
	httpClient *http.Client
}

func NewTokenRefresher(s OAuthSettings, httpClient *http.Client) *TokenRefresher {
	tenant := s.MicrosoftTenant
	if tenant == "" {
		tenant = "common"
	}
	return &TokenRefresher{
		microsoft: &oauth2.Config{
			ClientID:     s.MicrosoftClientID,
			ClientSecret: s.MicrosoftClientSecret,
			RedirectURL:  s.RedirectURL,
			Endpoint:     microsoft.AzureADEndpoint(tenant),
			Scopes: []string{
				"offline_access",
				"https://graph.microsoft.com/Mail.ReadWrite",
				"https://graph.microsoft.com/Mail.Send",
				"https://graph.microsoft.com/User.Read",
			},
		},
		google: &oauth2.Config{
			ClientID:     s.GoogleClientID,
			ClientSecret: s.GoogleClientSecret,
			RedirectURL:  s.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				gmailapi.GmailReadonlyScope,
				gmailapi.GmailSendScope,
			},
		},
		httpClient: httpClient,
	}
}

func (r *TokenRefresher) configFor(provider domain.EmailProviderKind) (*oauth2.Config, error) {
	var cfg *oauth2.Config
	switch provider {
	case domain.ProviderMicrosoft:
		cfg = r.microsoft
	case domain.ProviderGoogle:
		cfg = r.google
	default:
		return nil, fmt.Errorf("provider %s does not use OAuth", provider)
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("OAuth client for %s is not configured", provider)
	}
	return cfg, nil
}

// Refresh returns a new token for the account. Providers that do not rotate
// refresh tokens leave RefreshToken empty, callers keep the old one.
func (r *TokenRefresher) Refresh(ctx context.Context, account *domain.EmailAccount) (*oauth2.Token, error) {
	if account.RefreshToken == "" {
		return nil, domain.NewValidationError("account has no refresh token, reconnect it")
	}
	cfg, err := r.configFor(account.Provider)
	if err != nil {
		return nil, err
	}
	if r.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	}
	expired := &oauth2.Token{
		RefreshToken: account.RefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	}
	token, err := cfg.TokenSource(ctx, expired).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh %s token: %w", account.Provider, err)
	}
	if token.RefreshToken == account.RefreshToken {
		token.RefreshToken = ""
	}
	return token, nil
}
