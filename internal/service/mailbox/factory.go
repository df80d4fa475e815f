package mailbox

import (
	"fmt"
	"net/http"
	"time"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/tracing"
)

// Factory builds the provider matching an account. Accounts must already carry decrypted secrets.
type Factory struct {
	httpClient domain.HTTPClient
	graphURL   string
	logger     logger.Logger
}

func NewFactory(log logger.Logger) *Factory {
	return &Factory{
		httpClient: tracing.WrapHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		graphURL:   GraphBaseURL,
		logger:     log,
	}
}

func (f *Factory) For(account *domain.EmailAccount) (domain.MailboxProvider, error) {
	switch account.Provider {
	case domain.ProviderIMAP:
		return NewIMAPProvider(account, f.logger), nil
	case domain.ProviderMicrosoft:
		return NewGraphProvider(account, f.httpClient, f.graphURL, f.logger), nil
	case domain.ProviderGoogle:
		return NewGmailProvider(account, f.logger), nil
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unsupported provider %q", account.Provider))
	}
}
