package mailbox

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

const (
	gmailUser = "me"
	// listing is newest-first, so ids are collected before fetching oldest-first
	gmailMaxListed = 2000
)

// GmailProvider reads and sends mail for Google accounts through the Gmail API.
type GmailProvider struct {
	account *domain.EmailAccount
	opts    []option.ClientOption
	logger  logger.Logger
	service *gmailapi.Service
}

// NewGmailProvider authenticates with the account's access token. Extra options
// (endpoint, http client) override the defaults.
func NewGmailProvider(account *domain.EmailAccount, log logger.Logger, opts ...option.ClientOption) *GmailProvider {
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: account.AccessToken,
				TokenType:   "Bearer",
			})),
		}
	}
	return &GmailProvider{account: account, opts: opts, logger: log}
}

func (p *GmailProvider) ensureService(ctx context.Context) (*gmailapi.Service, error) {
	if p.service != nil {
		return p.service, nil
	}
	srv, err := gmailapi.NewService(ctx, p.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	p.service = srv
	return srv, nil
}

func gmailError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
		return fmt.Errorf("gmail %s: %w", op, ErrUnauthorized)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func (p *GmailProvider) Test(ctx context.Context) error {
	srv, err := p.ensureService(ctx)
	if err != nil {
		return err
	}
	if _, err := srv.Users.GetProfile(gmailUser).Context(ctx).Do(); err != nil {
		return gmailError("get gmail profile", err)
	}
	return nil
}

// Fetch lists messages after the cursor (internalDate in milliseconds) and returns
// them oldest first, fetched in raw format and parsed like IMAP bodies.
func (p *GmailProvider) Fetch(ctx context.Context, req domain.FetchRequest) (*domain.FetchResult, error) {
	srv, err := p.ensureService(ctx)
	if err != nil {
		return nil, err
	}

	var afterMs int64
	if req.Cursor != "" {
		if afterMs, err = strconv.ParseInt(req.Cursor, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid gmail cursor %q: %w", req.Cursor, err)
		}
	} else if !req.Since.IsZero() {
		afterMs = req.Since.UnixMilli()
	}

	query := "-in:drafts"
	if afterMs > 0 {
		query += " after:" + strconv.FormatInt(afterMs/1000, 10)
	}

	var ids []string
	call := srv.Users.Messages.List(gmailUser).Q(query).MaxResults(500)
	err = call.Pages(ctx, func(resp *gmailapi.ListMessagesResponse) error {
		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
		}
		if len(ids) >= gmailMaxListed {
			return errStopPaging
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopPaging) {
		return nil, gmailError("list gmail messages", err)
	}
	slices.Reverse(ids)

	result := &domain.FetchResult{NextCursor: req.Cursor}
	for _, msgID := range ids {
		if req.Limit > 0 && len(result.Messages) >= req.Limit {
			result.HasMore = true
			break
		}
		raw, err := srv.Users.Messages.Get(gmailUser, msgID).Format("raw").Context(ctx).Do()
		if err != nil {
			return nil, gmailError("get gmail message "+msgID, err)
		}
		// after: has second granularity
		if raw.InternalDate <= afterMs {
			continue
		}
		msg, err := p.mapRaw(raw)
		if err != nil {
			p.logger.WithFields(map[string]interface{}{
				"account_id": p.account.ID,
				"gmail_id":   msgID,
				"error":      err.Error(),
			}).Warn("Skipping unparseable gmail message")
			continue
		}
		result.Messages = append(result.Messages, msg)
		result.NextCursor = strconv.FormatInt(raw.InternalDate, 10)
	}
	return result, nil
}

var errStopPaging = errors.New("stop paging")

func (p *GmailProvider) mapRaw(m *gmailapi.Message) (*domain.FetchedMessage, error) {
	data, err := base64.URLEncoding.DecodeString(m.Raw)
	if err != nil {
		if data, err = base64.RawURLEncoding.DecodeString(m.Raw); err != nil {
			return nil, fmt.Errorf("failed to decode raw message: %w", err)
		}
	}
	msg, err := ParseMessage(data)
	if err != nil {
		return nil, err
	}
	msg.ProviderID = m.Id
	msg.ThreadID = m.ThreadId
	msg.Folder = "INBOX"
	if slices.Contains(m.LabelIds, "SENT") {
		msg.Folder = "SENT"
	}
	msg.IsRead = !slices.Contains(m.LabelIds, "UNREAD")
	if m.SizeEstimate > 0 {
		msg.Size = int(m.SizeEstimate)
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.UnixMilli(m.InternalDate).UTC()
	}
	return msg, nil
}

func (p *GmailProvider) Send(ctx context.Context, out domain.OutgoingMessage) error {
	if out.From.Email == "" {
		out.From = domain.Address{Name: p.account.DisplayName, Email: p.account.EmailAddress}
	}
	raw, err := rawMessage(out)
	if err != nil {
		return err
	}
	srv, err := p.ensureService(ctx)
	if err != nil {
		return err
	}
	msg := &gmailapi.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	if _, err := srv.Users.Messages.Send(gmailUser, msg).Context(ctx).Do(); err != nil {
		return gmailError("send gmail message", err)
	}
	return nil
}
