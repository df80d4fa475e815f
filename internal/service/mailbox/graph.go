package mailbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

const (
	GraphBaseURL  = "https://graph.microsoft.com/v1.0"
	graphPageSize = 50
	graphSelect   = "id,internetMessageId,conversationId,parentFolderId,subject,from,toRecipients,ccRecipients," +
		"sentDateTime,receivedDateTime,body,hasAttachments,isRead,internetMessageHeaders"
)

// ErrUnauthorized means the provider rejected the access token.
var ErrUnauthorized = errors.New("mailbox rejected the access token")

// GraphProvider reads and sends mail for Microsoft 365 accounts through Microsoft Graph.
type GraphProvider struct {
	account    *domain.EmailAccount
	httpClient domain.HTTPClient
	baseURL    string
	logger     logger.Logger
}

func NewGraphProvider(account *domain.EmailAccount, httpClient domain.HTTPClient, baseURL string, log logger.Logger) *GraphProvider {
	if baseURL == "" {
		baseURL = GraphBaseURL
	}
	return &GraphProvider{
		account:    account,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     log,
	}
}

func (p *GraphProvider) do(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.account.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("graph API: %w", ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := gjson.GetBytes(data, "error.message").String()
		p.logger.WithFields(map[string]interface{}{
			"account_id": p.account.ID,
			"status":     resp.StatusCode,
		}).Error(fmt.Sprintf("Graph API returned non-OK status: %s", msg))
		return nil, fmt.Errorf("graph API returned status %d: %s", resp.StatusCode, msg)
	}
	return data, nil
}

func (p *GraphProvider) Test(ctx context.Context) error {
	data, err := p.do(ctx, http.MethodGet, p.baseURL+"/me?$select=mail,userPrincipalName", nil)
	if err != nil {
		return err
	}
	if gjson.GetBytes(data, "userPrincipalName").String() == "" && gjson.GetBytes(data, "mail").String() == "" {
		return errors.New("graph API returned an empty profile")
	}
	return nil
}

// Fetch pages through /me/messages ordered by receivedDateTime. The cursor is the
// receivedDateTime of the newest message already returned.
func (p *GraphProvider) Fetch(ctx context.Context, req domain.FetchRequest) (*domain.FetchResult, error) {
	after := req.Since
	if req.Cursor != "" {
		t, err := time.Parse(time.RFC3339Nano, req.Cursor)
		if err != nil {
			return nil, fmt.Errorf("invalid graph cursor %q: %w", req.Cursor, err)
		}
		after = t
	}

	top := graphPageSize
	if req.Limit > 0 && req.Limit < top {
		top = req.Limit
	}
	q := url.Values{}
	q.Set("$select", graphSelect)
	q.Set("$orderby", "receivedDateTime asc")
	q.Set("$top", strconv.Itoa(top))
	if !after.IsZero() {
		q.Set("$filter", "receivedDateTime gt "+after.UTC().Format(time.RFC3339))
	}
	next := p.baseURL + "/me/messages?" + q.Encode()

	result := &domain.FetchResult{NextCursor: req.Cursor}
	for next != "" {
		data, err := p.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}
		for _, item := range gjson.GetBytes(data, "value").Array() {
			if req.Limit > 0 && len(result.Messages) >= req.Limit {
				result.HasMore = true
				return result, nil
			}
			result.Messages = append(result.Messages, mapGraphMessage(item))
			if received := item.Get("receivedDateTime").Time(); !received.IsZero() {
				result.NextCursor = received.UTC().Format(time.RFC3339Nano)
			}
		}
		next = gjson.GetBytes(data, "\\@odata\\.nextLink").String()
		if next != "" && req.Limit > 0 && len(result.Messages) >= req.Limit {
			result.HasMore = true
			break
		}
	}
	return result, nil
}

func mapGraphMessage(item gjson.Result) *domain.FetchedMessage {
	msg := &domain.FetchedMessage{
		ProviderID:      item.Get("id").String(),
		MessageIDHeader: item.Get("internetMessageId").String(),
		ThreadID:        item.Get("conversationId").String(),
		Folder:          item.Get("parentFolderId").String(),
		Subject:         item.Get("subject").String(),
		From:            graphAddress(item.Get("from.emailAddress")),
		SentAt:          item.Get("sentDateTime").Time(),
		HasAttachments:  item.Get("hasAttachments").Bool(),
		IsRead:          item.Get("isRead").Bool(),
		Headers:         domain.Headers{},
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = item.Get("receivedDateTime").Time()
	}
	item.Get("toRecipients").ForEach(func(_, r gjson.Result) bool {
		msg.To = append(msg.To, graphAddress(r.Get("emailAddress")))
		return true
	})
	item.Get("ccRecipients").ForEach(func(_, r gjson.Result) bool {
		msg.Cc = append(msg.Cc, graphAddress(r.Get("emailAddress")))
		return true
	})
	item.Get("internetMessageHeaders").ForEach(func(_, h gjson.Result) bool {
		name := h.Get("name").String()
		for _, keep := range keptHeaders {
			if strings.EqualFold(name, keep) {
				msg.Headers[keep] = h.Get("value").String()
			}
		}
		return true
	})

	content := item.Get("body.content").String()
	if strings.EqualFold(item.Get("body.contentType").String(), "html") {
		msg.HTMLBody = content
		msg.TextBody = HTMLToText(content)
	} else {
		msg.TextBody = content
	}
	msg.Size = len(content)
	return msg
}

func graphAddress(r gjson.Result) domain.Address {
	return domain.Address{
		Name:  r.Get("name").String(),
		Email: strings.ToLower(r.Get("address").String()),
	}
}

type graphRecipient struct {
	EmailAddress struct {
		Address string `json:"address"`
	} `json:"emailAddress"`
}

func graphRecipients(addrs []string) []graphRecipient {
	out := make([]graphRecipient, 0, len(addrs))
	for _, a := range addrs {
		var r graphRecipient
		r.EmailAddress.Address = a
		out = append(out, r)
	}
	return out
}

// Send posts to /me/sendMail and keeps a copy in Sent Items so the next sync sees it.
// Graph only accepts custom X- headers, so threading relies on the subject.
func (p *GraphProvider) Send(ctx context.Context, out domain.OutgoingMessage) error {
	if len(out.To) == 0 {
		return domain.NewValidationError("at least one recipient is required")
	}
	contentType, content := "Text", out.TextBody
	if out.HTMLBody != "" {
		contentType, content = "HTML", out.HTMLBody
	}

	payload := map[string]interface{}{
		"message": map[string]interface{}{
			"subject": out.Subject,
			"body": map[string]string{
				"contentType": contentType,
				"content":     content,
			},
			"toRecipients": graphRecipients(out.To),
			"ccRecipients": graphRecipients(out.Cc),
		},
		"saveToSentItems": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	_, err = p.do(ctx, http.MethodPost, p.baseURL+"/me/sendMail", body)
	return err
}
