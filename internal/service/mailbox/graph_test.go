package mailbox

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

const graphPage1 = `{
  "value": [
    {
      "id": "AAMk1",
      "internetMessageId": "<q1@acme.si>",
      "conversationId": "conv-1",
      "parentFolderId": "inbox",
      "subject": "Quote request",
      "from": {"emailAddress": {"name": "Ana Novak", "address": "Ana@Acme.si"}},
      "toRecipients": [{"emailAddress": {"address": "sales@example.com"}}],
      "ccRecipients": [],
      "sentDateTime": "2026-03-02T10:00:00Z",
      "receivedDateTime": "2026-03-02T10:00:05Z",
      "hasAttachments": false,
      "isRead": true,
      "body": {"contentType": "html", "content": "<p>Please send a quote</p>"},
      "internetMessageHeaders": [{"name": "In-Reply-To", "value": "<root@acme.si>"}, {"name": "X-Ignored", "value": "1"}]
    }
  ],
  "@odata.nextLink": "%NEXT%"
}`

const graphPage2 = `{
  "value": [
    {
      "id": "AAMk2",
      "internetMessageId": "<r1@example.com>",
      "conversationId": "conv-1",
      "subject": "Re: Quote request",
      "from": {"emailAddress": {"address": "sales@example.com"}},
      "toRecipients": [{"emailAddress": {"address": "ana@acme.si"}}],
      "sentDateTime": "2026-03-03T08:00:00Z",
      "receivedDateTime": "2026-03-03T08:00:00Z",
      "hasAttachments": true,
      "isRead": true,
      "body": {"contentType": "text", "content": "Offer attached"}
    }
  ]
}`

func newGraphServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *GraphProvider) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	account := &domain.EmailAccount{ID: "acc-ms", Provider: domain.ProviderMicrosoft, AccessToken: "graph-token"}
	return server, NewGraphProvider(account, server.Client(), server.URL, logger.NewTestLogger(t))
}

func TestGraphProvider_Fetch(t *testing.T) {
	t.Run("pages through next links", func(t *testing.T) {
		var server *httptest.Server
		var calls int
		server, p := newGraphServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			assert.Equal(t, "Bearer graph-token", r.Header.Get("Authorization"))
			if r.URL.Query().Get("page") == "2" {
				_, _ = io.WriteString(w, graphPage2)
				return
			}
			assert.Equal(t, "/me/messages", r.URL.Path)
			assert.Equal(t, "receivedDateTime asc", r.URL.Query().Get("$orderby"))
			assert.Equal(t, "receivedDateTime gt 2026-03-01T00:00:00Z", r.URL.Query().Get("$filter"))
			page := graphPage1
			page = replaceNext(page, server.URL+"/me/messages?page=2")
			_, _ = io.WriteString(w, page)
		})

		res, err := p.Fetch(context.Background(), domain.FetchRequest{Cursor: "2026-03-01T00:00:00Z"})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		require.Len(t, res.Messages, 2)
		assert.False(t, res.HasMore)
		assert.Equal(t, "2026-03-03T08:00:00Z", res.NextCursor)

		first := res.Messages[0]
		assert.Equal(t, "q1@acme.si", first.ResolveMessageID())
		assert.Equal(t, "conv-1", first.ThreadID)
		assert.Equal(t, "ana@acme.si", first.From.Email)
		assert.Equal(t, "Please send a quote", first.TextBody)
		assert.Equal(t, "<p>Please send a quote</p>", first.HTMLBody)
		assert.Equal(t, "<root@acme.si>", first.Headers["In-Reply-To"])
		assert.NotContains(t, first.Headers, "X-Ignored")

		second := res.Messages[1]
		assert.True(t, second.HasAttachments)
		assert.Equal(t, "Offer attached", second.TextBody)
		assert.Equal(t, []string{"ana@acme.si"}, domain.Emails(second.To))
	})

	t.Run("limit stops before next page", func(t *testing.T) {
		var server *httptest.Server
		server, p := newGraphServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("$top"))
			_, _ = io.WriteString(w, replaceNext(graphPage1, server.URL+"/me/messages?page=2"))
		})

		res, err := p.Fetch(context.Background(), domain.FetchRequest{Limit: 1})
		require.NoError(t, err)
		require.Len(t, res.Messages, 1)
		assert.True(t, res.HasMore)
		assert.Equal(t, "2026-03-02T10:00:05Z", res.NextCursor)
	})

	t.Run("expired token", func(t *testing.T) {
		_, p := newGraphServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":{"code":"InvalidAuthenticationToken","message":"expired"}}`)
		})

		_, err := p.Fetch(context.Background(), domain.FetchRequest{})
		assert.True(t, errors.Is(err, ErrUnauthorized))
	})

	t.Run("server error carries graph message", func(t *testing.T) {
		_, p := newGraphServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":{"message":"slow down"}}`)
		})

		_, err := p.Fetch(context.Background(), domain.FetchRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slow down")
	})
}

func TestGraphProvider_Send(t *testing.T) {
	var body []byte
	_, p := newGraphServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/me/sendMail", r.URL.Path)
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	})

	err := p.Send(context.Background(), domain.OutgoingMessage{
		To:       []string{"ana@acme.si"},
		Cc:       []string{"bob@acme.si"},
		Subject:  "Following up",
		HTMLBody: "<p>Hi</p>",
	})
	require.NoError(t, err)
	require.True(t, json.Valid(body))
	assert.Equal(t, "HTML", gjson.GetBytes(body, "message.body.contentType").String())
	assert.Equal(t, "ana@acme.si", gjson.GetBytes(body, "message.toRecipients.0.emailAddress.address").String())
	assert.Equal(t, "bob@acme.si", gjson.GetBytes(body, "message.ccRecipients.0.emailAddress.address").String())
	assert.True(t, gjson.GetBytes(body, "saveToSentItems").Bool())
}

func TestGraphProvider_Test(t *testing.T) {
	_, p := newGraphServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		_, _ = io.WriteString(w, `{"userPrincipalName":"sales@example.com"}`)
	})
	assert.NoError(t, p.Test(context.Background()))
}

func replaceNext(page, next string) string {
	out, _ := json.Marshal(next)
	return strings.Replace(page, `"%NEXT%"`, string(out), 1)
}
