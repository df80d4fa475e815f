package mailbox

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

type gmailFixture struct {
	id       string
	thread   string
	labels   []string
	internal time.Time
	raw      string
}

func newGmailServer(t *testing.T, fixtures []gmailFixture, onRequest func(r *http.Request)) *GmailProvider {
	byID := map[string]gmailFixture{}
	for _, f := range fixtures {
		byID[f.id] = f
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		if onRequest != nil {
			onRequest(r)
		}
		// newest first, like the real API
		var list []map[string]string
		for i := len(fixtures) - 1; i >= 0; i-- {
			list = append(list, map[string]string{"id": fixtures[i].id, "threadId": fixtures[i].thread})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"messages": list})
	})
	mux.HandleFunc("/gmail/v1/users/me/messages/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/gmail/v1/users/me/messages/")
		if id == "send" {
			if onRequest != nil {
				onRequest(r)
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "sent-1"})
			return
		}
		f, ok := byID[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "raw", r.URL.Query().Get("format"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           f.id,
			"threadId":     f.thread,
			"labelIds":     f.labels,
			"internalDate": strconv.FormatInt(f.internal.UnixMilli(), 10),
			"sizeEstimate": len(f.raw),
			"raw":          base64.URLEncoding.EncodeToString([]byte(f.raw)),
		})
	})
	mux.HandleFunc("/gmail/v1/users/me/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"code":401,"message":"Invalid Credentials"}}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	account := &domain.EmailAccount{ID: "acc-g", Provider: domain.ProviderGoogle, EmailAddress: "sales@example.com", DisplayName: "Sales"}
	return NewGmailProvider(account, logger.NewTestLogger(t),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
}

func TestGmailProvider_Fetch(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	fixtures := []gmailFixture{
		{id: "m1", thread: "t1", labels: []string{"INBOX"}, internal: base, raw: rawMessageWithID("a@x", "ana@acme.si", "one")},
		{id: "m2", thread: "t1", labels: []string{"SENT"}, internal: base.Add(time.Hour), raw: rawMessageWithID("b@x", "sales@example.com", "two")},
		{id: "m3", thread: "t2", labels: []string{"INBOX", "UNREAD"}, internal: base.Add(2 * time.Hour), raw: rawMessageWithID("c@x", "bob@acme.si", "three")},
	}

	t.Run("returns oldest first after cursor", func(t *testing.T) {
		var query string
		p := newGmailServer(t, fixtures, func(r *http.Request) { query = r.URL.Query().Get("q") })

		cursor := strconv.FormatInt(base.UnixMilli(), 10)
		res, err := p.Fetch(context.Background(), domain.FetchRequest{Cursor: cursor})
		require.NoError(t, err)

		assert.Equal(t, "-in:drafts after:"+strconv.FormatInt(base.Unix(), 10), query)
		require.Len(t, res.Messages, 2, "m1 sits on the cursor and is skipped")
		assert.Equal(t, "b@x", res.Messages[0].ResolveMessageID())
		assert.Equal(t, "SENT", res.Messages[0].Folder)
		assert.True(t, res.Messages[0].IsRead)
		assert.Equal(t, "t2", res.Messages[1].ThreadID)
		assert.False(t, res.Messages[1].IsRead)
		assert.Equal(t, strconv.FormatInt(base.Add(2*time.Hour).UnixMilli(), 10), res.NextCursor)
		assert.False(t, res.HasMore)
	})

	t.Run("limit", func(t *testing.T) {
		p := newGmailServer(t, fixtures, nil)

		res, err := p.Fetch(context.Background(), domain.FetchRequest{Limit: 1})
		require.NoError(t, err)
		require.Len(t, res.Messages, 1)
		assert.Equal(t, "m1", res.Messages[0].ProviderID)
		assert.True(t, res.HasMore)
		assert.Equal(t, strconv.FormatInt(base.UnixMilli(), 10), res.NextCursor)
	})

	t.Run("invalid cursor", func(t *testing.T) {
		p := newGmailServer(t, fixtures, nil)
		_, err := p.Fetch(context.Background(), domain.FetchRequest{Cursor: "yesterday"})
		assert.Error(t, err)
	})
}

func TestGmailProvider_Send(t *testing.T) {
	var raw []byte
	p := newGmailServer(t, nil, func(r *http.Request) {
		var body struct {
			Raw string `json:"raw"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		var err error
		raw, err = base64.URLEncoding.DecodeString(body.Raw)
		require.NoError(t, err)
	})

	err := p.Send(context.Background(), domain.OutgoingMessage{
		To:        []string{"ana@acme.si"},
		Subject:   "Re: Quote request",
		TextBody:  "Any news?",
		InReplyTo: "<q1@acme.si>",
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "In-Reply-To: <q1@acme.si>")
	assert.Contains(t, string(raw), "sales@example.com")
}

func TestGmailProvider_TestUnauthorized(t *testing.T) {
	p := newGmailServer(t, nil, nil)
	err := p.Test(context.Background())
	assert.True(t, errors.Is(err, ErrUnauthorized))
}
