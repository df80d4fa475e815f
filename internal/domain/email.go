package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/salesflow/crm/pkg/crypto"
)

//go:generate mockgen -destination mocks/mock_email_repository.go -package mocks github.com/salesflow/crm/internal/domain EmailRepository
//go:generate mockgen -destination mocks/mock_sync_job_repository.go -package mocks github.com/salesflow/crm/internal/domain SyncJobRepository,EmailSyncService
//go:generate mockgen -destination mocks/mock_mailbox.go -package mocks github.com/salesflow/crm/internal/domain MailboxProvider,MailboxFactory

// HTTPClient is satisfied by *http.Client; providers take it so tests can stub the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type EmailDirection string

const (
	DirectionInbound  EmailDirection = "inbound"
	DirectionOutbound EmailDirection = "outbound"
)

// EmailIndex is the searchable row of a synced message; unique per (account_id, message_id).
type EmailIndex struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	AccountID      string         `json:"account_id"`
	MessageID      string         `json:"message_id"`
	ThreadID       string         `json:"thread_id"`
	Folder         string         `json:"folder"`
	Subject        string         `json:"subject"`
	FromAddress    string         `json:"from_address"`
	FromName       string         `json:"from_name"`
	ToAddresses    []string       `json:"to_addresses"`
	CcAddresses    []string       `json:"cc_addresses"`
	Snippet        string         `json:"snippet"`
	SentAt         time.Time      `json:"sent_at"`
	HasAttachments bool           `json:"has_attachments"`
	IsRead         bool           `json:"is_read"`
	Direction      EmailDirection `json:"direction"`
	ContactID      *string        `json:"contact_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Participants returns every lower-cased address on the message.
func (e *EmailIndex) Participants() []string {
	out := make([]string, 0, 1+len(e.ToAddresses)+len(e.CcAddresses))
	out = append(out, strings.ToLower(e.FromAddress))
	for _, a := range e.ToAddresses {
		out = append(out, strings.ToLower(a))
	}
	for _, a := range e.CcAddresses {
		out = append(out, strings.ToLower(a))
	}
	return out
}

type Headers map[string]string

func (h Headers) Value() (driver.Value, error) {
	if h == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(h)
}

func (h *Headers) Scan(value interface{}) error {
	if value == nil {
		*h = Headers{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("type assertion to []byte failed")
	}
	return json.Unmarshal(b, h)
}

type EmailContentCache struct {
	ID           string    `json:"id"`
	EmailIndexID string    `json:"email_index_id"`
	AccountID    string    `json:"account_id"`
	MessageID    string    `json:"message_id"`
	TextBody     string    `json:"text_body"`
	HTMLBody     string    `json:"html_body"`
	Headers      Headers   `json:"headers"`
	SizeBytes    int       `json:"size_bytes"`
	CachedAt     time.Time `json:"cached_at"`
}

type EmailWithContent struct {
	EmailIndex
	Content *EmailContentCache `json:"content,omitempty"`
}

type SyncJobType string

const (
	SyncJobInitial     SyncJobType = "initial"
	SyncJobIncremental SyncJobType = "incremental"
	SyncJobManual      SyncJobType = "manual"
)

type SyncJobStatus string

const (
	SyncJobPending   SyncJobStatus = "pending"
	SyncJobRunning   SyncJobStatus = "running"
	SyncJobCompleted SyncJobStatus = "completed"
	SyncJobFailed    SyncJobStatus = "failed"
)

type EmailSyncJob struct {
	ID              string        `json:"id"`
	OrganizationID  string        `json:"organization_id"`
	AccountID       string        `json:"account_id"`
	Type            SyncJobType   `json:"type"`
	Status          SyncJobStatus `json:"status"`
	MessagesFetched int           `json:"messages_fetched"`
	MessagesStored  int           `json:"messages_stored"`
	MessagesSkipped int           `json:"messages_skipped"`
	Cursor          string        `json:"cursor,omitempty"`
	Attempts        int           `json:"attempts"`
	LastError       string        `json:"last_error,omitempty"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	FinishedAt      *time.Time    `json:"finished_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

func Emails(addrs []Address) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a.Email != "" {
			out = append(out, strings.ToLower(a.Email))
		}
	}
	return out
}

// FetchedMessage is a provider-neutral message as returned by a mailbox.
type FetchedMessage struct {
	UID             uint32
	ProviderID      string
	MessageIDHeader string
	ThreadID        string
	Folder          string
	Subject         string
	From            Address
	To              []Address
	Cc              []Address
	SentAt          time.Time
	TextBody        string
	HTMLBody        string
	Headers         Headers
	HasAttachments  bool
	IsRead          bool
	Size            int
	Raw             []byte
}

// ResolveMessageID picks the Message-ID header, then the provider UID, then a content hash.
func (m *FetchedMessage) ResolveMessageID() string {
	if id := strings.Trim(strings.TrimSpace(m.MessageIDHeader), "<>"); id != "" {
		return id
	}
	if m.UID != 0 {
		return "uid:" + strconv.FormatUint(uint64(m.UID), 10)
	}
	if m.ProviderID != "" {
		return "uid:" + m.ProviderID
	}
	raw := m.Raw
	if len(raw) == 0 {
		raw = []byte(m.Subject + "\x00" + m.From.Email + "\x00" + m.SentAt.UTC().Format(time.RFC3339) + "\x00" + m.TextBody + m.HTMLBody)
	}
	return "sha256:" + crypto.Sha256Hex(raw)
}

type FetchRequest struct {
	Cursor string
	Since  time.Time
	Limit  int
}

type FetchResult struct {
	Messages   []*FetchedMessage
	NextCursor string
	HasMore    bool
}

type OutgoingMessage struct {
	From       Address
	To         []string
	Cc         []string
	Subject    string
	TextBody   string
	HTMLBody   string
	InReplyTo  string
	References []string
}

// MailboxProvider talks to one remote mailbox (IMAP, Graph, Gmail).
type MailboxProvider interface {
	Test(ctx context.Context) error
	Fetch(ctx context.Context, req FetchRequest) (*FetchResult, error)
	Send(ctx context.Context, msg OutgoingMessage) error
}

type MailboxFactory interface {
	For(account *EmailAccount) (MailboxProvider, error)
}

type ListEmailsRequest struct {
	OrganizationID string
	AccountID      string
	ContactID      string
	Direction      EmailDirection
	ThreadID       string
	Addresses      []string
	Page
}

type ListEmailsResponse struct {
	Emails     []*EmailIndex `json:"emails"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

type EmailRepository interface {
	// InsertMessage stores index and content in one transaction; false means the message already existed.
	InsertMessage(ctx context.Context, index *EmailIndex, content *EmailContentCache) (bool, error)
	ExistingMessageIDs(ctx context.Context, accountID string, messageIDs []string) (map[string]bool, error)
	GetByID(ctx context.Context, organizationID, id string) (*EmailWithContent, error)
	List(ctx context.Context, req ListEmailsRequest) (*ListEmailsResponse, error)
	// StaleOutbound lists outbound messages sent before the cutoff with no inbound reply in their thread and no follow-up.
	StaleOutbound(ctx context.Context, organizationID string, before time.Time, limit int) ([]*EmailIndex, error)
}

type SyncJobRepository interface {
	Create(ctx context.Context, job *EmailSyncJob) error
	Update(ctx context.Context, job *EmailSyncJob) error
	GetByID(ctx context.Context, organizationID, id string) (*EmailSyncJob, error)
	List(ctx context.Context, organizationID, accountID string, limit int) ([]*EmailSyncJob, error)
}

type EmailSyncService interface {
	SyncAccount(ctx context.Context, account *EmailAccount, jobType SyncJobType) (*EmailSyncJob, error)
	TriggerSync(ctx context.Context, organizationID, accountID string) (*EmailSyncJob, error)
	ListMessages(ctx context.Context, req ListEmailsRequest) (*ListEmailsResponse, error)
	GetMessage(ctx context.Context, organizationID, id string) (*EmailWithContent, error)
	ListJobs(ctx context.Context, organizationID, accountID string, limit int) ([]*EmailSyncJob, error)
}
