package mailbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	id "github.com/emersion/go-imap-id"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-sasl"
	"github.com/wneessen/go-mail"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/mailer"
)

const (
	imapDialTimeout    = 10 * time.Second
	imapCommandTimeout = 5 * time.Minute
	imapFetchBatch     = 25
	inboxFolder        = "INBOX"
)

// imapSession is the subset of *client.Client used by the provider.
type imapSession interface {
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	List(ref, name string, ch chan *imap.MailboxInfo) error
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	Logout() error
}

type IMAPProvider struct {
	account *domain.EmailAccount
	logger  logger.Logger
	dial    func(ctx context.Context) (imapSession, error)
	send    func(ctx context.Context, msg *mail.Msg) error
}

func NewIMAPProvider(account *domain.EmailAccount, log logger.Logger) *IMAPProvider {
	p := &IMAPProvider{account: account, logger: log}
	p.dial = p.connect
	p.send = p.sendSMTP
	return p
}

type imapConn struct {
	*client.Client
	stop func() bool
}

func (c *imapConn) Logout() error {
	defer c.stop()
	return c.Client.Logout()
}

func (p *IMAPProvider) connect(ctx context.Context) (imapSession, error) {
	host := p.account.IMAPHost
	addr := net.JoinHostPort(host, strconv.Itoa(p.account.IMAPPort))
	dialer := &net.Dialer{Timeout: imapDialTimeout}
	tlsConfig := &tls.Config{ServerName: host}

	var (
		c   *client.Client
		err error
	)
	if p.account.IMAPUseTLS {
		c, err = client.DialWithDialerTLS(dialer, addr, tlsConfig)
	} else {
		c, err = client.DialWithDialer(dialer, addr)
		if err == nil {
			if ok, _ := c.SupportStartTLS(); ok {
				err = c.StartTLS(tlsConfig)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	c.Timeout = imapCommandTimeout

	// some providers (163.com, 188.com) reject logins without an ID exchange
	if ok, _ := c.Support("ID"); ok {
		if _, err := id.NewClient(c).ID(id.ID{id.FieldName: "Salesflow CRM", id.FieldVendor: "Salesflow"}); err != nil {
			p.logger.WithField("account_id", p.account.ID).Debug(fmt.Sprintf("IMAP ID command failed: %v", err))
		}
	}

	switch {
	case p.account.Password == "" && p.account.AccessToken != "":
		err = c.Authenticate(NewXOAuth2Client(p.account.Username, p.account.AccessToken))
	case supportsPlain(c):
		err = c.Authenticate(sasl.NewPlainClient("", p.account.Username, p.account.Password))
	default:
		err = c.Login(p.account.Username, p.account.Password)
	}
	if err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("IMAP authentication failed: %w", err)
	}

	stop := context.AfterFunc(ctx, func() { _ = c.Terminate() })
	return &imapConn{Client: c, stop: stop}, nil
}

func supportsPlain(c *client.Client) bool {
	ok, _ := c.SupportAuth(sasl.Plain)
	return ok
}

func (p *IMAPProvider) Test(ctx context.Context) error {
	c, err := p.dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Logout() }()
	if _, err := c.Select(inboxFolder, true); err != nil {
		return fmt.Errorf("failed to select %s: %w", inboxFolder, err)
	}
	return nil
}

// Fetch reads INBOX and the Sent folder in UID order. The cursor keeps
// "<uidvalidity>:<last uid>" per folder, url-encoded.
func (p *IMAPProvider) Fetch(ctx context.Context, req domain.FetchRequest) (*domain.FetchResult, error) {
	c, err := p.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Logout() }()

	cursor := parseIMAPCursor(req.Cursor)
	folders := []string{inboxFolder}
	if sent := findSentFolder(c); sent != "" {
		folders = append(folders, sent)
	}

	result := &domain.FetchResult{}
	remaining := req.Limit
	for _, folder := range folders {
		if req.Limit > 0 && remaining <= 0 {
			result.HasMore = true
			break
		}
		msgs, more, err := p.fetchFolder(c, folder, cursor, req.Since, remaining)
		if err != nil {
			return nil, err
		}
		result.Messages = append(result.Messages, msgs...)
		result.HasMore = result.HasMore || more
		remaining -= len(msgs)
	}
	result.NextCursor = cursor.Encode()
	return result, nil
}

func (p *IMAPProvider) fetchFolder(c imapSession, folder string, cursor url.Values, since time.Time, limit int) ([]*domain.FetchedMessage, bool, error) {
	mbox, err := c.Select(folder, true)
	if err != nil {
		return nil, false, fmt.Errorf("failed to select %s: %w", folder, err)
	}

	validity, lastUID := splitFolderCursor(cursor.Get(folder))
	criteria := imap.NewSearchCriteria()
	if validity == mbox.UidValidity && lastUID > 0 {
		set := new(imap.SeqSet)
		set.AddRange(lastUID+1, 0)
		criteria.Uid = set
	} else {
		// new mailbox or UIDVALIDITY reset: start over from the lookback window
		lastUID = 0
		if !since.IsZero() {
			criteria.Since = since
		}
	}
	cursor.Set(folder, joinFolderCursor(mbox.UidValidity, lastUID))

	if mbox.Messages == 0 {
		return nil, false, nil
	}
	found, err := c.UidSearch(criteria)
	if err != nil {
		return nil, false, fmt.Errorf("failed to search %s: %w", folder, err)
	}
	// "n:*" always matches the highest UID, even below n
	uids := found[:0]
	for _, uid := range found {
		if uid > lastUID {
			uids = append(uids, uid)
		}
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	more := false
	if limit > 0 && len(uids) > limit {
		uids = uids[:limit]
		more = true
	}
	if len(uids) == 0 {
		return nil, false, nil
	}

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchUid, imap.FetchEnvelope, imap.FetchFlags, imap.FetchRFC822Size, imap.FetchInternalDate, section.FetchItem()}
	out := make([]*domain.FetchedMessage, 0, len(uids))
	var maxUID uint32

	for start := 0; start < len(uids); start += imapFetchBatch {
		end := min(start+imapFetchBatch, len(uids))
		set := new(imap.SeqSet)
		set.AddNum(uids[start:end]...)

		ch := make(chan *imap.Message, imapFetchBatch)
		done := make(chan error, 1)
		go func() { done <- c.UidFetch(set, items, ch) }()

		for m := range ch {
			if m == nil {
				continue
			}
			out = append(out, p.toFetched(m, section, folder))
			if m.Uid > maxUID {
				maxUID = m.Uid
			}
		}
		if err := <-done; err != nil {
			return nil, false, fmt.Errorf("failed to fetch from %s: %w", folder, err)
		}
	}

	if maxUID > lastUID {
		cursor.Set(folder, joinFolderCursor(mbox.UidValidity, maxUID))
	}
	return out, more, nil
}

func (p *IMAPProvider) toFetched(m *imap.Message, section *imap.BodySectionName, folder string) *domain.FetchedMessage {
	var raw []byte
	if lit := m.GetBody(section); lit != nil {
		raw, _ = io.ReadAll(lit)
	}

	msg, err := ParseMessage(raw)
	if err != nil || len(raw) == 0 {
		if err != nil {
			p.logger.WithFields(map[string]interface{}{
				"account_id": p.account.ID,
				"uid":        m.Uid,
				"error":      err.Error(),
			}).Warn("Failed to parse message body, using envelope only")
		}
		msg = fromEnvelope(m.Envelope)
		msg.Raw = raw
	}

	msg.UID = m.Uid
	msg.Folder = folder
	if m.Size > 0 {
		msg.Size = int(m.Size)
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = m.InternalDate
	}
	for _, f := range m.Flags {
		if f == imap.SeenFlag {
			msg.IsRead = true
		}
	}
	return msg
}

func fromEnvelope(env *imap.Envelope) *domain.FetchedMessage {
	msg := &domain.FetchedMessage{Headers: domain.Headers{}}
	if env == nil {
		return msg
	}
	msg.Subject = env.Subject
	msg.SentAt = env.Date
	msg.MessageIDHeader = env.MessageId
	msg.ThreadID = strings.Trim(env.InReplyTo, "<>")
	if len(env.From) > 0 {
		msg.From = envelopeAddress(env.From[0])
	}
	for _, a := range env.To {
		msg.To = append(msg.To, envelopeAddress(a))
	}
	for _, a := range env.Cc {
		msg.Cc = append(msg.Cc, envelopeAddress(a))
	}
	return msg
}

func envelopeAddress(a *imap.Address) domain.Address {
	return domain.Address{Name: a.PersonalName, Email: strings.ToLower(a.Address())}
}

func findSentFolder(c imapSession) string {
	ch := make(chan *imap.MailboxInfo, 16)
	done := make(chan error, 1)
	go func() { done <- c.List("", "*", ch) }()

	var byAttr, byName string
	for info := range ch {
		for _, attr := range info.Attributes {
			if attr == imap.SentAttr && byAttr == "" {
				byAttr = info.Name
			}
		}
		switch strings.ToLower(info.Name) {
		case "sent", "sent items", "sent messages", "[gmail]/sent mail":
			if byName == "" {
				byName = info.Name
			}
		}
	}
	if err := <-done; err != nil {
		return ""
	}
	if byAttr != "" {
		return byAttr
	}
	return byName
}

func parseIMAPCursor(cursor string) url.Values {
	values, err := url.ParseQuery(cursor)
	if err != nil {
		return url.Values{}
	}
	return values
}

func splitFolderCursor(v string) (validity, lastUID uint32) {
	left, right, ok := strings.Cut(v, ":")
	if !ok {
		return 0, 0
	}
	a, err1 := strconv.ParseUint(left, 10, 32)
	b, err2 := strconv.ParseUint(right, 10, 32)
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return uint32(a), uint32(b)
}

func joinFolderCursor(validity, lastUID uint32) string {
	return fmt.Sprintf("%d:%d", validity, lastUID)
}

// Send submits through the account's own SMTP server.
func (p *IMAPProvider) Send(ctx context.Context, out domain.OutgoingMessage) error {
	if p.account.SMTPHost == "" {
		return domain.NewValidationError("smtp_host is not configured for this account")
	}
	if out.From.Email == "" {
		out.From = domain.Address{Name: p.account.DisplayName, Email: p.account.EmailAddress}
	}
	msg, err := buildMessage(out)
	if err != nil {
		return err
	}
	return p.send(ctx, msg)
}

func (p *IMAPProvider) sendSMTP(ctx context.Context, msg *mail.Msg) error {
	c, err := mailer.NewSMTPClient(mailer.SMTPSettings{
		Host:     p.account.SMTPHost,
		Port:     p.account.SMTPPort,
		Username: p.account.Username,
		Password: p.account.Password,
	})
	if err != nil {
		return err
	}
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send via SMTP: %w", err)
	}
	return nil
}
