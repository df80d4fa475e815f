package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/salesflow/crm/pkg/logger"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=pkgmocks github.com/salesflow/crm/pkg/mailer Mailer

// Mailer sends system emails (not user mailbox traffic).
type Mailer interface {
	SendMagicCode(ctx context.Context, email, code string) error
	SendOrganizationInvitation(ctx context.Context, email, organizationName, inviterName string) error
	SendFollowupDigest(ctx context.Context, email, organizationName string, items []DigestItem) error
}

// DigestItem is one due follow-up listed in the reminder digest.
type DigestItem struct {
	Subject    string
	Recipients []string
	DueAt      time.Time
}

type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	APIEndpoint  string
}

// SMTPSettings describes an SMTP submission server. Shared with mailbox providers
// that send through the user's own SMTP account.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
}

// NewSMTPClient builds a go-mail client; auth is only configured when credentials are set
// so unauthenticated relays keep working.
func NewSMTPClient(s SMTPSettings) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(15 * time.Second),
	}
	if s.Port == 465 {
		opts = append(opts, mail.WithSSLPort(false))
	}
	if s.Username != "" && s.Password != "" {
		opts = append(opts,
			mail.WithUsername(s.Username),
			mail.WithPassword(s.Password),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

type SMTPMailer struct {
	config *Config
	send   func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPMailer(config *Config) *SMTPMailer {
	m := &SMTPMailer{config: config}
	m.send = m.dialAndSend
	return m
}

func (m *SMTPMailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := NewSMTPClient(SMTPSettings{
		Host:     m.config.SMTPHost,
		Port:     m.config.SMTPPort,
		Username: m.config.SMTPUsername,
		Password: m.config.SMTPPassword,
	})
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func (m *SMTPMailer) newMessage(to, subject, htmlBody, plainBody string) (*mail.Msg, error) {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())
	if err := msg.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	msg.AddAlternativeString(mail.TypeTextPlain, plainBody)
	return msg, nil
}

func (m *SMTPMailer) SendMagicCode(ctx context.Context, email, code string) error {
	msg, err := m.newMessage(email,
		"Your sign-in code",
		fmt.Sprintf("<p>Your sign-in code is <strong>%s</strong>.</p><p>It expires in 15 minutes.</p>", html.EscapeString(code)),
		fmt.Sprintf("Your sign-in code is %s.\n\nIt expires in 15 minutes.", code),
	)
	if err != nil {
		return err
	}
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send magic code email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) SendOrganizationInvitation(ctx context.Context, email, organizationName, inviterName string) error {
	link := strings.TrimRight(m.config.APIEndpoint, "/") + "/signin?email=" + email
	msg, err := m.newMessage(email,
		fmt.Sprintf("You've been added to %s", organizationName),
		fmt.Sprintf("<p>%s added you to <strong>%s</strong>.</p><p><a href=\"%s\">Sign in</a> to get started.</p>",
			html.EscapeString(inviterName), html.EscapeString(organizationName), html.EscapeString(link)),
		fmt.Sprintf("%s added you to %s.\n\nSign in: %s", inviterName, organizationName, link),
	)
	if err != nil {
		return err
	}
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) SendFollowupDigest(ctx context.Context, email, organizationName string, items []DigestItem) error {
	if len(items) == 0 {
		return nil
	}

	var htmlRows, plainRows strings.Builder
	for _, item := range items {
		to := strings.Join(item.Recipients, ", ")
		fmt.Fprintf(&htmlRows, "<li><strong>%s</strong> to %s (due %s)</li>",
			html.EscapeString(item.Subject), html.EscapeString(to), item.DueAt.Format("Jan 2"))
		fmt.Fprintf(&plainRows, "- %s to %s (due %s)\n", item.Subject, to, item.DueAt.Format("Jan 2"))
	}

	msg, err := m.newMessage(email,
		fmt.Sprintf("%d follow-ups due in %s", len(items), organizationName),
		"<p>These follow-ups are waiting for you:</p><ul>"+htmlRows.String()+"</ul>",
		"These follow-ups are waiting for you:\n\n"+plainRows.String(),
	)
	if err != nil {
		return err
	}
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send follow-up digest: %w", err)
	}
	return nil
}

// ConsoleMailer logs emails instead of sending them. Used in development.
type ConsoleMailer struct {
	logger logger.Logger
}

func NewConsoleMailer(log logger.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: log}
}

func (m *ConsoleMailer) SendMagicCode(_ context.Context, email, code string) error {
	m.logger.WithFields(map[string]interface{}{"to": email, "code": code}).Info("Magic code email")
	return nil
}

func (m *ConsoleMailer) SendOrganizationInvitation(_ context.Context, email, organizationName, inviterName string) error {
	m.logger.WithFields(map[string]interface{}{
		"to":           email,
		"organization": organizationName,
		"inviter":      inviterName,
	}).Info("Organization invitation email")
	return nil
}

func (m *ConsoleMailer) SendFollowupDigest(_ context.Context, email, organizationName string, items []DigestItem) error {
	m.logger.WithFields(map[string]interface{}{
		"to":           email,
		"organization": organizationName,
		"items":        len(items),
	}).Info("Follow-up digest email")
	return nil
}
