package mailbox

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/salesflow/crm/internal/domain"
)

// buildMessage turns an outgoing message into a go-mail message with threading headers.
func buildMessage(out domain.OutgoingMessage) (*mail.Msg, error) {
	if len(out.To) == 0 {
		return nil, domain.NewValidationError("at least one recipient is required")
	}
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())
	if err := msg.FromFormat(out.From.Name, out.From.Email); err != nil {
		return nil, fmt.Errorf("failed to set from address: %w", err)
	}
	if err := msg.To(out.To...); err != nil {
		return nil, fmt.Errorf("failed to set recipients: %w", err)
	}
	if len(out.Cc) > 0 {
		if err := msg.Cc(out.Cc...); err != nil {
			return nil, fmt.Errorf("failed to set cc: %w", err)
		}
	}
	msg.Subject(out.Subject)
	if out.InReplyTo != "" {
		msg.SetGenHeader(mail.HeaderInReplyTo, angle(out.InReplyTo))
	}
	if len(out.References) > 0 {
		refs := make([]string, 0, len(out.References))
		for _, r := range out.References {
			refs = append(refs, angle(r))
		}
		msg.SetGenHeader(mail.HeaderReferences, strings.Join(refs, " "))
	}

	switch {
	case out.HTMLBody != "" && out.TextBody != "":
		msg.SetBodyString(mail.TypeTextPlain, out.TextBody)
		msg.AddAlternativeString(mail.TypeTextHTML, out.HTMLBody)
	case out.HTMLBody != "":
		msg.SetBodyString(mail.TypeTextHTML, out.HTMLBody)
	default:
		msg.SetBodyString(mail.TypeTextPlain, out.TextBody)
	}
	return msg, nil
}

// rawMessage renders the message as RFC 5322 bytes.
func rawMessage(out domain.OutgoingMessage) ([]byte, error) {
	msg, err := buildMessage(out)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render message: %w", err)
	}
	return buf.Bytes(), nil
}

func angle(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "<") {
		return id
	}
	return "<" + id + ">"
}
