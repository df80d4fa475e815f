package mailbox

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"github.com/salesflow/crm/internal/domain"
)

// maxBodyBytes caps each decoded text part kept in the content cache.
const maxBodyBytes = 512 * 1024

var keptHeaders = []string{"Message-Id", "In-Reply-To", "References", "Reply-To", "Date", "List-Id", "Auto-Submitted"}

// ParseMessage decodes an RFC 5322 message into a provider-neutral message.
// Envelope fields the caller already knows (UID, flags) are filled in afterwards.
func ParseMessage(raw []byte) (*domain.FetchedMessage, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	h := mail.Header{Header: entity.Header}
	msg := &domain.FetchedMessage{
		Headers: domain.Headers{},
		Size:    len(raw),
		Raw:     raw,
	}
	msg.Subject, _ = h.Subject()
	msg.SentAt, _ = h.Date()
	msg.MessageIDHeader, _ = h.MessageID()

	if from, err := h.AddressList("From"); err == nil && len(from) > 0 {
		msg.From = domain.Address{Name: from[0].Name, Email: strings.ToLower(from[0].Address)}
	}
	msg.To = addressList(h, "To")
	msg.Cc = addressList(h, "Cc")

	for _, key := range keptHeaders {
		if v := h.Get(key); v != "" {
			msg.Headers[key] = v
		}
	}
	msg.ThreadID = threadID(h, msg.MessageIDHeader)

	walkErr := entity.Walk(func(_ []int, part *message.Entity, err error) error {
		if err != nil && !message.IsUnknownCharset(err) {
			return nil
		}
		mediaType, params, _ := part.Header.ContentType()
		if strings.HasPrefix(mediaType, "multipart/") {
			return nil
		}
		disposition, dispParams, _ := part.Header.ContentDisposition()
		if disposition == "attachment" || dispParams["filename"] != "" || params["name"] != "" {
			msg.HasAttachments = true
			return nil
		}
		switch {
		case mediaType == "text/plain" && msg.TextBody == "":
			msg.TextBody = readLimited(part.Body)
		case mediaType == "text/html" && msg.HTMLBody == "":
			msg.HTMLBody = readLimited(part.Body)
		case mediaType != "" && !strings.HasPrefix(mediaType, "text/"):
			msg.HasAttachments = true
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk message parts: %w", walkErr)
	}
	return msg, nil
}

func addressList(h mail.Header, key string) []domain.Address {
	list, err := h.AddressList(key)
	if err != nil {
		return nil
	}
	out := make([]domain.Address, 0, len(list))
	for _, a := range list {
		out = append(out, domain.Address{Name: a.Name, Email: strings.ToLower(a.Address)})
	}
	return out
}

// threadID is the root of the References chain, falling back to In-Reply-To and then the message itself.
func threadID(h mail.Header, messageID string) string {
	if refs, err := h.MsgIDList("References"); err == nil && len(refs) > 0 {
		return refs[0]
	}
	if parents, err := h.MsgIDList("In-Reply-To"); err == nil && len(parents) > 0 {
		return parents[0]
	}
	return messageID
}

func readLimited(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	return string(b)
}
