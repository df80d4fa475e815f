package domain

import (
	"fmt"
	"net/http"
	"strings"

	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

// Supabase auth hooks posted to /webhooks/supabase/auth.
const (
	SupabaseEventUserCreated = "user.created"
	SupabaseEventUserUpdated = "user.updated"
)

type SupabaseAuthEvent struct {
	Type string             `json:"type"`
	User SupabaseAuthRecord `json:"user"`
}

type SupabaseAuthRecord struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// DisplayName reads the name Supabase stores in user_metadata.
func (r SupabaseAuthRecord) DisplayName() string {
	for _, key := range []string{"full_name", "name"} {
		if v, ok := r.UserMetadata[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (e *SupabaseAuthEvent) Validate() error {
	if e.Type == "" {
		return NewValidationError("type is required")
	}
	if e.User.ID == "" || e.User.Email == "" {
		return NewValidationError("user id and email are required")
	}
	return nil
}

// VerifyWebhookSignature checks the standard-webhooks headers
// (webhook-id, webhook-timestamp, webhook-signature) used by Supabase and the billing provider.
func VerifyWebhookSignature(payload []byte, headers http.Header, secret string) error {
	if secret == "" {
		return fmt.Errorf("webhook secret is not configured")
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return fmt.Errorf("failed to create webhook verifier: %w", err)
	}

	h := http.Header{}
	h.Set("Webhook-Id", headers.Get("Webhook-Id"))
	h.Set("Webhook-Timestamp", headers.Get("Webhook-Timestamp"))
	h.Set("Webhook-Signature", headers.Get("Webhook-Signature"))

	if err := wh.Verify(payload, h); err != nil {
		return fmt.Errorf("signature validation failed: %w", err)
	}
	return nil
}
