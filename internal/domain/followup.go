package domain

import (
	"context"
	"net/url"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_followup_repository.go -package mocks github.com/salesflow/crm/internal/domain FollowupRepository,FollowupService

type FollowupStatus string

const (
	FollowupPending   FollowupStatus = "pending"
	FollowupSent      FollowupStatus = "sent"
	FollowupCompleted FollowupStatus = "completed"
	FollowupCancelled FollowupStatus = "cancelled"
	FollowupSnoozed   FollowupStatus = "snoozed"
)

var followupTransitions = map[FollowupStatus][]FollowupStatus{
	FollowupPending: {FollowupSent, FollowupCompleted, FollowupCancelled, FollowupSnoozed},
	FollowupSnoozed: {FollowupPending, FollowupSent, FollowupCompleted, FollowupCancelled},
	FollowupSent:    {FollowupCompleted},
}

func (s FollowupStatus) IsValid() bool {
	switch s {
	case FollowupPending, FollowupSent, FollowupCompleted, FollowupCancelled, FollowupSnoozed:
		return true
	}
	return false
}

func (s FollowupStatus) IsTerminal() bool {
	return s == FollowupCompleted || s == FollowupCancelled
}

func (s FollowupStatus) CanTransitionTo(next FollowupStatus) bool {
	for _, allowed := range followupTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type FollowupPriority string

const (
	PriorityLow    FollowupPriority = "low"
	PriorityMedium FollowupPriority = "medium"
	PriorityHigh   FollowupPriority = "high"
)

func (p FollowupPriority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Followup struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	UserID         string           `json:"user_id"`
	AccountID      *string          `json:"account_id,omitempty"`
	EmailIndexID   *string          `json:"email_index_id,omitempty"`
	ContactID      *string          `json:"contact_id,omitempty"`
	ThreadID       string           `json:"thread_id"`
	Recipients     []string         `json:"recipients"`
	Subject        string           `json:"subject"`
	OriginalSentAt *time.Time       `json:"original_sent_at,omitempty"`
	DueAt          time.Time        `json:"due_at"`
	Status         FollowupStatus   `json:"status"`
	Priority       FollowupPriority `json:"priority"`
	DraftSubject   string           `json:"draft_subject"`
	DraftBody      string           `json:"draft_body"`
	AIGenerated    bool             `json:"ai_generated"`
	SnoozedUntil   *time.Time       `json:"snoozed_until,omitempty"`
	SentAt         *time.Time       `json:"sent_at,omitempty"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	Notes          string           `json:"notes"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TransitionTo changes status and stamps the matching timestamp.
func (f *Followup) TransitionTo(next FollowupStatus, now time.Time) error {
	if !f.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition("followup", string(f.Status), string(next))
	}
	switch next {
	case FollowupSent:
		f.SentAt = &now
		f.SnoozedUntil = nil
	case FollowupCompleted:
		f.CompletedAt = &now
		f.SnoozedUntil = nil
	case FollowupPending, FollowupCancelled:
		f.SnoozedUntil = nil
	}
	f.Status = next
	f.UpdatedAt = now
	return nil
}

// Snooze requires an instant strictly in the future.
func (f *Followup) Snooze(until, now time.Time) error {
	if !until.After(now) {
		return NewValidationError("snooze time must be in the future")
	}
	if f.Status == FollowupSnoozed {
		f.SnoozedUntil = &until
		f.DueAt = until
		f.UpdatedAt = now
		return nil
	}
	if err := f.TransitionTo(FollowupSnoozed, now); err != nil {
		return err
	}
	f.SnoozedUntil = &until
	f.DueAt = until
	return nil
}

type CreateFollowupRequest struct {
	EmailIndexID *string          `json:"email_index_id,omitempty"`
	ContactID    *string          `json:"contact_id,omitempty"`
	Recipients   []string         `json:"recipients"`
	Subject      string           `json:"subject"`
	DueAt        *time.Time       `json:"due_at,omitempty"`
	Priority     FollowupPriority `json:"priority"`
	Notes        string           `json:"notes"`
}

func (r *CreateFollowupRequest) Validate() error {
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !r.Priority.IsValid() {
		return NewValidationError("priority must be low, medium or high")
	}
	if r.EmailIndexID == nil && strings.TrimSpace(r.Subject) == "" {
		return NewValidationError("subject is required when no email_index_id is given")
	}
	if r.EmailIndexID == nil && r.DueAt == nil {
		return NewValidationError("due_at is required when no email_index_id is given")
	}
	return nil
}

type UpdateFollowupRequest struct {
	Subject      *string           `json:"subject,omitempty"`
	DueAt        *time.Time        `json:"due_at,omitempty"`
	Priority     *FollowupPriority `json:"priority,omitempty"`
	DraftSubject *string           `json:"draft_subject,omitempty"`
	DraftBody    *string           `json:"draft_body,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	Recipients   []string          `json:"recipients,omitempty"`
}

func (r *UpdateFollowupRequest) Apply(f *Followup) error {
	if r.Priority != nil {
		if !r.Priority.IsValid() {
			return NewValidationError("priority must be low, medium or high")
		}
		f.Priority = *r.Priority
	}
	if r.Subject != nil {
		f.Subject = *r.Subject
	}
	if r.DueAt != nil {
		f.DueAt = *r.DueAt
	}
	if r.DraftSubject != nil {
		f.DraftSubject = *r.DraftSubject
		f.AIGenerated = false
	}
	if r.DraftBody != nil {
		f.DraftBody = *r.DraftBody
		f.AIGenerated = false
	}
	if r.Notes != nil {
		f.Notes = *r.Notes
	}
	if r.Recipients != nil {
		f.Recipients = r.Recipients
	}
	return nil
}

type ListFollowupsRequest struct {
	OrganizationID string
	Status         FollowupStatus
	DueBefore      *time.Time
	ContactID      string
	Page
}

func (r *ListFollowupsRequest) FromQuery(q url.Values) error {
	r.Status = FollowupStatus(q.Get("status"))
	if r.Status != "" && !r.Status.IsValid() {
		return NewValidationError("invalid status")
	}
	if v := q.Get("due_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return NewValidationError("due_before must be RFC3339")
		}
		r.DueBefore = &t
	}
	r.ContactID = q.Get("contact_id")
	return r.Page.FromQuery(q)
}

type ListFollowupsResponse struct {
	Followups  []*Followup `json:"followups"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

type FollowupRepository interface {
	Create(ctx context.Context, f *Followup) error
	GetByID(ctx context.Context, organizationID, id string) (*Followup, error)
	List(ctx context.Context, req ListFollowupsRequest) (*ListFollowupsResponse, error)
	Update(ctx context.Context, f *Followup) error
	Delete(ctx context.Context, organizationID, id string) error
	ExistsForEmail(ctx context.Context, organizationID, emailIndexID string) (bool, error)
	// WakeSnoozed moves snoozed follow-ups whose snoozed_until passed back to pending.
	WakeSnoozed(ctx context.Context, now time.Time) ([]*Followup, error)
	ListDue(ctx context.Context, organizationID string, now time.Time, limit int) ([]*Followup, error)
}

type FollowupService interface {
	Create(ctx context.Context, organizationID string, req CreateFollowupRequest) (*Followup, error)
	List(ctx context.Context, req ListFollowupsRequest) (*ListFollowupsResponse, error)
	Get(ctx context.Context, organizationID, id string) (*Followup, error)
	Update(ctx context.Context, organizationID, id string, req UpdateFollowupRequest) (*Followup, error)
	Delete(ctx context.Context, organizationID, id string) error
	Snooze(ctx context.Context, organizationID, id string, until time.Time) (*Followup, error)
	Complete(ctx context.Context, organizationID, id string) (*Followup, error)
	Cancel(ctx context.Context, organizationID, id string) (*Followup, error)
	Draft(ctx context.Context, organizationID, id string) (*Followup, error)
	Send(ctx context.Context, organizationID, id string) (*Followup, error)
}
