package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/mq"
	"github.com/salesflow/crm/pkg/tracing"
)

type FollowupService struct {
	repo             domain.FollowupRepository
	emails           domain.EmailRepository
	orgRepo          domain.OrganizationRepository
	accountService   domain.EmailAccountService
	factory          domain.MailboxFactory
	ai               domain.AIService
	authService      domain.AuthService
	publisher        domain.EventPublisher
	defaultAfterDays int
	logger           logger.Logger
	now              func() time.Time
}

type FollowupServiceConfig struct {
	Repository             domain.FollowupRepository
	EmailRepository        domain.EmailRepository
	OrganizationRepository domain.OrganizationRepository
	AccountService         domain.EmailAccountService
	MailboxFactory         domain.MailboxFactory
	AIService              domain.AIService
	AuthService            domain.AuthService
	Publisher              domain.EventPublisher
	DefaultAfterDays       int
	Logger                 logger.Logger
}

func NewFollowupService(cfg FollowupServiceConfig) *FollowupService {
	if cfg.DefaultAfterDays <= 0 {
		cfg.DefaultAfterDays = 3
	}
	return &FollowupService{
		repo:             cfg.Repository,
		emails:           cfg.EmailRepository,
		orgRepo:          cfg.OrganizationRepository,
		accountService:   cfg.AccountService,
		factory:          cfg.MailboxFactory,
		ai:               cfg.AIService,
		authService:      cfg.AuthService,
		publisher:        cfg.Publisher,
		defaultAfterDays: cfg.DefaultAfterDays,
		logger:           cfg.Logger,
		now:              time.Now,
	}
}

var _ domain.FollowupService = (*FollowupService)(nil)

func (s *FollowupService) Create(ctx context.Context, organizationID string, req domain.CreateFollowupRequest) (*domain.Followup, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "FollowupService", "Create")
	defer span.End()

	ctx, user, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	f := &domain.Followup{
		OrganizationID: organizationID,
		UserID:         user.ID,
		ContactID:      req.ContactID,
		Recipients:     normalizeRecipients(req.Recipients),
		Subject:        strings.TrimSpace(req.Subject),
		Status:         domain.FollowupPending,
		Priority:       req.Priority,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if req.EmailIndexID != nil {
		email, err := s.emails.GetByID(ctx, organizationID, *req.EmailIndexID)
		if err != nil {
			return nil, err
		}
		exists, err := s.repo.ExistsForEmail(ctx, organizationID, email.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewConflictError("a follow-up already exists for email %s", email.ID)
		}
		afterDays, err := s.afterDays(ctx, organizationID)
		if err != nil {
			return nil, err
		}
		fillFromEmail(f, &email.EmailIndex, afterDays)
	}
	if req.DueAt != nil {
		f.DueAt = req.DueAt.UTC()
	}
	if len(f.Recipients) == 0 {
		return nil, domain.NewValidationError("at least one recipient is required")
	}

	if err := s.repo.Create(ctx, f); err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to create follow-up")
		return nil, err
	}
	tracing.RecordFollowupTransition(ctx, string(f.Status))
	s.publish(ctx, domain.EventFollowupCreated, f, "")
	return f, nil
}

func (s *FollowupService) afterDays(ctx context.Context, organizationID string) (int, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return 0, err
	}
	return org.Settings.WithDefaults(s.defaultAfterDays).FollowupAfterDays, nil
}

// fillFromEmail copies thread, recipients and timing from the message being followed up.
// Outbound mail is followed up with its recipients, inbound mail with its sender.
func fillFromEmail(f *domain.Followup, email *domain.EmailIndex, afterDays int) {
	emailID := email.ID
	accountID := email.AccountID
	sentAt := email.SentAt
	f.EmailIndexID = &emailID
	f.AccountID = &accountID
	f.ThreadID = email.ThreadID
	f.OriginalSentAt = &sentAt
	f.DueAt = sentAt.AddDate(0, 0, afterDays)
	if f.Subject == "" {
		f.Subject = email.Subject
	}
	if f.ContactID == nil {
		f.ContactID = email.ContactID
	}
	if len(f.Recipients) == 0 {
		if email.Direction == domain.DirectionOutbound {
			f.Recipients = append(append([]string{}, email.ToAddresses...), email.CcAddresses...)
		} else {
			f.Recipients = []string{email.FromAddress}
		}
	}
}

func normalizeRecipients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func (s *FollowupService) List(ctx context.Context, req domain.ListFollowupsRequest) (*domain.ListFollowupsResponse, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, req)
}

func (s *FollowupService) Get(ctx context.Context, organizationID, id string) (*domain.Followup, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, organizationID, id)
}

func (s *FollowupService) Update(ctx context.Context, organizationID, id string, req domain.UpdateFollowupRequest) (*domain.Followup, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	f, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if f.Status.IsTerminal() {
		return nil, domain.NewConflictError("follow-up is %s and can no longer be edited", f.Status)
	}
	if err := req.Apply(f); err != nil {
		return nil, err
	}
	f.Recipients = normalizeRecipients(f.Recipients)
	if len(f.Recipients) == 0 {
		return nil, domain.NewValidationError("at least one recipient is required")
	}
	f.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, f); err != nil {
		s.logger.WithField("followup_id", id).WithField("error", err.Error()).Error("Failed to update follow-up")
		return nil, err
	}
	return f, nil
}

func (s *FollowupService) Delete(ctx context.Context, organizationID, id string) error {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, organizationID, id)
}

func (s *FollowupService) Snooze(ctx context.Context, organizationID, id string, until time.Time) (*domain.Followup, error) {
	return s.transition(ctx, organizationID, id, func(f *domain.Followup, now time.Time) error {
		return f.Snooze(until.UTC(), now)
	})
}

func (s *FollowupService) Complete(ctx context.Context, organizationID, id string) (*domain.Followup, error) {
	return s.transition(ctx, organizationID, id, func(f *domain.Followup, now time.Time) error {
		return f.TransitionTo(domain.FollowupCompleted, now)
	})
}

func (s *FollowupService) Cancel(ctx context.Context, organizationID, id string) (*domain.Followup, error) {
	return s.transition(ctx, organizationID, id, func(f *domain.Followup, now time.Time) error {
		return f.TransitionTo(domain.FollowupCancelled, now)
	})
}

func (s *FollowupService) transition(ctx context.Context, organizationID, id string, apply func(f *domain.Followup, now time.Time) error) (*domain.Followup, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	f, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	from := f.Status
	if err := apply(f, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, f); err != nil {
		s.logger.WithField("followup_id", id).WithField("error", err.Error()).Error("Failed to update follow-up status")
		return nil, err
	}
	s.statusChanged(ctx, f, from)
	return f, nil
}

func (s *FollowupService) statusChanged(ctx context.Context, f *domain.Followup, from domain.FollowupStatus) {
	if from == f.Status {
		return
	}
	tracing.RecordFollowupTransition(ctx, string(f.Status))
	s.publish(ctx, domain.EventFollowupStatusChanged, f, from)
}

func (s *FollowupService) publish(ctx context.Context, eventType string, f *domain.Followup, from domain.FollowupStatus) {
	data := map[string]interface{}{
		"followup_id": f.ID,
		"status":      f.Status,
		"due_at":      f.DueAt,
		"user_id":     f.UserID,
	}
	if from != "" {
		data["previous_status"] = from
	}
	if err := s.publisher.Publish(ctx, mq.NewEvent(eventType, f.OrganizationID, data)); err != nil {
		s.logger.WithField("followup_id", f.ID).WithField("error", err.Error()).Warn("Failed to publish follow-up event")
	}
}

// Draft asks the LLM for a follow-up message and stores it on the row.
func (s *FollowupService) Draft(ctx context.Context, organizationID, id string) (*domain.Followup, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	f, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if err := s.draft(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FollowupService) draft(ctx context.Context, f *domain.Followup) error {
	if f.Status.IsTerminal() || f.Status == domain.FollowupSent {
		return domain.NewConflictError("follow-up is %s, nothing to draft", f.Status)
	}
	draft, err := s.ai.DraftFollowup(ctx, f.OrganizationID, f)
	if err != nil {
		return err
	}
	f.DraftSubject = draft.Subject
	f.DraftBody = draft.Body
	f.AIGenerated = true
	f.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, f); err != nil {
		s.logger.WithField("followup_id", f.ID).WithField("error", err.Error()).Error("Failed to store follow-up draft")
		return err
	}
	return nil
}

// Send delivers the draft through the mailbox the original email came from, threaded
// as a reply, then marks the follow-up sent.
func (s *FollowupService) Send(ctx context.Context, organizationID, id string) (*domain.Followup, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "FollowupService", "Send")
	defer span.End()

	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	f, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if !f.Status.CanTransitionTo(domain.FollowupSent) {
		return nil, domain.ErrInvalidStatusTransition("followup", string(f.Status), string(domain.FollowupSent))
	}
	if strings.TrimSpace(f.DraftBody) == "" {
		return nil, domain.NewValidationError("follow-up has no draft to send")
	}
	if f.AccountID == nil {
		return nil, domain.NewValidationError("follow-up is not linked to an email account")
	}

	out := domain.OutgoingMessage{
		To:       f.Recipients,
		Subject:  f.DraftSubject,
		TextBody: f.DraftBody,
	}
	if out.Subject == "" {
		out.Subject = replySubject(f.Subject)
	}
	if f.EmailIndexID != nil {
		original, err := s.emails.GetByID(ctx, organizationID, *f.EmailIndexID)
		if err != nil && !domain.IsNotFound(err) {
			return nil, err
		}
		if original != nil && !strings.HasPrefix(original.MessageID, "uid:") && !strings.HasPrefix(original.MessageID, "sha256:") {
			out.InReplyTo = original.MessageID
			out.References = []string{original.MessageID}
		}
	}

	account, err := s.accountService.Load(ctx, organizationID, *f.AccountID)
	if err != nil {
		return nil, err
	}
	provider, err := s.factory.For(account)
	if err != nil {
		return nil, err
	}
	if err := provider.Send(ctx, out); err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithFields(map[string]interface{}{
			"followup_id": f.ID,
			"account_id":  account.ID,
			"error":       err.Error(),
		}).Error("Failed to send follow-up")
		return nil, fmt.Errorf("failed to send follow-up: %w", err)
	}

	from := f.Status
	if err := f.TransitionTo(domain.FollowupSent, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, f); err != nil {
		// the mail is out, the row is stale
		s.logger.WithField("followup_id", f.ID).WithField("error", err.Error()).Error("Follow-up sent but status update failed")
		return nil, err
	}
	s.statusChanged(ctx, f, from)
	return f, nil
}

func replySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}
