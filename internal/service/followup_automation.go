package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/mailer"
	"github.com/salesflow/crm/pkg/tracing"
)

const (
	staleOutboundBatch = 100
	dueBatch           = 200
	digestInterval     = 24 * time.Hour
)

// FollowupAutomation is the follow-up scheduler's cycle: it wakes snoozed rows, opens
// follow-ups for unanswered outbound mail, announces what became due and mails a daily digest.
type FollowupAutomation struct {
	service   *FollowupService
	repo      domain.FollowupRepository
	emails    domain.EmailRepository
	accounts  domain.EmailAccountRepository
	orgRepo   domain.OrganizationRepository
	users     domain.UserRepository
	settings  domain.SettingRepository
	mailer    mailer.Mailer
	autoDraft bool
	logger    logger.Logger
	now       func() time.Time

	lastRun time.Time
}

type FollowupAutomationConfig struct {
	Service                *FollowupService
	Repository             domain.FollowupRepository
	EmailRepository        domain.EmailRepository
	AccountRepository      domain.EmailAccountRepository
	OrganizationRepository domain.OrganizationRepository
	UserRepository         domain.UserRepository
	SettingRepository      domain.SettingRepository
	Mailer                 mailer.Mailer
	AutoDraft              bool
	Logger                 logger.Logger
}

func NewFollowupAutomation(cfg FollowupAutomationConfig) *FollowupAutomation {
	return &FollowupAutomation{
		service:   cfg.Service,
		repo:      cfg.Repository,
		emails:    cfg.EmailRepository,
		accounts:  cfg.AccountRepository,
		orgRepo:   cfg.OrganizationRepository,
		users:     cfg.UserRepository,
		settings:  cfg.SettingRepository,
		mailer:    cfg.Mailer,
		autoDraft: cfg.AutoDraft,
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

func (a *FollowupAutomation) RunCycle(ctx context.Context) error {
	now := a.now().UTC()

	woken, err := a.repo.WakeSnoozed(ctx, now)
	if err != nil {
		return err
	}
	for _, f := range woken {
		a.service.statusChanged(ctx, f, domain.FollowupSnoozed)
	}

	orgs, err := a.orgRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	announcedUntil := a.dueCheckpoint(ctx)
	sendDigest, err := a.digestDue(ctx, now)
	if err != nil {
		a.logger.WithField("error", err.Error()).Warn("Failed to read follow-up digest checkpoint")
	}

	var created, due, digests int
	for _, org := range orgs {
		if ctx.Err() != nil {
			break
		}
		n, err := a.openStale(ctx, org, now)
		if err != nil {
			a.logger.WithField("organization_id", org.ID).WithField("error", err.Error()).Error("Failed to open follow-ups for unanswered email")
		}
		created += n

		items, err := a.repo.ListDue(ctx, org.ID, now, dueBatch)
		if err != nil {
			a.logger.WithField("organization_id", org.ID).WithField("error", err.Error()).Error("Failed to list due follow-ups")
			continue
		}
		for _, f := range items {
			if !announcedUntil.IsZero() && !f.DueAt.After(announcedUntil) {
				continue
			}
			a.service.publish(ctx, domain.EventFollowupDue, f, "")
			due++
		}
		if sendDigest {
			digests += a.sendDigests(ctx, org, items)
		}
	}

	if sendDigest {
		if err := a.settings.SetTime(ctx, domain.SettingLastFollowupDigest, now); err != nil {
			a.logger.WithField("error", err.Error()).Warn("Failed to record follow-up digest time")
		}
	}
	if ctx.Err() == nil {
		if err := a.settings.SetTime(ctx, domain.SettingLastFollowupDue, now); err != nil {
			a.logger.WithField("error", err.Error()).Warn("Failed to record follow-up due checkpoint")
		}
		a.lastRun = now
	}

	a.logger.WithFields(map[string]interface{}{
		"woken":   len(woken),
		"created": created,
		"due":     due,
		"digests": digests,
	}).Info("Follow-up cycle finished")
	return nil
}

// dueCheckpoint is the time up to which followup.due was already published. The stored
// value survives restarts; the in-process value covers a settings outage.
func (a *FollowupAutomation) dueCheckpoint(ctx context.Context) time.Time {
	last, err := a.settings.GetTime(ctx, domain.SettingLastFollowupDue)
	if err != nil {
		a.logger.WithField("error", err.Error()).Warn("Failed to read follow-up due checkpoint")
		return a.lastRun
	}
	if last == nil || last.Before(a.lastRun) {
		return a.lastRun
	}
	return *last
}

func (a *FollowupAutomation) digestDue(ctx context.Context, now time.Time) (bool, error) {
	last, err := a.settings.GetTime(ctx, domain.SettingLastFollowupDigest)
	if err != nil {
		return false, err
	}
	return last == nil || now.Sub(*last) >= digestInterval, nil
}

// openStale creates a follow-up for every outbound email still unanswered after the
// organization's follow-up window.
func (a *FollowupAutomation) openStale(ctx context.Context, org *domain.Organization, now time.Time) (int, error) {
	settings := org.Settings.WithDefaults(a.service.defaultAfterDays)
	cutoff := now.AddDate(0, 0, -settings.FollowupAfterDays)

	stale, err := a.emails.StaleOutbound(ctx, org.ID, cutoff, staleOutboundBatch)
	if err != nil {
		return 0, err
	}

	owners := map[string]string{}
	created := 0
	for _, email := range stale {
		userID, ok := owners[email.AccountID]
		if !ok {
			account, err := a.accounts.GetByID(ctx, org.ID, email.AccountID)
			if err != nil {
				a.logger.WithField("account_id", email.AccountID).WithField("error", err.Error()).Warn("Skipping email of unknown account")
				owners[email.AccountID] = ""
				continue
			}
			userID = account.UserID
			owners[email.AccountID] = userID
		}
		if userID == "" {
			continue
		}

		f := &domain.Followup{
			OrganizationID: org.ID,
			UserID:         userID,
			Status:         domain.FollowupPending,
			Priority:       domain.PriorityMedium,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		fillFromEmail(f, email, settings.FollowupAfterDays)
		if err := a.repo.Create(ctx, f); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				continue
			}
			return created, err
		}
		created++
		tracing.RecordFollowupTransition(ctx, string(f.Status))
		a.service.publish(ctx, domain.EventFollowupCreated, f, "")

		if a.autoDraft && settings.AutoDraftFollowups {
			if err := a.service.draft(ctx, f); err != nil {
				a.logger.WithField("followup_id", f.ID).WithField("error", err.Error()).Warn("Automatic draft failed")
			}
		}
	}
	return created, nil
}

// sendDigests mails each member the follow-ups assigned to them that are due.
func (a *FollowupAutomation) sendDigests(ctx context.Context, org *domain.Organization, due []*domain.Followup) int {
	byUser := map[string][]mailer.DigestItem{}
	for _, f := range due {
		byUser[f.UserID] = append(byUser[f.UserID], mailer.DigestItem{
			Subject:    f.Subject,
			Recipients: f.Recipients,
			DueAt:      f.DueAt,
		})
	}

	userIDs := make([]string, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	sent := 0
	for _, userID := range userIDs {
		user, err := a.users.GetUserByID(ctx, userID)
		if err != nil {
			a.logger.WithField("user_id", userID).WithField("error", err.Error()).Warn("Skipping digest for unknown user")
			continue
		}
		if err := a.mailer.SendFollowupDigest(ctx, user.Email, org.Name, byUser[userID]); err != nil {
			a.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to send follow-up digest")
			continue
		}
		sent++
	}
	return sent
}
