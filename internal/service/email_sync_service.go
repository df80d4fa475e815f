package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/service/mailbox"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/mq"
	"github.com/salesflow/crm/pkg/tracing"
)

// ContactLinker is satisfied by *ContactService.
type ContactLinker interface {
	LinkMessage(ctx context.Context, org *domain.Organization, addresses []string, at time.Time) (*domain.Contact, error)
}

type SyncSettings struct {
	BatchSize         int
	MaxMessagesPerRun int
	MaxRetries        int
	LookbackDays      int
	// Timeout bounds one account sync, including retries.
	Timeout time.Duration
}

func (s SyncSettings) withDefaults() SyncSettings {
	if s.BatchSize <= 0 {
		s.BatchSize = 50
	}
	if s.MaxMessagesPerRun <= 0 {
		s.MaxMessagesPerRun = 500
	}
	if s.MaxRetries < 0 {
		s.MaxRetries = 0
	}
	if s.LookbackDays <= 0 {
		s.LookbackDays = 30
	}
	if s.Timeout <= 0 {
		s.Timeout = 10 * time.Minute
	}
	return s
}

type EmailSyncService struct {
	accounts       domain.EmailAccountRepository
	accountService domain.EmailAccountService
	emails         domain.EmailRepository
	jobs           domain.SyncJobRepository
	orgRepo        domain.OrganizationRepository
	contacts       ContactLinker
	factory        domain.MailboxFactory
	deduper        domain.Deduper
	publisher      domain.EventPublisher
	authService    domain.AuthService
	settings       SyncSettings
	logger         logger.Logger

	// accounts currently syncing in this process
	running sync.Map

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	async func(f func())
}

type EmailSyncServiceConfig struct {
	AccountRepository      domain.EmailAccountRepository
	AccountService         domain.EmailAccountService
	EmailRepository        domain.EmailRepository
	SyncJobRepository      domain.SyncJobRepository
	OrganizationRepository domain.OrganizationRepository
	ContactLinker          ContactLinker
	MailboxFactory         domain.MailboxFactory
	Deduper                domain.Deduper
	Publisher              domain.EventPublisher
	AuthService            domain.AuthService
	Settings               SyncSettings
	Logger                 logger.Logger
}

func NewEmailSyncService(cfg EmailSyncServiceConfig) *EmailSyncService {
	return &EmailSyncService{
		accounts:       cfg.AccountRepository,
		accountService: cfg.AccountService,
		emails:         cfg.EmailRepository,
		jobs:           cfg.SyncJobRepository,
		orgRepo:        cfg.OrganizationRepository,
		contacts:       cfg.ContactLinker,
		factory:        cfg.MailboxFactory,
		deduper:        cfg.Deduper,
		publisher:      cfg.Publisher,
		authService:    cfg.AuthService,
		settings:       cfg.Settings.withDefaults(),
		logger:         cfg.Logger,
		now:            time.Now,
		sleep:          sleepContext,
		async:          func(f func()) { go f() },
	}
}

var _ domain.EmailSyncService = (*EmailSyncService)(nil)

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// lockAccount takes the in-process lock then the shared redis lock of an account.
func (s *EmailSyncService) lockAccount(ctx context.Context, accountID string) (func(), error) {
	if _, busy := s.running.LoadOrStore(accountID, struct{}{}); busy {
		return nil, domain.NewConflictError("a sync is already running for account %s", accountID)
	}
	release, ok, err := s.deduper.AcquireAccountLock(ctx, accountID, s.settings.Timeout)
	if err != nil {
		// redis down: fall back to the local lock only
		s.logger.WithField("account_id", accountID).WithField("error", err.Error()).Warn("Failed to acquire shared sync lock")
		release, ok = func() {}, true
	}
	if !ok {
		s.running.Delete(accountID)
		return nil, domain.NewConflictError("a sync is already running for account %s", accountID)
	}
	return func() {
		release()
		s.running.Delete(accountID)
	}, nil
}

// SyncAccount runs a full sync of one account and blocks until it finishes.
// An empty jobType picks initial or incremental from the account state.
func (s *EmailSyncService) SyncAccount(ctx context.Context, account *domain.EmailAccount, jobType domain.SyncJobType) (*domain.EmailSyncJob, error) {
	unlock, err := s.lockAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	job, err := s.startJob(ctx, account, jobType)
	if err != nil {
		return nil, err
	}
	err = s.execute(ctx, account, job)
	return job, err
}

// TriggerSync starts a manual sync in the background and returns the pending job.
func (s *EmailSyncService) TriggerSync(ctx context.Context, organizationID, accountID string) (*domain.EmailSyncJob, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.GetByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	job, err := s.startJob(ctx, account, domain.SyncJobManual)
	if err != nil {
		unlock()
		return nil, err
	}
	snapshot := *job

	s.async(func() {
		defer unlock()
		bg, cancel := context.WithTimeout(context.Background(), s.settings.Timeout)
		defer cancel()
		_ = s.execute(bg, account, job)
	})
	return &snapshot, nil
}

func (s *EmailSyncService) startJob(ctx context.Context, account *domain.EmailAccount, jobType domain.SyncJobType) (*domain.EmailSyncJob, error) {
	if jobType == "" {
		jobType = domain.SyncJobIncremental
		if account.LastSyncCursor == "" && account.LastSyncAt == nil {
			jobType = domain.SyncJobInitial
		}
	}
	job := &domain.EmailSyncJob{
		OrganizationID: account.OrganizationID,
		AccountID:      account.ID,
		Type:           jobType,
		Status:         domain.SyncJobPending,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.WithField("account_id", account.ID).WithField("error", err.Error()).Error("Failed to create sync job")
		return nil, err
	}
	return job, nil
}

// execute moves the job to running, retries failed runs with exponential backoff and
// records the outcome on the job and the account.
func (s *EmailSyncService) execute(ctx context.Context, stored *domain.EmailAccount, job *domain.EmailSyncJob) error {
	ctx, span := tracing.StartServiceSpan(ctx, "EmailSyncService", "SyncAccount")
	defer span.End()
	tracing.AddAttribute(ctx, "account_id", stored.ID)

	started := s.now()
	startedAt := started.UTC()
	job.Status = domain.SyncJobRunning
	job.StartedAt = &startedAt
	if err := s.jobs.Update(ctx, job); err != nil {
		return err
	}
	if err := s.accounts.UpdateSyncState(ctx, stored.ID, domain.SyncState{Status: domain.SyncStatusSyncing}); err != nil {
		return err
	}

	var err error
	var account *domain.EmailAccount
	for attempt := 0; ; attempt++ {
		job.Attempts = attempt + 1
		if account == nil {
			account, err = s.accountService.Load(ctx, stored.OrganizationID, stored.ID)
		}
		if err == nil {
			err = s.run(ctx, account, job)
		}
		if err == nil || attempt >= s.settings.MaxRetries || ctx.Err() != nil {
			break
		}

		if account != nil && errors.Is(err, mailbox.ErrUnauthorized) && account.Provider.IsOAuth() {
			// force a refresh on the next attempt
			expired := s.now().Add(-time.Minute)
			account.TokenExpiresAt = &expired
			if refreshErr := s.accountService.EnsureFreshToken(ctx, account); refreshErr != nil {
				err = refreshErr
				break
			}
		}

		backoff := time.Duration(1<<attempt) * time.Second
		s.logger.WithFields(map[string]interface{}{
			"account_id": stored.ID,
			"job_id":     job.ID,
			"attempt":    job.Attempts,
			"backoff":    backoff.String(),
			"error":      err.Error(),
		}).Warn("Email sync attempt failed, retrying")
		if sleepErr := s.sleep(ctx, backoff); sleepErr != nil {
			break
		}
	}

	finishedAt := s.now().UTC()
	job.FinishedAt = &finishedAt
	duration := float64(s.now().Sub(started).Milliseconds())

	// a cancelled sync still records its outcome
	saveCtx := context.WithoutCancel(ctx)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		job.Status = domain.SyncJobFailed
		job.LastError = err.Error()
		lastError := err.Error()
		if updateErr := s.jobs.Update(saveCtx, job); updateErr != nil {
			s.logger.WithField("job_id", job.ID).WithField("error", updateErr.Error()).Error("Failed to update sync job")
		}
		if stateErr := s.accounts.UpdateSyncState(saveCtx, stored.ID, domain.SyncState{Status: domain.SyncStatusError, LastError: &lastError}); stateErr != nil {
			s.logger.WithField("account_id", stored.ID).WithField("error", stateErr.Error()).Error("Failed to update account sync state")
		}
		tracing.RecordSync(ctx, string(stored.Provider), string(domain.SyncJobFailed), job.MessagesStored, job.MessagesSkipped, duration)
		s.logger.WithFields(map[string]interface{}{
			"organization_id": stored.OrganizationID,
			"account_id":      stored.ID,
			"job_id":          job.ID,
			"attempts":        job.Attempts,
			"error":           err.Error(),
		}).Error("Email sync failed")
		return err
	}

	job.Status = domain.SyncJobCompleted
	job.LastError = ""
	noError := ""
	if updateErr := s.jobs.Update(saveCtx, job); updateErr != nil {
		s.logger.WithField("job_id", job.ID).WithField("error", updateErr.Error()).Error("Failed to update sync job")
	}
	if stateErr := s.accounts.UpdateSyncState(saveCtx, stored.ID, domain.SyncState{
		Status:     domain.SyncStatusIdle,
		Cursor:     &job.Cursor,
		LastSyncAt: &finishedAt,
		LastError:  &noError,
	}); stateErr != nil {
		s.logger.WithField("account_id", stored.ID).WithField("error", stateErr.Error()).Error("Failed to update account sync state")
	}
	tracing.RecordSync(ctx, string(stored.Provider), string(domain.SyncJobCompleted), job.MessagesStored, job.MessagesSkipped, duration)

	event := mq.NewEvent(domain.EventEmailSynced, stored.OrganizationID, map[string]interface{}{
		"account_id": stored.ID,
		"job_id":     job.ID,
		"fetched":    job.MessagesFetched,
		"stored":     job.MessagesStored,
		"skipped":    job.MessagesSkipped,
	})
	if pubErr := s.publisher.Publish(saveCtx, event); pubErr != nil {
		s.logger.WithField("account_id", stored.ID).WithField("error", pubErr.Error()).Warn("Failed to publish email.synced")
	}

	s.logger.WithFields(map[string]interface{}{
		"organization_id": stored.OrganizationID,
		"account_id":      stored.ID,
		"job_id":          job.ID,
		"fetched":         job.MessagesFetched,
		"stored":          job.MessagesStored,
		"skipped":         job.MessagesSkipped,
		"duration_ms":     duration,
	}).Info("Email sync completed")
	return nil
}

// run fetches batches from the stored cursor until the mailbox is drained or the per-run cap is hit.
// The cursor is persisted after every batch so a retry resumes where it stopped.
func (s *EmailSyncService) run(ctx context.Context, account *domain.EmailAccount, job *domain.EmailSyncJob) error {
	provider, err := s.factory.For(account)
	if err != nil {
		return err
	}
	org, err := s.orgRepo.GetByID(ctx, account.OrganizationID)
	if err != nil {
		return err
	}

	since := s.now().AddDate(0, 0, -s.settings.LookbackDays)
	for {
		remaining := s.settings.MaxMessagesPerRun - job.MessagesFetched
		if remaining <= 0 {
			return nil
		}
		limit := s.settings.BatchSize
		if remaining < limit {
			limit = remaining
		}

		res, err := provider.Fetch(ctx, domain.FetchRequest{Cursor: account.LastSyncCursor, Since: since, Limit: limit})
		if err != nil {
			return fmt.Errorf("failed to fetch messages: %w", err)
		}
		job.MessagesFetched += len(res.Messages)
		if err := s.storeBatch(ctx, org, account, job, res.Messages); err != nil {
			return err
		}

		if res.NextCursor != "" && res.NextCursor != account.LastSyncCursor {
			cursor := res.NextCursor
			if err := s.accounts.UpdateSyncState(ctx, account.ID, domain.SyncState{Status: domain.SyncStatusSyncing, Cursor: &cursor}); err != nil {
				return err
			}
			account.LastSyncCursor = cursor
		}
		job.Cursor = account.LastSyncCursor
		if err := s.jobs.Update(ctx, job); err != nil {
			return err
		}
		if !res.HasMore || len(res.Messages) == 0 {
			return nil
		}
	}
}

// storeBatch inserts the messages not yet stored for the account. A redis marker is only
// written once the row exists, so an interrupted insert is retried by the next run.
func (s *EmailSyncService) storeBatch(ctx context.Context, org *domain.Organization, account *domain.EmailAccount, job *domain.EmailSyncJob, messages []*domain.FetchedMessage) error {
	pending := make([]*domain.FetchedMessage, 0, len(messages))
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		messageID := m.ResolveMessageID()
		if s.deduper.Seen(ctx, account.ID, messageID) {
			job.MessagesSkipped++
			continue
		}
		pending = append(pending, m)
		ids = append(ids, messageID)
	}
	if len(pending) == 0 {
		return nil
	}

	existing, err := s.emails.ExistingMessageIDs(ctx, account.ID, ids)
	if err != nil {
		return err
	}

	for i, m := range pending {
		messageID := ids[i]
		if existing[messageID] {
			s.deduper.MarkSeen(ctx, account.ID, messageID)
			job.MessagesSkipped++
			continue
		}

		index, content := s.buildRows(account, m, messageID)
		if contact := s.linkContact(ctx, org, account, index); contact != nil {
			index.ContactID = &contact.ID
		}

		inserted, err := s.emails.InsertMessage(ctx, index, content)
		if err != nil {
			return fmt.Errorf("failed to store message %s: %w", messageID, err)
		}
		existing[messageID] = true
		s.deduper.MarkSeen(ctx, account.ID, messageID)
		if !inserted {
			job.MessagesSkipped++
			continue
		}
		job.MessagesStored++
	}
	return nil
}

func (s *EmailSyncService) buildRows(account *domain.EmailAccount, m *domain.FetchedMessage, messageID string) (*domain.EmailIndex, *domain.EmailContentCache) {
	direction := domain.DirectionInbound
	if strings.EqualFold(m.From.Email, account.EmailAddress) {
		direction = domain.DirectionOutbound
	}
	threadID := m.ThreadID
	if threadID == "" {
		threadID = messageID
	}
	sentAt := m.SentAt
	if sentAt.IsZero() {
		sentAt = s.now()
	}

	index := &domain.EmailIndex{
		OrganizationID: account.OrganizationID,
		AccountID:      account.ID,
		MessageID:      messageID,
		ThreadID:       threadID,
		Folder:         m.Folder,
		Subject:        m.Subject,
		FromAddress:    strings.ToLower(m.From.Email),
		FromName:       m.From.Name,
		ToAddresses:    domain.Emails(m.To),
		CcAddresses:    domain.Emails(m.Cc),
		Snippet:        mailbox.Snippet(m.TextBody, m.HTMLBody),
		SentAt:         sentAt.UTC(),
		HasAttachments: m.HasAttachments,
		IsRead:         m.IsRead,
		Direction:      direction,
	}
	content := &domain.EmailContentCache{
		AccountID: account.ID,
		MessageID: messageID,
		TextBody:  m.TextBody,
		HTMLBody:  m.HTMLBody,
		Headers:   m.Headers,
		SizeBytes: m.Size,
		CachedAt:  s.now().UTC(),
	}
	return index, content
}

// linkContact matches the counterpart of the message: the sender of inbound mail, the
// recipients of outbound mail. Linking failures never fail the sync.
func (s *EmailSyncService) linkContact(ctx context.Context, org *domain.Organization, account *domain.EmailAccount, index *domain.EmailIndex) *domain.Contact {
	var addresses []string
	if index.Direction == domain.DirectionInbound {
		addresses = []string{index.FromAddress}
	} else {
		for _, a := range append(append([]string{}, index.ToAddresses...), index.CcAddresses...) {
			if !strings.EqualFold(a, account.EmailAddress) {
				addresses = append(addresses, a)
			}
		}
	}
	if len(addresses) == 0 || addresses[0] == "" {
		return nil
	}

	contact, err := s.contacts.LinkMessage(ctx, org, addresses, index.SentAt)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"account_id": account.ID,
			"message_id": index.MessageID,
			"error":      err.Error(),
		}).Warn("Failed to link message to contact")
		return nil
	}
	return contact
}

func (s *EmailSyncService) ListMessages(ctx context.Context, req domain.ListEmailsRequest) (*domain.ListEmailsResponse, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	return s.emails.List(ctx, req)
}

func (s *EmailSyncService) GetMessage(ctx context.Context, organizationID, id string) (*domain.EmailWithContent, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.emails.GetByID(ctx, organizationID, id)
}

func (s *EmailSyncService) ListJobs(ctx context.Context, organizationID, accountID string, limit int) ([]*domain.EmailSyncJob, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.jobs.List(ctx, organizationID, accountID, limit)
}
