package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/salesflow/crm/internal/domain"
)

type emailRepository struct {
	db *sql.DB
}

func NewEmailRepository(db *sql.DB) domain.EmailRepository {
	return &emailRepository{db: db}
}

var emailIndexColumns = []string{
	"email_index.id", "email_index.organization_id", "email_index.account_id", "email_index.message_id",
	"email_index.thread_id", "email_index.folder", "email_index.subject", "email_index.from_address",
	"email_index.from_name", "email_index.to_addresses", "email_index.cc_addresses", "email_index.snippet",
	"email_index.sent_at", "email_index.has_attachments", "email_index.is_read", "email_index.direction",
	"email_index.contact_id", "email_index.created_at",
}

func scanEmailIndex(row interface{ Scan(...interface{}) error }) (*domain.EmailIndex, error) {
	var e domain.EmailIndex
	var contactID sql.NullString
	var to, cc pq.StringArray
	err := row.Scan(&e.ID, &e.OrganizationID, &e.AccountID, &e.MessageID, &e.ThreadID, &e.Folder, &e.Subject,
		&e.FromAddress, &e.FromName, &to, &cc, &e.Snippet, &e.SentAt, &e.HasAttachments, &e.IsRead,
		&e.Direction, &contactID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.ToAddresses = []string(to)
	e.CcAddresses = []string(cc)
	e.ContactID = stringPtr(contactID)
	return &e, nil
}

// InsertMessage writes the index row and its cached content atomically. A duplicate
// (account_id, message_id) leaves both tables untouched and reports false.
func (r *emailRepository) InsertMessage(ctx context.Context, index *domain.EmailIndex, content *domain.EmailContentCache) (bool, error) {
	if index.ID == "" {
		index.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	index.CreatedAt = now
	if index.ToAddresses == nil {
		index.ToAddresses = []string{}
	}
	if index.CcAddresses == nil {
		index.CcAddresses = []string{}
	}

	inserted := false
	err := withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO email_index (id, organization_id, account_id, message_id, thread_id, folder, subject,
				from_address, from_name, to_addresses, cc_addresses, snippet, sent_at, has_attachments, is_read,
				direction, contact_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			ON CONFLICT (account_id, message_id) DO NOTHING
			RETURNING id`,
			index.ID, index.OrganizationID, index.AccountID, index.MessageID, index.ThreadID, index.Folder,
			index.Subject, index.FromAddress, index.FromName, pq.Array(index.ToAddresses), pq.Array(index.CcAddresses),
			index.Snippet, index.SentAt, index.HasAttachments, index.IsRead, index.Direction,
			nullString(index.ContactID), index.CreatedAt,
		).Scan(&id)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to insert email index: %w", err)
		}
		inserted = true

		if content == nil {
			return nil
		}
		if content.ID == "" {
			content.ID = uuid.New().String()
		}
		content.EmailIndexID = id
		content.AccountID = index.AccountID
		content.MessageID = index.MessageID
		content.CachedAt = now
		_, err = tx.ExecContext(ctx, `
			INSERT INTO email_content_cache (id, email_index_id, account_id, message_id, text_body, html_body,
				headers, size_bytes, cached_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (account_id, message_id) DO NOTHING`,
			content.ID, content.EmailIndexID, content.AccountID, content.MessageID, content.TextBody,
			content.HTMLBody, content.Headers, content.SizeBytes, content.CachedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert email content: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (r *emailRepository) ExistingMessageIDs(ctx context.Context, accountID string, messageIDs []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(messageIDs) == 0 {
		return found, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT message_id FROM email_index WHERE account_id = $1 AND message_id = ANY($2)`,
		accountID, pq.Array(messageIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to look up message ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan message id: %w", err)
		}
		found[id] = true
	}
	return found, rows.Err()
}

func (r *emailRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.EmailWithContent, error) {
	query, args, err := psql.Select(emailIndexColumns...).From("email_index").
		Where(sq.Eq{"email_index.organization_id": organizationID, "email_index.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	idx, err := scanEmailIndex(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("email", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email: %w", err)
	}

	out := &domain.EmailWithContent{EmailIndex: *idx}
	var c domain.EmailContentCache
	err = r.db.QueryRowContext(ctx, `
		SELECT id, email_index_id, account_id, message_id, text_body, html_body, headers, size_bytes, cached_at
		FROM email_content_cache WHERE email_index_id = $1`, idx.ID,
	).Scan(&c.ID, &c.EmailIndexID, &c.AccountID, &c.MessageID, &c.TextBody, &c.HTMLBody, &c.Headers, &c.SizeBytes, &c.CachedAt)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, fmt.Errorf("failed to get email content: %w", err)
	default:
		out.Content = &c
	}
	return out, nil
}

func (r *emailRepository) List(ctx context.Context, req domain.ListEmailsRequest) (*domain.ListEmailsResponse, error) {
	q := psql.Select(emailIndexColumns...).From("email_index").
		Where(sq.Eq{"email_index.organization_id": req.OrganizationID})
	if req.AccountID != "" {
		q = q.Where(sq.Eq{"email_index.account_id": req.AccountID})
	}
	if req.Direction != "" {
		q = q.Where(sq.Eq{"email_index.direction": req.Direction})
	}
	if req.ThreadID != "" {
		q = q.Where(sq.Eq{"email_index.thread_id": req.ThreadID})
	}
	switch {
	case len(req.Addresses) > 0:
		addrs := pq.Array(req.Addresses)
		cond := sq.Or{
			sq.Expr("email_index.from_address = ANY(?)", addrs),
			sq.Expr("email_index.to_addresses && ?", addrs),
			sq.Expr("email_index.cc_addresses && ?", addrs),
		}
		if req.ContactID != "" {
			cond = append(cond, sq.Eq{"email_index.contact_id": req.ContactID})
		}
		q = q.Where(cond)
	case req.ContactID != "":
		q = q.Where(sq.Eq{"email_index.contact_id": req.ContactID})
	}

	q, err := keysetPage(q, "email_index", req.Page)
	if err != nil {
		return nil, err
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	defer rows.Close()

	items := []*domain.EmailIndex{}
	for rows.Next() {
		e, err := scanEmailIndex(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	resp := &domain.ListEmailsResponse{Emails: items}
	req.Page.Normalize()
	if len(items) > req.Limit {
		last := items[req.Limit-1]
		resp.NextCursor = domain.EncodeCursor(last.CreatedAt, last.ID)
		resp.Emails = items[:req.Limit]
	}
	return resp, nil
}

func (r *emailRepository) StaleOutbound(ctx context.Context, organizationID string, before time.Time, limit int) ([]*domain.EmailIndex, error) {
	query, args, err := psql.Select(emailIndexColumns...).From("email_index").
		Where(sq.Eq{"email_index.organization_id": organizationID, "email_index.direction": domain.DirectionOutbound}).
		Where(sq.Lt{"email_index.sent_at": before}).
		Where(`NOT EXISTS (SELECT 1 FROM email_index reply
			WHERE reply.account_id = email_index.account_id AND reply.thread_id <> ''
			AND reply.thread_id = email_index.thread_id AND reply.direction = 'inbound'
			AND reply.sent_at > email_index.sent_at)`).
		Where(`NOT EXISTS (SELECT 1 FROM followups WHERE followups.email_index_id = email_index.id)`).
		OrderBy("email_index.sent_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unanswered emails: %w", err)
	}
	defer rows.Close()

	items := []*domain.EmailIndex{}
	for rows.Next() {
		e, err := scanEmailIndex(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

type syncJobRepository struct {
	db *sql.DB
}

func NewSyncJobRepository(db *sql.DB) domain.SyncJobRepository {
	return &syncJobRepository{db: db}
}

const syncJobColumns = `id, organization_id, account_id, type, status, messages_fetched, messages_stored,
	messages_skipped, cursor, attempts, last_error, started_at, finished_at, created_at`

func scanSyncJob(row interface{ Scan(...interface{}) error }) (*domain.EmailSyncJob, error) {
	var j domain.EmailSyncJob
	var started, finished sql.NullTime
	err := row.Scan(&j.ID, &j.OrganizationID, &j.AccountID, &j.Type, &j.Status, &j.MessagesFetched,
		&j.MessagesStored, &j.MessagesSkipped, &j.Cursor, &j.Attempts, &j.LastError, &started, &finished, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	j.StartedAt = timePtr(started)
	j.FinishedAt = timePtr(finished)
	return &j, nil
}

func (r *syncJobRepository) Create(ctx context.Context, j *domain.EmailSyncJob) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	j.CreatedAt = time.Now().UTC()
	if j.Status == "" {
		j.Status = domain.SyncJobPending
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO email_sync_jobs (`+syncJobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		j.ID, j.OrganizationID, j.AccountID, j.Type, j.Status, j.MessagesFetched, j.MessagesStored,
		j.MessagesSkipped, j.Cursor, j.Attempts, j.LastError, j.StartedAt, j.FinishedAt, j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sync job: %w", err)
	}
	return nil
}

func (r *syncJobRepository) Update(ctx context.Context, j *domain.EmailSyncJob) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE email_sync_jobs
		SET status = $1, messages_fetched = $2, messages_stored = $3, messages_skipped = $4, cursor = $5,
			attempts = $6, last_error = $7, started_at = $8, finished_at = $9
		WHERE id = $10`,
		j.Status, j.MessagesFetched, j.MessagesStored, j.MessagesSkipped, j.Cursor,
		j.Attempts, j.LastError, j.StartedAt, j.FinishedAt, j.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sync job: %w", err)
	}
	return rowsAffectedOrNotFound(res, "sync job", j.ID)
}

func (r *syncJobRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.EmailSyncJob, error) {
	j, err := scanSyncJob(r.db.QueryRowContext(ctx,
		`SELECT `+syncJobColumns+` FROM email_sync_jobs WHERE organization_id = $1 AND id = $2`, organizationID, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("sync job", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync job: %w", err)
	}
	return j, nil
}

func (r *syncJobRepository) List(ctx context.Context, organizationID, accountID string, limit int) ([]*domain.EmailSyncJob, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := psql.Select(syncJobColumns).From("email_sync_jobs").
		Where(sq.Eq{"organization_id": organizationID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))
	if accountID != "" {
		q = q.Where(sq.Eq{"account_id": accountID})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*domain.EmailSyncJob{}
	for rows.Next() {
		j, err := scanSyncJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
