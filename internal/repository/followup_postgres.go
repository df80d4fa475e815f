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

type followupRepository struct {
	db *sql.DB
}

func NewFollowupRepository(db *sql.DB) domain.FollowupRepository {
	return &followupRepository{db: db}
}

var followupColumns = []string{
	"followups.id", "followups.organization_id", "followups.user_id", "followups.account_id",
	"followups.email_index_id", "followups.contact_id", "followups.thread_id", "followups.recipients",
	"followups.subject", "followups.original_sent_at", "followups.due_at", "followups.status", "followups.priority",
	"followups.draft_subject", "followups.draft_body", "followups.ai_generated", "followups.snoozed_until",
	"followups.sent_at", "followups.completed_at", "followups.notes", "followups.created_at", "followups.updated_at",
}

func scanFollowup(row interface{ Scan(...interface{}) error }) (*domain.Followup, error) {
	var f domain.Followup
	var accountID, emailID, contactID sql.NullString
	var recipients pq.StringArray
	var originalSent, snoozed, sent, completed sql.NullTime
	err := row.Scan(&f.ID, &f.OrganizationID, &f.UserID, &accountID, &emailID, &contactID, &f.ThreadID,
		&recipients, &f.Subject, &originalSent, &f.DueAt, &f.Status, &f.Priority, &f.DraftSubject, &f.DraftBody,
		&f.AIGenerated, &snoozed, &sent, &completed, &f.Notes, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.AccountID = stringPtr(accountID)
	f.EmailIndexID = stringPtr(emailID)
	f.ContactID = stringPtr(contactID)
	f.Recipients = []string(recipients)
	f.OriginalSentAt = timePtr(originalSent)
	f.SnoozedUntil = timePtr(snoozed)
	f.SentAt = timePtr(sent)
	f.CompletedAt = timePtr(completed)
	return &f, nil
}

func (r *followupRepository) Create(ctx context.Context, f *domain.Followup) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	f.CreatedAt, f.UpdatedAt = now, now
	if f.Status == "" {
		f.Status = domain.FollowupPending
	}
	if f.Recipients == nil {
		f.Recipients = []string{}
	}

	query, args, err := psql.Insert("followups").
		Columns("id", "organization_id", "user_id", "account_id", "email_index_id", "contact_id", "thread_id",
			"recipients", "subject", "original_sent_at", "due_at", "status", "priority", "draft_subject",
			"draft_body", "ai_generated", "snoozed_until", "sent_at", "completed_at", "notes", "created_at", "updated_at").
		Values(f.ID, f.OrganizationID, f.UserID, nullString(f.AccountID), nullString(f.EmailIndexID),
			nullString(f.ContactID), f.ThreadID, pq.Array(f.Recipients), f.Subject, f.OriginalSentAt, f.DueAt,
			f.Status, f.Priority, f.DraftSubject, f.DraftBody, f.AIGenerated, f.SnoozedUntil, f.SentAt,
			f.CompletedAt, f.Notes, f.CreatedAt, f.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("a follow-up already exists for this email")
		}
		return fmt.Errorf("failed to create followup: %w", err)
	}
	return nil
}

func (r *followupRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.Followup, error) {
	query, args, err := psql.Select(followupColumns...).From("followups").
		Where(sq.Eq{"followups.organization_id": organizationID, "followups.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	f, err := scanFollowup(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("followup", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get followup: %w", err)
	}
	return f, nil
}

func (r *followupRepository) collect(ctx context.Context, q sq.Sqlizer) ([]*domain.Followup, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query followups: %w", err)
	}
	defer rows.Close()

	items := []*domain.Followup{}
	for rows.Next() {
		f, err := scanFollowup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan followup: %w", err)
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

func (r *followupRepository) List(ctx context.Context, req domain.ListFollowupsRequest) (*domain.ListFollowupsResponse, error) {
	q := psql.Select(followupColumns...).From("followups").
		Where(sq.Eq{"followups.organization_id": req.OrganizationID})
	if req.Status != "" {
		q = q.Where(sq.Eq{"followups.status": req.Status})
	}
	if req.DueBefore != nil {
		q = q.Where(sq.LtOrEq{"followups.due_at": *req.DueBefore})
	}
	if req.ContactID != "" {
		q = q.Where(sq.Eq{"followups.contact_id": req.ContactID})
	}
	q, err := keysetPage(q, "followups", req.Page)
	if err != nil {
		return nil, err
	}
	items, err := r.collect(ctx, q)
	if err != nil {
		return nil, err
	}

	resp := &domain.ListFollowupsResponse{Followups: items}
	req.Page.Normalize()
	if len(items) > req.Limit {
		last := items[req.Limit-1]
		resp.NextCursor = domain.EncodeCursor(last.CreatedAt, last.ID)
		resp.Followups = items[:req.Limit]
	}
	return resp, nil
}

func (r *followupRepository) Update(ctx context.Context, f *domain.Followup) error {
	query, args, err := psql.Update("followups").
		SetMap(map[string]interface{}{
			"account_id":    nullString(f.AccountID),
			"contact_id":    nullString(f.ContactID),
			"recipients":    pq.Array(f.Recipients),
			"subject":       f.Subject,
			"due_at":        f.DueAt,
			"status":        f.Status,
			"priority":      f.Priority,
			"draft_subject": f.DraftSubject,
			"draft_body":    f.DraftBody,
			"ai_generated":  f.AIGenerated,
			"snoozed_until": f.SnoozedUntil,
			"sent_at":       f.SentAt,
			"completed_at":  f.CompletedAt,
			"notes":         f.Notes,
			"updated_at":    time.Now().UTC(),
		}).
		Where(sq.Eq{"organization_id": f.OrganizationID, "id": f.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update followup: %w", err)
	}
	return rowsAffectedOrNotFound(res, "followup", f.ID)
}

func (r *followupRepository) Delete(ctx context.Context, organizationID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM followups WHERE organization_id = $1 AND id = $2`, organizationID, id)
	if err != nil {
		return fmt.Errorf("failed to delete followup: %w", err)
	}
	return rowsAffectedOrNotFound(res, "followup", id)
}

func (r *followupRepository) ExistsForEmail(ctx context.Context, organizationID, emailIndexID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM followups WHERE organization_id = $1 AND email_index_id = $2)`,
		organizationID, emailIndexID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check followup: %w", err)
	}
	return exists, nil
}

// WakeSnoozed returns snoozed follow-ups to pending once their snooze passes, across all organizations.
func (r *followupRepository) WakeSnoozed(ctx context.Context, now time.Time) ([]*domain.Followup, error) {
	q := psql.Update("followups").
		Set("status", domain.FollowupPending).
		Set("snoozed_until", nil).
		Set("updated_at", now).
		Where(sq.Eq{"status": domain.FollowupSnoozed}).
		Where(sq.LtOrEq{"snoozed_until": now}).
		Suffix("RETURNING " + joinColumns(followupColumns, "followups."))
	return r.collect(ctx, q)
}

func (r *followupRepository) ListDue(ctx context.Context, organizationID string, now time.Time, limit int) ([]*domain.Followup, error) {
	return r.collect(ctx, psql.Select(followupColumns...).From("followups").
		Where(sq.Eq{"followups.organization_id": organizationID, "followups.status": domain.FollowupPending}).
		Where(sq.LtOrEq{"followups.due_at": now}).
		OrderBy("followups.due_at").
		Limit(uint64(limit)))
}
