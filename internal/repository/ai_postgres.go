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

type aiRepository struct {
	db *sql.DB
}

func NewAIRepository(db *sql.DB) domain.AIRepository {
	return &aiRepository{db: db}
}

// UpsertAnalysis keeps one analysis per email; re-analysing overwrites it.
func (r *aiRepository) UpsertAnalysis(ctx context.Context, a *domain.EmailAnalysis) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if a.ActionItems == nil {
		a.ActionItems = []string{}
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO email_analyses (id, organization_id, email_index_id, summary, sentiment, intent, priority,
			action_items, suggested_reply, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (email_index_id) DO UPDATE SET
			summary = EXCLUDED.summary,
			sentiment = EXCLUDED.sentiment,
			intent = EXCLUDED.intent,
			priority = EXCLUDED.priority,
			action_items = EXCLUDED.action_items,
			suggested_reply = EXCLUDED.suggested_reply,
			model = EXCLUDED.model,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`,
		a.ID, a.OrganizationID, a.EmailIndexID, a.Summary, a.Sentiment, a.Intent, a.Priority,
		pq.Array(a.ActionItems), a.SuggestedReply, a.Model, now,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save email analysis: %w", err)
	}
	return nil
}

func (r *aiRepository) GetAnalysis(ctx context.Context, organizationID, emailIndexID string) (*domain.EmailAnalysis, error) {
	var a domain.EmailAnalysis
	var items pq.StringArray
	err := r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, email_index_id, summary, sentiment, intent, priority, action_items,
			suggested_reply, model, created_at, updated_at
		FROM email_analyses WHERE organization_id = $1 AND email_index_id = $2`,
		organizationID, emailIndexID,
	).Scan(&a.ID, &a.OrganizationID, &a.EmailIndexID, &a.Summary, &a.Sentiment, &a.Intent, &a.Priority,
		&items, &a.SuggestedReply, &a.Model, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("email analysis", emailIndexID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email analysis: %w", err)
	}
	a.ActionItems = []string(items)
	return &a, nil
}

func (r *aiRepository) LogActivity(ctx context.Context, a *domain.AIActivity) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	query, args, err := psql.Insert("ai_activity").
		Columns("id", "organization_id", "user_id", "kind", "entity_id", "provider", "model", "input_tokens",
			"output_tokens", "cost_usd", "duration_ms", "status", "error", "created_at").
		Values(a.ID, a.OrganizationID, nullString(a.UserID), a.Kind, a.EntityID, a.Provider, a.Model, a.InputTokens,
			a.OutputTokens, a.CostUSD, a.DurationMs, a.Status, a.Error, a.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to log ai activity: %w", err)
	}
	return nil
}

func (r *aiRepository) ListActivity(ctx context.Context, req domain.ListAIActivityRequest) (*domain.ListAIActivityResponse, error) {
	q := psql.Select("ai_activity.id", "ai_activity.organization_id", "ai_activity.user_id", "ai_activity.kind",
		"ai_activity.entity_id", "ai_activity.provider", "ai_activity.model", "ai_activity.input_tokens",
		"ai_activity.output_tokens", "ai_activity.cost_usd", "ai_activity.duration_ms", "ai_activity.status",
		"ai_activity.error", "ai_activity.created_at").
		From("ai_activity").
		Where(sq.Eq{"ai_activity.organization_id": req.OrganizationID})
	if req.Kind != "" {
		q = q.Where(sq.Eq{"ai_activity.kind": req.Kind})
	}
	q, err := keysetPage(q, "ai_activity", req.Page)
	if err != nil {
		return nil, err
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ai activity: %w", err)
	}
	defer rows.Close()

	items := []*domain.AIActivity{}
	for rows.Next() {
		var a domain.AIActivity
		var userID sql.NullString
		if err := rows.Scan(&a.ID, &a.OrganizationID, &userID, &a.Kind, &a.EntityID, &a.Provider, &a.Model,
			&a.InputTokens, &a.OutputTokens, &a.CostUSD, &a.DurationMs, &a.Status, &a.Error, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ai activity: %w", err)
		}
		a.UserID = stringPtr(userID)
		items = append(items, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	resp := &domain.ListAIActivityResponse{Activity: items}
	req.Page.Normalize()
	if len(items) > req.Limit {
		last := items[req.Limit-1]
		resp.NextCursor = domain.EncodeCursor(last.CreatedAt, last.ID)
		resp.Activity = items[:req.Limit]
	}
	return resp, nil
}
