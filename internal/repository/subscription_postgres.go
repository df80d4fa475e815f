package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salesflow/crm/internal/domain"
)

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, s *domain.Subscription) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (id, organization_id, plan, status, current_period_start, current_period_end,
			cancel_at_period_end, provider_customer_id, provider_subscription_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.OrganizationID, s.Plan, s.Status, s.CurrentPeriodStart, s.CurrentPeriodEnd, s.CancelAtPeriodEnd,
		nullString(s.ProviderCustomerID), nullString(s.ProviderSubscriptionID), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("organization already has a subscription")
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) GetByOrganization(ctx context.Context, organizationID string) (*domain.Subscription, error) {
	var s domain.Subscription
	var customerID, subscriptionID sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, plan, status, current_period_start, current_period_end, cancel_at_period_end,
			provider_customer_id, provider_subscription_id, created_at, updated_at
		FROM subscriptions WHERE organization_id = $1`, organizationID,
	).Scan(&s.ID, &s.OrganizationID, &s.Plan, &s.Status, &s.CurrentPeriodStart, &s.CurrentPeriodEnd,
		&s.CancelAtPeriodEnd, &customerID, &subscriptionID, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("subscription", organizationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	s.ProviderCustomerID = stringPtr(customerID)
	s.ProviderSubscriptionID = stringPtr(subscriptionID)
	return &s, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, s *domain.Subscription) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET plan = $1, status = $2, current_period_start = $3, current_period_end = $4, cancel_at_period_end = $5,
			provider_customer_id = $6, provider_subscription_id = $7, updated_at = $8
		WHERE organization_id = $9`,
		s.Plan, s.Status, s.CurrentPeriodStart, s.CurrentPeriodEnd, s.CancelAtPeriodEnd,
		nullString(s.ProviderCustomerID), nullString(s.ProviderSubscriptionID), s.UpdatedAt, s.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return rowsAffectedOrNotFound(res, "subscription", s.OrganizationID)
}

// GetUsage returns a zero counter when nothing was recorded for the period yet.
func (r *subscriptionRepository) GetUsage(ctx context.Context, organizationID string, periodStart time.Time) (*domain.UsageCounter, error) {
	u := &domain.UsageCounter{OrganizationID: organizationID, PeriodStart: periodStart}
	err := r.db.QueryRowContext(ctx,
		`SELECT ai_tokens FROM usage_counters WHERE organization_id = $1 AND period_start = $2`,
		organizationID, periodStart,
	).Scan(&u.AITokens)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}
	return u, nil
}

func (r *subscriptionRepository) AddAITokens(ctx context.Context, organizationID string, periodStart time.Time, tokens int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usage_counters (organization_id, period_start, ai_tokens)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id, period_start) DO UPDATE SET ai_tokens = usage_counters.ai_tokens + EXCLUDED.ai_tokens`,
		organizationID, periodStart, tokens,
	)
	if err != nil {
		return fmt.Errorf("failed to record ai tokens: %w", err)
	}
	return nil
}
