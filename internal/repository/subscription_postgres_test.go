package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/repository/testutil"
)

func TestSubscriptionRepository_CreateAndGet(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewSubscriptionRepository(db)
	now := time.Now().UTC()

	sub := &domain.Subscription{OrganizationID: "o1", Plan: domain.PlanFree, Status: domain.SubscriptionActive}
	mock.ExpectExec(`INSERT INTO subscriptions`).WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), sub))

	mock.ExpectExec(`INSERT INTO subscriptions`).WillReturnError(&pq.Error{Code: "23505"})
	err := repo.Create(context.Background(), &domain.Subscription{OrganizationID: "o1"})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)

	mock.ExpectQuery(`FROM subscriptions WHERE organization_id = \$1`).WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "plan", "status", "current_period_start",
			"current_period_end", "cancel_at_period_end", "provider_customer_id", "provider_subscription_id",
			"created_at", "updated_at"}).
			AddRow(sub.ID, "o1", "pro", "active", now, now.AddDate(0, 1, 0), false, "cus_1", nil, now, now))
	got, err := repo.GetByOrganization(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPro, got.Plan)
	assert.Equal(t, "cus_1", *got.ProviderCustomerID)
	assert.Nil(t, got.ProviderSubscriptionID)

	mock.ExpectQuery(`FROM subscriptions`).WithArgs("o2").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByOrganization(context.Background(), "o2")
	assert.True(t, domain.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_Usage(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewSubscriptionRepository(db)
	period := domain.MonthStart(time.Now())

	mock.ExpectQuery(`SELECT ai_tokens FROM usage_counters`).WithArgs("o1", period).WillReturnError(sql.ErrNoRows)
	u, err := repo.GetUsage(context.Background(), "o1", period)
	require.NoError(t, err)
	assert.Zero(t, u.AITokens)

	mock.ExpectExec(`ON CONFLICT \(organization_id, period_start\) DO UPDATE SET ai_tokens = usage_counters.ai_tokens \+ EXCLUDED.ai_tokens`).
		WithArgs("o1", period, int64(1500)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.AddAITokens(context.Background(), "o1", period, 1500))

	assert.NoError(t, mock.ExpectationsWereMet())
}
