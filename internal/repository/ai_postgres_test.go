package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/repository/testutil"
)

func TestAIRepository_UpsertAnalysis(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewAIRepository(db)
	created := time.Now().Add(-time.Hour).UTC()

	a := &domain.EmailAnalysis{OrganizationID: "o1", EmailIndexID: "e1", Summary: "Wants a quote", Sentiment: domain.SentimentPositive}
	mock.ExpectQuery(`INSERT INTO email_analyses .* ON CONFLICT \(email_index_id\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("existing", created, time.Now()))

	require.NoError(t, repo.UpsertAnalysis(context.Background(), a))
	assert.Equal(t, "existing", a.ID)
	assert.Equal(t, created, a.CreatedAt)
	assert.NotNil(t, a.ActionItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAIRepository_GetAnalysis(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewAIRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM email_analyses WHERE organization_id = \$1 AND email_index_id = \$2`).
		WithArgs("o1", "e1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "email_index_id", "summary", "sentiment",
			"intent", "priority", "action_items", "suggested_reply", "model", "created_at", "updated_at"}).
			AddRow("an1", "o1", "e1", "Wants a quote", "positive", "quote_request", "high",
				[]byte(`{"send pricing","book call"}`), "", "claude", now, now))

	a, err := repo.GetAnalysis(context.Background(), "o1", "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"send pricing", "book call"}, a.ActionItems)
	assert.Equal(t, domain.PriorityHigh, a.Priority)

	mock.ExpectQuery(`FROM email_analyses`).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetAnalysis(context.Background(), "o1", "e2")
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAIRepository_Activity(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewAIRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO ai_activity`).WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.LogActivity(context.Background(), &domain.AIActivity{
		OrganizationID: "o1", Kind: domain.AIKindAnalyzeEmail, Provider: domain.LLMProviderAnthropic, Status: domain.AIActivitySucceeded,
	}))

	mock.ExpectQuery(`FROM ai_activity WHERE ai_activity.organization_id = \$1 AND ai_activity.kind = \$2`).
		WithArgs("o1", domain.AIKindDraftReply).
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "user_id", "kind", "entity_id", "provider",
			"model", "input_tokens", "output_tokens", "cost_usd", "duration_ms", "status", "error", "created_at"}).
			AddRow("x1", "o1", "u1", "draft_reply", "e1", "anthropic", "claude", int64(100), int64(50), 0.001, int64(800), "succeeded", "", now))

	resp, err := repo.ListActivity(context.Background(), domain.ListAIActivityRequest{OrganizationID: "o1", Kind: domain.AIKindDraftReply})
	require.NoError(t, err)
	require.Len(t, resp.Activity, 1)
	assert.Equal(t, "u1", *resp.Activity[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
