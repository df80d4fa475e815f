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

var followupRowColumns = []string{
	"id", "organization_id", "user_id", "account_id", "email_index_id", "contact_id", "thread_id", "recipients",
	"subject", "original_sent_at", "due_at", "status", "priority", "draft_subject", "draft_body", "ai_generated",
	"snoozed_until", "sent_at", "completed_at", "notes", "created_at", "updated_at",
}

func followupRow(rows *sqlmock.Rows, id string, status domain.FollowupStatus, due time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "o1", "u1", "a1", "e1", nil, "t1", []byte("{buyer@acme.io}"), "Quote", nil, due,
		string(status), "medium", "", "", false, nil, nil, nil, "", due, due)
}

func TestFollowupRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewFollowupRepository(db)

	f := &domain.Followup{OrganizationID: "o1", UserID: "u1", Subject: "Quote", DueAt: time.Now().Add(time.Hour), Priority: domain.PriorityHigh}
	mock.ExpectExec(`INSERT INTO followups`).WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), f))
	assert.Equal(t, domain.FollowupPending, f.Status)
	assert.NotNil(t, f.Recipients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowupRepository_GetByID(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewFollowupRepository(db)
	due := time.Now().UTC()

	mock.ExpectQuery(`FROM followups WHERE followups.id = \$1 AND followups.organization_id = \$2`).
		WithArgs("f1", "o1").
		WillReturnRows(followupRow(sqlmock.NewRows(followupRowColumns), "f1", domain.FollowupPending, due))

	f, err := repo.GetByID(context.Background(), "o1", "f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"buyer@acme.io"}, f.Recipients)
	require.NotNil(t, f.EmailIndexID)
	assert.Equal(t, "e1", *f.EmailIndexID)
	assert.Nil(t, f.ContactID)

	mock.ExpectQuery(`FROM followups`).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), "o1", "missing")
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowupRepository_List(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewFollowupRepository(db)
	before := time.Now().UTC()

	mock.ExpectQuery(`WHERE followups.organization_id = \$1 AND followups.status = \$2 AND followups.due_at <= \$3 ORDER BY followups.created_at DESC, followups.id DESC LIMIT 21`).
		WithArgs("o1", domain.FollowupPending, before).
		WillReturnRows(followupRow(sqlmock.NewRows(followupRowColumns), "f1", domain.FollowupPending, before))

	resp, err := repo.List(context.Background(), domain.ListFollowupsRequest{
		OrganizationID: "o1", Status: domain.FollowupPending, DueBefore: &before,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Followups, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowupRepository_WakeSnoozed(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewFollowupRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`UPDATE followups SET status = \$1, snoozed_until = \$2, updated_at = \$3 WHERE status = \$4 AND snoozed_until <= \$5 RETURNING id, organization_id`).
		WithArgs(domain.FollowupPending, nil, now, domain.FollowupSnoozed, now).
		WillReturnRows(followupRow(sqlmock.NewRows(followupRowColumns), "f1", domain.FollowupPending, now))

	woken, err := repo.WakeSnoozed(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, woken, 1)
	assert.Equal(t, domain.FollowupPending, woken[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowupRepository_ListDueAndExists(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewFollowupRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`followups.due_at <= \$3 ORDER BY followups.due_at LIMIT 10`).
		WithArgs("o1", domain.FollowupPending, now).
		WillReturnRows(sqlmock.NewRows(followupRowColumns))
	due, err := repo.ListDue(context.Background(), "o1", now, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("o1", "e1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	exists, err := repo.ExistsForEmail(context.Background(), "o1", "e1")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}
