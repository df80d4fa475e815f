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

var emailIndexRowColumns = []string{
	"id", "organization_id", "account_id", "message_id", "thread_id", "folder", "subject", "from_address",
	"from_name", "to_addresses", "cc_addresses", "snippet", "sent_at", "has_attachments", "is_read", "direction",
	"contact_id", "created_at",
}

func emailIndexRow(rows *sqlmock.Rows, id, messageID string, at time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "o1", "a1", messageID, "t1", "INBOX", "Quote", "buyer@acme.io", "Buyer",
		[]byte("{me@shop.io}"), []byte("{}"), "Hello", at, false, true, "inbound", nil, at)
}

func TestEmailRepository_InsertMessage(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewEmailRepository(db)

	t.Run("new message stores index and content", func(t *testing.T) {
		idx := &domain.EmailIndex{OrganizationID: "o1", AccountID: "a1", MessageID: "m1@acme.io", Direction: domain.DirectionInbound}
		content := &domain.EmailContentCache{TextBody: "hi", Headers: domain.Headers{"X-Mailer": "test"}}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO email_index .* ON CONFLICT \(account_id, message_id\) DO NOTHING RETURNING id`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("e1"))
		mock.ExpectExec(`INSERT INTO email_content_cache .* ON CONFLICT \(account_id, message_id\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		inserted, err := repo.InsertMessage(context.Background(), idx, content)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, "e1", content.EmailIndexID)
		assert.Equal(t, "m1@acme.io", content.MessageID)
	})

	t.Run("duplicate message is skipped", func(t *testing.T) {
		idx := &domain.EmailIndex{OrganizationID: "o1", AccountID: "a1", MessageID: "m1@acme.io"}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO email_index`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectCommit()

		inserted, err := repo.InsertMessage(context.Background(), idx, &domain.EmailContentCache{})
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("content failure rolls back", func(t *testing.T) {
		idx := &domain.EmailIndex{OrganizationID: "o1", AccountID: "a1", MessageID: "m2@acme.io"}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO email_index`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("e2"))
		mock.ExpectExec(`INSERT INTO email_content_cache`).WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		inserted, err := repo.InsertMessage(context.Background(), idx, &domain.EmailContentCache{})
		require.Error(t, err)
		assert.False(t, inserted)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailRepository_ExistingMessageIDs(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewEmailRepository(db)

	found, err := repo.ExistingMessageIDs(context.Background(), "a1", nil)
	require.NoError(t, err)
	assert.Empty(t, found)

	mock.ExpectQuery(`SELECT message_id FROM email_index WHERE account_id = \$1 AND message_id = ANY\(\$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"message_id"}).AddRow("m1"))

	found, err = repo.ExistingMessageIDs(context.Background(), "a1", []string{"m1", "m2"})
	require.NoError(t, err)
	assert.True(t, found["m1"])
	assert.False(t, found["m2"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailRepository_GetByID(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewEmailRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM email_index WHERE`).
		WillReturnRows(emailIndexRow(sqlmock.NewRows(emailIndexRowColumns), "e1", "m1", now))
	mock.ExpectQuery(`FROM email_content_cache WHERE email_index_id = \$1`).WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email_index_id", "account_id", "message_id", "text_body",
			"html_body", "headers", "size_bytes", "cached_at"}).
			AddRow("c1", "e1", "a1", "m1", "Hello there", "", []byte(`{"Subject":"Quote"}`), 120, now))

	email, err := repo.GetByID(context.Background(), "o1", "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"me@shop.io"}, email.ToAddresses)
	require.NotNil(t, email.Content)
	assert.Equal(t, "Quote", email.Content.Headers["Subject"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailRepository_ListByAddresses(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewEmailRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`\(email_index.from_address = ANY\(\$2\) OR email_index.to_addresses && \$3 OR email_index.cc_addresses && \$4\)`).
		WillReturnRows(emailIndexRow(sqlmock.NewRows(emailIndexRowColumns), "e1", "m1", now))

	resp, err := repo.List(context.Background(), domain.ListEmailsRequest{
		OrganizationID: "o1", Addresses: []string{"buyer@acme.io"},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Emails, 1)
	assert.Empty(t, resp.NextCursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailRepository_StaleOutbound(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewEmailRepository(db)
	cutoff := time.Now().Add(-72 * time.Hour)

	mock.ExpectQuery(`NOT EXISTS \(SELECT 1 FROM followups WHERE followups.email_index_id = email_index.id\) ORDER BY email_index.sent_at DESC LIMIT 50`).
		WithArgs(domain.DirectionOutbound, "o1", cutoff).
		WillReturnRows(sqlmock.NewRows(emailIndexRowColumns))

	items, err := repo.StaleOutbound(context.Background(), "o1", cutoff, 50)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncJobRepository(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewSyncJobRepository(db)

	job := &domain.EmailSyncJob{OrganizationID: "o1", AccountID: "a1", Type: domain.SyncJobManual}
	mock.ExpectExec(`INSERT INTO email_sync_jobs`).WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), job))
	assert.Equal(t, domain.SyncJobPending, job.Status)

	job.Status = domain.SyncJobCompleted
	mock.ExpectExec(`UPDATE email_sync_jobs`).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), job))

	mock.ExpectQuery(`FROM email_sync_jobs WHERE organization_id = \$1 AND account_id = \$2 ORDER BY created_at DESC LIMIT 20`).
		WithArgs("o1", "a1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "account_id", "type", "status",
			"messages_fetched", "messages_stored", "messages_skipped", "cursor", "attempts", "last_error",
			"started_at", "finished_at", "created_at"}).
			AddRow(job.ID, "o1", "a1", "manual", "completed", 3, 2, 1, "17", 1, "", nil, nil, time.Now()))
	jobs, err := repo.List(context.Background(), "o1", "a1", 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 1, jobs[0].MessagesSkipped)

	assert.NoError(t, mock.ExpectationsWereMet())
}
