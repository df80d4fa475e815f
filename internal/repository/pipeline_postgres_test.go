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

func TestPipelineRepository_CreatePipeline(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewPipelineRepository(db)

	p := &domain.Pipeline{OrganizationID: "o1", Name: "Sales", IsDefault: true, Stages: domain.DefaultStages()}
	require.NoError(t, p.Validate())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE pipelines SET is_default = false WHERE organization_id = \$1`).
		WithArgs("o1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO pipelines`).WillReturnResult(sqlmock.NewResult(1, 1))
	for range p.Stages {
		mock.ExpectExec(`INSERT INTO pipeline_stages`).WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.CreatePipeline(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	for _, s := range p.Stages {
		assert.Equal(t, p.ID, s.PipelineID)
		assert.NotEmpty(t, s.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRepository_CreatePipeline_RollsBackOnStageFailure(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewPipelineRepository(db)

	p := &domain.Pipeline{OrganizationID: "o1", Name: "Sales", Stages: []*domain.Stage{{Name: "Lead"}}}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO pipelines`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO pipeline_stages`).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.CreatePipeline(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lead")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRepository_GetPipeline(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewPipelineRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM pipelines WHERE organization_id = \$1 AND id = \$2`).
		WithArgs("o1", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "name", "is_default", "created_at", "updated_at"}).
			AddRow("p1", "o1", "Sales", true, now, now))
	mock.ExpectQuery(`FROM pipeline_stages`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pipeline_id", "name", "position", "probability", "is_won", "is_lost"}).
			AddRow("s1", "p1", "Lead", 0, 10, false, false).
			AddRow("s2", "p1", "Won", 1, 100, true, false))

	p, err := repo.GetPipeline(context.Background(), "o1", "p1")
	require.NoError(t, err)
	require.Len(t, p.Stages, 2)
	assert.True(t, p.Stages[1].IsWon)

	mock.ExpectQuery(`FROM pipelines`).WithArgs("o1", "missing").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetPipeline(context.Background(), "o1", "missing")
	assert.True(t, domain.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRepository_UpdatePipeline_StageInUse(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewPipelineRepository(db)

	p := &domain.Pipeline{ID: "p1", OrganizationID: "o1", Name: "Sales", Stages: []*domain.Stage{{ID: "s1", Name: "Lead"}}}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE pipelines SET name`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE pipeline_stages SET name`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM pipeline_stages WHERE pipeline_id = \$1 AND NOT \(id = ANY\(\$2\)\)`).
		WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	err := repo.UpdatePipeline(context.Background(), p)
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRepository_UpdateStagePositions(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewPipelineRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE pipeline_stages SET position`).WithArgs(0, "p1", "s2").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE pipeline_stages SET position`).WithArgs(1, "p1", "s1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateStagePositions(context.Background(), "p1", []string{"s2", "s1"})
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRepository_ListOpportunities(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewPipelineRepository(db)
	now := time.Now().UTC()

	cols := []string{"id", "organization_id", "pipeline_id", "stage_id", "contact_id", "title", "value", "currency",
		"probability", "expected_close_date", "status", "owner_id", "notes", "metakocka_order_id", "closed_at",
		"created_at", "updated_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("op2", "o1", "p1", "s1", "c1", "Renewal", int64(120000), "EUR", 25, nil, "open", nil, "", nil, nil, now, now).
		AddRow("op1", "o1", "p1", "s1", nil, "Upsell", int64(5000), "EUR", 25, nil, "open", nil, "", nil, nil, now.Add(-time.Hour), now)

	mock.ExpectQuery(`WHERE opportunities.organization_id = \$1 AND opportunities.pipeline_id = \$2 ORDER BY opportunities.created_at DESC, opportunities.id DESC LIMIT 2`).
		WithArgs("o1", "p1").
		WillReturnRows(rows)

	resp, err := repo.ListOpportunities(context.Background(), domain.ListOpportunitiesRequest{
		OrganizationID: "o1", PipelineID: "p1", Page: domain.Page{Limit: 1},
	})
	require.NoError(t, err)
	require.Len(t, resp.Opportunities, 1)
	assert.Equal(t, "c1", *resp.Opportunities[0].ContactID)
	assert.Equal(t, domain.EncodeCursor(now, "op2"), resp.NextCursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRepository_StageTotals(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewPipelineRepository(db)

	mock.ExpectQuery(`GROUP BY stage_id`).WithArgs("o1", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"stage_id", "count", "sum", "weighted"}).
			AddRow("s1", 2, int64(10000), int64(1000)).
			AddRow("s2", 1, int64(50000), int64(25000)))

	totals, weighted, err := repo.StageTotals(context.Background(), "o1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, totals["s1"].Count)
	assert.Equal(t, int64(50000), totals["s2"].TotalValue)
	assert.Equal(t, int64(25000), weighted["s2"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
