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

var orgRowColumns = []string{"id", "name", "slug", "owner_id", "settings", "created_at", "updated_at", "deleted_at"}

func TestOrganizationRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewOrganizationRepository(db)

	t.Run("creates organization and owner membership atomically", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO organizations`).
			WithArgs(testutil.AnyUUID{}, "Acme", "acme", "u1", sqlmock.AnyArg(), testutil.AnyTime{}, testutil.AnyTime{}).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO organization_members`).
			WithArgs(testutil.AnyUUID{}, "u1", domain.RoleOwner, testutil.AnyTime{}).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		org := &domain.Organization{Name: "Acme", Slug: "acme", OwnerID: "u1"}
		owner := &domain.OrganizationMember{UserID: "u1"}
		require.NoError(t, repo.Create(context.Background(), org, owner))
		assert.NotEmpty(t, org.ID)
		assert.Equal(t, org.ID, owner.OrganizationID)
	})

	t.Run("slug taken rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO organizations`).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &domain.Organization{Name: "Acme", Slug: "acme"}, &domain.OrganizationMember{UserID: "u1"})
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_GetAndList(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewOrganizationRepository(db)
	now := time.Now().UTC()
	settings := []byte(`{"timezone":"Europe/Ljubljana","default_currency":"EUR","followup_after_days":5}`)

	mock.ExpectQuery(`FROM organizations o WHERE o.id = \$1 AND o.deleted_at IS NULL`).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows(orgRowColumns).AddRow("o1", "Acme", "acme", "u1", settings, now, now, nil))

	org, err := repo.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Ljubljana", org.Settings.Timezone)
	assert.Equal(t, 5, org.Settings.FollowupAfterDays)
	assert.Nil(t, org.DeletedAt)

	mock.ExpectQuery(`FROM organizations o WHERE o.id = \$1`).WithArgs("gone").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), "gone")
	assert.True(t, domain.IsNotFound(err))

	mock.ExpectQuery(`JOIN organization_members m ON m.organization_id = o.id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(append(orgRowColumns, "role")).
			AddRow("o1", "Acme", "acme", "u1", settings, now, now, nil, "owner").
			AddRow("o2", "Beta", "beta", "u9", []byte(`{}`), now, now, nil, "member"))

	list, err := repo.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.RoleOwner, list[0].Role)
	assert.Equal(t, domain.RoleMember, list[1].Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_Members(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewOrganizationRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT m.organization_id, m.user_id, m.role, u.email, u.name, m.created_at FROM organization_members m JOIN users u ON u.id = m.user_id JOIN organizations o ON o.id = m.organization_id AND o.deleted_at IS NULL WHERE m.organization_id = \$1 AND m.user_id = \$2`).
		WithArgs("o1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"organization_id", "user_id", "role", "email", "name", "created_at"}).
			AddRow("o1", "u2", "admin", "b@example.com", "B", now))

	m, err := repo.GetMember(context.Background(), "o1", "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, m.Role)

	mock.ExpectExec(`INSERT INTO organization_members`).WillReturnError(&pq.Error{Code: "23505"})
	err = repo.AddMember(context.Background(), &domain.OrganizationMember{OrganizationID: "o1", UserID: "u2", Role: domain.RoleMember})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)

	mock.ExpectExec(`DELETE FROM organization_members`).WithArgs("o1", "nobody").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, domain.IsNotFound(repo.RemoveMember(context.Background(), "o1", "nobody")))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM organization_members`).WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	n, err := repo.CountMembers(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_Branding(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewOrganizationRepository(db)

	mock.ExpectQuery(`FROM organization_branding`).WithArgs("o1").WillReturnError(sql.ErrNoRows)
	_, err := repo.GetBranding(context.Background(), "o1")
	assert.True(t, domain.IsNotFound(err))

	b := domain.DefaultBranding("o1")
	mock.ExpectExec(`INSERT INTO organization_branding .* ON CONFLICT \(organization_id\) DO UPDATE`).
		WithArgs("o1", "", "#1F2937", "#F3F4F6", "#2563EB", "Inter", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.UpsertBranding(context.Background(), b))
	assert.False(t, b.UpdatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}
