package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMockDB(t *testing.T) {
	db, mock, cleanup := SetupMockDB(t)
	require.NotNil(t, db)

	mock.ExpectQuery(`SELECT .* FROM contacts WHERE organization_id = \$1`).WithArgs("org-1").
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("c1"))

	var id string
	require.NoError(t, db.QueryRow("SELECT id FROM contacts WHERE organization_id = $1", "org-1").Scan(&id))
	assert.Equal(t, "c1", id)
	assert.NoError(t, mock.ExpectationsWereMet())

	cleanup()
	assert.Error(t, db.Ping())
}

func TestArgumentMatchers(t *testing.T) {
	assert.True(t, AnyTime{}.Match(time.Now()))
	assert.False(t, AnyTime{}.Match(time.Time{}))
	assert.False(t, AnyTime{}.Match("2024-01-01"))

	assert.True(t, AnyUUID{}.Match(uuid.NewString()))
	assert.False(t, AnyUUID{}.Match("org-1"))
	assert.False(t, AnyUUID{}.Match(42))
}
