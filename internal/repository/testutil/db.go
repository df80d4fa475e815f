// Package testutil holds sqlmock helpers shared by the repository tests.
package testutil

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// SetupMockDB opens a regexp-matching sqlmock connection. The returned func closes it.
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	return db, mock, func() { _ = db.Close() }
}

// AnyTime matches any non-zero time.Time argument, such as created_at stamps
// the repository fills in itself.
type AnyTime struct{}

func (AnyTime) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	return ok && !ts.IsZero()
}

// AnyUUID matches a string argument holding a generated UUID.
type AnyUUID struct{}

func (AnyUUID) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
