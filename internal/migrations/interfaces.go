package migrations

import (
	"context"
	"database/sql"

	"github.com/salesflow/crm/config"
)

// DBExecutor is satisfied by both *sql.DB and *sql.Tx.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// MajorMigrationInterface is one schema step, applied inside a transaction.
type MajorMigrationInterface interface {
	GetMajorVersion() float64
	ShouldRestartServer() bool
	Up(ctx context.Context, cfg *config.Config, db DBExecutor) error
}

type MigrationRegistry interface {
	Register(migration MajorMigrationInterface)
	GetMigrations() []MajorMigrationInterface
	GetMigration(version float64) (MajorMigrationInterface, bool)
	Pending(after, upTo float64) []MajorMigrationInterface
}
