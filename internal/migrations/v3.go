package migrations

import (
	"context"
	"fmt"

	"github.com/salesflow/crm/config"
)

// V3Migration creates the supplier directory and sourcing request tables.
type V3Migration struct{}

func (m *V3Migration) GetMajorVersion() float64 { return 3.0 }

func (m *V3Migration) ShouldRestartServer() bool { return false }

func (m *V3Migration) Up(ctx context.Context, cfg *config.Config, db DBExecutor) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS suppliers (
			id VARCHAR(36) PRIMARY KEY,
			organization_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			website TEXT NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			country VARCHAR(100) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			rating INTEGER NOT NULL DEFAULT 0,
			source VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suppliers_org_category ON suppliers(organization_id, category)`,
		`CREATE TABLE IF NOT EXISTS sourcing_requests (
			id VARCHAR(36) PRIMARY KEY,
			organization_id VARCHAR(36) NOT NULL,
			user_id VARCHAR(36) NOT NULL,
			query TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			country VARCHAR(100) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL,
			suggestions JSONB NOT NULL DEFAULT '[]'::jsonb,
			error TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("v3 migration: %w", err)
		}
	}
	return nil
}

func init() {
	Register(&V3Migration{})
}
