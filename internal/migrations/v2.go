package migrations

import (
	"context"
	"fmt"

	"github.com/salesflow/crm/config"
)

// V2Migration adds the Metakocka ERP link: partner and order references plus the
// credential and product mirror tables.
type V2Migration struct{}

func (m *V2Migration) GetMajorVersion() float64 { return 2.0 }

func (m *V2Migration) ShouldRestartServer() bool { return false }

func (m *V2Migration) Up(ctx context.Context, cfg *config.Config, db DBExecutor) error {
	statements := []string{
		`ALTER TABLE contacts ADD COLUMN IF NOT EXISTS metakocka_partner_id VARCHAR(100)`,
		`ALTER TABLE opportunities ADD COLUMN IF NOT EXISTS metakocka_order_id VARCHAR(100)`,
		`CREATE TABLE IF NOT EXISTS metakocka_credentials (
			organization_id VARCHAR(36) PRIMARY KEY,
			company_id VARCHAR(50) NOT NULL,
			encrypted_secret_key TEXT NOT NULL,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			last_sync_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS erp_products (
			id VARCHAR(36) PRIMARY KEY,
			organization_id VARCHAR(36) NOT NULL,
			external_id VARCHAR(100) NOT NULL DEFAULT '',
			code VARCHAR(100) NOT NULL,
			name VARCHAR(255) NOT NULL,
			unit VARCHAR(20) NOT NULL DEFAULT '',
			price NUMERIC(14, 4) NOT NULL DEFAULT 0,
			stock NUMERIC(14, 4) NOT NULL DEFAULT 0,
			synced_at TIMESTAMPTZ NOT NULL,
			UNIQUE (organization_id, code)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("v2 migration: %w", err)
		}
	}
	return nil
}

func init() {
	Register(&V2Migration{})
}
