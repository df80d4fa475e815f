package schema

// TableDefinitions creates every table of the CRM. Statements are idempotent.
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		type VARCHAR(20) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255),
		external_id VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_external_id ON users(external_id) WHERE external_id IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS user_sessions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		magic_code VARCHAR(255),
		magic_code_expires_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_sessions_user_id ON user_sessions(user_id)`,
	`CREATE TABLE IF NOT EXISTS organizations (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(100) NOT NULL UNIQUE,
		owner_id VARCHAR(36) NOT NULL,
		settings JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS organization_members (
		organization_id VARCHAR(36) NOT NULL,
		user_id VARCHAR(36) NOT NULL,
		role VARCHAR(20) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (organization_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_organization_members_user ON organization_members(user_id)`,
	`CREATE TABLE IF NOT EXISTS organization_branding (
		organization_id VARCHAR(36) PRIMARY KEY,
		logo_url TEXT NOT NULL DEFAULT '',
		primary_color VARCHAR(7) NOT NULL DEFAULT '',
		secondary_color VARCHAR(7) NOT NULL DEFAULT '',
		accent_color VARCHAR(7) NOT NULL DEFAULT '',
		font_family VARCHAR(100) NOT NULL DEFAULT '',
		email_signature TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		company VARCHAR(255) NOT NULL DEFAULT '',
		job_title VARCHAR(255) NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		notes TEXT NOT NULL DEFAULT '',
		source VARCHAR(50) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL,
		owner_id VARCHAR(36),
		metakocka_partner_id VARCHAR(100),
		last_contacted_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (organization_id, email)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_org_created ON contacts(organization_id, created_at DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS pipelines (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pipeline_stages (
		id VARCHAR(36) PRIMARY KEY,
		pipeline_id VARCHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		position INTEGER NOT NULL,
		probability INTEGER NOT NULL DEFAULT 0,
		is_won BOOLEAN NOT NULL DEFAULT FALSE,
		is_lost BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pipeline_stages_pipeline ON pipeline_stages(pipeline_id, position)`,
	`CREATE TABLE IF NOT EXISTS opportunities (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL,
		pipeline_id VARCHAR(36) NOT NULL,
		stage_id VARCHAR(36) NOT NULL,
		contact_id VARCHAR(36),
		title VARCHAR(255) NOT NULL,
		value NUMERIC(14, 2) NOT NULL DEFAULT 0,
		currency VARCHAR(3) NOT NULL,
		probability INTEGER NOT NULL DEFAULT 0,
		expected_close_date TIMESTAMPTZ,
		status VARCHAR(20) NOT NULL,
		owner_id VARCHAR(36),
		notes TEXT NOT NULL DEFAULT '',
		metakocka_order_id VARCHAR(100),
		closed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_opportunities_pipeline ON opportunities(organization_id, pipeline_id, stage_id)`,
	`CREATE TABLE IF NOT EXISTS email_accounts (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL,
		user_id VARCHAR(36) NOT NULL,
		provider VARCHAR(20) NOT NULL,
		email_address VARCHAR(255) NOT NULL,
		display_name VARCHAR(255) NOT NULL DEFAULT '',
		imap_host VARCHAR(255) NOT NULL DEFAULT '',
		imap_port INTEGER NOT NULL DEFAULT 0,
		imap_use_tls BOOLEAN NOT NULL DEFAULT TRUE,
		smtp_host VARCHAR(255) NOT NULL DEFAULT '',
		smtp_port INTEGER NOT NULL DEFAULT 0,
		username VARCHAR(255) NOT NULL DEFAULT '',
		encrypted_password TEXT NOT NULL DEFAULT '',
		encrypted_access_token TEXT NOT NULL DEFAULT '',
		encrypted_refresh_token TEXT NOT NULL DEFAULT '',
		token_expires_at TIMESTAMPTZ,
		sync_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		sync_status VARCHAR(20) NOT NULL DEFAULT 'idle',
		last_sync_at TIMESTAMPTZ,
		last_sync_cursor TEXT NOT NULL DEFAULT '',
		last_error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (organization_id, email_address)
	)`,
	`CREATE TABLE IF NOT EXISTS email_index (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL,
		account_id VARCHAR(36) NOT NULL,
		message_id VARCHAR(512) NOT NULL,
		thread_id VARCHAR(512) NOT NULL DEFAULT '',
		folder VARCHAR(255) NOT NULL DEFAULT '',
		subject TEXT NOT NULL DEFAULT '',
		from_address VARCHAR(255) NOT NULL DEFAULT '',
		from_name VARCHAR(255) NOT NULL DEFAULT '',
		to_addresses TEXT[] NOT NULL DEFAULT '{}',
		cc_addresses TEXT[] NOT NULL DEFAULT '{}',
		snippet TEXT NOT NULL DEFAULT '',
		sent_at TIMESTAMPTZ NOT NULL,
		has_attachments BOOLEAN NOT NULL DEFAULT FALSE,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		direction VARCHAR(10) NOT NULL,
		contact_id VARCHAR(36),
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (account_id, message_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_email_index_org_sent ON email_index(organization_id, sent_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_email_index_thread ON email_index(organization_id, thread_id)`,
	`CREATE INDEX IF NOT EXISTS idx_email_index_to ON email_index USING GIN (to_addresses)`,
	`CREATE TABLE IF NOT EXISTS email_content_cache (
		id VARCHAR(36) PRIMARY KEY,
		email_index_id VARCHAR(36) NOT NULL,
		account_id VARCHAR(36) NOT NULL,
		message_id VARCHAR(512) NOT NULL,
		text_body TEXT NOT NULL DEFAULT '',
		html_body TEXT NOT NULL DEFAULT '',
		headers JSONB NOT NULL DEFAULT '{}'::jsonb,
		size_bytes INTEGER NOT NULL DEFAULT 0,
		cached_at TIMESTAMPTZ NOT NULL,
		UNIQUE (account_id, message_id)
	)`,
	`CREATE TABLE IF NOT EXISTS email_sync_jobs (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL,
		account_id VARCHAR(36) NOT NULL,
		type VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL,
		messages_fetched INTEGER NOT NULL DEFAULT 0,
		messages_stored INTEGER NOT NULL DEFAULT 0,
		messages_skipped INTEGER NOT NULL DEFAULT 0,
		cursor TEXT NOT NULL DEFAULT '',
		attempts INTEGER NOT NULL DEFAULT 0,
		last_error TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMPTZ,
		finished_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_email_sync_jobs_account ON email_sync_jobs(organization_id, account_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS followups (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL,
		user_id VARCHAR(36) NOT NULL,
		account_id VARCHAR(36),
		email_index_id VARCHAR(36),
		contact_id VARCHAR(36),
		thread_id VARCHAR(512) NOT NULL DEFAULT '',
		recipients TEXT[] NOT NULL DEFAULT '{}',
		subject TEXT NOT NULL DEFAULT '',
		original_sent_at TIMESTAMPTZ,
		due_at TIMESTAMPTZ NOT NULL,
		status VARCHAR(20) NOT NULL,
		priority VARCHAR(10) NOT NULL,
		draft_subject TEXT NOT NULL DEFAULT '',
		draft_body TEXT NOT NULL DEFAULT '',
		ai_generated BOOLEAN NOT NULL DEFAULT FALSE,
		snoozed_until TIMESTAMPTZ,
		sent_at TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_followups_due ON followups(organization_id, status, due_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_followups_email ON followups(organization_id, email_index_id) WHERE email_index_id IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS email_analyses (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL,
		email_index_id VARCHAR(36) NOT NULL UNIQUE,
		summary TEXT NOT NULL DEFAULT '',
		sentiment VARCHAR(20) NOT NULL,
		intent VARCHAR(255) NOT NULL DEFAULT '',
		priority VARCHAR(10) NOT NULL,
		action_items TEXT[] NOT NULL DEFAULT '{}',
		suggested_reply TEXT NOT NULL DEFAULT '',
		model VARCHAR(100) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ai_activity (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL,
		user_id VARCHAR(36),
		kind VARCHAR(50) NOT NULL,
		entity_id VARCHAR(36) NOT NULL DEFAULT '',
		provider VARCHAR(20) NOT NULL,
		model VARCHAR(100) NOT NULL DEFAULT '',
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		cost_usd NUMERIC(12, 6) NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ai_activity_org ON ai_activity(organization_id, created_at DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id VARCHAR(36) PRIMARY KEY,
		organization_id VARCHAR(36) NOT NULL UNIQUE,
		plan VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL,
		current_period_start TIMESTAMPTZ NOT NULL,
		current_period_end TIMESTAMPTZ NOT NULL,
		cancel_at_period_end BOOLEAN NOT NULL DEFAULT FALSE,
		provider_customer_id VARCHAR(255),
		provider_subscription_id VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS usage_counters (
		organization_id VARCHAR(36) NOT NULL,
		period_start TIMESTAMPTZ NOT NULL,
		ai_tokens BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (organization_id, period_start)
	)`,
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
	`CREATE TABLE IF NOT EXISTS settings (
		key VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// TableNames lists every table in creation order.
var TableNames = []string{
	"users",
	"user_sessions",
	"organizations",
	"organization_members",
	"organization_branding",
	"contacts",
	"pipelines",
	"pipeline_stages",
	"opportunities",
	"email_accounts",
	"email_index",
	"email_content_cache",
	"email_sync_jobs",
	"followups",
	"email_analyses",
	"ai_activity",
	"subscriptions",
	"usage_counters",
	"metakocka_credentials",
	"erp_products",
	"suppliers",
	"sourcing_requests",
	"settings",
}
