package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/salesflow/crm/internal/domain"
)

type emailAccountRepository struct {
	db *sql.DB
}

func NewEmailAccountRepository(db *sql.DB) domain.EmailAccountRepository {
	return &emailAccountRepository{db: db}
}

var emailAccountColumns = []string{
	"email_accounts.id", "email_accounts.organization_id", "email_accounts.user_id", "email_accounts.provider",
	"email_accounts.email_address", "email_accounts.display_name", "email_accounts.imap_host", "email_accounts.imap_port",
	"email_accounts.imap_use_tls", "email_accounts.smtp_host", "email_accounts.smtp_port", "email_accounts.username",
	"email_accounts.encrypted_password", "email_accounts.encrypted_access_token", "email_accounts.encrypted_refresh_token",
	"email_accounts.token_expires_at", "email_accounts.sync_enabled", "email_accounts.sync_status",
	"email_accounts.last_sync_at", "email_accounts.last_sync_cursor", "email_accounts.last_error",
	"email_accounts.created_at", "email_accounts.updated_at",
}

func scanEmailAccount(row interface{ Scan(...interface{}) error }) (*domain.EmailAccount, error) {
	var a domain.EmailAccount
	var expires, lastSync sql.NullTime
	err := row.Scan(&a.ID, &a.OrganizationID, &a.UserID, &a.Provider, &a.EmailAddress, &a.DisplayName,
		&a.IMAPHost, &a.IMAPPort, &a.IMAPUseTLS, &a.SMTPHost, &a.SMTPPort, &a.Username,
		&a.EncryptedPassword, &a.EncryptedAccessToken, &a.EncryptedRefreshToken,
		&expires, &a.SyncEnabled, &a.SyncStatus, &lastSync, &a.LastSyncCursor, &a.LastError,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.TokenExpiresAt = timePtr(expires)
	a.LastSyncAt = timePtr(lastSync)
	return &a, nil
}

func (r *emailAccountRepository) Create(ctx context.Context, a *domain.EmailAccount) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	if a.SyncStatus == "" {
		a.SyncStatus = domain.SyncStatusIdle
	}

	query, args, err := psql.Insert("email_accounts").
		Columns("id", "organization_id", "user_id", "provider", "email_address", "display_name",
			"imap_host", "imap_port", "imap_use_tls", "smtp_host", "smtp_port", "username",
			"encrypted_password", "encrypted_access_token", "encrypted_refresh_token", "token_expires_at",
			"sync_enabled", "sync_status", "last_sync_cursor", "last_error", "created_at", "updated_at").
		Values(a.ID, a.OrganizationID, a.UserID, a.Provider, a.EmailAddress, a.DisplayName,
			a.IMAPHost, a.IMAPPort, a.IMAPUseTLS, a.SMTPHost, a.SMTPPort, a.Username,
			a.EncryptedPassword, a.EncryptedAccessToken, a.EncryptedRefreshToken, a.TokenExpiresAt,
			a.SyncEnabled, a.SyncStatus, a.LastSyncCursor, a.LastError, a.CreatedAt, a.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("email account %s is already connected", a.EmailAddress)
		}
		return fmt.Errorf("failed to create email account: %w", err)
	}
	return nil
}

func (r *emailAccountRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.EmailAccount, error) {
	query, args, err := psql.Select(emailAccountColumns...).From("email_accounts").
		Where(sq.Eq{"email_accounts.organization_id": organizationID, "email_accounts.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	a, err := scanEmailAccount(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("email account", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email account: %w", err)
	}
	return a, nil
}

func (r *emailAccountRepository) query(ctx context.Context, q sq.SelectBuilder) ([]*domain.EmailAccount, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list email accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*domain.EmailAccount{}
	for rows.Next() {
		a, err := scanEmailAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *emailAccountRepository) List(ctx context.Context, organizationID string) ([]*domain.EmailAccount, error) {
	return r.query(ctx, psql.Select(emailAccountColumns...).From("email_accounts").
		Where(sq.Eq{"email_accounts.organization_id": organizationID}).
		OrderBy("email_accounts.created_at"))
}

func (r *emailAccountRepository) ListSyncEnabled(ctx context.Context) ([]*domain.EmailAccount, error) {
	return r.query(ctx, psql.Select(emailAccountColumns...).From("email_accounts").
		Join("organizations ON organizations.id = email_accounts.organization_id").
		Where(sq.Eq{"email_accounts.sync_enabled": true, "organizations.deleted_at": nil}).
		OrderBy("email_accounts.last_sync_at NULLS FIRST"))
}

func (r *emailAccountRepository) Update(ctx context.Context, a *domain.EmailAccount) error {
	a.UpdatedAt = time.Now().UTC()
	query, args, err := psql.Update("email_accounts").
		SetMap(map[string]interface{}{
			"display_name":       a.DisplayName,
			"imap_host":          a.IMAPHost,
			"imap_port":          a.IMAPPort,
			"imap_use_tls":       a.IMAPUseTLS,
			"smtp_host":          a.SMTPHost,
			"smtp_port":          a.SMTPPort,
			"username":           a.Username,
			"encrypted_password": a.EncryptedPassword,
			"sync_enabled":       a.SyncEnabled,
			"updated_at":         a.UpdatedAt,
		}).
		Where(sq.Eq{"organization_id": a.OrganizationID, "id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update email account: %w", err)
	}
	return rowsAffectedOrNotFound(res, "email account", a.ID)
}

// UpdateSyncState writes the status and only the optional fields that are set.
func (r *emailAccountRepository) UpdateSyncState(ctx context.Context, id string, state domain.SyncState) error {
	q := psql.Update("email_accounts").
		Set("sync_status", state.Status).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})
	if state.Cursor != nil {
		q = q.Set("last_sync_cursor", *state.Cursor)
	}
	if state.LastSyncAt != nil {
		q = q.Set("last_sync_at", *state.LastSyncAt)
	}
	if state.LastError != nil {
		q = q.Set("last_error", *state.LastError)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update sync state: %w", err)
	}
	return rowsAffectedOrNotFound(res, "email account", id)
}

func (r *emailAccountRepository) UpdateTokens(ctx context.Context, id, encryptedAccess, encryptedRefresh string, expiresAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE email_accounts
		SET encrypted_access_token = $1, encrypted_refresh_token = $2, token_expires_at = $3, updated_at = $4
		WHERE id = $5`,
		encryptedAccess, encryptedRefresh, expiresAt, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update tokens: %w", err)
	}
	return rowsAffectedOrNotFound(res, "email account", id)
}

func (r *emailAccountRepository) Delete(ctx context.Context, organizationID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM email_accounts WHERE organization_id = $1 AND id = $2`, organizationID, id)
	if err != nil {
		return fmt.Errorf("failed to delete email account: %w", err)
	}
	return rowsAffectedOrNotFound(res, "email account", id)
}

func (r *emailAccountRepository) Count(ctx context.Context, organizationID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_accounts WHERE organization_id = $1`, organizationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count email accounts: %w", err)
	}
	return n, nil
}
