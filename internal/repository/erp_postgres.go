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

type erpRepository struct {
	db *sql.DB
}

func NewERPRepository(db *sql.DB) domain.ERPRepository {
	return &erpRepository{db: db}
}

func (r *erpRepository) GetCredentials(ctx context.Context, organizationID string) (*domain.MetakockaCredentials, error) {
	var c domain.MetakockaCredentials
	var lastSync sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT organization_id, company_id, encrypted_secret_key, enabled, last_sync_at, created_at, updated_at
		FROM metakocka_credentials WHERE organization_id = $1`, organizationID,
	).Scan(&c.OrganizationID, &c.CompanyID, &c.EncryptedSecretKey, &c.Enabled, &lastSync, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("metakocka credentials", organizationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metakocka credentials: %w", err)
	}
	c.LastSyncAt = timePtr(lastSync)
	return &c, nil
}

func (r *erpRepository) SaveCredentials(ctx context.Context, c *domain.MetakockaCredentials) error {
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO metakocka_credentials (organization_id, company_id, encrypted_secret_key, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (organization_id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			encrypted_secret_key = EXCLUDED.encrypted_secret_key,
			enabled = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`,
		c.OrganizationID, c.CompanyID, c.EncryptedSecretKey, c.Enabled, now,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save metakocka credentials: %w", err)
	}
	return nil
}

func (r *erpRepository) DeleteCredentials(ctx context.Context, organizationID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM metakocka_credentials WHERE organization_id = $1`, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete metakocka credentials: %w", err)
	}
	return rowsAffectedOrNotFound(res, "metakocka credentials", organizationID)
}

func (r *erpRepository) TouchLastSync(ctx context.Context, organizationID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE metakocka_credentials SET last_sync_at = $1 WHERE organization_id = $2`, at, organizationID)
	if err != nil {
		return fmt.Errorf("failed to update last sync: %w", err)
	}
	return nil
}

// UpsertProducts mirrors the ERP catalogue keyed by product code.
func (r *erpRepository) UpsertProducts(ctx context.Context, organizationID string, products []*domain.ERPProduct) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	n := 0
	err := withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO erp_products (id, organization_id, external_id, code, name, unit, price, stock, synced_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (organization_id, code) DO UPDATE SET
				external_id = EXCLUDED.external_id,
				name = EXCLUDED.name,
				unit = EXCLUDED.unit,
				price = EXCLUDED.price,
				stock = EXCLUDED.stock,
				synced_at = EXCLUDED.synced_at`)
		if err != nil {
			return fmt.Errorf("failed to prepare product upsert: %w", err)
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for _, p := range products {
			if p.ID == "" {
				p.ID = uuid.New().String()
			}
			p.OrganizationID = organizationID
			p.SyncedAt = now
			if _, err := stmt.ExecContext(ctx, p.ID, organizationID, p.ExternalID, p.Code, p.Name, p.Unit,
				p.Price, p.Stock, p.SyncedAt); err != nil {
				return fmt.Errorf("failed to upsert product %s: %w", p.Code, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *erpRepository) ListProducts(ctx context.Context, organizationID, search string, limit int) ([]*domain.ERPProduct, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := psql.Select("id", "organization_id", "external_id", "code", "name", "unit", "price", "stock", "synced_at").
		From("erp_products").
		Where(sq.Eq{"organization_id": organizationID}).
		OrderBy("name").
		Limit(uint64(limit))
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"code": pattern}})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.ERPProduct{}
	for rows.Next() {
		var p domain.ERPProduct
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.ExternalID, &p.Code, &p.Name, &p.Unit, &p.Price, &p.Stock, &p.SyncedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
