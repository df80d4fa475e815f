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

type supplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) domain.SupplierRepository {
	return &supplierRepository{db: db}
}

const supplierColumns = `id, organization_id, name, website, email, phone, country, category, description, notes,
	rating, source, created_at, updated_at`

func scanSupplier(row interface{ Scan(...interface{}) error }) (*domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(&s.ID, &s.OrganizationID, &s.Name, &s.Website, &s.Email, &s.Phone, &s.Country, &s.Category,
		&s.Description, &s.Notes, &s.Rating, &s.Source, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		s.ID, s.OrganizationID, s.Name, s.Website, s.Email, s.Phone, s.Country, s.Category, s.Description,
		s.Notes, s.Rating, s.Source, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("supplier %s already exists", s.Name)
		}
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *supplierRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.Supplier, error) {
	s, err := scanSupplier(r.db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE organization_id = $1 AND id = $2`, organizationID, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("supplier", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return s, nil
}

func (r *supplierRepository) List(ctx context.Context, organizationID, category string) ([]*domain.Supplier, error) {
	q := psql.Select(supplierColumns).From("suppliers").
		Where(sq.Eq{"organization_id": organizationID}).
		OrderBy("name")
	if category != "" {
		q = q.Where(sq.Eq{"category": category})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []*domain.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *supplierRepository) Update(ctx context.Context, s *domain.Supplier) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE suppliers
		SET name = $1, website = $2, email = $3, phone = $4, country = $5, category = $6, description = $7,
			notes = $8, rating = $9, updated_at = $10
		WHERE organization_id = $11 AND id = $12`,
		s.Name, s.Website, s.Email, s.Phone, s.Country, s.Category, s.Description, s.Notes, s.Rating,
		s.UpdatedAt, s.OrganizationID, s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("supplier %s already exists", s.Name)
		}
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	return rowsAffectedOrNotFound(res, "supplier", s.ID)
}

func (r *supplierRepository) Delete(ctx context.Context, organizationID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE organization_id = $1 AND id = $2`, organizationID, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return rowsAffectedOrNotFound(res, "supplier", id)
}

const sourcingColumns = `id, organization_id, user_id, query, quantity, country, status, suggestions, error, created_at`

func scanSourcing(row interface{ Scan(...interface{}) error }) (*domain.SourcingRequest, error) {
	var s domain.SourcingRequest
	err := row.Scan(&s.ID, &s.OrganizationID, &s.UserID, &s.Query, &s.Quantity, &s.Country, &s.Status,
		&s.Suggestions, &s.Error, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepository) CreateSourcingRequest(ctx context.Context, s *domain.SourcingRequest) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sourcing_requests (`+sourcingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.OrganizationID, s.UserID, s.Query, s.Quantity, s.Country, s.Status, s.Suggestions, s.Error, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sourcing request: %w", err)
	}
	return nil
}

func (r *supplierRepository) GetSourcingRequest(ctx context.Context, organizationID, id string) (*domain.SourcingRequest, error) {
	s, err := scanSourcing(r.db.QueryRowContext(ctx,
		`SELECT `+sourcingColumns+` FROM sourcing_requests WHERE organization_id = $1 AND id = $2`, organizationID, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("sourcing request", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sourcing request: %w", err)
	}
	return s, nil
}

func (r *supplierRepository) ListSourcingRequests(ctx context.Context, organizationID string, limit int) ([]*domain.SourcingRequest, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sourcingColumns+` FROM sourcing_requests WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2`,
		organizationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sourcing requests: %w", err)
	}
	defer rows.Close()

	out := []*domain.SourcingRequest{}
	for rows.Next() {
		s, err := scanSourcing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sourcing request: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
