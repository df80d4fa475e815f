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

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) domain.OrganizationRepository {
	return &organizationRepository{db: db}
}

const organizationColumns = "o.id, o.name, o.slug, o.owner_id, o.settings, o.created_at, o.updated_at, o.deleted_at"

func scanOrganization(row interface{ Scan(...interface{}) error }, extra ...interface{}) (*domain.Organization, error) {
	var org domain.Organization
	var deletedAt sql.NullTime
	dest := append([]interface{}{&org.ID, &org.Name, &org.Slug, &org.OwnerID, &org.Settings, &org.CreatedAt, &org.UpdatedAt, &deletedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	org.DeletedAt = timePtr(deletedAt)
	return &org, nil
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization, owner *domain.OrganizationMember) error {
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	org.CreatedAt, org.UpdatedAt = now, now
	owner.OrganizationID = org.ID
	owner.Role = domain.RoleOwner
	owner.CreatedAt = now

	return withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO organizations (id, name, slug, owner_id, settings, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			org.ID, org.Name, org.Slug, org.OwnerID, org.Settings, org.CreatedAt, org.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.NewConflictError("organization slug %s is already taken", org.Slug)
			}
			return fmt.Errorf("failed to create organization: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO organization_members (organization_id, user_id, role, created_at)
			VALUES ($1, $2, $3, $4)`,
			owner.OrganizationID, owner.UserID, owner.Role, owner.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to add organization owner: %w", err)
		}
		return nil
	})
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o WHERE o.id = $1 AND o.deleted_at IS NULL`
	org, err := scanOrganization(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("organization", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

func (r *organizationRepository) ListForUser(ctx context.Context, userID string) ([]*domain.OrganizationWithRole, error) {
	query := `
		SELECT ` + organizationColumns + `, m.role
		FROM organizations o
		JOIN organization_members m ON m.organization_id = o.id
		WHERE m.user_id = $1 AND o.deleted_at IS NULL
		ORDER BY o.name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var out []*domain.OrganizationWithRole
	for rows.Next() {
		var role domain.MemberRole
		org, err := scanOrganization(rows, &role)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		out = append(out, &domain.OrganizationWithRole{Organization: *org, Role: role})
	}
	return out, rows.Err()
}

func (r *organizationRepository) ListActive(ctx context.Context) ([]*domain.Organization, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+organizationColumns+` FROM organizations o WHERE o.deleted_at IS NULL ORDER BY o.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		out = append(out, org)
	}
	return out, rows.Err()
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	org.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE organizations SET name = $1, settings = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL`,
		org.Name, org.Settings, org.UpdatedAt, org.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	return rowsAffectedOrNotFound(res, "organization", org.ID)
}

func (r *organizationRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE organizations SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return rowsAffectedOrNotFound(res, "organization", id)
}

func (r *organizationRepository) memberQuery() sq.SelectBuilder {
	return psql.Select("m.organization_id", "m.user_id", "m.role", "u.email", "u.name", "m.created_at").
		From("organization_members m").
		Join("users u ON u.id = m.user_id").
		Join("organizations o ON o.id = m.organization_id AND o.deleted_at IS NULL")
}

func scanMember(row interface{ Scan(...interface{}) error }) (*domain.OrganizationMember, error) {
	var m domain.OrganizationMember
	if err := row.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.Email, &m.Name, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *organizationRepository) GetMember(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error) {
	query, args, err := r.memberQuery().
		Where(sq.Eq{"m.organization_id": organizationID, "m.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	m, err := scanMember(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("organization member", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

func (r *organizationRepository) ListMembers(ctx context.Context, organizationID string) ([]*domain.OrganizationMember, error) {
	query, args, err := r.memberQuery().
		Where(sq.Eq{"m.organization_id": organizationID}).
		OrderBy("m.created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var out []*domain.OrganizationMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *organizationRepository) AddMember(ctx context.Context, member *domain.OrganizationMember) error {
	member.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organization_members (organization_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)`,
		member.OrganizationID, member.UserID, member.Role, member.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("user is already a member of this organization")
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (r *organizationRepository) RemoveMember(ctx context.Context, organizationID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM organization_members WHERE organization_id = $1 AND user_id = $2`,
		organizationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return rowsAffectedOrNotFound(res, "organization member", userID)
}

func (r *organizationRepository) UpdateMemberRole(ctx context.Context, organizationID, userID string, role domain.MemberRole) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE organization_members SET role = $1 WHERE organization_id = $2 AND user_id = $3`,
		role, organizationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return rowsAffectedOrNotFound(res, "organization member", userID)
}

func (r *organizationRepository) CountMembers(ctx context.Context, organizationID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organization_members WHERE organization_id = $1`, organizationID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return n, nil
}

func (r *organizationRepository) GetBranding(ctx context.Context, organizationID string) (*domain.Branding, error) {
	var b domain.Branding
	err := r.db.QueryRowContext(ctx, `
		SELECT organization_id, logo_url, primary_color, secondary_color, accent_color, font_family, email_signature, updated_at
		FROM organization_branding WHERE organization_id = $1`, organizationID,
	).Scan(&b.OrganizationID, &b.LogoURL, &b.PrimaryColor, &b.SecondaryColor, &b.AccentColor, &b.FontFamily, &b.EmailSignature, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("branding", organizationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branding: %w", err)
	}
	return &b, nil
}

func (r *organizationRepository) UpsertBranding(ctx context.Context, b *domain.Branding) error {
	b.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organization_branding
			(organization_id, logo_url, primary_color, secondary_color, accent_color, font_family, email_signature, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (organization_id) DO UPDATE SET
			logo_url = EXCLUDED.logo_url,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			accent_color = EXCLUDED.accent_color,
			font_family = EXCLUDED.font_family,
			email_signature = EXCLUDED.email_signature,
			updated_at = EXCLUDED.updated_at`,
		b.OrganizationID, b.LogoURL, b.PrimaryColor, b.SecondaryColor, b.AccentColor, b.FontFamily, b.EmailSignature, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save branding: %w", err)
	}
	return nil
}
