package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/salesflow/crm/internal/domain"
)

type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new PostgreSQL contact repository
func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{db: db}
}

var contactColumns = []string{
	"contacts.id", "contacts.organization_id", "contacts.first_name", "contacts.last_name", "contacts.email",
	"contacts.phone", "contacts.company", "contacts.job_title", "contacts.website", "contacts.tags",
	"contacts.notes", "contacts.source", "contacts.status", "contacts.owner_id", "contacts.metakocka_partner_id",
	"contacts.last_contacted_at", "contacts.created_at", "contacts.updated_at",
}

func scanContact(row interface{ Scan(...interface{}) error }) (*domain.Contact, error) {
	var c domain.Contact
	var email, ownerID, partnerID sql.NullString
	var lastContacted sql.NullTime
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.FirstName, &c.LastName, &email,
		&c.Phone, &c.Company, &c.JobTitle, &c.Website, pq.Array(&c.Tags),
		&c.Notes, &c.Source, &c.Status, &ownerID, &partnerID,
		&lastContacted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Email = email.String
	c.OwnerID = stringPtr(ownerID)
	c.MetakockaPartnerID = stringPtr(partnerID)
	c.LastContactedAt = timePtr(lastContacted)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c, nil
}

func emailOrNull(email string) sql.NullString {
	return nullString(&email)
}

func (r *contactRepository) Create(ctx context.Context, c *domain.Contact) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	query, args, err := psql.Insert("contacts").
		Columns("id", "organization_id", "first_name", "last_name", "email", "phone", "company", "job_title",
			"website", "tags", "notes", "source", "status", "owner_id", "metakocka_partner_id",
			"last_contacted_at", "created_at", "updated_at").
		Values(c.ID, c.OrganizationID, c.FirstName, c.LastName, emailOrNull(c.Email), c.Phone, c.Company, c.JobTitle,
			c.Website, pq.Array(c.Tags), c.Notes, c.Source, c.Status, nullString(c.OwnerID), nullString(c.MetakockaPartnerID),
			c.LastContactedAt, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("contact with email %s already exists", c.Email)
		}
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (r *contactRepository) getOne(ctx context.Context, where sq.Eq, id string) (*domain.Contact, error) {
	query, args, err := psql.Select(contactColumns...).From("contacts").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	c, err := scanContact(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("contact", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

func (r *contactRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.Contact, error) {
	return r.getOne(ctx, sq.Eq{"contacts.organization_id": organizationID, "contacts.id": id}, id)
}

func (r *contactRepository) GetByEmail(ctx context.Context, organizationID, email string) (*domain.Contact, error) {
	return r.getOne(ctx, sq.Eq{"contacts.organization_id": organizationID, "contacts.email": strings.ToLower(email)}, email)
}

func (r *contactRepository) FindByEmails(ctx context.Context, organizationID string, emails []string) (map[string]*domain.Contact, error) {
	out := make(map[string]*domain.Contact)
	if len(emails) == 0 {
		return out, nil
	}
	query, args, err := psql.Select(contactColumns...).From("contacts").
		Where(sq.Eq{"contacts.organization_id": organizationID}).
		Where("contacts.email = ANY(?)", pq.Array(emails)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find contacts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		out[c.Email] = c
	}
	return out, rows.Err()
}

func (r *contactRepository) List(ctx context.Context, req domain.ListContactsRequest) (*domain.ListContactsResponse, error) {
	q := psql.Select(contactColumns...).From("contacts").
		Where(sq.Eq{"contacts.organization_id": req.OrganizationID})

	if req.Search != "" {
		like := "%" + req.Search + "%"
		q = q.Where(sq.Or{
			sq.ILike{"contacts.first_name": like},
			sq.ILike{"contacts.last_name": like},
			sq.ILike{"contacts.email": like},
			sq.ILike{"contacts.company": like},
		})
	}
	if req.Status != "" {
		q = q.Where(sq.Eq{"contacts.status": req.Status})
	}
	if req.Tag != "" {
		q = q.Where("? = ANY(contacts.tags)", req.Tag)
	}
	q, err := keysetPage(q, "contacts", req.Page)
	if err != nil {
		return nil, err
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	resp := &domain.ListContactsResponse{Contacts: contacts}
	req.Page.Normalize()
	if len(contacts) > req.Limit {
		last := contacts[req.Limit-1]
		resp.NextCursor = domain.EncodeCursor(last.CreatedAt, last.ID)
		resp.Contacts = contacts[:req.Limit]
	}
	return resp, nil
}

func (r *contactRepository) Update(ctx context.Context, c *domain.Contact) error {
	c.UpdatedAt = time.Now().UTC()
	query, args, err := psql.Update("contacts").
		SetMap(map[string]interface{}{
			"first_name": c.FirstName,
			"last_name":  c.LastName,
			"email":      emailOrNull(c.Email),
			"phone":      c.Phone,
			"company":    c.Company,
			"job_title":  c.JobTitle,
			"website":    c.Website,
			"tags":       pq.Array(c.Tags),
			"notes":      c.Notes,
			"status":     c.Status,
			"owner_id":   nullString(c.OwnerID),
			"updated_at": c.UpdatedAt,
		}).
		Where(sq.Eq{"organization_id": c.OrganizationID, "id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("contact with email %s already exists", c.Email)
		}
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return rowsAffectedOrNotFound(res, "contact", c.ID)
}

func (r *contactRepository) Delete(ctx context.Context, organizationID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE organization_id = $1 AND id = $2`, organizationID, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return rowsAffectedOrNotFound(res, "contact", id)
}

func (r *contactRepository) Count(ctx context.Context, organizationID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE organization_id = $1`, organizationID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return n, nil
}

// BulkUpsert relies on xmax = 0 to tell inserted rows from updated ones.
func (r *contactRepository) BulkUpsert(ctx context.Context, organizationID string, contacts []*domain.Contact) (int, int, error) {
	created, updated := 0, 0
	err := withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO contacts (id, organization_id, first_name, last_name, email, phone, company, job_title,
				website, tags, notes, source, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
			ON CONFLICT (organization_id, email) DO UPDATE SET
				first_name = COALESCE(NULLIF(EXCLUDED.first_name, ''), contacts.first_name),
				last_name = COALESCE(NULLIF(EXCLUDED.last_name, ''), contacts.last_name),
				phone = COALESCE(NULLIF(EXCLUDED.phone, ''), contacts.phone),
				company = COALESCE(NULLIF(EXCLUDED.company, ''), contacts.company),
				job_title = COALESCE(NULLIF(EXCLUDED.job_title, ''), contacts.job_title),
				website = COALESCE(NULLIF(EXCLUDED.website, ''), contacts.website),
				updated_at = EXCLUDED.updated_at
			RETURNING (xmax = 0) AS inserted`)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for _, c := range contacts {
			if c.ID == "" {
				c.ID = uuid.New().String()
			}
			var inserted bool
			err := stmt.QueryRowContext(ctx,
				c.ID, organizationID, c.FirstName, c.LastName, emailOrNull(c.Email), c.Phone, c.Company, c.JobTitle,
				c.Website, pq.Array(c.Tags), c.Notes, c.Source, c.Status, now,
			).Scan(&inserted)
			if err != nil {
				return fmt.Errorf("failed to upsert contact %s: %w", c.Email, err)
			}
			if inserted {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

func (r *contactRepository) TouchLastContacted(ctx context.Context, organizationID, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET last_contacted_at = $1
		WHERE organization_id = $2 AND id = $3 AND (last_contacted_at IS NULL OR last_contacted_at < $1)`,
		at, organizationID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to touch contact: %w", err)
	}
	return nil
}

func (r *contactRepository) SetMetakockaPartnerID(ctx context.Context, organizationID, id, partnerID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contacts SET metakocka_partner_id = $1, updated_at = $2 WHERE organization_id = $3 AND id = $4`,
		partnerID, time.Now().UTC(), organizationID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to store partner id: %w", err)
	}
	return rowsAffectedOrNotFound(res, "contact", id)
}
