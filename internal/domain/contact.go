package domain

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_contact_repository.go -package mocks github.com/salesflow/crm/internal/domain ContactRepository
//go:generate mockgen -destination mocks/mock_contact_service.go -package mocks github.com/salesflow/crm/internal/domain ContactService

type ContactSource string

const (
	ContactSourceManual    ContactSource = "manual"
	ContactSourceEmailSync ContactSource = "email_sync"
	ContactSourceImport    ContactSource = "import"
	ContactSourceMetakocka ContactSource = "metakocka"
)

type ContactStatus string

const (
	ContactStatusLead     ContactStatus = "lead"
	ContactStatusProspect ContactStatus = "prospect"
	ContactStatusCustomer ContactStatus = "customer"
	ContactStatusInactive ContactStatus = "inactive"
)

func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusLead, ContactStatusProspect, ContactStatusCustomer, ContactStatusInactive:
		return true
	}
	return false
}

type Contact struct {
	ID                 string        `json:"id"`
	OrganizationID     string        `json:"organization_id"`
	FirstName          string        `json:"first_name"`
	LastName           string        `json:"last_name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	Company            string        `json:"company"`
	JobTitle           string        `json:"job_title"`
	Website            string        `json:"website"`
	Tags               []string      `json:"tags"`
	Notes              string        `json:"notes"`
	Source             ContactSource `json:"source"`
	Status             ContactStatus `json:"status"`
	OwnerID            *string       `json:"owner_id,omitempty"`
	MetakockaPartnerID *string       `json:"metakocka_partner_id,omitempty"`
	LastContactedAt    *time.Time    `json:"last_contacted_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Normalize trims input and applies defaults before validation.
func (c *Contact) Normalize() {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Website = strings.TrimSpace(c.Website)
	if c.Source == "" {
		c.Source = ContactSourceManual
	}
	if c.Status == "" {
		c.Status = ContactStatusLead
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
}

func (c *Contact) Validate() error {
	if c.Email == "" && c.FirstName == "" && c.LastName == "" {
		return NewValidationError("email or name is required")
	}
	if c.Email != "" && !govalidator.IsEmail(c.Email) {
		return NewValidationError("invalid email")
	}
	if c.Phone != "" && !govalidator.Matches(c.Phone, `^\+?[0-9 ()\-.]{5,20}$`) {
		return NewValidationError("invalid phone")
	}
	if c.Website != "" && !govalidator.IsURL(c.Website) {
		return NewValidationError("invalid website")
	}
	if !c.Status.IsValid() {
		return NewValidationError("invalid status")
	}
	if len(c.Tags) > 50 {
		return NewValidationError("too many tags")
	}
	return nil
}

// UpdateContactRequest only touches the fields that are present.
type UpdateContactRequest struct {
	FirstName *string        `json:"first_name,omitempty"`
	LastName  *string        `json:"last_name,omitempty"`
	Email     *string        `json:"email,omitempty"`
	Phone     *string        `json:"phone,omitempty"`
	Company   *string        `json:"company,omitempty"`
	JobTitle  *string        `json:"job_title,omitempty"`
	Website   *string        `json:"website,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Notes     *string        `json:"notes,omitempty"`
	Status    *ContactStatus `json:"status,omitempty"`
	OwnerID   *string        `json:"owner_id,omitempty"`
}

func (r *UpdateContactRequest) Apply(c *Contact) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.FirstName, r.FirstName)
	set(&c.LastName, r.LastName)
	set(&c.Email, r.Email)
	set(&c.Phone, r.Phone)
	set(&c.Company, r.Company)
	set(&c.JobTitle, r.JobTitle)
	set(&c.Website, r.Website)
	set(&c.Notes, r.Notes)
	if r.Tags != nil {
		c.Tags = r.Tags
	}
	if r.Status != nil {
		c.Status = *r.Status
	}
	if r.OwnerID != nil {
		c.OwnerID = r.OwnerID
	}
}

type ListContactsRequest struct {
	OrganizationID string
	Search         string
	Status         ContactStatus
	Tag            string
	Page
}

func (r *ListContactsRequest) FromQuery(q url.Values) error {
	r.Search = strings.TrimSpace(q.Get("search"))
	r.Status = ContactStatus(q.Get("status"))
	r.Tag = q.Get("tag")
	if r.Status != "" && !r.Status.IsValid() {
		return NewValidationError("invalid status")
	}
	return r.Page.FromQuery(q)
}

type ListContactsResponse struct {
	Contacts   []*Contact `json:"contacts"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

type ImportContactsRequest struct {
	Contacts []*Contact `json:"contacts"`
}

type ImportContactsResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	GetByID(ctx context.Context, organizationID, id string) (*Contact, error)
	GetByEmail(ctx context.Context, organizationID, email string) (*Contact, error)
	// FindByEmails returns contacts keyed by lower-cased email.
	FindByEmails(ctx context.Context, organizationID string, emails []string) (map[string]*Contact, error)
	List(ctx context.Context, req ListContactsRequest) (*ListContactsResponse, error)
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, organizationID, id string) error
	Count(ctx context.Context, organizationID string) (int, error)
	// BulkUpsert inserts or updates by email in a single transaction; returns (created, updated).
	BulkUpsert(ctx context.Context, organizationID string, contacts []*Contact) (int, int, error)
	TouchLastContacted(ctx context.Context, organizationID, id string, at time.Time) error
	SetMetakockaPartnerID(ctx context.Context, organizationID, id, partnerID string) error
}

type ContactService interface {
	List(ctx context.Context, req ListContactsRequest) (*ListContactsResponse, error)
	Create(ctx context.Context, organizationID string, contact *Contact) (*Contact, error)
	Get(ctx context.Context, organizationID, id string) (*Contact, error)
	Update(ctx context.Context, organizationID, id string, req UpdateContactRequest) (*Contact, error)
	Delete(ctx context.Context, organizationID, id string) error
	Import(ctx context.Context, organizationID string, req ImportContactsRequest) (*ImportContactsResult, error)
	ListEmails(ctx context.Context, organizationID, id string, page Page) (*ListEmailsResponse, error)
}
