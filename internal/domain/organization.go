package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_organization_repository.go -package mocks github.com/salesflow/crm/internal/domain OrganizationRepository,OrganizationService

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

type Organization struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Slug      string               `json:"slug"`
	OwnerID   string               `json:"owner_id"`
	Settings  OrganizationSettings `json:"settings"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	DeletedAt *time.Time           `json:"deleted_at,omitempty"`
}

type OrganizationSettings struct {
	Timezone           string `json:"timezone"`
	DefaultCurrency    string `json:"default_currency"`
	FollowupAfterDays  int    `json:"followup_after_days"`
	AutoDraftFollowups bool   `json:"auto_draft_followups"`
	AutoCreateContacts bool   `json:"auto_create_contacts"`
}

func (s OrganizationSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *OrganizationSettings) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

// WithDefaults fills zero values.
func (s OrganizationSettings) WithDefaults(followupAfterDays int) OrganizationSettings {
	if s.Timezone == "" {
		s.Timezone = "UTC"
	}
	if s.DefaultCurrency == "" {
		s.DefaultCurrency = "EUR"
	}
	if s.FollowupAfterDays <= 0 {
		s.FollowupAfterDays = followupAfterDays
	}
	return s
}

func (s OrganizationSettings) Validate() error {
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return NewValidationError("invalid timezone")
		}
	}
	if s.DefaultCurrency != "" && len(s.DefaultCurrency) != 3 {
		return NewValidationError("default_currency must be an ISO 4217 code")
	}
	if s.FollowupAfterDays < 0 || s.FollowupAfterDays > 90 {
		return NewValidationError("followup_after_days must be between 0 and 90")
	}
	return nil
}

type OrganizationMember struct {
	OrganizationID string     `json:"organization_id"`
	UserID         string     `json:"user_id"`
	Role           MemberRole `json:"role"`
	Email          string     `json:"email,omitempty"`
	Name           string     `json:"name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type OrganizationWithRole struct {
	Organization
	Role MemberRole `json:"role"`
}

type Branding struct {
	OrganizationID string    `json:"organization_id"`
	LogoURL        string    `json:"logo_url"`
	PrimaryColor   string    `json:"primary_color"`
	SecondaryColor string    `json:"secondary_color"`
	AccentColor    string    `json:"accent_color"`
	FontFamily     string    `json:"font_family"`
	EmailSignature string    `json:"email_signature"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (b *Branding) Validate() error {
	if b.LogoURL != "" && !govalidator.IsURL(b.LogoURL) {
		return NewValidationError("logo_url must be a valid URL")
	}
	for name, color := range map[string]string{
		"primary_color":   b.PrimaryColor,
		"secondary_color": b.SecondaryColor,
		"accent_color":    b.AccentColor,
	} {
		if color != "" && !hexColorPattern.MatchString(color) {
			return NewValidationError(name + " must be a #RRGGBB color")
		}
	}
	if len(b.EmailSignature) > 5000 {
		return NewValidationError("email_signature is too long")
	}
	return nil
}

// DefaultBranding is served until an admin saves custom branding.
func DefaultBranding(organizationID string) *Branding {
	return &Branding{
		OrganizationID: organizationID,
		PrimaryColor:   "#1F2937",
		SecondaryColor: "#F3F4F6",
		AccentColor:    "#2563EB",
		FontFamily:     "Inter",
	}
}

type CreateOrganizationRequest struct {
	Name     string               `json:"name"`
	Slug     string               `json:"slug"`
	Settings OrganizationSettings `json:"settings"`
}

func (r *CreateOrganizationRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" || len(r.Name) > 120 {
		return NewValidationError("name is required and must be at most 120 characters")
	}
	if r.Slug == "" {
		r.Slug = Slugify(r.Name)
	}
	if !slugPattern.MatchString(r.Slug) {
		return NewValidationError("slug must be lowercase letters, digits and dashes")
	}
	return r.Settings.Validate()
}

type UpdateOrganizationRequest struct {
	Name     *string               `json:"name,omitempty"`
	Settings *OrganizationSettings `json:"settings,omitempty"`
}

func (r *UpdateOrganizationRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" || len(name) > 120 {
			return NewValidationError("name must be between 1 and 120 characters")
		}
		r.Name = &name
	}
	if r.Settings != nil {
		return r.Settings.Validate()
	}
	return nil
}

type AddMemberRequest struct {
	Email string     `json:"email"`
	Role  MemberRole `json:"role"`
}

func (r *AddMemberRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !govalidator.IsEmail(r.Email) {
		return NewValidationError("invalid email")
	}
	if r.Role == "" {
		r.Role = RoleMember
	}
	if r.Role == RoleOwner || !r.Role.IsValid() {
		return NewValidationError("role must be admin or member")
	}
	return nil
}

// Slugify lowercases and dash-joins the alphanumeric runs of s.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

type OrganizationRepository interface {
	// Create inserts the organization and its owner membership in one transaction.
	Create(ctx context.Context, org *Organization, owner *OrganizationMember) error
	GetByID(ctx context.Context, id string) (*Organization, error)
	ListForUser(ctx context.Context, userID string) ([]*OrganizationWithRole, error)
	ListActive(ctx context.Context) ([]*Organization, error)
	Update(ctx context.Context, org *Organization) error
	SoftDelete(ctx context.Context, id string) error

	GetMember(ctx context.Context, organizationID, userID string) (*OrganizationMember, error)
	ListMembers(ctx context.Context, organizationID string) ([]*OrganizationMember, error)
	AddMember(ctx context.Context, member *OrganizationMember) error
	RemoveMember(ctx context.Context, organizationID, userID string) error
	UpdateMemberRole(ctx context.Context, organizationID, userID string, role MemberRole) error
	CountMembers(ctx context.Context, organizationID string) (int, error)

	GetBranding(ctx context.Context, organizationID string) (*Branding, error)
	UpsertBranding(ctx context.Context, branding *Branding) error
}

type OrganizationService interface {
	Create(ctx context.Context, req CreateOrganizationRequest) (*Organization, error)
	ListMine(ctx context.Context) ([]*OrganizationWithRole, error)
	Get(ctx context.Context, organizationID string) (*Organization, error)
	Update(ctx context.Context, organizationID string, req UpdateOrganizationRequest) (*Organization, error)
	Delete(ctx context.Context, organizationID string) error

	ListMembers(ctx context.Context, organizationID string) ([]*OrganizationMember, error)
	AddMember(ctx context.Context, organizationID string, req AddMemberRequest) (*OrganizationMember, error)
	RemoveMember(ctx context.Context, organizationID, userID string) error
	ChangeMemberRole(ctx context.Context, organizationID, userID string, role MemberRole) error

	GetBranding(ctx context.Context, organizationID string) (*Branding, error)
	UpdateBranding(ctx context.Context, organizationID string, branding *Branding) (*Branding, error)
}
