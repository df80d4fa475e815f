package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_supplier_repository.go -package mocks github.com/salesflow/crm/internal/domain SupplierRepository,SupplierService

type SupplierSource string

const (
	SupplierSourceManual SupplierSource = "manual"
	SupplierSourceAI     SupplierSource = "ai"
)

type Supplier struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	Name           string         `json:"name"`
	Website        string         `json:"website"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Country        string         `json:"country"`
	Category       string         `json:"category"`
	Description    string         `json:"description"`
	Notes          string         `json:"notes"`
	Rating         int            `json:"rating"`
	Source         SupplierSource `json:"source"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (s *Supplier) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	if s.Name == "" {
		return NewValidationError("name is required")
	}
	if s.Website != "" && !govalidator.IsURL(s.Website) {
		return NewValidationError("invalid website")
	}
	if s.Email != "" && !govalidator.IsEmail(s.Email) {
		return NewValidationError("invalid email")
	}
	if s.Rating < 0 || s.Rating > 5 {
		return NewValidationError("rating must be between 0 and 5")
	}
	if s.Source == "" {
		s.Source = SupplierSourceManual
	}
	return nil
}

type SupplierSuggestion struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Country string `json:"country"`
	Reason  string `json:"reason"`
}

type Suggestions []SupplierSuggestion

func (s Suggestions) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *Suggestions) Scan(value interface{}) error {
	if value == nil {
		*s = Suggestions{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

type SourcingStatus string

const (
	SourcingCompleted SourcingStatus = "completed"
	SourcingFailed    SourcingStatus = "failed"
)

type SourcingRequest struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	UserID         string         `json:"user_id"`
	Query          string         `json:"query"`
	Quantity       int            `json:"quantity"`
	Country        string         `json:"country"`
	Status         SourcingStatus `json:"status"`
	Suggestions    Suggestions    `json:"suggestions"`
	Error          string         `json:"error,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type CreateSourcingRequest struct {
	Query    string `json:"query"`
	Quantity int    `json:"quantity"`
	Country  string `json:"country"`
}

func (r *CreateSourcingRequest) Validate() error {
	r.Query = strings.TrimSpace(r.Query)
	if len(r.Query) < 3 || len(r.Query) > 2000 {
		return NewValidationError("query must be between 3 and 2000 characters")
	}
	if r.Quantity < 0 {
		return NewValidationError("quantity cannot be negative")
	}
	return nil
}

type AcceptSuggestionRequest struct {
	Index int `json:"index"`
}

type SupplierRepository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, organizationID, id string) (*Supplier, error)
	List(ctx context.Context, organizationID, category string) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, organizationID, id string) error

	CreateSourcingRequest(ctx context.Context, r *SourcingRequest) error
	GetSourcingRequest(ctx context.Context, organizationID, id string) (*SourcingRequest, error)
	ListSourcingRequests(ctx context.Context, organizationID string, limit int) ([]*SourcingRequest, error)
}

type SupplierService interface {
	Create(ctx context.Context, organizationID string, s *Supplier) (*Supplier, error)
	Get(ctx context.Context, organizationID, id string) (*Supplier, error)
	List(ctx context.Context, organizationID, category string) ([]*Supplier, error)
	Update(ctx context.Context, organizationID, id string, s *Supplier) (*Supplier, error)
	Delete(ctx context.Context, organizationID, id string) error
	Enrich(ctx context.Context, organizationID, id string) (*Supplier, error)

	Source(ctx context.Context, organizationID string, req CreateSourcingRequest) (*SourcingRequest, error)
	GetSourcing(ctx context.Context, organizationID, id string) (*SourcingRequest, error)
	ListSourcing(ctx context.Context, organizationID string) ([]*SourcingRequest, error)
	AcceptSuggestion(ctx context.Context, organizationID, requestID string, req AcceptSuggestionRequest) (*Supplier, error)
}
