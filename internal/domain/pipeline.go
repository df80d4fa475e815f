package domain

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_pipeline_repository.go -package mocks github.com/salesflow/crm/internal/domain PipelineRepository,PipelineService

type Pipeline struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	IsDefault      bool      `json:"is_default"`
	Stages         []*Stage  `json:"stages"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Stage struct {
	ID          string `json:"id"`
	PipelineID  string `json:"pipeline_id"`
	Name        string `json:"name"`
	Position    int    `json:"position"`
	Probability int    `json:"probability"`
	IsWon       bool   `json:"is_won"`
	IsLost      bool   `json:"is_lost"`
}

func (s *Stage) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return NewValidationError("stage name is required")
	}
	if s.Probability < 0 || s.Probability > 100 {
		return NewValidationError("stage probability must be between 0 and 100")
	}
	if s.IsWon && s.IsLost {
		return NewValidationError("a stage cannot be both won and lost")
	}
	return nil
}

// DefaultStages seeds a pipeline created without stages.
func DefaultStages() []*Stage {
	return []*Stage{
		{Name: "Lead", Position: 0, Probability: 10},
		{Name: "Qualified", Position: 1, Probability: 25},
		{Name: "Proposal", Position: 2, Probability: 50},
		{Name: "Negotiation", Position: 3, Probability: 75},
		{Name: "Won", Position: 4, Probability: 100, IsWon: true},
		{Name: "Lost", Position: 5, Probability: 0, IsLost: true},
	}
}

func (p *Pipeline) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || len(p.Name) > 120 {
		return NewValidationError("pipeline name is required and must be at most 120 characters")
	}
	seen := map[string]bool{}
	for i, s := range p.Stages {
		if err := s.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			return NewValidationError("duplicate stage name: " + s.Name)
		}
		seen[key] = true
		s.Position = i
	}
	return nil
}

func (p *Pipeline) Stage(id string) *Stage {
	for _, s := range p.Stages {
		if s.ID == id {
			return s
		}
	}
	return nil
}

type OpportunityStatus string

const (
	OpportunityOpen OpportunityStatus = "open"
	OpportunityWon  OpportunityStatus = "won"
	OpportunityLost OpportunityStatus = "lost"
)

// StatusForStage derives the opportunity status from the stage flags.
func StatusForStage(s *Stage) OpportunityStatus {
	switch {
	case s.IsWon:
		return OpportunityWon
	case s.IsLost:
		return OpportunityLost
	}
	return OpportunityOpen
}

type Opportunity struct {
	ID                string            `json:"id"`
	OrganizationID    string            `json:"organization_id"`
	PipelineID        string            `json:"pipeline_id"`
	StageID           string            `json:"stage_id"`
	ContactID         *string           `json:"contact_id,omitempty"`
	Title             string            `json:"title"`
	Value             int64             `json:"value"` // minor units
	Currency          string            `json:"currency"`
	Probability       int               `json:"probability"`
	ExpectedCloseDate *time.Time        `json:"expected_close_date,omitempty"`
	Status            OpportunityStatus `json:"status"`
	OwnerID           *string           `json:"owner_id,omitempty"`
	Notes             string            `json:"notes"`
	MetakockaOrderID  *string           `json:"metakocka_order_id,omitempty"`
	ClosedAt          *time.Time        `json:"closed_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (o *Opportunity) Validate() error {
	o.Title = strings.TrimSpace(o.Title)
	if o.Title == "" {
		return NewValidationError("title is required")
	}
	if o.PipelineID == "" {
		return NewValidationError("pipeline_id is required")
	}
	if o.Value < 0 {
		return NewValidationError("value cannot be negative")
	}
	if o.Currency != "" && len(o.Currency) != 3 {
		return NewValidationError("currency must be an ISO 4217 code")
	}
	if o.Probability < 0 || o.Probability > 100 {
		return NewValidationError("probability must be between 0 and 100")
	}
	return nil
}

// ApplyStage moves the opportunity and keeps status, probability and ClosedAt consistent.
func (o *Opportunity) ApplyStage(s *Stage, now time.Time) {
	o.StageID = s.ID
	o.Probability = s.Probability
	o.Status = StatusForStage(s)
	if o.Status == OpportunityOpen {
		o.ClosedAt = nil
	} else if o.ClosedAt == nil {
		o.ClosedAt = &now
	}
}

type UpdateOpportunityRequest struct {
	Title             *string    `json:"title,omitempty"`
	ContactID         *string    `json:"contact_id,omitempty"`
	Value             *int64     `json:"value,omitempty"`
	Currency          *string    `json:"currency,omitempty"`
	Probability       *int       `json:"probability,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	OwnerID           *string    `json:"owner_id,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

func (r *UpdateOpportunityRequest) Apply(o *Opportunity) {
	if r.Title != nil {
		o.Title = *r.Title
	}
	if r.ContactID != nil {
		o.ContactID = r.ContactID
	}
	if r.Value != nil {
		o.Value = *r.Value
	}
	if r.Currency != nil {
		o.Currency = strings.ToUpper(*r.Currency)
	}
	if r.Probability != nil {
		o.Probability = *r.Probability
	}
	if r.ExpectedCloseDate != nil {
		o.ExpectedCloseDate = r.ExpectedCloseDate
	}
	if r.OwnerID != nil {
		o.OwnerID = r.OwnerID
	}
	if r.Notes != nil {
		o.Notes = *r.Notes
	}
}

type ListOpportunitiesRequest struct {
	OrganizationID string
	PipelineID     string
	StageID        string
	Status         OpportunityStatus
	ContactID      string
	Page
}

type ListOpportunitiesResponse struct {
	Opportunities []*Opportunity `json:"opportunities"`
	NextCursor    string         `json:"next_cursor,omitempty"`
}

type StageSummary struct {
	StageID    string `json:"stage_id"`
	StageName  string `json:"stage_name"`
	Count      int    `json:"count"`
	TotalValue int64  `json:"total_value"`
}

type PipelineSummary struct {
	PipelineID       string          `json:"pipeline_id"`
	Stages           []*StageSummary `json:"stages"`
	TotalValue       int64           `json:"total_value"`
	WeightedForecast int64           `json:"weighted_forecast"`
}

// ReorderStagesRequest lists every stage id of the pipeline in the new order.
type ReorderStagesRequest struct {
	StageIDs []string `json:"stage_ids"`
}

type PipelineRepository interface {
	// CreatePipeline inserts the pipeline and its stages in one transaction.
	CreatePipeline(ctx context.Context, p *Pipeline) error
	GetPipeline(ctx context.Context, organizationID, id string) (*Pipeline, error)
	ListPipelines(ctx context.Context, organizationID string) ([]*Pipeline, error)
	UpdatePipeline(ctx context.Context, p *Pipeline) error
	DeletePipeline(ctx context.Context, organizationID, id string) error
	UpdateStagePositions(ctx context.Context, pipelineID string, stageIDs []string) error

	CreateOpportunity(ctx context.Context, o *Opportunity) error
	GetOpportunity(ctx context.Context, organizationID, id string) (*Opportunity, error)
	ListOpportunities(ctx context.Context, req ListOpportunitiesRequest) (*ListOpportunitiesResponse, error)
	UpdateOpportunity(ctx context.Context, o *Opportunity) error
	DeleteOpportunity(ctx context.Context, organizationID, id string) error
	// StageTotals returns per-stage count and value sum plus the weighted value sum per stage.
	StageTotals(ctx context.Context, organizationID, pipelineID string) (map[string]*StageSummary, map[string]int64, error)
}

type PipelineService interface {
	CreatePipeline(ctx context.Context, organizationID string, p *Pipeline) (*Pipeline, error)
	GetPipeline(ctx context.Context, organizationID, id string) (*Pipeline, error)
	ListPipelines(ctx context.Context, organizationID string) ([]*Pipeline, error)
	UpdatePipeline(ctx context.Context, organizationID, id string, p *Pipeline) (*Pipeline, error)
	DeletePipeline(ctx context.Context, organizationID, id string) error
	ReorderStages(ctx context.Context, organizationID, id string, req ReorderStagesRequest) (*Pipeline, error)
	Summary(ctx context.Context, organizationID, id string) (*PipelineSummary, error)

	CreateOpportunity(ctx context.Context, organizationID string, o *Opportunity) (*Opportunity, error)
	GetOpportunity(ctx context.Context, organizationID, id string) (*Opportunity, error)
	ListOpportunities(ctx context.Context, req ListOpportunitiesRequest) (*ListOpportunitiesResponse, error)
	UpdateOpportunity(ctx context.Context, organizationID, id string, req UpdateOpportunityRequest) (*Opportunity, error)
	DeleteOpportunity(ctx context.Context, organizationID, id string) error
	MoveOpportunity(ctx context.Context, organizationID, id, stageID string) (*Opportunity, error)
}
