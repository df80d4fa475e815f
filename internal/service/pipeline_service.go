package service

import (
	"context"
	"strings"
	"time"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/mq"
	"github.com/salesflow/crm/pkg/tracing"
)

type PipelineService struct {
	repo        domain.PipelineRepository
	contacts    domain.ContactRepository
	orgRepo     domain.OrganizationRepository
	authService domain.AuthService
	publisher   domain.EventPublisher
	logger      logger.Logger
}

func NewPipelineService(
	repo domain.PipelineRepository,
	contacts domain.ContactRepository,
	orgRepo domain.OrganizationRepository,
	authService domain.AuthService,
	publisher domain.EventPublisher,
	logger logger.Logger,
) *PipelineService {
	return &PipelineService{
		repo:        repo,
		contacts:    contacts,
		orgRepo:     orgRepo,
		authService: authService,
		publisher:   publisher,
		logger:      logger,
	}
}

var _ domain.PipelineService = (*PipelineService)(nil)

// OpportunityStageChanged is the payload of opportunity.stage_changed.
type OpportunityStageChanged struct {
	OpportunityID string                   `json:"opportunity_id"`
	PipelineID    string                   `json:"pipeline_id"`
	FromStageID   string                   `json:"from_stage_id"`
	ToStageID     string                   `json:"to_stage_id"`
	Status        domain.OpportunityStatus `json:"status"`
	Value         int64                    `json:"value"`
	Currency      string                   `json:"currency"`
}

func (s *PipelineService) CreatePipeline(ctx context.Context, organizationID string, p *domain.Pipeline) (*domain.Pipeline, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}

	p.ID = ""
	p.OrganizationID = organizationID
	if len(p.Stages) == 0 {
		p.Stages = domain.DefaultStages()
	}
	for _, st := range p.Stages {
		st.ID = ""
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListPipelines(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		p.IsDefault = true
	}

	if err := s.repo.CreatePipeline(ctx, p); err != nil {
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to create pipeline")
		return nil, err
	}
	return p, nil
}

func (s *PipelineService) GetPipeline(ctx context.Context, organizationID, id string) (*domain.Pipeline, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetPipeline(ctx, organizationID, id)
}

func (s *PipelineService) ListPipelines(ctx context.Context, organizationID string) ([]*domain.Pipeline, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPipelines(ctx, organizationID)
}

// UpdatePipeline replaces name, default flag and stage set. Stages missing from the
// request are removed, which fails with a conflict while opportunities use them.
func (s *PipelineService) UpdatePipeline(ctx context.Context, organizationID, id string, p *domain.Pipeline) (*domain.Pipeline, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}

	current, err := s.repo.GetPipeline(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if len(p.Stages) == 0 {
		return nil, domain.NewValidationError("a pipeline needs at least one stage")
	}
	for _, st := range p.Stages {
		if st.ID != "" && current.Stage(st.ID) == nil {
			return nil, domain.NewValidationError("stage " + st.ID + " does not belong to this pipeline")
		}
	}

	p.ID = id
	p.OrganizationID = organizationID
	p.CreatedAt = current.CreatedAt
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePipeline(ctx, p); err != nil {
		s.logger.WithField("pipeline_id", id).WithField("error", err.Error()).Error("Failed to update pipeline")
		return nil, err
	}
	return p, nil
}

func (s *PipelineService) DeletePipeline(ctx context.Context, organizationID, id string) error {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	return s.repo.DeletePipeline(ctx, organizationID, id)
}

func (s *PipelineService) ReorderStages(ctx context.Context, organizationID, id string, req domain.ReorderStagesRequest) (*domain.Pipeline, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}

	p, err := s.repo.GetPipeline(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if len(req.StageIDs) != len(p.Stages) {
		return nil, domain.NewValidationError("stage_ids must list every stage of the pipeline exactly once")
	}
	seen := make(map[string]bool, len(req.StageIDs))
	for _, sid := range req.StageIDs {
		if seen[sid] || p.Stage(sid) == nil {
			return nil, domain.NewValidationError("stage_ids must list every stage of the pipeline exactly once")
		}
		seen[sid] = true
	}

	if err := s.repo.UpdateStagePositions(ctx, id, req.StageIDs); err != nil {
		return nil, err
	}
	return s.repo.GetPipeline(ctx, organizationID, id)
}

// Summary aggregates per-stage counts and values; the forecast weighs each opportunity by its probability.
func (s *PipelineService) Summary(ctx context.Context, organizationID, id string) (*domain.PipelineSummary, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetPipeline(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	totals, weighted, err := s.repo.StageTotals(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	summary := &domain.PipelineSummary{PipelineID: id, Stages: make([]*domain.StageSummary, 0, len(p.Stages))}
	for _, st := range p.Stages {
		row := &domain.StageSummary{StageID: st.ID, StageName: st.Name}
		if t, ok := totals[st.ID]; ok {
			row.Count = t.Count
			row.TotalValue = t.TotalValue
		}
		summary.TotalValue += row.TotalValue
		if !st.IsLost {
			summary.WeightedForecast += weighted[st.ID]
		}
		summary.Stages = append(summary.Stages, row)
	}
	return summary, nil
}

func (s *PipelineService) CreateOpportunity(ctx context.Context, organizationID string, o *domain.Opportunity) (*domain.Opportunity, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "PipelineService", "CreateOpportunity")
	defer span.End()

	ctx, user, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetPipeline(ctx, organizationID, o.PipelineID)
	if err != nil {
		return nil, err
	}
	var stage *domain.Stage
	if o.StageID == "" {
		if len(p.Stages) == 0 {
			return nil, domain.NewValidationError("pipeline has no stages")
		}
		stage = p.Stages[0]
	} else if stage = p.Stage(o.StageID); stage == nil {
		return nil, domain.NewValidationError("stage does not belong to the pipeline")
	}

	if o.ContactID != nil {
		if _, err := s.contacts.GetByID(ctx, organizationID, *o.ContactID); err != nil {
			return nil, err
		}
	}
	if o.Currency == "" {
		if org, err := s.orgRepo.GetByID(ctx, organizationID); err == nil {
			o.Currency = org.Settings.DefaultCurrency
		}
		if o.Currency == "" {
			o.Currency = "EUR"
		}
	}
	o.Currency = strings.ToUpper(o.Currency)

	explicitProbability := o.Probability
	o.ID = ""
	o.OrganizationID = organizationID
	o.ApplyStage(stage, time.Now().UTC())
	if explicitProbability > 0 && o.Status == domain.OpportunityOpen {
		o.Probability = explicitProbability
	}
	if o.OwnerID == nil {
		o.OwnerID = &user.ID
	}

	if err := s.repo.CreateOpportunity(ctx, o); err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to create opportunity")
		return nil, err
	}
	return o, nil
}

func (s *PipelineService) GetOpportunity(ctx context.Context, organizationID, id string) (*domain.Opportunity, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetOpportunity(ctx, organizationID, id)
}

func (s *PipelineService) ListOpportunities(ctx context.Context, req domain.ListOpportunitiesRequest) (*domain.ListOpportunitiesResponse, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListOpportunities(ctx, req)
}

func (s *PipelineService) UpdateOpportunity(ctx context.Context, organizationID, id string, req domain.UpdateOpportunityRequest) (*domain.Opportunity, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	o, err := s.repo.GetOpportunity(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if req.ContactID != nil && *req.ContactID != "" {
		if _, err := s.contacts.GetByID(ctx, organizationID, *req.ContactID); err != nil {
			return nil, err
		}
	}
	req.Apply(o)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateOpportunity(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *PipelineService) DeleteOpportunity(ctx context.Context, organizationID, id string) error {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	return s.repo.DeleteOpportunity(ctx, organizationID, id)
}

// MoveOpportunity changes the stage within the opportunity's pipeline; status, probability and
// ClosedAt follow the target stage.
func (s *PipelineService) MoveOpportunity(ctx context.Context, organizationID, id, stageID string) (*domain.Opportunity, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "PipelineService", "MoveOpportunity")
	defer span.End()

	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if stageID == "" {
		return nil, domain.NewValidationError("stage_id is required")
	}

	o, err := s.repo.GetOpportunity(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetPipeline(ctx, organizationID, o.PipelineID)
	if err != nil {
		return nil, err
	}
	stage := p.Stage(stageID)
	if stage == nil {
		return nil, domain.NewValidationError("stage does not belong to the opportunity's pipeline")
	}
	if o.StageID == stageID {
		return o, nil
	}

	from := o.StageID
	o.ApplyStage(stage, time.Now().UTC())
	if err := s.repo.UpdateOpportunity(ctx, o); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	event := mq.NewEvent(domain.EventOpportunityStage, organizationID, OpportunityStageChanged{
		OpportunityID: o.ID,
		PipelineID:    o.PipelineID,
		FromStageID:   from,
		ToStageID:     stageID,
		Status:        o.Status,
		Value:         o.Value,
		Currency:      o.Currency,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithField("opportunity_id", o.ID).WithField("error", err.Error()).Warn("Failed to publish stage change")
	}

	s.logger.WithFields(map[string]interface{}{
		"opportunity_id": o.ID,
		"from_stage":     from,
		"to_stage":       stageID,
		"status":         string(o.Status),
	}).Info("Opportunity moved")
	return o, nil
}
