package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/mq"
	"github.com/salesflow/crm/pkg/tracing"
)

type SubscriptionService struct {
	repo        domain.SubscriptionRepository
	orgRepo     domain.OrganizationRepository
	contacts    domain.ContactRepository
	accounts    domain.EmailAccountRepository
	authService domain.AuthService
	publisher   domain.EventPublisher
	logger      logger.Logger
	now         func() time.Time
}

type SubscriptionServiceConfig struct {
	Repository             domain.SubscriptionRepository
	OrganizationRepository domain.OrganizationRepository
	ContactRepository      domain.ContactRepository
	EmailAccountRepository domain.EmailAccountRepository
	AuthService            domain.AuthService
	Publisher              domain.EventPublisher
	Logger                 logger.Logger
}

func NewSubscriptionService(cfg SubscriptionServiceConfig) *SubscriptionService {
	return &SubscriptionService{
		repo:        cfg.Repository,
		orgRepo:     cfg.OrganizationRepository,
		contacts:    cfg.ContactRepository,
		accounts:    cfg.EmailAccountRepository,
		authService: cfg.AuthService,
		publisher:   cfg.Publisher,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

var _ domain.SubscriptionService = (*SubscriptionService)(nil)

func (s *SubscriptionService) Plans() []domain.Plan {
	return domain.Plans()
}

func (s *SubscriptionService) Get(ctx context.Context, organizationID string) (*domain.Subscription, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.current(ctx, organizationID)
}

// current returns the stored subscription or an implicit free one.
func (s *SubscriptionService) current(ctx context.Context, organizationID string) (*domain.Subscription, error) {
	sub, err := s.repo.GetByOrganization(ctx, organizationID)
	if domain.IsNotFound(err) {
		start := domain.MonthStart(s.now())
		return &domain.Subscription{
			OrganizationID:     organizationID,
			Plan:               domain.PlanFree,
			Status:             domain.SubscriptionActive,
			CurrentPeriodStart: start,
			CurrentPeriodEnd:   start.AddDate(0, 1, 0),
		}, nil
	}
	return sub, err
}

func (s *SubscriptionService) StartFree(ctx context.Context, organizationID string) (*domain.Subscription, error) {
	now := s.now().UTC()
	sub := &domain.Subscription{
		ID:                 uuid.NewString(),
		OrganizationID:     organizationID,
		Plan:               domain.PlanFree,
		Status:             domain.SubscriptionActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ChangePlan is owner only. Downgrades are refused while current usage exceeds the target plan.
func (s *SubscriptionService) ChangePlan(ctx context.Context, organizationID string, req domain.ChangePlanRequest) (*domain.Subscription, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "SubscriptionService", "ChangePlan")
	defer span.End()

	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireRole(ctx, domain.RoleOwner); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	plan, _ := domain.GetPlan(req.Plan)
	usage, err := s.countUsage(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if exceeds(plan.Limits.MaxContacts, usage.Contacts) ||
		exceeds(plan.Limits.MaxEmailAccounts, usage.EmailAccounts) ||
		exceeds(plan.Limits.MaxMembers, usage.Members) {
		return nil, domain.NewConflictError("current usage exceeds the limits of the %s plan", plan.Name)
	}

	sub, err := s.current(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	sub.Plan = plan.ID
	sub.Status = domain.SubscriptionActive
	sub.CancelAtPeriodEnd = false
	sub.UpdatedAt = now

	if sub.ID == "" {
		sub.ID = uuid.NewString()
		sub.CreatedAt = now
		err = s.repo.Create(ctx, sub)
	} else {
		err = s.repo.Update(ctx, sub)
	}
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to change plan")
		return nil, err
	}

	s.publishChanged(ctx, sub)
	s.logger.WithField("organization_id", organizationID).WithField("plan", string(plan.ID)).Info("Plan changed")
	return sub, nil
}

func exceeds(limit, used int) bool {
	return limit != domain.Unlimited && used > limit
}

func (s *SubscriptionService) Cancel(ctx context.Context, organizationID string) (*domain.Subscription, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireRole(ctx, domain.RoleOwner); err != nil {
		return nil, err
	}
	sub, err := s.repo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if sub.Status == domain.SubscriptionCanceled {
		return nil, domain.NewConflictError("subscription is already canceled")
	}
	sub.CancelAtPeriodEnd = true
	sub.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, sub)
	return sub, nil
}

func (s *SubscriptionService) Usage(ctx context.Context, organizationID string) (*domain.Usage, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.countUsage(ctx, organizationID)
}

func (s *SubscriptionService) countUsage(ctx context.Context, organizationID string) (*domain.Usage, error) {
	sub, err := s.current(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	plan, _ := domain.GetPlan(sub.EffectivePlan())

	usage := &domain.Usage{Plan: plan}
	if usage.Contacts, err = s.contacts.Count(ctx, organizationID); err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	if usage.EmailAccounts, err = s.accounts.Count(ctx, organizationID); err != nil {
		return nil, fmt.Errorf("failed to count email accounts: %w", err)
	}
	if usage.Members, err = s.orgRepo.CountMembers(ctx, organizationID); err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	counter, err := s.repo.GetUsage(ctx, organizationID, domain.MonthStart(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to read usage counter: %w", err)
	}
	usage.AITokens = counter.AITokens
	return usage, nil
}

func (s *SubscriptionService) CheckLimit(ctx context.Context, organizationID string, resource domain.LimitedResource, adding int64) error {
	sub, err := s.current(ctx, organizationID)
	if err != nil {
		return err
	}
	plan, _ := domain.GetPlan(sub.EffectivePlan())

	var limit, used int64
	switch resource {
	case domain.ResourceContacts:
		limit = int64(plan.Limits.MaxContacts)
		n, err := s.contacts.Count(ctx, organizationID)
		if err != nil {
			return err
		}
		used = int64(n)
	case domain.ResourceEmailAccounts:
		limit = int64(plan.Limits.MaxEmailAccounts)
		n, err := s.accounts.Count(ctx, organizationID)
		if err != nil {
			return err
		}
		used = int64(n)
	case domain.ResourceMembers:
		limit = int64(plan.Limits.MaxMembers)
		n, err := s.orgRepo.CountMembers(ctx, organizationID)
		if err != nil {
			return err
		}
		used = int64(n)
	case domain.ResourceAITokens:
		limit = plan.Limits.MonthlyAITokens
		counter, err := s.repo.GetUsage(ctx, organizationID, domain.MonthStart(s.now()))
		if err != nil {
			return err
		}
		used = counter.AITokens
	default:
		return fmt.Errorf("unknown resource %q", resource)
	}

	if limit == domain.Unlimited {
		return nil
	}
	if used+adding > limit {
		s.logger.WithFields(map[string]interface{}{
			"organization_id": organizationID,
			"resource":        string(resource),
			"limit":           limit,
			"used":            used,
		}).Info("Plan limit reached")
		return domain.NewPlanLimitError(string(resource), int(limit))
	}
	return nil
}

func (s *SubscriptionService) RecordAITokens(ctx context.Context, organizationID string, tokens int64) error {
	if tokens <= 0 {
		return nil
	}
	return s.repo.AddAITokens(ctx, organizationID, domain.MonthStart(s.now()), tokens)
}

// HandleWebhook applies a signature-verified billing event.
func (s *SubscriptionService) HandleWebhook(ctx context.Context, event domain.BillingEvent) error {
	ctx, span := tracing.StartServiceSpan(ctx, "SubscriptionService", "HandleWebhook")
	defer span.End()
	tracing.AddAttribute(ctx, "billing.event", event.Type)

	d := event.Data
	if d.OrganizationID == "" {
		return domain.NewValidationError("organization_id is required")
	}
	if _, err := s.orgRepo.GetByID(ctx, d.OrganizationID); err != nil {
		return err
	}

	sub, err := s.current(ctx, d.OrganizationID)
	if err != nil {
		return err
	}

	switch event.Type {
	case domain.BillingEventSubscriptionUpdated:
		if d.Plan != "" {
			if _, ok := domain.GetPlan(d.Plan); !ok {
				return domain.NewValidationError("unknown plan")
			}
			sub.Plan = d.Plan
		}
		if d.Status != "" {
			sub.Status = domain.SubscriptionStatus(d.Status)
		}
		if d.CancelAtPeriodEnd != nil {
			sub.CancelAtPeriodEnd = *d.CancelAtPeriodEnd
		}
	case domain.BillingEventSubscriptionDeleted:
		sub.Status = domain.SubscriptionCanceled
		sub.CancelAtPeriodEnd = false
	case domain.BillingEventInvoicePaid:
		sub.Status = domain.SubscriptionActive
	case domain.BillingEventPaymentFailed:
		sub.Status = domain.SubscriptionPastDue
	default:
		s.logger.WithField("type", event.Type).Debug("Ignoring billing event")
		return nil
	}

	if d.CurrentPeriodStart != nil {
		sub.CurrentPeriodStart = *d.CurrentPeriodStart
	}
	if d.CurrentPeriodEnd != nil {
		sub.CurrentPeriodEnd = *d.CurrentPeriodEnd
	}
	if d.CustomerID != "" {
		sub.ProviderCustomerID = &d.CustomerID
	}
	if d.SubscriptionID != "" {
		sub.ProviderSubscriptionID = &d.SubscriptionID
	}

	now := s.now().UTC()
	sub.UpdatedAt = now
	if sub.ID == "" {
		sub.ID = uuid.NewString()
		sub.CreatedAt = now
		err = s.repo.Create(ctx, sub)
	} else {
		err = s.repo.Update(ctx, sub)
	}
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return err
	}

	s.publishChanged(ctx, sub)
	return nil
}

func (s *SubscriptionService) publishChanged(ctx context.Context, sub *domain.Subscription) {
	event := mq.NewEvent(domain.EventSubscriptionChanged, sub.OrganizationID, sub)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithField("organization_id", sub.OrganizationID).WithField("error", err.Error()).Warn("Failed to publish subscription event")
	}
}
