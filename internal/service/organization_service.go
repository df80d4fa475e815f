package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/cache"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/mailer"
	"github.com/salesflow/crm/pkg/tracing"
)

const brandingCacheTTL = 10 * time.Minute

type OrganizationService struct {
	repo              domain.OrganizationRepository
	userRepo          domain.UserRepository
	authService       domain.AuthService
	subscriptions     domain.SubscriptionService
	mailer            mailer.Mailer
	brandingCache     *cache.TTLCache[*domain.Branding]
	followupAfterDays int
	logger            logger.Logger
}

type OrganizationServiceConfig struct {
	Repository          domain.OrganizationRepository
	UserRepository      domain.UserRepository
	AuthService         domain.AuthService
	SubscriptionService domain.SubscriptionService
	Mailer              mailer.Mailer
	BrandingCache       *cache.TTLCache[*domain.Branding]
	FollowupAfterDays   int
	Logger              logger.Logger
}

func NewOrganizationService(cfg OrganizationServiceConfig) *OrganizationService {
	return &OrganizationService{
		repo:              cfg.Repository,
		userRepo:          cfg.UserRepository,
		authService:       cfg.AuthService,
		subscriptions:     cfg.SubscriptionService,
		mailer:            cfg.Mailer,
		brandingCache:     cfg.BrandingCache,
		followupAfterDays: cfg.FollowupAfterDays,
		logger:            cfg.Logger,
	}
}

var _ domain.OrganizationService = (*OrganizationService)(nil)

// Create makes the caller owner of a new organization on the free plan.
func (s *OrganizationService) Create(ctx context.Context, req domain.CreateOrganizationRequest) (*domain.Organization, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "OrganizationService", "Create")
	defer span.End()

	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	org := &domain.Organization{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Slug:      req.Slug,
		OwnerID:   user.ID,
		Settings:  req.Settings.WithDefaults(s.followupAfterDays),
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &domain.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           domain.RoleOwner,
		CreatedAt:      now,
	}
	if err := s.repo.Create(ctx, org, owner); err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Error("Failed to create organization")
		return nil, err
	}

	if _, err := s.subscriptions.StartFree(ctx, org.ID); err != nil {
		// the organization is usable without a row; Get falls back to the free plan
		s.logger.WithField("organization_id", org.ID).WithField("error", err.Error()).Warn("Failed to start free subscription")
	}

	s.logger.WithField("organization_id", org.ID).WithField("user_id", user.ID).Info("Organization created")
	return org, nil
}

func (s *OrganizationService) ListMine(ctx context.Context) ([]*domain.OrganizationWithRole, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForUser(ctx, user.ID)
}

func (s *OrganizationService) Get(ctx context.Context, organizationID string) (*domain.Organization, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, organizationID)
}

func (s *OrganizationService) Update(ctx context.Context, organizationID string, req domain.UpdateOrganizationRequest) (*domain.Organization, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	org, err := s.repo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Settings != nil {
		org.Settings = req.Settings.WithDefaults(s.followupAfterDays)
	}
	org.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, org); err != nil {
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to update organization")
		return nil, err
	}
	return org, nil
}

// Delete soft deletes; only the owner may do it.
func (s *OrganizationService) Delete(ctx context.Context, organizationID string) error {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	if err := domain.RequireRole(ctx, domain.RoleOwner); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, organizationID); err != nil {
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to delete organization")
		return err
	}
	s.brandingCache.Delete(organizationID)
	return nil
}

func (s *OrganizationService) ListMembers(ctx context.Context, organizationID string) ([]*domain.OrganizationMember, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, organizationID)
}

// AddMember adds an existing user, or a placeholder user created from the email, and sends an invitation.
func (s *OrganizationService) AddMember(ctx context.Context, organizationID string, req domain.AddMemberRequest) (*domain.OrganizationMember, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "OrganizationService", "AddMember")
	defer span.End()

	ctx, inviter, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.subscriptions.CheckLimit(ctx, organizationID, domain.ResourceMembers, 1); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user = &domain.User{ID: uuid.NewString(), Type: domain.UserTypeUser, Email: req.Email}
		if err = s.userRepo.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create invited user: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	member := &domain.OrganizationMember{
		OrganizationID: organizationID,
		UserID:         user.ID,
		Role:           req.Role,
		Email:          user.Email,
		Name:           user.Name,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	org, err := s.repo.GetByID(ctx, organizationID)
	if err == nil {
		inviterName := inviter.Name
		if inviterName == "" {
			inviterName = inviter.Email
		}
		if err := s.mailer.SendOrganizationInvitation(ctx, user.Email, org.Name, inviterName); err != nil {
			s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Warn("Failed to send invitation email")
		}
	}
	return member, nil
}

func (s *OrganizationService) RemoveMember(ctx context.Context, organizationID, userID string) error {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	member, err := s.repo.GetMember(ctx, organizationID, userID)
	if err != nil {
		return err
	}
	if member.Role == domain.RoleOwner {
		return domain.NewConflictError("the organization owner cannot be removed")
	}
	return s.repo.RemoveMember(ctx, organizationID, userID)
}

func (s *OrganizationService) ChangeMemberRole(ctx context.Context, organizationID, userID string, role domain.MemberRole) error {
	ctx, caller, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	if err := domain.RequireRole(ctx, domain.RoleOwner); err != nil {
		return err
	}
	if !role.IsValid() || role == domain.RoleOwner {
		return domain.NewValidationError("role must be admin or member")
	}
	if caller.ID == userID {
		return domain.NewConflictError("the owner cannot change their own role")
	}
	return s.repo.UpdateMemberRole(ctx, organizationID, userID, role)
}

// GetBranding serves from the in-memory cache and falls back to default branding.
func (s *OrganizationService) GetBranding(ctx context.Context, organizationID string) (*domain.Branding, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.CachedBranding(ctx, organizationID)
}

// CachedBranding skips the membership check; background jobs use it for email signatures.
func (s *OrganizationService) CachedBranding(ctx context.Context, organizationID string) (*domain.Branding, error) {
	return s.brandingCache.GetOrSet(organizationID, brandingCacheTTL, func() (*domain.Branding, error) {
		b, err := s.repo.GetBranding(ctx, organizationID)
		if domain.IsNotFound(err) {
			return domain.DefaultBranding(organizationID), nil
		}
		return b, err
	})
}

func (s *OrganizationService) UpdateBranding(ctx context.Context, organizationID string, branding *domain.Branding) (*domain.Branding, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := branding.Validate(); err != nil {
		return nil, err
	}
	branding.OrganizationID = organizationID
	branding.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpsertBranding(ctx, branding); err != nil {
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to save branding")
		return nil, err
	}
	s.brandingCache.Delete(organizationID)
	return branding, nil
}
