package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/crypto"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/mailer"
	"github.com/salesflow/crm/pkg/ratelimiter"
	"github.com/salesflow/crm/pkg/tracing"
)

const (
	RateLimitSignIn     = "signin"
	RateLimitVerifyCode = "verify_code"

	magicCodeLength = 6
	magicCodeTTL    = 15 * time.Minute
)

type UserService struct {
	repo          domain.UserRepository
	orgRepo       domain.OrganizationRepository
	authService   domain.AuthService
	mailer        mailer.Mailer
	sessionExpiry time.Duration
	logger        logger.Logger
	isProduction  bool
	rateLimiter   *ratelimiter.RateLimiter
}

type UserServiceConfig struct {
	Repository             domain.UserRepository
	OrganizationRepository domain.OrganizationRepository
	AuthService            domain.AuthService
	Mailer                 mailer.Mailer
	SessionExpiry          time.Duration
	Logger                 logger.Logger
	IsProduction           bool
	RateLimiter            *ratelimiter.RateLimiter
}

func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{
		repo:          cfg.Repository,
		orgRepo:       cfg.OrganizationRepository,
		authService:   cfg.AuthService,
		mailer:        cfg.Mailer,
		sessionExpiry: cfg.SessionExpiry,
		logger:        cfg.Logger,
		isProduction:  cfg.IsProduction,
		rateLimiter:   cfg.RateLimiter,
	}
}

var _ domain.UserService = (*UserService)(nil)

// SignIn creates the user on first sign in and opens a session holding a hashed magic code.
// Outside production the plaintext code is returned instead of mailed.
func (s *UserService) SignIn(ctx context.Context, input domain.SignInInput) (string, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "UserService", "SignIn")
	defer span.End()

	if err := input.Validate(); err != nil {
		return "", err
	}
	tracing.AddAttribute(ctx, "user.email", input.Email)

	if s.rateLimiter != nil && !s.rateLimiter.Allow(RateLimitSignIn, input.Email) {
		s.logger.WithField("email", input.Email).Warn("Sign-in rate limit exceeded")
		tracing.MarkSpanError(ctx, domain.ErrRateLimited)
		return "", domain.ErrRateLimited
	}

	user, err := s.repo.GetUserByEmail(ctx, input.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user = &domain.User{
			ID:    uuid.NewString(),
			Type:  domain.UserTypeUser,
			Email: input.Email,
			Name:  strings.TrimSpace(input.Name),
		}
		if err = s.repo.CreateUser(ctx, user); err != nil {
			s.logger.WithField("email", input.Email).WithField("error", err.Error()).Error("Failed to create user")
			tracing.MarkSpanError(ctx, err)
			return "", err
		}
		s.logger.WithField("user_id", user.ID).Info("Created user on first sign in")
	} else if err != nil {
		s.logger.WithField("email", input.Email).WithField("error", err.Error()).Error("Failed to get user by email")
		tracing.MarkSpanError(ctx, err)
		return "", err
	}

	code, err := crypto.GenerateNumericCode(magicCodeLength)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return "", err
	}
	hashed, err := crypto.HashMagicCode(code)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return "", err
	}

	now := time.Now()
	codeExpires := now.Add(magicCodeTTL)
	session := &domain.Session{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		ExpiresAt:        now.Add(s.sessionExpiry),
		CreatedAt:        now,
		MagicCode:        &hashed,
		MagicCodeExpires: &codeExpires,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Error("Failed to create session")
		tracing.MarkSpanError(ctx, err)
		return "", err
	}
	tracing.AddAttribute(ctx, "session.id", session.ID)

	if !s.isProduction {
		return code, nil
	}

	if err := s.mailer.SendMagicCode(ctx, user.Email, code); err != nil {
		s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Error("Failed to send magic code")
		tracing.MarkSpanError(ctx, err)
		return "", err
	}
	return "", nil
}

func (s *UserService) VerifyCode(ctx context.Context, input domain.VerifyCodeInput) (*domain.AuthResponse, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "UserService", "VerifyCode")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	code := strings.TrimSpace(input.Code)
	if email == "" || code == "" {
		return nil, domain.NewValidationError("email and code are required")
	}

	if s.rateLimiter != nil && !s.rateLimiter.Allow(RateLimitVerifyCode, email) {
		s.logger.WithField("email", email).Warn("Verify code rate limit exceeded")
		tracing.MarkSpanError(ctx, domain.ErrRateLimited)
		return nil, domain.ErrRateLimited
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	sessions, err := s.repo.GetSessionsByUserID(ctx, user.ID)
	if err != nil {
		s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Error("Failed to get sessions for user")
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	now := time.Now()
	var matching *domain.Session
	for _, session := range sessions {
		if session.MagicCode == nil || session.MagicCodeExpires == nil {
			continue
		}
		if now.After(*session.MagicCodeExpires) {
			continue
		}
		if crypto.VerifyMagicCode(code, *session.MagicCode) {
			matching = session
			break
		}
	}
	if matching == nil {
		s.logger.WithField("user_id", user.ID).Warn("Invalid or expired magic code")
		return nil, domain.ErrUnauthorized
	}

	// a code is single use
	matching.MagicCode = nil
	matching.MagicCodeExpires = nil
	if err := s.repo.UpdateSession(ctx, matching); err != nil {
		s.logger.WithField("session_id", matching.ID).WithField("error", err.Error()).Error("Failed to update session")
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Reset(RateLimitVerifyCode, email)
	}

	token := s.authService.GenerateAuthToken(user, matching.ID, matching.ExpiresAt)
	return &domain.AuthResponse{
		Token:     token,
		User:      *user,
		ExpiresAt: matching.ExpiresAt,
	}, nil
}

func (s *UserService) GetCurrentUser(ctx context.Context) (*domain.CurrentUser, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}
	orgs, err := s.orgRepo.ListForUser(ctx, user.ID)
	if err != nil {
		s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Error("Failed to list organizations of user")
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return &domain.CurrentUser{User: user, Organizations: orgs}, nil
}

// Logout deletes every session of the user.
func (s *UserService) Logout(ctx context.Context) error {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAllSessionsByUserID(ctx, user.ID); err != nil {
		s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Error("Failed to delete sessions")
		return err
	}
	return nil
}

// HandleExternalUserCreated links a hosted-auth user to a local account by external id.
func (s *UserService) HandleExternalUserCreated(ctx context.Context, externalID, email, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if externalID == "" || email == "" {
		return nil, domain.NewValidationError("external id and email are required")
	}
	user := &domain.User{
		ID:         uuid.NewString(),
		Type:       domain.UserTypeUser,
		Email:      email,
		Name:       name,
		ExternalID: &externalID,
	}
	if err := s.repo.UpsertExternalUser(ctx, user); err != nil {
		s.logger.WithField("external_id", externalID).WithField("error", err.Error()).Error("Failed to upsert external user")
		return nil, err
	}
	s.logger.WithField("user_id", user.ID).WithField("external_id", externalID).Info("External user synchronized")
	return user, nil
}
