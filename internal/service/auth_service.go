package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/golang-jwt/jwt/v5"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

// TokenClaims identifies the caller of a verified bearer token. Exactly one of
// SessionID (first-party PASETO token) or ExternalID (Supabase JWT) is set.
type TokenClaims struct {
	UserID     string
	SessionID  string
	ExternalID string
	Email      string
}

type AuthService struct {
	repo       domain.UserRepository
	orgRepo    domain.OrganizationRepository
	logger     logger.Logger
	privateKey paseto.V4AsymmetricSecretKey
	publicKey  paseto.V4AsymmetricPublicKey
	jwtSecret  []byte
}

type AuthServiceConfig struct {
	Repository             domain.UserRepository
	OrganizationRepository domain.OrganizationRepository
	PrivateKey             []byte
	PublicKey              []byte
	SupabaseJWTSecret      string
	Logger                 logger.Logger
}

func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	privateKey, err := paseto.NewV4AsymmetricSecretKeyFromBytes(cfg.PrivateKey)
	if err != nil {
		cfg.Logger.WithField("error", err.Error()).Error("Error creating PASETO private key")
		return nil, err
	}

	publicKey, err := paseto.NewV4AsymmetricPublicKeyFromBytes(cfg.PublicKey)
	if err != nil {
		cfg.Logger.WithField("error", err.Error()).Error("Error creating PASETO public key")
		return nil, err
	}

	return &AuthService{
		repo:       cfg.Repository,
		orgRepo:    cfg.OrganizationRepository,
		logger:     cfg.Logger,
		privateKey: privateKey,
		publicKey:  publicKey,
		jwtSecret:  []byte(cfg.SupabaseJWTSecret),
	}, nil
}

var _ domain.AuthService = (*AuthService)(nil)

// VerifyToken checks a bearer token. PASETO v4 public tokens are first-party sessions,
// anything else is treated as a Supabase HS256 access token.
func (s *AuthService) VerifyToken(token string) (*TokenClaims, error) {
	if strings.HasPrefix(token, "v4.public.") {
		return s.verifyPaseto(token)
	}
	return s.verifySupabaseJWT(token)
}

func (s *AuthService) verifyPaseto(token string) (*TokenClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.NotExpired())

	verified, err := parser.ParseV4Public(s.publicKey, token, nil)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	userID, err := verified.GetString("user_id")
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	sessionID, err := verified.GetString("session_id")
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	email, _ := verified.GetString("email")
	return &TokenClaims{UserID: userID, SessionID: sessionID, Email: email}, nil
}

func (s *AuthService) verifySupabaseJWT(token string) (*TokenClaims, error) {
	if len(s.jwtSecret) == 0 {
		return nil, domain.ErrUnauthorized
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	return &TokenClaims{ExternalID: sub, Email: strings.ToLower(email)}, nil
}

// ContextWithClaims stores the token identity for AuthenticateUserFromContext.
func ContextWithClaims(ctx context.Context, c *TokenClaims) context.Context {
	ctx = context.WithValue(ctx, domain.UserTypeKey, string(domain.UserTypeUser))
	if c.ExternalID != "" {
		ctx = context.WithValue(ctx, domain.ExternalUserIDKey, c.ExternalID)
		return context.WithValue(ctx, externalEmailKey, c.Email)
	}
	ctx = context.WithValue(ctx, domain.UserIDKey, c.UserID)
	return context.WithValue(ctx, domain.SessionIDKey, c.SessionID)
}

type authContextKey string

const externalEmailKey authContextKey = "external_email"

func (s *AuthService) AuthenticateUserFromContext(ctx context.Context) (*domain.User, error) {
	if externalID, ok := ctx.Value(domain.ExternalUserIDKey).(string); ok && externalID != "" {
		return s.resolveExternalUser(ctx, externalID)
	}

	userID, ok := ctx.Value(domain.UserIDKey).(string)
	if !ok || userID == "" {
		return nil, domain.ErrUnauthorized
	}
	sessionID, ok := ctx.Value(domain.SessionIDKey).(string)
	if !ok || sessionID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.VerifyUserSession(ctx, userID, sessionID)
}

// resolveExternalUser maps a Supabase subject to a local user, provisioning it on first sight.
func (s *AuthService) resolveExternalUser(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := s.repo.GetUserByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.WithField("external_id", externalID).WithField("error", err.Error()).Error("Failed to look up external user")
		return nil, err
	}

	email, _ := ctx.Value(externalEmailKey).(string)
	if email == "" {
		return nil, domain.ErrUnauthorized
	}
	user = &domain.User{Type: domain.UserTypeUser, Email: email, ExternalID: &externalID}
	if err := s.repo.UpsertExternalUser(ctx, user); err != nil {
		s.logger.WithField("external_id", externalID).WithField("error", err.Error()).Error("Failed to provision external user")
		return nil, err
	}
	return user, nil
}

// AuthenticateUserForOrganization verifies membership and returns a context carrying the
// organization id, the user id and the member role.
func (s *AuthService) AuthenticateUserForOrganization(ctx context.Context, organizationID string) (context.Context, *domain.User, *domain.OrganizationMember, error) {
	if organizationID == "" {
		return ctx, nil, nil, domain.NewValidationError("organization id is required")
	}

	user, err := s.AuthenticateUserFromContext(ctx)
	if err != nil {
		return ctx, nil, nil, err
	}

	member, err := s.orgRepo.GetMember(ctx, organizationID, user.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			s.logger.WithField("user_id", user.ID).WithField("organization_id", organizationID).Warn("User is not a member of the organization")
			return ctx, nil, nil, domain.NewPermissionError("not a member of this organization")
		}
		return ctx, nil, nil, fmt.Errorf("failed to check membership: %w", err)
	}

	ctx = context.WithValue(ctx, domain.UserIDKey, user.ID)
	ctx = context.WithValue(ctx, domain.OrganizationIDKey, organizationID)
	ctx = context.WithValue(ctx, domain.MemberRoleKey, member.Role)
	return ctx, user, member, nil
}

func (s *AuthService) VerifyUserSession(ctx context.Context, userID, sessionID string) (*domain.User, error) {
	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			s.logger.WithField("user_id", userID).WithField("session_id", sessionID).Warn("Session not found")
			return nil, domain.ErrSessionExpired
		}
		s.logger.WithField("session_id", sessionID).WithField("error", err.Error()).Error("Failed to query session")
		return nil, err
	}
	if session.UserID != userID {
		s.logger.WithField("user_id", userID).WithField("session_id", sessionID).Warn("Session does not belong to user")
		return nil, domain.ErrUnauthorized
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		s.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to query user")
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GenerateAuthToken(user *domain.User, sessionID string, expiresAt time.Time) string {
	token := paseto.NewToken()
	token.SetIssuedAt(time.Now())
	token.SetNotBefore(time.Now())
	token.SetExpiration(expiresAt)
	token.SetString("user_id", user.ID)
	token.SetString("type", string(domain.UserTypeUser))
	token.SetString("session_id", sessionID)
	token.SetString("email", user.Email)

	return token.V4Sign(s.privateKey, nil)
}
