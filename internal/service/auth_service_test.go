package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/testkeys"
)

const testJWTSecret = "supabase-test-secret"

func setupAuthTest(t *testing.T) (*mocks.MockUserRepository, *mocks.MockOrganizationRepository, *AuthService) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	orgRepo := mocks.NewMockOrganizationRepository(ctrl)

	privateKey, publicKey, err := testkeys.GetTestKeysBytes()
	require.NoError(t, err)

	svc, err := NewAuthService(AuthServiceConfig{
		Repository:             userRepo,
		OrganizationRepository: orgRepo,
		PrivateKey:             privateKey,
		PublicKey:              publicKey,
		SupabaseJWTSecret:      testJWTSecret,
		Logger:                 logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return userRepo, orgRepo, svc
}

func sessionContext(userID, sessionID string) context.Context {
	return ContextWithClaims(context.Background(), &TokenClaims{UserID: userID, SessionID: sessionID})
}

func TestNewAuthService_InvalidKeys(t *testing.T) {
	_, err := NewAuthService(AuthServiceConfig{
		PrivateKey: []byte("short"),
		PublicKey:  []byte("short"),
		Logger:     logger.NewTestLogger(t),
	})
	assert.Error(t, err)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	_, _, svc := setupAuthTest(t)
	user := &domain.User{ID: "user-1", Email: "ana@example.com"}

	token := svc.GenerateAuthToken(user, "session-1", time.Now().Add(time.Hour))
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Empty(t, claims.ExternalID)

	t.Run("expired token", func(t *testing.T) {
		expired := svc.GenerateAuthToken(user, "session-1", time.Now().Add(-time.Minute))
		_, err := svc.VerifyToken(expired)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("v4.public.not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthService_VerifySupabaseJWT(t *testing.T) {
	_, _, svc := setupAuthTest(t)

	sign := func(secret string, claims jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}

	t.Run("valid", func(t *testing.T) {
		tok := sign(testJWTSecret, jwt.MapClaims{
			"sub":   "ext-1",
			"email": "Ana@Example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		claims, err := svc.VerifyToken(tok)
		require.NoError(t, err)
		assert.Equal(t, "ext-1", claims.ExternalID)
		assert.Equal(t, "ana@example.com", claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := sign("other", jwt.MapClaims{"sub": "ext-1", "exp": time.Now().Add(time.Hour).Unix()})
		_, err := svc.VerifyToken(tok)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("missing exp", func(t *testing.T) {
		tok := sign(testJWTSecret, jwt.MapClaims{"sub": "ext-1"})
		_, err := svc.VerifyToken(tok)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthService_AuthenticateUserFromContext(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		userRepo, _, svc := setupAuthTest(t)
		ctx := sessionContext("user-1", "session-1")

		userRepo.EXPECT().GetSessionByID(ctx, "session-1").Return(&domain.Session{
			ID: "session-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		userRepo.EXPECT().GetUserByID(ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)

		user, err := svc.AuthenticateUserFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("expired session", func(t *testing.T) {
		userRepo, _, svc := setupAuthTest(t)
		ctx := sessionContext("user-1", "session-1")

		userRepo.EXPECT().GetSessionByID(ctx, "session-1").Return(&domain.Session{
			ID: "session-1", UserID: "user-1", ExpiresAt: time.Now().Add(-time.Hour),
		}, nil)

		_, err := svc.AuthenticateUserFromContext(ctx)
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})

	t.Run("session of another user", func(t *testing.T) {
		userRepo, _, svc := setupAuthTest(t)
		ctx := sessionContext("user-1", "session-1")

		userRepo.EXPECT().GetSessionByID(ctx, "session-1").Return(&domain.Session{
			ID: "session-1", UserID: "user-2", ExpiresAt: time.Now().Add(time.Hour),
		}, nil)

		_, err := svc.AuthenticateUserFromContext(ctx)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("no identity", func(t *testing.T) {
		_, _, svc := setupAuthTest(t)
		_, err := svc.AuthenticateUserFromContext(context.Background())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("external user provisioned on first sight", func(t *testing.T) {
		userRepo, _, svc := setupAuthTest(t)
		ctx := ContextWithClaims(context.Background(), &TokenClaims{ExternalID: "ext-1", Email: "ana@example.com"})

		userRepo.EXPECT().GetUserByExternalID(ctx, "ext-1").Return(nil, domain.ErrUserNotFound)
		userRepo.EXPECT().UpsertExternalUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
			assert.Equal(t, "ana@example.com", u.Email)
			require.NotNil(t, u.ExternalID)
			assert.Equal(t, "ext-1", *u.ExternalID)
			u.ID = "user-9"
			return nil
		})

		user, err := svc.AuthenticateUserFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-9", user.ID)
	})

	t.Run("external user lookup failure", func(t *testing.T) {
		userRepo, _, svc := setupAuthTest(t)
		ctx := ContextWithClaims(context.Background(), &TokenClaims{ExternalID: "ext-1"})

		userRepo.EXPECT().GetUserByExternalID(ctx, "ext-1").Return(nil, errors.New("db down"))

		_, err := svc.AuthenticateUserFromContext(ctx)
		assert.EqualError(t, err, "db down")
	})
}

func TestAuthService_AuthenticateUserForOrganization(t *testing.T) {
	validSession := func(userRepo *mocks.MockUserRepository) {
		userRepo.EXPECT().GetSessionByID(gomock.Any(), "session-1").Return(&domain.Session{
			ID: "session-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		userRepo.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(&domain.User{ID: "user-1"}, nil)
	}

	t.Run("member", func(t *testing.T) {
		userRepo, orgRepo, svc := setupAuthTest(t)
		validSession(userRepo)
		orgRepo.EXPECT().GetMember(gomock.Any(), "org-1", "user-1").Return(&domain.OrganizationMember{
			OrganizationID: "org-1", UserID: "user-1", Role: domain.RoleAdmin,
		}, nil)

		ctx, user, member, err := svc.AuthenticateUserForOrganization(sessionContext("user-1", "session-1"), "org-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, domain.RoleAdmin, member.Role)
		assert.Equal(t, "org-1", ctx.Value(domain.OrganizationIDKey))
		assert.NoError(t, domain.RequireRole(ctx, domain.RoleAdmin))
		assert.Error(t, domain.RequireRole(ctx, domain.RoleOwner))
	})

	t.Run("not a member", func(t *testing.T) {
		userRepo, orgRepo, svc := setupAuthTest(t)
		validSession(userRepo)
		orgRepo.EXPECT().GetMember(gomock.Any(), "org-1", "user-1").Return(nil, domain.NewNotFound("member", "user-1"))

		_, _, _, err := svc.AuthenticateUserForOrganization(sessionContext("user-1", "session-1"), "org-1")
		var permErr *domain.PermissionError
		assert.True(t, errors.As(err, &permErr))
	})

	t.Run("missing organization id", func(t *testing.T) {
		_, _, svc := setupAuthTest(t)
		_, _, _, err := svc.AuthenticateUserForOrganization(context.Background(), "")
		var ve domain.ValidationError
		assert.True(t, errors.As(err, &ve))
	})
}
