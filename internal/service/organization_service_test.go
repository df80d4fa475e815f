package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/domain/mocks"
	"github.com/salesflow/crm/pkg/cache"
	"github.com/salesflow/crm/pkg/logger"
	pkgmocks "github.com/salesflow/crm/pkg/mocks"
)

type orgServiceDeps struct {
	repo     *mocks.MockOrganizationRepository
	userRepo *mocks.MockUserRepository
	auth     *mocks.MockAuthService
	subs     *mocks.MockSubscriptionService
	mailer   *pkgmocks.MockMailer
}

func setupOrganizationService(t *testing.T) (*OrganizationService, orgServiceDeps) {
	ctrl := gomock.NewController(t)
	deps := orgServiceDeps{
		repo:     mocks.NewMockOrganizationRepository(ctrl),
		userRepo: mocks.NewMockUserRepository(ctrl),
		auth:     mocks.NewMockAuthService(ctrl),
		subs:     mocks.NewMockSubscriptionService(ctrl),
		mailer:   pkgmocks.NewMockMailer(ctrl),
	}
	brandingCache := cache.New[*domain.Branding](time.Minute)
	t.Cleanup(brandingCache.Stop)

	svc := NewOrganizationService(OrganizationServiceConfig{
		Repository:          deps.repo,
		UserRepository:      deps.userRepo,
		AuthService:         deps.auth,
		SubscriptionService: deps.subs,
		Mailer:              deps.mailer,
		BrandingCache:       brandingCache,
		FollowupAfterDays:   3,
		Logger:              logger.NewTestLogger(t),
	})
	return svc, deps
}

// expectMember makes AuthenticateUserForOrganization succeed with the given role.
func expectMember(auth *mocks.MockAuthService, orgID string, user *domain.User, role domain.MemberRole) {
	auth.EXPECT().AuthenticateUserForOrganization(gomock.Any(), orgID).DoAndReturn(
		func(ctx context.Context, id string) (context.Context, *domain.User, *domain.OrganizationMember, error) {
			ctx = context.WithValue(ctx, domain.UserIDKey, user.ID)
			ctx = context.WithValue(ctx, domain.OrganizationIDKey, id)
			ctx = context.WithValue(ctx, domain.MemberRoleKey, role)
			return ctx, user, &domain.OrganizationMember{OrganizationID: id, UserID: user.ID, Role: role}, nil
		})
}

func TestOrganizationService_Create(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1", Email: "ana@example.com"}

	t.Run("creator becomes owner on the free plan", func(t *testing.T) {
		svc, deps := setupOrganizationService(t)
		deps.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(user, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, org *domain.Organization, owner *domain.OrganizationMember) error {
				assert.Equal(t, "acme-d-o-o", org.Slug)
				assert.Equal(t, "user-1", org.OwnerID)
				assert.Equal(t, 3, org.Settings.FollowupAfterDays)
				assert.Equal(t, "UTC", org.Settings.Timezone)
				assert.Equal(t, domain.RoleOwner, owner.Role)
				assert.Equal(t, org.ID, owner.OrganizationID)
				return nil
			})
		deps.subs.EXPECT().StartFree(gomock.Any(), gomock.Any()).Return(&domain.Subscription{Plan: domain.PlanFree}, nil)

		org, err := svc.Create(ctx, domain.CreateOrganizationRequest{Name: "Acme d.o.o."})
		require.NoError(t, err)
		assert.NotEmpty(t, org.ID)
	})

	t.Run("invalid name", func(t *testing.T) {
		svc, deps := setupOrganizationService(t)
		deps.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(user, nil)

		_, err := svc.Create(ctx, domain.CreateOrganizationRequest{Name: "  "})
		var ve domain.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("duplicate slug", func(t *testing.T) {
		svc, deps := setupOrganizationService(t)
		deps.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(user, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.NewConflictError("slug taken"))

		_, err := svc.Create(ctx, domain.CreateOrganizationRequest{Name: "Acme"})
		var ce *domain.ConflictError
		assert.True(t, errors.As(err, &ce))
	})
}

func TestOrganizationService_Update_RequiresAdmin(t *testing.T) {
	svc, deps := setupOrganizationService(t)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleMember)

	name := "New"
	_, err := svc.Update(context.Background(), "org-1", domain.UpdateOrganizationRequest{Name: &name})
	var pe *domain.PermissionError
	assert.True(t, errors.As(err, &pe))
}

func TestOrganizationService_Delete(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		svc, deps := setupOrganizationService(t)
		expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleOwner)
		deps.repo.EXPECT().SoftDelete(gomock.Any(), "org-1").Return(nil)
		assert.NoError(t, svc.Delete(context.Background(), "org-1"))
	})

	t.Run("admin is not enough", func(t *testing.T) {
		svc, deps := setupOrganizationService(t)
		expectMember(deps.auth, "org-1", &domain.User{ID: "user-1"}, domain.RoleAdmin)
		var pe *domain.PermissionError
		assert.True(t, errors.As(svc.Delete(context.Background(), "org-1"), &pe))
	})
}

func TestOrganizationService_AddMember(t *testing.T) {
	admin := &domain.User{ID: "user-1", Email: "admin@example.com", Name: "Admin"}

	t.Run("invites a new user", func(t *testing.T) {
		svc, deps := setupOrganizationService(t)
		expectMember(deps.auth, "org-1", admin, domain.RoleAdmin)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceMembers, int64(1)).Return(nil)
		deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "bob@example.com").Return(nil, domain.ErrUserNotFound)
		deps.userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)
		deps.repo.EXPECT().AddMember(gomock.Any(), gomock.Any()).Return(nil)
		deps.repo.EXPECT().GetByID(gomock.Any(), "org-1").Return(&domain.Organization{ID: "org-1", Name: "Acme"}, nil)
		deps.mailer.EXPECT().SendOrganizationInvitation(gomock.Any(), "bob@example.com", "Acme", "Admin").Return(nil)

		member, err := svc.AddMember(context.Background(), "org-1", domain.AddMemberRequest{Email: "Bob@example.com"})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleMember, member.Role)
	})

	t.Run("plan limit", func(t *testing.T) {
		svc, deps := setupOrganizationService(t)
		expectMember(deps.auth, "org-1", admin, domain.RoleAdmin)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceMembers, int64(1)).
			Return(domain.NewPlanLimitError("members", 1))

		_, err := svc.AddMember(context.Background(), "org-1", domain.AddMemberRequest{Email: "bob@example.com"})
		var pe *domain.PermissionError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "plan_limit_reached", pe.Code)
	})

	t.Run("already a member", func(t *testing.T) {
		svc, deps := setupOrganizationService(t)
		expectMember(deps.auth, "org-1", admin, domain.RoleAdmin)
		deps.subs.EXPECT().CheckLimit(gomock.Any(), "org-1", domain.ResourceMembers, int64(1)).Return(nil)
		deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "bob@example.com").Return(&domain.User{ID: "user-2", Email: "bob@example.com"}, nil)
		deps.repo.EXPECT().AddMember(gomock.Any(), gomock.Any()).Return(domain.NewConflictError("already a member"))

		_, err := svc.AddMember(context.Background(), "org-1", domain.AddMemberRequest{Email: "bob@example.com"})
		var ce *domain.ConflictError
		assert.True(t, errors.As(err, &ce))
	})
}

func TestOrganizationService_RemoveMember_Owner(t *testing.T) {
	svc, deps := setupOrganizationService(t)
	expectMember(deps.auth, "org-1", &domain.User{ID: "user-2"}, domain.RoleAdmin)
	deps.repo.EXPECT().GetMember(gomock.Any(), "org-1", "user-1").Return(&domain.OrganizationMember{UserID: "user-1", Role: domain.RoleOwner}, nil)

	err := svc.RemoveMember(context.Background(), "org-1", "user-1")
	var ce *domain.ConflictError
	assert.True(t, errors.As(err, &ce))
}

func TestOrganizationService_Branding(t *testing.T) {
	svc, deps := setupOrganizationService(t)
	user := &domain.User{ID: "user-1"}

	// first read hits the repository and falls back to defaults, second is cached
	expectMember(deps.auth, "org-1", user, domain.RoleMember)
	expectMember(deps.auth, "org-1", user, domain.RoleMember)
	deps.repo.EXPECT().GetBranding(gomock.Any(), "org-1").Return(nil, domain.NewNotFound("branding", "org-1")).Times(1)

	b, err := svc.GetBranding(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, "#2563EB", b.AccentColor)
	_, err = svc.GetBranding(context.Background(), "org-1")
	require.NoError(t, err)

	// update invalidates
	expectMember(deps.auth, "org-1", user, domain.RoleAdmin)
	deps.repo.EXPECT().UpsertBranding(gomock.Any(), gomock.Any()).Return(nil)
	_, err = svc.UpdateBranding(context.Background(), "org-1", &domain.Branding{PrimaryColor: "#000000"})
	require.NoError(t, err)

	expectMember(deps.auth, "org-1", user, domain.RoleMember)
	deps.repo.EXPECT().GetBranding(gomock.Any(), "org-1").Return(&domain.Branding{OrganizationID: "org-1", PrimaryColor: "#000000"}, nil)
	b, err = svc.GetBranding(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, "#000000", b.PrimaryColor)

	t.Run("invalid color", func(t *testing.T) {
		expectMember(deps.auth, "org-1", user, domain.RoleAdmin)
		_, err := svc.UpdateBranding(context.Background(), "org-1", &domain.Branding{PrimaryColor: "red"})
		var ve domain.ValidationError
		assert.True(t, errors.As(err, &ve))
	})
}
