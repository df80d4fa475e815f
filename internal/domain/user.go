package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_user_repository.go -package mocks github.com/salesflow/crm/internal/domain UserRepository
//go:generate mockgen -destination mocks/mock_auth_service.go -package mocks github.com/salesflow/crm/internal/domain AuthService,UserService

type contextKey string

const (
	UserIDKey         contextKey = "user_id"
	SessionIDKey      contextKey = "session_id"
	UserTypeKey       contextKey = "type"
	ExternalUserIDKey contextKey = "external_user_id"
	OrganizationIDKey contextKey = "organization_id"
	MemberRoleKey     contextKey = "member_role"
)

type UserType string

const (
	UserTypeUser   UserType = "user"
	UserTypeAPIKey UserType = "api_key"
)

type User struct {
	ID         string    `json:"id"`
	Type       UserType  `json:"type"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	ExternalID *string   `json:"external_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Session struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	ExpiresAt        time.Time  `json:"expires_at"`
	CreatedAt        time.Time  `json:"created_at"`
	MagicCode        *string    `json:"-"`
	MagicCodeExpires *time.Time `json:"-"`
}

type SignInInput struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (i *SignInInput) Validate() error {
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	if !govalidator.IsEmail(i.Email) {
		return NewValidationError("invalid email")
	}
	return nil
}

type VerifyCodeInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CurrentUser is returned by /api/user.me.
type CurrentUser struct {
	User          *User                   `json:"user"`
	Organizations []*OrganizationWithRole `json:"organizations"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*User, error)
	UpsertExternalUser(ctx context.Context, user *User) error

	CreateSession(ctx context.Context, session *Session) error
	GetSessionByID(ctx context.Context, id string) (*Session, error)
	GetSessionsByUserID(ctx context.Context, userID string) ([]*Session, error)
	UpdateSession(ctx context.Context, session *Session) error
	DeleteAllSessionsByUserID(ctx context.Context, userID string) error
}

type UserService interface {
	SignIn(ctx context.Context, input SignInInput) (string, error)
	VerifyCode(ctx context.Context, input VerifyCodeInput) (*AuthResponse, error)
	GetCurrentUser(ctx context.Context) (*CurrentUser, error)
	Logout(ctx context.Context) error
	HandleExternalUserCreated(ctx context.Context, externalID, email, name string) (*User, error)
}

type AuthService interface {
	AuthenticateUserFromContext(ctx context.Context) (*User, error)
	// AuthenticateUserForOrganization checks membership and returns a context carrying the role.
	AuthenticateUserForOrganization(ctx context.Context, organizationID string) (context.Context, *User, *OrganizationMember, error)
	VerifyUserSession(ctx context.Context, userID, sessionID string) (*User, error)
	GenerateAuthToken(user *User, sessionID string, expiresAt time.Time) string
}
