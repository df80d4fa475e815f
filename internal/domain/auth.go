package domain

import "context"

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

var roleRank = map[MemberRole]int{
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

func (r MemberRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Allows reports whether r is at least as privileged as required.
func (r MemberRole) Allows(required MemberRole) bool {
	return roleRank[r] >= roleRank[required]
}

// RequireRole checks the role stored in ctx by AuthenticateUserForOrganization.
func RequireRole(ctx context.Context, required MemberRole) error {
	role, _ := ctx.Value(MemberRoleKey).(MemberRole)
	if !role.Allows(required) {
		return NewPermissionError("requires " + string(required) + " role")
	}
	return nil
}

// UserIDFromContext returns the authenticated user id, or "" for system calls.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}
