package ports

import (
	"context"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
)

// IdentityRoleService synchronizes role names and assignments with the
// identity provider. Calls carry the caller's AuthenticationContext so the
// provider can authorize them as the original caller.
type IdentityRoleService interface {
	EnsureRole(ctx context.Context, auth entities.AuthenticationContext, roleName string) error
	DeleteRole(ctx context.Context, auth entities.AuthenticationContext, roleName string) error
	AssignRole(ctx context.Context, auth entities.AuthenticationContext, subject string, roleName string) error
	WithdrawRole(ctx context.Context, auth entities.AuthenticationContext, subject string, roleName string) error
}
