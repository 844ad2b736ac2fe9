package ports

import (
	"context"
	"time"

	"orbit/contexts/identity-access/principal-service/domain/entities"
)

// TokenAuthenticator verifies a bearer token and resolves it to a principal.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (entities.Principal, error)
}

// RequestRepository stores membership requests.
type RequestRepository interface {
	CreateRequest(ctx context.Context, request entities.MembershipRequest) error
	GetRequest(ctx context.Context, requestID string) (entities.MembershipRequest, error)
	UpdateRequest(ctx context.Context, request entities.MembershipRequest) error
	ListPendingRequests(ctx context.Context, orgName string) ([]entities.MembershipRequest, error)
}

// RoleAssigner grants canonical role names to subjects in the identity
// provider.
type RoleAssigner interface {
	AssignRole(ctx context.Context, subject string, roleName string) error
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces unique identifiers.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
