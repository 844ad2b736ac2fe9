package ports

import (
	"context"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
)

// ContextProvisioner creates, updates, and deletes the downstream "context"
// resource (storage container, search index, identity roles, ...) that must
// exist in lockstep with an organization or space. Every call receives the
// original caller's AuthenticationContext explicitly so downstream requests
// are authenticated as the caller, never as an ambient background identity.
type ContextProvisioner interface {
	Name() string

	CreateOrganizationContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization) error
	UpdateOrganizationContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization) error
	DeleteOrganizationContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization) error

	CreateSpaceContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error
	UpdateSpaceContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error
	DeleteSpaceContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error
}
