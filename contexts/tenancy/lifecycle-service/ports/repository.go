package ports

import (
	"context"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
)

// OrganizationRepository is the persistence boundary for organizations.
// Name uniqueness and pattern validation happen in the application layer
// before Create/Update; implementations map storage-level violations to
// domain errors as a second line of defense.
type OrganizationRepository interface {
	CreateOrganization(ctx context.Context, org entities.Organization) error
	UpdateOrganization(ctx context.Context, org entities.Organization) error
	DeleteOrganization(ctx context.Context, orgID string) error
	GetOrganization(ctx context.Context, orgID string) (entities.Organization, error)
	GetOrganizationByName(ctx context.Context, name string) (entities.Organization, error)
	ListOrganizations(ctx context.Context) ([]entities.Organization, error)
}

// SpaceRepository is the persistence boundary for spaces.
type SpaceRepository interface {
	CreateSpace(ctx context.Context, space entities.Space) error
	UpdateSpace(ctx context.Context, space entities.Space) error
	DeleteSpace(ctx context.Context, orgID string, spaceID string) error
	GetSpace(ctx context.Context, orgID string, spaceID string) (entities.Space, error)
	GetSpaceByName(ctx context.Context, orgID string, name string) (entities.Space, error)
	ListSpaces(ctx context.Context, orgID string) ([]entities.Space, error)
}
