package identity

import (
	"context"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	"orbit/contexts/tenancy/lifecycle-service/ports"

	"github.com/hashicorp/go-multierror"
)

// RoleProvisioner keeps identity-provider role names in lockstep with
// organizations and spaces: one role per scope role, named canonically.
// It is registered as a regular ContextProvisioner so role synchronization
// participates in the same fan-out and compensation as every other
// downstream context.
type RoleProvisioner struct {
	Roles ports.IdentityRoleService
}

func (p RoleProvisioner) Name() string { return "identity-roles" }

func (p RoleProvisioner) CreateOrganizationContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization) error {
	var combined *multierror.Error
	for _, role := range entities.OrganizationRoles() {
		if err := p.Roles.EnsureRole(ctx, auth, entities.OrganizationRoleName(org.Name, role)); err != nil {
			combined = multierror.Append(combined, err)
		}
	}
	return combined.ErrorOrNil()
}

func (p RoleProvisioner) UpdateOrganizationContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization) error {
	// Role names derive from the immutable organization name; updates are
	// limited to re-asserting existence.
	return p.CreateOrganizationContext(ctx, auth, org)
}

func (p RoleProvisioner) DeleteOrganizationContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization) error {
	var combined *multierror.Error
	for _, role := range entities.OrganizationRoles() {
		if err := p.Roles.DeleteRole(ctx, auth, entities.OrganizationRoleName(org.Name, role)); err != nil {
			combined = multierror.Append(combined, err)
		}
	}
	return combined.ErrorOrNil()
}

func (p RoleProvisioner) CreateSpaceContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error {
	var combined *multierror.Error
	for _, role := range entities.SpaceRoles() {
		if err := p.Roles.EnsureRole(ctx, auth, entities.SpaceRoleName(org.Name, space.Name, role)); err != nil {
			combined = multierror.Append(combined, err)
		}
	}
	return combined.ErrorOrNil()
}

func (p RoleProvisioner) UpdateSpaceContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error {
	return p.CreateSpaceContext(ctx, auth, org, space)
}

func (p RoleProvisioner) DeleteSpaceContext(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error {
	var combined *multierror.Error
	for _, role := range entities.SpaceRoles() {
		if err := p.Roles.DeleteRole(ctx, auth, entities.SpaceRoleName(org.Name, space.Name, role)); err != nil {
			combined = multierror.Append(combined, err)
		}
	}
	return combined.ErrorOrNil()
}
