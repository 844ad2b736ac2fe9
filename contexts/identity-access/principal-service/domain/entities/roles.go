package entities

import "fmt"

// Role name sets mirror the identity-provider convention: organization roles
// are named <org>_<ROLE>, space roles <org>_<space>_<ROLE>. Organization and
// space names never contain underscores, so the underscore count identifies
// the scope.

const (
	OrganizationRoleAccess  = "ACCESS"
	OrganizationRoleAdmin   = "ADMIN"
	OrganizationRoleTrustee = "TRUSTEE"

	SpaceRoleUser     = "USER"
	SpaceRoleSupplier = "SUPPLIER"
	SpaceRoleTrustee  = "TRUSTEE"
)

// IsOrganizationRole reports whether role belongs to the closed set of
// organization-scoped roles.
func IsOrganizationRole(role string) bool {
	switch role {
	case OrganizationRoleAccess, OrganizationRoleAdmin, OrganizationRoleTrustee:
		return true
	}
	return false
}

// IsSpaceRole reports whether role belongs to the closed set of space-scoped
// roles.
func IsSpaceRole(role string) bool {
	switch role {
	case SpaceRoleUser, SpaceRoleSupplier, SpaceRoleTrustee:
		return true
	}
	return false
}

// OrganizationRoleName is the canonical identity-provider role name for an
// organization-scoped role.
func OrganizationRoleName(orgName string, role string) string {
	return fmt.Sprintf("%s_%s", orgName, role)
}

// SpaceRoleName is the canonical identity-provider role name for a
// space-scoped role.
func SpaceRoleName(orgName, spaceName string, role string) string {
	return fmt.Sprintf("%s_%s_%s", orgName, spaceName, role)
}
