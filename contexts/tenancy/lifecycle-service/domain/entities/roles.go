package entities

import "fmt"

// OrganizationRole is the closed set of organization-scoped roles.
type OrganizationRole string

const (
	OrganizationRoleAccess  OrganizationRole = "ACCESS"
	OrganizationRoleAdmin   OrganizationRole = "ADMIN"
	OrganizationRoleTrustee OrganizationRole = "TRUSTEE"
)

// SpaceRole is the closed set of space-scoped roles.
type SpaceRole string

const (
	SpaceRoleUser     SpaceRole = "USER"
	SpaceRoleSupplier SpaceRole = "SUPPLIER"
	SpaceRoleTrustee  SpaceRole = "TRUSTEE"
)

// OrganizationRoles lists every organization-scoped role.
func OrganizationRoles() []OrganizationRole {
	return []OrganizationRole{OrganizationRoleAccess, OrganizationRoleAdmin, OrganizationRoleTrustee}
}

// SpaceRoles lists every space-scoped role.
func SpaceRoles() []SpaceRole {
	return []SpaceRole{SpaceRoleUser, SpaceRoleSupplier, SpaceRoleTrustee}
}

// OrganizationRoleName is the canonical identity-provider role name for an
// organization-scoped role. Role names are synchronized with the identity
// provider; keep this format stable.
func OrganizationRoleName(orgName string, role OrganizationRole) string {
	return fmt.Sprintf("%s_%s", orgName, role)
}

// SpaceRoleName is the canonical identity-provider role name for a
// space-scoped role.
func SpaceRoleName(orgName, spaceName string, role SpaceRole) string {
	return fmt.Sprintf("%s_%s_%s", orgName, spaceName, role)
}
