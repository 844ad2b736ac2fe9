package entities

// OrganizationGrant is one (organization, role) membership.
type OrganizationGrant struct {
	Organization string
	Role         OrganizationRole
}

// SpaceGrant is one (organization, space, role) membership.
type SpaceGrant struct {
	Organization string
	Space        string
	Role         SpaceRole
}

// AuthenticationContext is the caller identity resolved once per request by
// the identity adapter. It is read-only inside the core; authorization
// decisions combine it with entity state.
type AuthenticationContext struct {
	Subject            string
	Superuser          bool
	OrganizationGrants []OrganizationGrant
	SpaceGrants        []SpaceGrant
	OrgPublicAccess    bool
	SpacePublicAccess  bool
}

// HasOrganizationRole reports whether the caller holds role on the named
// organization.
func (a AuthenticationContext) HasOrganizationRole(orgName string, role OrganizationRole) bool {
	for _, grant := range a.OrganizationGrants {
		if grant.Organization == orgName && grant.Role == role {
			return true
		}
	}
	return false
}

// HasAnyOrganizationRole reports whether the caller holds any role on the
// named organization.
func (a AuthenticationContext) HasAnyOrganizationRole(orgName string) bool {
	for _, grant := range a.OrganizationGrants {
		if grant.Organization == orgName {
			return true
		}
	}
	return false
}

// HasSpaceRole reports whether the caller holds role on the named space.
func (a AuthenticationContext) HasSpaceRole(orgName, spaceName string, role SpaceRole) bool {
	for _, grant := range a.SpaceGrants {
		if grant.Organization == orgName && grant.Space == spaceName && grant.Role == role {
			return true
		}
	}
	return false
}

// HasAnySpaceRole reports whether the caller holds any role on the named
// space.
func (a AuthenticationContext) HasAnySpaceRole(orgName, spaceName string) bool {
	for _, grant := range a.SpaceGrants {
		if grant.Organization == orgName && grant.Space == spaceName {
			return true
		}
	}
	return false
}
