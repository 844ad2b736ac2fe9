package entities

// OrganizationGrant is one (organization, role) membership held by a caller.
type OrganizationGrant struct {
	Organization string
	Role         string
}

// SpaceGrant is one (organization, space, role) membership held by a caller.
type SpaceGrant struct {
	Organization string
	Space        string
	Role         string
}

// Principal is the resolved caller identity: the flat, read-only view of the
// token claims that downstream modules consume. It carries no token material.
type Principal struct {
	Subject            string
	Superuser          bool
	OrganizationGrants []OrganizationGrant
	SpaceGrants        []SpaceGrant
	OrgPublicAccess    bool
	SpacePublicAccess  bool
}

// HasOrganizationRole reports whether the principal holds role on the named
// organization.
func (p Principal) HasOrganizationRole(orgName string, role string) bool {
	for _, grant := range p.OrganizationGrants {
		if grant.Organization == orgName && grant.Role == role {
			return true
		}
	}
	return false
}

// HasSpaceRole reports whether the principal holds role on the named space.
func (p Principal) HasSpaceRole(orgName, spaceName string, role string) bool {
	for _, grant := range p.SpaceGrants {
		if grant.Organization == orgName && grant.Space == spaceName && grant.Role == role {
			return true
		}
	}
	return false
}
