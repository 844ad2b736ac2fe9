package services

import (
	"strings"

	"orbit/contexts/identity-access/principal-service/domain/entities"
)

// Claims is the token payload after signature verification, before any
// interpretation. Role names follow the identity-provider convention; names
// that do not parse are collected, not fatal.
type Claims struct {
	Subject           string
	Superuser         bool
	Roles             []string
	OrgPublicAccess   bool
	SpacePublicAccess bool
}

// ResolvePrincipal maps verified claims to the flat principal. Role names
// split on underscores: two segments form an organization grant, three a
// space grant. Names outside the closed role sets or with any other shape
// are returned as unresolved and skipped; a token is never rejected for
// carrying roles this service does not understand.
func ResolvePrincipal(claims Claims) (entities.Principal, []string) {
	principal := entities.Principal{
		Subject:           claims.Subject,
		Superuser:         claims.Superuser,
		OrgPublicAccess:   claims.OrgPublicAccess,
		SpacePublicAccess: claims.SpacePublicAccess,
	}

	var unresolved []string
	for _, name := range claims.Roles {
		parts := strings.Split(name, "_")
		switch len(parts) {
		case 2:
			if parts[0] == "" || !entities.IsOrganizationRole(parts[1]) {
				unresolved = append(unresolved, name)
				continue
			}
			principal.OrganizationGrants = append(principal.OrganizationGrants, entities.OrganizationGrant{
				Organization: parts[0],
				Role:         parts[1],
			})
		case 3:
			if parts[0] == "" || parts[1] == "" || !entities.IsSpaceRole(parts[2]) {
				unresolved = append(unresolved, name)
				continue
			}
			principal.SpaceGrants = append(principal.SpaceGrants, entities.SpaceGrant{
				Organization: parts[0],
				Space:        parts[1],
				Role:         parts[2],
			})
		default:
			unresolved = append(unresolved, name)
		}
	}
	return principal, unresolved
}

// CanDecideRequest reports whether the principal may accept or reject the
// given membership request: superusers always, organization admins and
// trustees for their organization's requests, and space trustees additionally
// for their space's requests.
func CanDecideRequest(principal entities.Principal, request entities.MembershipRequest) bool {
	if principal.Superuser {
		return true
	}
	if principal.HasOrganizationRole(request.Organization, entities.OrganizationRoleAdmin) ||
		principal.HasOrganizationRole(request.Organization, entities.OrganizationRoleTrustee) {
		return true
	}
	if request.Scope == entities.ScopeSpace {
		return principal.HasSpaceRole(request.Organization, request.Space, entities.SpaceRoleTrustee)
	}
	return false
}
