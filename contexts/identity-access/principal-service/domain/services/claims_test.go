package services

import (
	"testing"

	"orbit/contexts/identity-access/principal-service/domain/entities"
)

func TestResolvePrincipalSplitsRoleNamesByScope(t *testing.T) {
	principal, unresolved := ResolvePrincipal(Claims{
		Subject:   "u1",
		Superuser: true,
		Roles: []string{
			"acme_ADMIN",
			"acme_lz_SUPPLIER",
			"acme_lz_TRUSTEE",
		},
		OrgPublicAccess: true,
	})

	if len(unresolved) != 0 {
		t.Fatalf("unexpected unresolved roles: %v", unresolved)
	}
	if !principal.Superuser || !principal.OrgPublicAccess || principal.SpacePublicAccess {
		t.Fatalf("flags not carried: %+v", principal)
	}
	if !principal.HasOrganizationRole("acme", entities.OrganizationRoleAdmin) {
		t.Fatal("organization grant missing")
	}
	if !principal.HasSpaceRole("acme", "lz", entities.SpaceRoleSupplier) ||
		!principal.HasSpaceRole("acme", "lz", entities.SpaceRoleTrustee) {
		t.Fatalf("space grants missing: %+v", principal.SpaceGrants)
	}
}

func TestResolvePrincipalSkipsUnparseableNames(t *testing.T) {
	principal, unresolved := ResolvePrincipal(Claims{
		Subject: "u1",
		Roles: []string{
			"acme_ADMIN",
			"no-underscores",
			"acme_NOTAROLE",
			"acme_lz_NOTAROLE",
			"a_b_c_d",
			"_ADMIN",
		},
	})

	if len(principal.OrganizationGrants) != 1 || len(principal.SpaceGrants) != 0 {
		t.Fatalf("only the valid grant must survive: %+v", principal)
	}
	if len(unresolved) != 5 {
		t.Fatalf("expected 5 unresolved names, got %v", unresolved)
	}
}

func TestCanDecideRequestGates(t *testing.T) {
	orgRequest := entities.MembershipRequest{
		Scope:        entities.ScopeOrganization,
		Organization: "acme",
		Role:         entities.OrganizationRoleAccess,
	}
	spaceRequest := entities.MembershipRequest{
		Scope:        entities.ScopeSpace,
		Organization: "acme",
		Space:        "lz",
		Role:         entities.SpaceRoleUser,
	}

	root := entities.Principal{Subject: "root", Superuser: true}
	orgAdmin := entities.Principal{Subject: "a", OrganizationGrants: []entities.OrganizationGrant{
		{Organization: "acme", Role: entities.OrganizationRoleAdmin},
	}}
	spaceTrustee := entities.Principal{Subject: "t", SpaceGrants: []entities.SpaceGrant{
		{Organization: "acme", Space: "lz", Role: entities.SpaceRoleTrustee},
	}}
	member := entities.Principal{Subject: "m", OrganizationGrants: []entities.OrganizationGrant{
		{Organization: "acme", Role: entities.OrganizationRoleAccess},
	}}
	foreignAdmin := entities.Principal{Subject: "f", OrganizationGrants: []entities.OrganizationGrant{
		{Organization: "globex", Role: entities.OrganizationRoleAdmin},
	}}

	if !CanDecideRequest(root, orgRequest) || !CanDecideRequest(root, spaceRequest) {
		t.Fatal("superuser must decide everything")
	}
	if !CanDecideRequest(orgAdmin, orgRequest) || !CanDecideRequest(orgAdmin, spaceRequest) {
		t.Fatal("org admin must decide requests in their organization")
	}
	if CanDecideRequest(spaceTrustee, orgRequest) {
		t.Fatal("space trustee must not decide organization requests")
	}
	if !CanDecideRequest(spaceTrustee, spaceRequest) {
		t.Fatal("space trustee must decide their space's requests")
	}
	if CanDecideRequest(member, orgRequest) || CanDecideRequest(foreignAdmin, orgRequest) {
		t.Fatal("plain members and foreign admins must not decide")
	}
}
