package unit

import (
	"context"
	"errors"
	"testing"

	principal "orbit/contexts/identity-access/principal-service"
	principalentities "orbit/contexts/identity-access/principal-service/domain/entities"
	principalerrors "orbit/contexts/identity-access/principal-service/domain/errors"
	principalservices "orbit/contexts/identity-access/principal-service/domain/services"
	principaltransport "orbit/contexts/identity-access/principal-service/transport/http"
	tenancyentities "orbit/contexts/tenancy/lifecycle-service/domain/entities"
)

var testSigningSecret = []byte("unit-test-secret")

func TestMembershipRequestAcceptanceGrantsCanonicalRole(t *testing.T) {
	module := principal.NewInMemoryModule(testSigningSecret, nil)
	ctx := context.Background()

	applicant := principalentities.Principal{Subject: "applicant-1"}
	submitted, err := module.Handler.SubmitRequestHandler(ctx, applicant, principaltransport.SubmitRequestRequest{
		Scope:        "SPACE",
		Organization: "acme",
		Space:        "launchpad",
		Role:         "supplier",
	})
	if err != nil {
		t.Fatalf("submit request failed: %v", err)
	}
	if submitted.State != "PENDING" {
		t.Fatalf("expected pending request, got %s", submitted.State)
	}

	orgAdmin := principalentities.Principal{
		Subject: "admin-1",
		OrganizationGrants: []principalentities.OrganizationGrant{
			{Organization: "acme", Role: principalentities.OrganizationRoleAdmin},
		},
	}
	accepted, err := module.Handler.AcceptRequestHandler(ctx, orgAdmin, submitted.ID)
	if err != nil {
		t.Fatalf("accept request failed: %v", err)
	}
	if accepted.State != "ACCEPTED" || accepted.DecidedBy != "admin-1" {
		t.Fatalf("unexpected decision record: %+v", accepted)
	}
	if !module.Store.HasAssignment("applicant-1", "acme_launchpad_SUPPLIER") {
		t.Fatalf("expected canonical role assignment after acceptance")
	}

	if _, err := module.Handler.AcceptRequestHandler(ctx, orgAdmin, submitted.ID); !errors.Is(err, principalerrors.ErrRequestDecided) {
		t.Fatalf("expected double-accept rejection, got %v", err)
	}
}

func TestMembershipRequestDecisionRequiresPrivilege(t *testing.T) {
	module := principal.NewInMemoryModule(testSigningSecret, nil)
	ctx := context.Background()

	applicant := principalentities.Principal{Subject: "applicant-1"}
	submitted, err := module.Handler.SubmitRequestHandler(ctx, applicant, principaltransport.SubmitRequestRequest{
		Scope:        "ORGANIZATION",
		Organization: "acme",
		Role:         "access",
	})
	if err != nil {
		t.Fatalf("submit request failed: %v", err)
	}

	member := principalentities.Principal{
		Subject: "member-1",
		OrganizationGrants: []principalentities.OrganizationGrant{
			{Organization: "acme", Role: principalentities.OrganizationRoleAccess},
		},
	}
	if _, err := module.Handler.AcceptRequestHandler(ctx, member, submitted.ID); !errors.Is(err, principalerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for plain member, got %v", err)
	}

	rejected, err := module.Handler.RejectRequestHandler(ctx, principalentities.Principal{Subject: "root", Superuser: true}, submitted.ID)
	if err != nil {
		t.Fatalf("reject request failed: %v", err)
	}
	if rejected.State != "REJECTED" {
		t.Fatalf("expected rejected state, got %s", rejected.State)
	}
	if module.Store.HasAssignment("applicant-1", "acme_ACCESS") {
		t.Fatalf("rejection must not assign a role")
	}
}

// Granted role names round-trip: the name assigned on acceptance resolves
// back into a grant that tenancy authorization understands.
func TestGrantedRoleNamesResolveIntoTenancyGrants(t *testing.T) {
	module := principal.NewInMemoryModule(testSigningSecret, nil)
	ctx := context.Background()

	applicant := principalentities.Principal{Subject: "applicant-1"}
	submitted, err := module.Handler.SubmitRequestHandler(ctx, applicant, principaltransport.SubmitRequestRequest{
		Scope:        "SPACE",
		Organization: "acme",
		Space:        "launchpad",
		Role:         "USER",
	})
	if err != nil {
		t.Fatalf("submit request failed: %v", err)
	}
	if _, err := module.Handler.AcceptRequestHandler(ctx, principalentities.Principal{Subject: "root", Superuser: true}, submitted.ID); err != nil {
		t.Fatalf("accept request failed: %v", err)
	}

	resolved, unresolved := principalservices.ResolvePrincipal(principalservices.Claims{
		Subject: "applicant-1",
		Roles:   []string{"acme_launchpad_USER"},
	})
	if len(unresolved) != 0 {
		t.Fatalf("granted role name should resolve cleanly, got unresolved %v", unresolved)
	}
	if !resolved.HasSpaceRole("acme", "launchpad", principalentities.SpaceRoleUser) {
		t.Fatalf("resolved principal missing space grant: %+v", resolved)
	}

	auth := tenancyentities.AuthenticationContext{
		Subject: resolved.Subject,
		SpaceGrants: []tenancyentities.SpaceGrant{
			{Organization: "acme", Space: "launchpad", Role: tenancyentities.SpaceRoleUser},
		},
	}
	if !auth.HasSpaceRole("acme", "launchpad", tenancyentities.SpaceRoleUser) {
		t.Fatalf("tenancy context should honor the resolved grant")
	}
}
