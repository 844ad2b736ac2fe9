package unit

import (
	"context"
	"errors"
	"testing"

	lifecycle "orbit/contexts/tenancy/lifecycle-service"
	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	domainerrors "orbit/contexts/tenancy/lifecycle-service/domain/errors"
	"orbit/contexts/tenancy/lifecycle-service/domain/services"
	httptransport "orbit/contexts/tenancy/lifecycle-service/transport/http"
)

func superuserAuth(subject string) entities.AuthenticationContext {
	return entities.AuthenticationContext{Subject: subject, Superuser: true}
}

func TestOrganizationLifecycleThroughHandlers(t *testing.T) {
	module := lifecycle.NewInMemoryModule(nil)
	ctx := context.Background()
	admin := superuserAuth("platform-admin")

	org, err := module.Handler.CreateOrganizationHandler(ctx, admin, httptransport.CreateOrganizationRequest{
		Name:            "acme",
		Confidentiality: "INTERNAL",
	})
	if err != nil {
		t.Fatalf("create organization failed: %v", err)
	}
	if len(org.Owners) != 1 || org.Owners[0] != "platform-admin" {
		t.Fatalf("expected creator as sole owner, got %v", org.Owners)
	}

	space, err := module.Handler.CreateSpaceHandler(ctx, admin, org.ID, httptransport.CreateSpaceRequest{
		Name:            "launchpad",
		Confidentiality: "INTERNAL",
	})
	if err != nil {
		t.Fatalf("create space failed: %v", err)
	}
	if space.OrganizationID != org.ID {
		t.Fatalf("space bound to wrong organization: %s", space.OrganizationID)
	}

	member := entities.AuthenticationContext{
		Subject: "member-1",
		OrganizationGrants: []entities.OrganizationGrant{
			{Organization: "acme", Role: entities.OrganizationRoleAccess},
		},
	}
	got, err := module.Handler.GetOrganizationHandler(ctx, member, org.ID)
	if err != nil {
		t.Fatalf("member read failed: %v", err)
	}
	if got.Name != "acme" {
		t.Fatalf("unexpected organization name %q", got.Name)
	}

	spaces, err := module.Handler.ListSpacesHandler(ctx, member, org.ID, services.PermissionRead)
	if err != nil {
		t.Fatalf("list spaces failed: %v", err)
	}
	if len(spaces.Spaces) != 0 {
		t.Fatalf("org-access member without space grant should see no spaces, got %d", len(spaces.Spaces))
	}

	if err := module.Handler.DeleteOrganizationHandler(ctx, admin, org.ID); err != nil {
		t.Fatalf("delete organization failed: %v", err)
	}
	if _, err := module.Handler.GetSpaceHandler(ctx, admin, org.ID, space.ID); !errors.Is(err, domainerrors.ErrOrganizationNotFound) {
		t.Fatalf("expected cascade to remove space, got %v", err)
	}
}

func TestSpaceUpdateRejectsRenameThroughHandlers(t *testing.T) {
	module := lifecycle.NewInMemoryModule(nil)
	ctx := context.Background()
	admin := superuserAuth("platform-admin")

	org, err := module.Handler.CreateOrganizationHandler(ctx, admin, httptransport.CreateOrganizationRequest{
		Name:            "acme",
		Confidentiality: "INTERNAL",
	})
	if err != nil {
		t.Fatalf("create organization failed: %v", err)
	}
	space, err := module.Handler.CreateSpaceHandler(ctx, admin, org.ID, httptransport.CreateSpaceRequest{
		Name:            "launchpad",
		Confidentiality: "INTERNAL",
	})
	if err != nil {
		t.Fatalf("create space failed: %v", err)
	}

	_, err = module.Handler.UpdateSpaceHandler(ctx, admin, org.ID, space.ID, httptransport.UpdateSpaceRequest{
		Name:            "renamed",
		Confidentiality: "INTERNAL",
		State:           "ACTIVE",
	})
	if !errors.Is(err, domainerrors.ErrRenamingForbidden) {
		t.Fatalf("expected rename rejection, got %v", err)
	}

	updated, err := module.Handler.UpdateSpaceHandler(ctx, admin, org.ID, space.ID, httptransport.UpdateSpaceRequest{
		Confidentiality: "PUBLIC",
		State:           "CLOSED",
	})
	if err != nil {
		t.Fatalf("update space failed: %v", err)
	}
	if updated.Name != "launchpad" || updated.State != "CLOSED" || updated.Confidentiality != "PUBLIC" {
		t.Fatalf("unexpected space after update: %+v", updated)
	}
}

func TestOwnerManagementThroughHandlers(t *testing.T) {
	module := lifecycle.NewInMemoryModule(nil)
	ctx := context.Background()
	admin := superuserAuth("platform-admin")

	org, err := module.Handler.CreateOrganizationHandler(ctx, admin, httptransport.CreateOrganizationRequest{
		Name:            "acme",
		Confidentiality: "INTERNAL",
	})
	if err != nil {
		t.Fatalf("create organization failed: %v", err)
	}

	withCoOwner, err := module.Handler.AddOrganizationOwnerHandler(ctx, admin, org.ID, httptransport.OwnerRequest{Subject: "co-owner"})
	if err != nil {
		t.Fatalf("add owner failed: %v", err)
	}
	if len(withCoOwner.Owners) != 2 {
		t.Fatalf("expected two owners, got %v", withCoOwner.Owners)
	}

	stranger := entities.AuthenticationContext{Subject: "stranger"}
	if _, err := module.Handler.AddOrganizationOwnerHandler(ctx, stranger, org.ID, httptransport.OwnerRequest{Subject: "intruder"}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}

	back, err := module.Handler.RemoveOrganizationOwnerHandler(ctx, admin, org.ID, "co-owner")
	if err != nil {
		t.Fatalf("remove owner failed: %v", err)
	}
	if _, err := module.Handler.RemoveOrganizationOwnerHandler(ctx, admin, org.ID, back.Owners[0]); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected last-owner removal to fail validation, got %v", err)
	}
}
