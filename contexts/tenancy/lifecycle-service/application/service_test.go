package application

import (
	"context"
	"errors"
	"testing"

	identityadapter "orbit/contexts/tenancy/lifecycle-service/adapters/identity"
	"orbit/contexts/tenancy/lifecycle-service/adapters/memory"
	"orbit/contexts/tenancy/lifecycle-service/application/fanout"
	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	domainerrors "orbit/contexts/tenancy/lifecycle-service/domain/errors"
	"orbit/contexts/tenancy/lifecycle-service/ports"
)

type fixture struct {
	service      Service
	store        *memory.Store
	identity     *memory.IdentityStore
	provisioners []*memory.Provisioner
}

func newFixture(provisionerNames ...string) fixture {
	store := memory.NewStore()
	identityStore := memory.NewIdentityStore()

	var fakes []*memory.Provisioner
	var registered []ports.ContextProvisioner
	for _, name := range provisionerNames {
		fake := memory.NewProvisioner(name)
		fakes = append(fakes, fake)
		registered = append(registered, fake)
	}

	return fixture{
		service: Service{
			Organizations: store,
			Spaces:        store,
			Provisioners:  registered,
			Identity:      identityStore,
			Outbox:        store,
			FanOut:        fanout.Coordinator{},
			Clock:         store,
			IDGenerator:   store,
			PublishEvents: true,
		},
		store:        store,
		identity:     identityStore,
		provisioners: fakes,
	}
}

func superuser(subject string) entities.AuthenticationContext {
	return entities.AuthenticationContext{Subject: subject, Superuser: true}
}

func (f fixture) mustCreateOrg(t *testing.T, auth entities.AuthenticationContext, name string) entities.Organization {
	t.Helper()
	org, err := f.service.CreateOrganization(context.Background(), auth, CreateOrganizationInput{
		Name:            name,
		Confidentiality: entities.ConfidentialityInternal,
	})
	if err != nil {
		t.Fatalf("create organization %q failed: %v", name, err)
	}
	return org
}

func (f fixture) mustCreateSpace(t *testing.T, auth entities.AuthenticationContext, orgID, name string) entities.Space {
	t.Helper()
	space, err := f.service.CreateSpace(context.Background(), auth, orgID, CreateSpaceInput{
		Name:            name,
		Confidentiality: entities.ConfidentialityInternal,
	})
	if err != nil {
		t.Fatalf("create space %q failed: %v", name, err)
	}
	return space
}

func TestCreateOrganizationProvisionsAllDownstreams(t *testing.T) {
	f := newFixture("storage", "index")
	caller := entities.AuthenticationContext{Subject: "u1"}

	org := f.mustCreateOrg(t, caller, "acme")
	if len(org.Owners) != 1 || org.Owners[0] != "u1" {
		t.Fatalf("creator must be sole owner, got %v", org.Owners)
	}
	for _, p := range f.provisioners {
		if p.CallCount(memory.OpCreateOrganization) != 1 {
			t.Fatalf("provisioner %s not invoked", p.Name())
		}
	}
	if _, err := f.store.GetOrganizationByName(context.Background(), "acme"); err != nil {
		t.Fatalf("organization not persisted: %v", err)
	}
}

func TestCreateOrganizationRejectsBadNameAndDuplicate(t *testing.T) {
	f := newFixture("storage")
	caller := entities.AuthenticationContext{Subject: "u1"}

	_, err := f.service.CreateOrganization(context.Background(), caller, CreateOrganizationInput{
		Name:            "Not A Valid Name",
		Confidentiality: entities.ConfidentialityPublic,
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.provisioners[0].CallCount(memory.OpCreateOrganization) != 0 {
		t.Fatal("no provisioning may happen before validation passes")
	}

	f.mustCreateOrg(t, caller, "acme")
	_, err = f.service.CreateOrganization(context.Background(), caller, CreateOrganizationInput{
		Name:            "acme",
		Confidentiality: entities.ConfidentialityPublic,
	})
	if !errors.Is(err, domainerrors.ErrNameTaken) {
		t.Fatalf("expected name taken, got %v", err)
	}
}

func TestCreateOrganizationRollsBackOnProvisionerFailure(t *testing.T) {
	f := newFixture("storage", "index", "roles")
	f.provisioners[1].FailOn(memory.OpCreateOrganization)
	caller := entities.AuthenticationContext{Subject: "u1"}

	_, err := f.service.CreateOrganization(context.Background(), caller, CreateOrganizationInput{
		Name:            "acme",
		Confidentiality: entities.ConfidentialityInternal,
	})
	if !errors.Is(err, domainerrors.ErrDownstream) {
		t.Fatalf("expected downstream error, got %v", err)
	}

	// Compensation must de-provision across all provisioners, not stop at
	// the failed one, and the persisted record must be gone.
	for _, p := range f.provisioners {
		if p.CallCount(memory.OpDeleteOrganization) != 1 {
			t.Fatalf("provisioner %s missed compensation", p.Name())
		}
	}
	if _, err := f.store.GetOrganizationByName(context.Background(), "acme"); !errors.Is(err, domainerrors.ErrOrganizationNotFound) {
		t.Fatalf("organization must not survive failed provisioning, got %v", err)
	}
}

func TestCreateSpaceFailureCompensatesAndDeletesRecord(t *testing.T) {
	f := newFixture("one", "two", "three")
	caller := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, caller, "acme")

	f.provisioners[1].FailOn(memory.OpCreateSpace)
	_, err := f.service.CreateSpace(context.Background(), caller, org.ID, CreateSpaceInput{
		Name:            "lz",
		Confidentiality: entities.ConfidentialityInternal,
	})
	if !errors.Is(err, domainerrors.ErrDownstream) {
		t.Fatalf("expected downstream error, got %v", err)
	}
	for _, p := range f.provisioners {
		if p.CallCount(memory.OpDeleteSpace) != 1 {
			t.Fatalf("provisioner %s did not receive space de-provisioning", p.Name())
		}
	}
	if _, err := f.store.GetSpaceByName(context.Background(), org.ID, "lz"); !errors.Is(err, domainerrors.ErrSpaceNotFound) {
		t.Fatalf("space record must be deleted after rollback, got %v", err)
	}
}

func TestCreateSpaceGrantsCreatorAllSpaceRoles(t *testing.T) {
	f := newFixture("storage")
	caller := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, caller, "acme")
	f.mustCreateSpace(t, caller, org.ID, "lz")

	roles := f.identity.AssignedRoles("u1")
	if len(roles) != len(entities.SpaceRoles()) {
		t.Fatalf("creator must hold every space role, got %v", roles)
	}
	for _, role := range entities.SpaceRoles() {
		want := entities.SpaceRoleName("acme", "lz", role)
		found := false
		for _, have := range roles {
			if have == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing creator role %q in %v", want, roles)
		}
	}
}

func TestCreateSpaceRequiresOrgAdminOrOwner(t *testing.T) {
	f := newFixture("storage")
	owner := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, owner, "acme")

	stranger := entities.AuthenticationContext{Subject: "u2"}
	_, err := f.service.CreateSpace(context.Background(), stranger, org.ID, CreateSpaceInput{
		Name:            "lz",
		Confidentiality: entities.ConfidentialityInternal,
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdateSpaceRejectsRenameEvenForSuperuser(t *testing.T) {
	f := newFixture("storage")
	caller := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, caller, "acme")
	space := f.mustCreateSpace(t, caller, org.ID, "lz")

	_, err := f.service.UpdateSpace(context.Background(), superuser("root"), org.ID, UpdateSpaceInput{
		ID:              space.ID,
		Name:            "renamed",
		Confidentiality: space.Confidentiality,
		State:           space.State,
	})
	if !errors.Is(err, domainerrors.ErrRenamingForbidden) {
		t.Fatalf("expected renaming forbidden, got %v", err)
	}
	stored, err := f.store.GetSpace(context.Background(), org.ID, space.ID)
	if err != nil {
		t.Fatalf("space lookup failed: %v", err)
	}
	if stored.Name != "lz" {
		t.Fatalf("stored name changed to %q", stored.Name)
	}
}

func TestUpdateOrganizationRejectsRename(t *testing.T) {
	f := newFixture("storage")
	caller := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, caller, "acme")

	_, err := f.service.UpdateOrganization(context.Background(), caller, UpdateOrganizationInput{
		ID:              org.ID,
		Name:            "acme-two",
		Confidentiality: org.Confidentiality,
	})
	if !errors.Is(err, domainerrors.ErrRenamingForbidden) {
		t.Fatalf("expected renaming forbidden, got %v", err)
	}
}

func TestGenericUpdateNeverChangesOwners(t *testing.T) {
	f := newFixture("storage")
	caller := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, caller, "acme")
	space := f.mustCreateSpace(t, caller, org.ID, "lz")

	if _, err := f.service.UpdateSpace(context.Background(), caller, org.ID, UpdateSpaceInput{
		ID:              space.ID,
		Confidentiality: entities.ConfidentialityPublic,
		State:           entities.SpaceStateClosed,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := f.store.GetSpace(context.Background(), org.ID, space.ID)
	if err != nil {
		t.Fatalf("space lookup failed: %v", err)
	}
	if len(stored.Owners) != 1 || stored.Owners[0] != "u1" {
		t.Fatalf("owners changed through generic update: %v", stored.Owners)
	}
	if stored.Confidentiality != entities.ConfidentialityPublic || stored.State != entities.SpaceStateClosed {
		t.Fatalf("update did not apply: %+v", stored)
	}
}

func TestUpdateSurvivesDownstreamFailureButSurfacesIt(t *testing.T) {
	f := newFixture("storage")
	caller := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, caller, "acme")

	f.provisioners[0].FailOn(memory.OpUpdateOrganization)
	_, err := f.service.UpdateOrganization(context.Background(), caller, UpdateOrganizationInput{
		ID:              org.ID,
		Confidentiality: entities.ConfidentialityPublic,
	})
	if !errors.Is(err, domainerrors.ErrDownstream) {
		t.Fatalf("expected downstream error, got %v", err)
	}

	// Best-effort policy: the persisted change stands.
	stored, lookupErr := f.store.GetOrganization(context.Background(), org.ID)
	if lookupErr != nil {
		t.Fatalf("organization lookup failed: %v", lookupErr)
	}
	if stored.Confidentiality != entities.ConfidentialityPublic {
		t.Fatalf("persisted change rolled back unexpectedly: %+v", stored)
	}
}

func TestDeleteOrganizationRequiresSuperuser(t *testing.T) {
	f := newFixture("storage")
	owner := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, owner, "acme")

	if err := f.service.DeleteOrganization(context.Background(), owner, org.ID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("owner must not delete organization, got %v", err)
	}

	other := entities.AuthenticationContext{Subject: "u2"}
	if err := f.service.DeleteOrganization(context.Background(), other, org.ID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("non-superuser must not delete organization, got %v", err)
	}
}

func TestDeleteOrganizationCascadesThroughSpaces(t *testing.T) {
	f := newFixture("storage", "index")
	owner := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, owner, "acme")
	space := f.mustCreateSpace(t, owner, org.ID, "lz")

	if err := f.service.DeleteOrganization(context.Background(), superuser("root"), org.ID); err != nil {
		t.Fatalf("delete organization failed: %v", err)
	}

	for _, p := range f.provisioners {
		if p.CallCount(memory.OpDeleteSpace) != 1 {
			t.Fatalf("space de-provisioning missing on %s", p.Name())
		}
		if p.CallCount(memory.OpDeleteOrganization) != 1 {
			t.Fatalf("organization de-provisioning missing on %s", p.Name())
		}
	}
	if _, err := f.store.GetOrganization(context.Background(), org.ID); !errors.Is(err, domainerrors.ErrOrganizationNotFound) {
		t.Fatalf("organization record must be gone, got %v", err)
	}
	if _, err := f.store.GetSpace(context.Background(), org.ID, space.ID); !errors.Is(err, domainerrors.ErrSpaceNotFound) {
		t.Fatalf("space record must be gone, got %v", err)
	}
}

func TestDeleteSpaceProceedsDespiteDeprovisionFailure(t *testing.T) {
	f := newFixture("storage")
	owner := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, owner, "acme")
	space := f.mustCreateSpace(t, owner, org.ID, "lz")

	f.provisioners[0].FailOn(memory.OpDeleteSpace)
	if err := f.service.DeleteSpace(context.Background(), superuser("root"), org.ID, space.ID); err != nil {
		t.Fatalf("flaky downstream must not block deletion, got %v", err)
	}
	if _, err := f.store.GetSpace(context.Background(), org.ID, space.ID); !errors.Is(err, domainerrors.ErrSpaceNotFound) {
		t.Fatalf("space record must be deleted, got %v", err)
	}
}

func TestDeleteSpaceEmitsLifecycleEvent(t *testing.T) {
	f := newFixture("storage")
	owner := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, owner, "acme")
	space := f.mustCreateSpace(t, owner, org.ID, "lz")

	if err := f.service.DeleteSpace(context.Background(), superuser("root"), org.ID, space.ID); err != nil {
		t.Fatalf("delete space failed: %v", err)
	}
	found := false
	for _, eventType := range f.store.PendingOutboxEventTypes() {
		if eventType == "tenancy.space.deleted" {
			found = true
		}
	}
	if !found {
		t.Fatalf("space deletion event missing, pending: %v", f.store.PendingOutboxEventTypes())
	}
}

func TestOwnerManagement(t *testing.T) {
	f := newFixture("storage")
	owner := entities.AuthenticationContext{Subject: "u1"}
	org := f.mustCreateOrg(t, owner, "acme")

	updated, err := f.service.AddOrganizationOwner(context.Background(), owner, org.ID, "u2")
	if err != nil {
		t.Fatalf("add owner failed: %v", err)
	}
	if len(updated.Owners) != 2 {
		t.Fatalf("expected two owners, got %v", updated.Owners)
	}

	stranger := entities.AuthenticationContext{Subject: "intruder"}
	if _, err := f.service.AddOrganizationOwner(context.Background(), stranger, org.ID, "intruder"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("stranger must not add owners, got %v", err)
	}

	updated, err = f.service.RemoveOrganizationOwner(context.Background(), owner, org.ID, "u2")
	if err != nil {
		t.Fatalf("remove owner failed: %v", err)
	}
	if _, err := f.service.RemoveOrganizationOwner(context.Background(), owner, org.ID, "u1"); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("last owner removal must be rejected, got %v", err)
	}
	if len(updated.Owners) != 1 || updated.Owners[0] != "u1" {
		t.Fatalf("unexpected owners after removal: %v", updated.Owners)
	}
}

func TestIdentityRoleProvisionerLifecycle(t *testing.T) {
	store := memory.NewStore()
	identityStore := memory.NewIdentityStore()
	service := Service{
		Organizations: store,
		Spaces:        store,
		Provisioners: []ports.ContextProvisioner{
			identityadapter.RoleProvisioner{Roles: identityStore},
		},
		Identity:    identityStore,
		Outbox:      store,
		FanOut:      fanout.Coordinator{},
		Clock:       store,
		IDGenerator: store,
	}

	caller := entities.AuthenticationContext{Subject: "u1"}
	org, err := service.CreateOrganization(context.Background(), caller, CreateOrganizationInput{
		Name:            "acme",
		Confidentiality: entities.ConfidentialityInternal,
	})
	if err != nil {
		t.Fatalf("create organization failed: %v", err)
	}
	for _, role := range entities.OrganizationRoles() {
		if !identityStore.HasRole(entities.OrganizationRoleName("acme", role)) {
			t.Fatalf("organization role %s not synchronized", role)
		}
	}

	if err := service.DeleteOrganization(context.Background(), superuser("root"), org.ID); err != nil {
		t.Fatalf("delete organization failed: %v", err)
	}
	for _, role := range entities.OrganizationRoles() {
		if identityStore.HasRole(entities.OrganizationRoleName("acme", role)) {
			t.Fatalf("organization role %s not removed", role)
		}
	}
}

// flakyNameLookupStore simulates an infrastructure failure during the name
// availability check while leaving every other repository call intact.
type flakyNameLookupStore struct {
	*memory.Store
	lookupErr error
}

func (s flakyNameLookupStore) GetOrganizationByName(_ context.Context, _ string) (entities.Organization, error) {
	return entities.Organization{}, s.lookupErr
}

func (s flakyNameLookupStore) GetSpaceByName(_ context.Context, _ string, _ string) (entities.Space, error) {
	return entities.Space{}, s.lookupErr
}

func TestCreateOrganizationSurfacesNameCheckFailure(t *testing.T) {
	f := newFixture("billing")
	f.service.Organizations = flakyNameLookupStore{Store: f.store, lookupErr: errors.New("connection reset")}

	_, err := f.service.CreateOrganization(context.Background(), superuser("root"), CreateOrganizationInput{
		Name:            "acme",
		Confidentiality: entities.ConfidentialityInternal,
	})
	if !errors.Is(err, domainerrors.ErrUnknown) {
		t.Fatalf("expected unknown error when the name check fails, got %v", err)
	}
	if f.provisioners[0].CallCount(memory.OpCreateOrganization) != 0 {
		t.Fatalf("provisioning must not run when the name check fails")
	}
	if orgs, _ := f.store.ListOrganizations(context.Background()); len(orgs) != 0 {
		t.Fatalf("no organization may be persisted when the name check fails")
	}
}

func TestCreateSpaceSurfacesNameCheckFailure(t *testing.T) {
	f := newFixture("billing")
	admin := superuser("root")
	org := f.mustCreateOrg(t, admin, "acme")

	f.service.Spaces = flakyNameLookupStore{Store: f.store, lookupErr: errors.New("connection reset")}
	_, err := f.service.CreateSpace(context.Background(), admin, org.ID, CreateSpaceInput{
		Name:            "launchpad",
		Confidentiality: entities.ConfidentialityInternal,
	})
	if !errors.Is(err, domainerrors.ErrUnknown) {
		t.Fatalf("expected unknown error when the name check fails, got %v", err)
	}
	if f.provisioners[0].CallCount(memory.OpCreateSpace) != 0 {
		t.Fatalf("provisioning must not run when the name check fails")
	}
}
