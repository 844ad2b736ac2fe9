package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"orbit/contexts/tenancy/lifecycle-service/application/fanout"
	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	domainerrors "orbit/contexts/tenancy/lifecycle-service/domain/errors"
	"orbit/contexts/tenancy/lifecycle-service/domain/services"
	"orbit/contexts/tenancy/lifecycle-service/ports"
)

// Service is the resource lifecycle orchestrator. Every mutation is gated by
// the authorization engine, persisted first, then fanned out to all
// registered context provisioners. Create paths compensate on fan-out
// failure; update and delete paths are best-effort downstream.
type Service struct {
	Organizations ports.OrganizationRepository
	Spaces        ports.SpaceRepository
	Provisioners  []ports.ContextProvisioner
	Identity      ports.IdentityRoleService
	Outbox        ports.OutboxStore
	FanOut        fanout.Coordinator
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator

	// PublishEvents gates lifecycle event emission. Construction-time
	// configuration, never a process-global toggle.
	PublishEvents bool

	Logger *slog.Logger
}

// CreateOrganizationInput is transport-agnostic creation input.
type CreateOrganizationInput struct {
	Name            string
	Confidentiality entities.Confidentiality
}

// UpdateOrganizationInput is transport-agnostic update input. Owners are
// deliberately absent: the generic update path never touches them.
type UpdateOrganizationInput struct {
	ID              string
	Name            string
	Confidentiality entities.Confidentiality
}

// CreateOrganization persists a new organization owned by the caller and
// provisions its downstream contexts. If any provisioner fails, already
// provisioned contexts are de-provisioned best-effort and the persisted
// record is removed, so the caller sees either a fully provisioned
// organization or nothing.
func (s Service) CreateOrganization(ctx context.Context, auth entities.AuthenticationContext, input CreateOrganizationInput) (entities.Organization, error) {
	logger := ResolveLogger(s.Logger)
	name := strings.TrimSpace(input.Name)

	logger.Info("organization create started",
		"event", "tenancy_org_create_started",
		"module", "tenancy/lifecycle-service",
		"layer", "application",
		"org_name", name,
		"subject", auth.Subject,
	)

	if !entities.IsValidName(name) {
		return entities.Organization{}, fmt.Errorf("organization name %q: %w", name, domainerrors.ErrValidation)
	}
	if !input.Confidentiality.IsValid() {
		return entities.Organization{}, fmt.Errorf("confidentiality %q: %w", input.Confidentiality, domainerrors.ErrValidation)
	}
	if _, err := s.Organizations.GetOrganizationByName(ctx, name); err == nil {
		return entities.Organization{}, fmt.Errorf("organization %q: %w", name, domainerrors.ErrNameTaken)
	} else if !errors.Is(err, domainerrors.ErrOrganizationNotFound) {
		// Infrastructure failure during the availability check must not be
		// mistaken for an available name.
		return entities.Organization{}, fmt.Errorf("check organization name %q: %w: %v", name, domainerrors.ErrUnknown, err)
	}

	orgID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Organization{}, err
	}
	now := s.now()
	org := entities.Organization{
		ID:              orgID,
		Name:            name,
		Confidentiality: input.Confidentiality,
		Owners:          []string{auth.Subject},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Organizations.CreateOrganization(ctx, org); err != nil {
		logger.Error("organization persist failed",
			"event", "tenancy_org_create_persist_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"org_name", name,
			"error", err.Error(),
		)
		return entities.Organization{}, err
	}

	result := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.CreateOrganizationContext(ctx, auth, org)
	})
	if result.Failed() {
		s.compensateOrganizationCreate(ctx, auth, org)
		return entities.Organization{}, fmt.Errorf("create organization %q: %w: %v", name, domainerrors.ErrDownstream, result.Err)
	}

	s.emitEvent(ctx, eventOrganizationCreated, "organization", org.ID, organizationEventPayload(org))

	logger.Info("organization create completed",
		"event", "tenancy_org_create_completed",
		"module", "tenancy/lifecycle-service",
		"layer", "application",
		"org_id", org.ID,
		"org_name", org.Name,
	)
	return org, nil
}

// compensateOrganizationCreate undoes a partially provisioned creation:
// best-effort de-provisioning across all provisioners, then removal of the
// persisted record. Compensation failures are logged and swallowed so the
// attempt always covers every provisioner.
func (s Service) compensateOrganizationCreate(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization) {
	logger := ResolveLogger(s.Logger)

	undo := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.DeleteOrganizationContext(ctx, auth, org)
	})
	if undo.Failed() {
		logger.Error("organization create compensation left residue",
			"event", "tenancy_org_create_compensation_incomplete",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"org_id", org.ID,
			"failed_provisioners", undo.FailedProvisioners(),
			"error", undo.Err.Error(),
		)
	}
	if err := s.Organizations.DeleteOrganization(ctx, org.ID); err != nil {
		logger.Error("organization rollback delete failed",
			"event", "tenancy_org_create_rollback_delete_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"org_id", org.ID,
			"error", err.Error(),
		)
	}
}

// GetOrganization returns the organization if the caller may see it.
func (s Service) GetOrganization(ctx context.Context, auth entities.AuthenticationContext, orgID string) (entities.Organization, error) {
	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return entities.Organization{}, err
	}
	if !services.CanReadOrganization(auth, org) {
		return entities.Organization{}, fmt.Errorf("organization %q: %w", orgID, domainerrors.ErrForbidden)
	}
	return org, nil
}

// ListOrganizations returns the organizations visible to the caller.
func (s Service) ListOrganizations(ctx context.Context, auth entities.AuthenticationContext) ([]entities.Organization, error) {
	all, err := s.Organizations.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	if services.IsSuperuser(auth) {
		return all, nil
	}
	visible := make([]entities.Organization, 0, len(all))
	for _, org := range all {
		if services.CanReadOrganization(auth, org) {
			visible = append(visible, org)
		}
	}
	return visible, nil
}

// UpdateOrganization persists a confidentiality change and fans the update
// out to all provisioners. The name is immutable; owners are forcibly taken
// from the stored record. There is no rollback on downstream failure: the
// persisted change stands and the failure is surfaced.
func (s Service) UpdateOrganization(ctx context.Context, auth entities.AuthenticationContext, input UpdateOrganizationInput) (entities.Organization, error) {
	logger := ResolveLogger(s.Logger)

	stored, err := s.Organizations.GetOrganization(ctx, input.ID)
	if err != nil {
		return entities.Organization{}, err
	}
	if !services.IsOrgAdminOrOwner(auth, stored) {
		return entities.Organization{}, fmt.Errorf("update organization %q: %w", stored.Name, domainerrors.ErrForbidden)
	}
	if input.Name != "" && input.Name != stored.Name {
		return entities.Organization{}, fmt.Errorf("organization %q: %w", stored.Name, domainerrors.ErrRenamingForbidden)
	}
	if !input.Confidentiality.IsValid() {
		return entities.Organization{}, fmt.Errorf("confidentiality %q: %w", input.Confidentiality, domainerrors.ErrValidation)
	}

	updated := stored
	updated.Confidentiality = input.Confidentiality
	updated.UpdatedAt = s.now()

	if err := s.Organizations.UpdateOrganization(ctx, updated); err != nil {
		return entities.Organization{}, err
	}

	result := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.UpdateOrganizationContext(ctx, auth, updated)
	})
	if result.Failed() {
		logger.Error("organization update fan-out failed, persisted change stands",
			"event", "tenancy_org_update_fanout_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"org_id", updated.ID,
			"failed_provisioners", result.FailedProvisioners(),
			"error", result.Err.Error(),
		)
		return entities.Organization{}, fmt.Errorf("update organization %q: %w: %v", stored.Name, domainerrors.ErrDownstream, result.Err)
	}

	s.emitEvent(ctx, eventOrganizationUpdated, "organization", updated.ID, organizationEventPayload(updated))
	return updated, nil
}

// DeleteOrganization is superuser-only. Every contained space is deleted
// first through the regular space deletion path so its own de-provisioning
// runs, then organization-level contexts are de-provisioned best-effort, and
// finally the persisted record is removed. A flaky downstream never blocks
// deletion of the source-of-truth record.
func (s Service) DeleteOrganization(ctx context.Context, auth entities.AuthenticationContext, orgID string) error {
	logger := ResolveLogger(s.Logger)

	if !services.IsSuperuser(auth) {
		return fmt.Errorf("delete organization %q: %w", orgID, domainerrors.ErrForbidden)
	}
	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}

	logger.Info("organization delete started",
		"event", "tenancy_org_delete_started",
		"module", "tenancy/lifecycle-service",
		"layer", "application",
		"org_id", org.ID,
		"org_name", org.Name,
		"subject", auth.Subject,
	)

	spaces, err := s.Spaces.ListSpaces(ctx, org.ID)
	if err != nil {
		return err
	}
	for _, space := range spaces {
		if err := s.DeleteSpace(ctx, auth, org.ID, space.ID); err != nil {
			return fmt.Errorf("cascade delete space %q: %w", space.Name, err)
		}
	}

	undo := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.DeleteOrganizationContext(ctx, auth, org)
	})
	if undo.Failed() {
		logger.Error("organization de-provisioning incomplete, deleting record anyway",
			"event", "tenancy_org_delete_deprovision_incomplete",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"org_id", org.ID,
			"failed_provisioners", undo.FailedProvisioners(),
			"error", undo.Err.Error(),
		)
	}

	if err := s.Organizations.DeleteOrganization(ctx, org.ID); err != nil {
		return err
	}

	s.emitEvent(ctx, eventOrganizationDeleted, "organization", org.ID, organizationEventPayload(org))

	logger.Info("organization delete completed",
		"event", "tenancy_org_delete_completed",
		"module", "tenancy/lifecycle-service",
		"layer", "application",
		"org_id", org.ID,
		"org_name", org.Name,
	)
	return nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
