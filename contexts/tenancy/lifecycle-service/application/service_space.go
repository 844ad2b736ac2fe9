package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	domainerrors "orbit/contexts/tenancy/lifecycle-service/domain/errors"
	"orbit/contexts/tenancy/lifecycle-service/domain/services"
	"orbit/contexts/tenancy/lifecycle-service/ports"
)

// CreateSpaceInput is transport-agnostic creation input.
type CreateSpaceInput struct {
	Name            string
	Confidentiality entities.Confidentiality
}

// UpdateSpaceInput is transport-agnostic update input. Owners are absent by
// design; the generic update path never touches them.
type UpdateSpaceInput struct {
	ID              string
	Name            string
	Confidentiality entities.Confidentiality
	State           entities.SpaceState
}

// CreateSpace persists a new space owned by the caller, provisions its
// downstream contexts, and on success assigns the caller every space-scoped
// role so the creator has full operational access immediately. Provisioning
// failure triggers the same compensation as organization creation.
func (s Service) CreateSpace(ctx context.Context, auth entities.AuthenticationContext, orgID string, input CreateSpaceInput) (entities.Space, error) {
	logger := ResolveLogger(s.Logger)
	name := strings.TrimSpace(input.Name)

	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return entities.Space{}, err
	}
	if !services.IsOrgAdminOrOwner(auth, org) {
		return entities.Space{}, fmt.Errorf("create space in %q: %w", org.Name, domainerrors.ErrForbidden)
	}

	logger.Info("space create started",
		"event", "tenancy_space_create_started",
		"module", "tenancy/lifecycle-service",
		"layer", "application",
		"org_name", org.Name,
		"space_name", name,
		"subject", auth.Subject,
	)

	if !entities.IsValidName(name) {
		return entities.Space{}, fmt.Errorf("space name %q: %w", name, domainerrors.ErrValidation)
	}
	if !input.Confidentiality.IsValid() {
		return entities.Space{}, fmt.Errorf("confidentiality %q: %w", input.Confidentiality, domainerrors.ErrValidation)
	}
	if _, err := s.Spaces.GetSpaceByName(ctx, org.ID, name); err == nil {
		return entities.Space{}, fmt.Errorf("space %q in %q: %w", name, org.Name, domainerrors.ErrNameTaken)
	} else if !errors.Is(err, domainerrors.ErrSpaceNotFound) {
		return entities.Space{}, fmt.Errorf("check space name %q in %q: %w: %v", name, org.Name, domainerrors.ErrUnknown, err)
	}

	spaceID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Space{}, err
	}
	now := s.now()
	space := entities.Space{
		ID:              spaceID,
		OrganizationID:  org.ID,
		Name:            name,
		Confidentiality: input.Confidentiality,
		State:           entities.SpaceStateOpen,
		Owners:          []string{auth.Subject},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Spaces.CreateSpace(ctx, space); err != nil {
		logger.Error("space persist failed",
			"event", "tenancy_space_create_persist_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"org_name", org.Name,
			"space_name", name,
			"error", err.Error(),
		)
		return entities.Space{}, err
	}

	result := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.CreateSpaceContext(ctx, auth, org, space)
	})
	if result.Failed() {
		s.compensateSpaceCreate(ctx, auth, org, space)
		return entities.Space{}, fmt.Errorf("create space %q: %w: %v", name, domainerrors.ErrDownstream, result.Err)
	}

	s.grantCreatorSpaceRoles(ctx, auth, org, space)
	s.emitEvent(ctx, eventSpaceCreated, "space", space.ID, spaceEventPayload(org, space))

	logger.Info("space create completed",
		"event", "tenancy_space_create_completed",
		"module", "tenancy/lifecycle-service",
		"layer", "application",
		"org_name", org.Name,
		"space_id", space.ID,
		"space_name", space.Name,
	)
	return space, nil
}

func (s Service) compensateSpaceCreate(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) {
	logger := ResolveLogger(s.Logger)

	undo := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.DeleteSpaceContext(ctx, auth, org, space)
	})
	if undo.Failed() {
		logger.Error("space create compensation left residue",
			"event", "tenancy_space_create_compensation_incomplete",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"space_id", space.ID,
			"failed_provisioners", undo.FailedProvisioners(),
			"error", undo.Err.Error(),
		)
	}
	if err := s.Spaces.DeleteSpace(ctx, org.ID, space.ID); err != nil {
		logger.Error("space rollback delete failed",
			"event", "tenancy_space_create_rollback_delete_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"space_id", space.ID,
			"error", err.Error(),
		)
	}
}

// grantCreatorSpaceRoles assigns the creator every space-scoped role through
// the identity provider. Failures leave the creator with ownership metadata
// only and are logged, not surfaced: the space itself is fully provisioned.
func (s Service) grantCreatorSpaceRoles(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) {
	if s.Identity == nil {
		return
	}
	logger := ResolveLogger(s.Logger)
	for _, role := range entities.SpaceRoles() {
		roleName := entities.SpaceRoleName(org.Name, space.Name, role)
		if err := s.Identity.AssignRole(ctx, auth, auth.Subject, roleName); err != nil {
			logger.Warn("creator role assignment failed",
				"event", "tenancy_space_creator_role_assign_failed",
				"module", "tenancy/lifecycle-service",
				"layer", "application",
				"space_id", space.ID,
				"role", roleName,
				"error", err.Error(),
			)
		}
	}
}

// GetSpace returns the space if the caller may see it. Admins and owners see
// spaces in any state; everyone else goes through the access check, which
// hides spaces flagged for deletion.
func (s Service) GetSpace(ctx context.Context, auth entities.AuthenticationContext, orgID string, spaceID string) (entities.Space, error) {
	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return entities.Space{}, err
	}
	space, err := s.Spaces.GetSpace(ctx, org.ID, spaceID)
	if err != nil {
		return entities.Space{}, err
	}
	if services.IsSpaceAdminOrOwner(auth, org, space) || services.CanAccessSpace(auth, org.Name, space) {
		return space, nil
	}
	return entities.Space{}, fmt.Errorf("space %q: %w", spaceID, domainerrors.ErrForbidden)
}

// ListSpaces returns the spaces of an organization visible to the caller at
// the requested permission level, applying the coarse-GET fast lanes for
// superusers and org admins.
func (s Service) ListSpaces(ctx context.Context, auth entities.AuthenticationContext, orgID string, level services.PermissionLevel) ([]entities.Space, error) {
	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	spaces, err := s.Spaces.ListSpaces(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	return services.ListVisibleSpaces(auth, org, spaces, level), nil
}

// UpdateSpace persists confidentiality/state changes and fans the update out
// to all provisioners. Renaming is rejected for every caller including
// superusers; owners are forcibly taken from the stored record; state
// changes require org admin, space owner, or superuser. No rollback on
// downstream failure.
func (s Service) UpdateSpace(ctx context.Context, auth entities.AuthenticationContext, orgID string, input UpdateSpaceInput) (entities.Space, error) {
	logger := ResolveLogger(s.Logger)

	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return entities.Space{}, err
	}
	stored, err := s.Spaces.GetSpace(ctx, org.ID, input.ID)
	if err != nil {
		return entities.Space{}, err
	}
	if !services.IsSpaceAdminOrOwner(auth, org, stored) {
		return entities.Space{}, fmt.Errorf("update space %q: %w", stored.Name, domainerrors.ErrForbidden)
	}
	if input.Name != "" && input.Name != stored.Name {
		return entities.Space{}, fmt.Errorf("space %q: %w", stored.Name, domainerrors.ErrRenamingForbidden)
	}
	if !input.Confidentiality.IsValid() {
		return entities.Space{}, fmt.Errorf("confidentiality %q: %w", input.Confidentiality, domainerrors.ErrValidation)
	}
	if !input.State.IsValid() {
		return entities.Space{}, fmt.Errorf("space state %q: %w", input.State, domainerrors.ErrValidation)
	}
	if input.State != stored.State && !services.CanSetSpaceState(auth, org, stored) {
		return entities.Space{}, fmt.Errorf("set state of space %q: %w", stored.Name, domainerrors.ErrForbidden)
	}

	updated := stored
	updated.Confidentiality = input.Confidentiality
	updated.State = input.State
	updated.UpdatedAt = s.now()

	if err := s.Spaces.UpdateSpace(ctx, updated); err != nil {
		return entities.Space{}, err
	}

	result := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.UpdateSpaceContext(ctx, auth, org, updated)
	})
	if result.Failed() {
		logger.Error("space update fan-out failed, persisted change stands",
			"event", "tenancy_space_update_fanout_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"space_id", updated.ID,
			"failed_provisioners", result.FailedProvisioners(),
			"error", result.Err.Error(),
		)
		return entities.Space{}, fmt.Errorf("update space %q: %w: %v", stored.Name, domainerrors.ErrDownstream, result.Err)
	}

	s.emitEvent(ctx, eventSpaceUpdated, "space", updated.ID, spaceEventPayload(org, updated))
	return updated, nil
}

// DeleteSpace is superuser-only. Downstream contexts are de-provisioned
// best-effort, a deletion event is emitted (non-fatal on failure), and the
// persisted record is removed last. De-provisioning failure never blocks
// record deletion.
func (s Service) DeleteSpace(ctx context.Context, auth entities.AuthenticationContext, orgID string, spaceID string) error {
	logger := ResolveLogger(s.Logger)

	if !services.IsSuperuser(auth) {
		return fmt.Errorf("delete space %q: %w", spaceID, domainerrors.ErrForbidden)
	}
	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	space, err := s.Spaces.GetSpace(ctx, org.ID, spaceID)
	if err != nil {
		return err
	}

	logger.Info("space delete started",
		"event", "tenancy_space_delete_started",
		"module", "tenancy/lifecycle-service",
		"layer", "application",
		"org_name", org.Name,
		"space_id", space.ID,
		"space_name", space.Name,
		"subject", auth.Subject,
	)

	undo := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.DeleteSpaceContext(ctx, auth, org, space)
	})
	if undo.Failed() {
		logger.Error("space de-provisioning incomplete, deleting record anyway",
			"event", "tenancy_space_delete_deprovision_incomplete",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"space_id", space.ID,
			"failed_provisioners", undo.FailedProvisioners(),
			"error", undo.Err.Error(),
		)
	}

	s.emitEvent(ctx, eventSpaceDeleted, "space", space.ID, spaceEventPayload(org, space))

	if err := s.Spaces.DeleteSpace(ctx, org.ID, space.ID); err != nil {
		return err
	}

	logger.Info("space delete completed",
		"event", "tenancy_space_delete_completed",
		"module", "tenancy/lifecycle-service",
		"layer", "application",
		"org_name", org.Name,
		"space_id", space.ID,
		"space_name", space.Name,
	)
	return nil
}
