package application

import (
	"context"
	"fmt"
	"strings"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	domainerrors "orbit/contexts/tenancy/lifecycle-service/domain/errors"
	"orbit/contexts/tenancy/lifecycle-service/domain/services"
	"orbit/contexts/tenancy/lifecycle-service/ports"
)

// Owner management is the only path that mutates owner lists; the generic
// update operations overwrite owners from the stored record.

// AddOrganizationOwner records subject as an additional owner of the
// organization and fans the update out to all provisioners.
func (s Service) AddOrganizationOwner(ctx context.Context, auth entities.AuthenticationContext, orgID string, subject string) (entities.Organization, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return entities.Organization{}, fmt.Errorf("owner subject: %w", domainerrors.ErrValidation)
	}

	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return entities.Organization{}, err
	}
	if !services.IsOrgAdminOrOwner(auth, org) {
		return entities.Organization{}, fmt.Errorf("add owner to %q: %w", org.Name, domainerrors.ErrForbidden)
	}
	if org.HasOwner(subject) {
		return org, nil
	}

	org.Owners = append(org.Owners, subject)
	org.UpdatedAt = s.now()
	if err := s.Organizations.UpdateOrganization(ctx, org); err != nil {
		return entities.Organization{}, err
	}
	return org, s.fanOutOrganizationUpdate(ctx, auth, org)
}

// RemoveOrganizationOwner removes subject from the owner list. The last
// owner cannot be removed.
func (s Service) RemoveOrganizationOwner(ctx context.Context, auth entities.AuthenticationContext, orgID string, subject string) (entities.Organization, error) {
	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return entities.Organization{}, err
	}
	if !services.IsOrgAdminOrOwner(auth, org) {
		return entities.Organization{}, fmt.Errorf("remove owner from %q: %w", org.Name, domainerrors.ErrForbidden)
	}
	if !org.HasOwner(subject) {
		return entities.Organization{}, fmt.Errorf("owner %q: %w", subject, domainerrors.ErrNotFound)
	}
	if len(org.Owners) == 1 {
		return entities.Organization{}, fmt.Errorf("remove last owner of %q: %w", org.Name, domainerrors.ErrValidation)
	}

	org.Owners = removeSubject(org.Owners, subject)
	org.UpdatedAt = s.now()
	if err := s.Organizations.UpdateOrganization(ctx, org); err != nil {
		return entities.Organization{}, err
	}
	return org, s.fanOutOrganizationUpdate(ctx, auth, org)
}

// AddSpaceOwner records subject as an additional owner of the space.
func (s Service) AddSpaceOwner(ctx context.Context, auth entities.AuthenticationContext, orgID string, spaceID string, subject string) (entities.Space, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return entities.Space{}, fmt.Errorf("owner subject: %w", domainerrors.ErrValidation)
	}

	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return entities.Space{}, err
	}
	space, err := s.Spaces.GetSpace(ctx, org.ID, spaceID)
	if err != nil {
		return entities.Space{}, err
	}
	if !services.IsSpaceAdminOrOwner(auth, org, space) {
		return entities.Space{}, fmt.Errorf("add owner to space %q: %w", space.Name, domainerrors.ErrForbidden)
	}
	if space.HasOwner(subject) {
		return space, nil
	}

	space.Owners = append(space.Owners, subject)
	space.UpdatedAt = s.now()
	if err := s.Spaces.UpdateSpace(ctx, space); err != nil {
		return entities.Space{}, err
	}
	return space, s.fanOutSpaceUpdate(ctx, auth, org, space)
}

// RemoveSpaceOwner removes subject from the space owner list. The last owner
// cannot be removed.
func (s Service) RemoveSpaceOwner(ctx context.Context, auth entities.AuthenticationContext, orgID string, spaceID string, subject string) (entities.Space, error) {
	org, err := s.Organizations.GetOrganization(ctx, orgID)
	if err != nil {
		return entities.Space{}, err
	}
	space, err := s.Spaces.GetSpace(ctx, org.ID, spaceID)
	if err != nil {
		return entities.Space{}, err
	}
	if !services.IsSpaceAdminOrOwner(auth, org, space) {
		return entities.Space{}, fmt.Errorf("remove owner from space %q: %w", space.Name, domainerrors.ErrForbidden)
	}
	if !space.HasOwner(subject) {
		return entities.Space{}, fmt.Errorf("owner %q: %w", subject, domainerrors.ErrNotFound)
	}
	if len(space.Owners) == 1 {
		return entities.Space{}, fmt.Errorf("remove last owner of space %q: %w", space.Name, domainerrors.ErrValidation)
	}

	space.Owners = removeSubject(space.Owners, subject)
	space.UpdatedAt = s.now()
	if err := s.Spaces.UpdateSpace(ctx, space); err != nil {
		return entities.Space{}, err
	}
	return space, s.fanOutSpaceUpdate(ctx, auth, org, space)
}

func (s Service) fanOutOrganizationUpdate(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization) error {
	result := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.UpdateOrganizationContext(ctx, auth, org)
	})
	if result.Failed() {
		return fmt.Errorf("update organization %q: %w: %v", org.Name, domainerrors.ErrDownstream, result.Err)
	}
	return nil
}

func (s Service) fanOutSpaceUpdate(ctx context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error {
	result := s.FanOut.Run(ctx, auth, s.Provisioners, func(ctx context.Context, auth entities.AuthenticationContext, p ports.ContextProvisioner) error {
		return p.UpdateSpaceContext(ctx, auth, org, space)
	})
	if result.Failed() {
		return fmt.Errorf("update space %q: %w: %v", space.Name, domainerrors.ErrDownstream, result.Err)
	}
	return nil
}

func removeSubject(owners []string, subject string) []string {
	filtered := make([]string, 0, len(owners))
	for _, owner := range owners {
		if owner != subject {
			filtered = append(filtered, owner)
		}
	}
	return filtered
}
