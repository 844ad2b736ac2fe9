package httpadapter

import (
	"context"
	"log/slog"

	application "orbit/contexts/tenancy/lifecycle-service/application"
	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	"orbit/contexts/tenancy/lifecycle-service/domain/services"
	httptransport "orbit/contexts/tenancy/lifecycle-service/transport/http"
)

// Handler maps HTTP DTOs to the lifecycle orchestrator.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateOrganizationHandler(ctx context.Context, auth entities.AuthenticationContext, request httptransport.CreateOrganizationRequest) (httptransport.OrganizationResponse, error) {
	org, err := h.Service.CreateOrganization(ctx, auth, application.CreateOrganizationInput{
		Name:            request.Name,
		Confidentiality: entities.Confidentiality(request.Confidentiality),
	})
	if err != nil {
		return httptransport.OrganizationResponse{}, err
	}
	return organizationResponse(org), nil
}

func (h Handler) GetOrganizationHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string) (httptransport.OrganizationResponse, error) {
	org, err := h.Service.GetOrganization(ctx, auth, orgID)
	if err != nil {
		return httptransport.OrganizationResponse{}, err
	}
	return organizationResponse(org), nil
}

func (h Handler) ListOrganizationsHandler(ctx context.Context, auth entities.AuthenticationContext) (httptransport.ListOrganizationsResponse, error) {
	orgs, err := h.Service.ListOrganizations(ctx, auth)
	if err != nil {
		return httptransport.ListOrganizationsResponse{}, err
	}
	items := make([]httptransport.OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		items = append(items, organizationResponse(org))
	}
	return httptransport.ListOrganizationsResponse{Organizations: items}, nil
}

func (h Handler) UpdateOrganizationHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, request httptransport.UpdateOrganizationRequest) (httptransport.OrganizationResponse, error) {
	org, err := h.Service.UpdateOrganization(ctx, auth, application.UpdateOrganizationInput{
		ID:              orgID,
		Name:            request.Name,
		Confidentiality: entities.Confidentiality(request.Confidentiality),
	})
	if err != nil {
		return httptransport.OrganizationResponse{}, err
	}
	return organizationResponse(org), nil
}

func (h Handler) DeleteOrganizationHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string) error {
	return h.Service.DeleteOrganization(ctx, auth, orgID)
}

func (h Handler) AddOrganizationOwnerHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, request httptransport.OwnerRequest) (httptransport.OrganizationResponse, error) {
	org, err := h.Service.AddOrganizationOwner(ctx, auth, orgID, request.Subject)
	if err != nil {
		return httptransport.OrganizationResponse{}, err
	}
	return organizationResponse(org), nil
}

func (h Handler) RemoveOrganizationOwnerHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, subject string) (httptransport.OrganizationResponse, error) {
	org, err := h.Service.RemoveOrganizationOwner(ctx, auth, orgID, subject)
	if err != nil {
		return httptransport.OrganizationResponse{}, err
	}
	return organizationResponse(org), nil
}

func (h Handler) CreateSpaceHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, request httptransport.CreateSpaceRequest) (httptransport.SpaceResponse, error) {
	space, err := h.Service.CreateSpace(ctx, auth, orgID, application.CreateSpaceInput{
		Name:            request.Name,
		Confidentiality: entities.Confidentiality(request.Confidentiality),
	})
	if err != nil {
		return httptransport.SpaceResponse{}, err
	}
	return spaceResponse(space), nil
}

func (h Handler) GetSpaceHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, spaceID string) (httptransport.SpaceResponse, error) {
	space, err := h.Service.GetSpace(ctx, auth, orgID, spaceID)
	if err != nil {
		return httptransport.SpaceResponse{}, err
	}
	return spaceResponse(space), nil
}

func (h Handler) ListSpacesHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, level services.PermissionLevel) (httptransport.ListSpacesResponse, error) {
	spaces, err := h.Service.ListSpaces(ctx, auth, orgID, level)
	if err != nil {
		return httptransport.ListSpacesResponse{}, err
	}
	items := make([]httptransport.SpaceResponse, 0, len(spaces))
	for _, space := range spaces {
		items = append(items, spaceResponse(space))
	}
	return httptransport.ListSpacesResponse{Spaces: items}, nil
}

func (h Handler) UpdateSpaceHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, spaceID string, request httptransport.UpdateSpaceRequest) (httptransport.SpaceResponse, error) {
	space, err := h.Service.UpdateSpace(ctx, auth, orgID, application.UpdateSpaceInput{
		ID:              spaceID,
		Name:            request.Name,
		Confidentiality: entities.Confidentiality(request.Confidentiality),
		State:           entities.SpaceState(request.State),
	})
	if err != nil {
		return httptransport.SpaceResponse{}, err
	}
	return spaceResponse(space), nil
}

func (h Handler) DeleteSpaceHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, spaceID string) error {
	return h.Service.DeleteSpace(ctx, auth, orgID, spaceID)
}

func (h Handler) AddSpaceOwnerHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, spaceID string, request httptransport.OwnerRequest) (httptransport.SpaceResponse, error) {
	space, err := h.Service.AddSpaceOwner(ctx, auth, orgID, spaceID, request.Subject)
	if err != nil {
		return httptransport.SpaceResponse{}, err
	}
	return spaceResponse(space), nil
}

func (h Handler) RemoveSpaceOwnerHandler(ctx context.Context, auth entities.AuthenticationContext, orgID string, spaceID string, subject string) (httptransport.SpaceResponse, error) {
	space, err := h.Service.RemoveSpaceOwner(ctx, auth, orgID, spaceID, subject)
	if err != nil {
		return httptransport.SpaceResponse{}, err
	}
	return spaceResponse(space), nil
}

func organizationResponse(org entities.Organization) httptransport.OrganizationResponse {
	return httptransport.OrganizationResponse{
		ID:              org.ID,
		Name:            org.Name,
		Confidentiality: string(org.Confidentiality),
		Owners:          org.Owners,
		CreatedAt:       org.CreatedAt,
		UpdatedAt:       org.UpdatedAt,
	}
}

func spaceResponse(space entities.Space) httptransport.SpaceResponse {
	return httptransport.SpaceResponse{
		ID:              space.ID,
		OrganizationID:  space.OrganizationID,
		Name:            space.Name,
		Confidentiality: string(space.Confidentiality),
		State:           string(space.State),
		Owners:          space.Owners,
		CreatedAt:       space.CreatedAt,
		UpdatedAt:       space.UpdatedAt,
	}
}
