package httpadapter

import (
	"context"
	"log/slog"

	application "orbit/contexts/identity-access/principal-service/application"
	"orbit/contexts/identity-access/principal-service/domain/entities"
	httptransport "orbit/contexts/identity-access/principal-service/transport/http"
)

// Handler maps HTTP DTOs to the principal service.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) SubmitRequestHandler(ctx context.Context, principal entities.Principal, request httptransport.SubmitRequestRequest) (httptransport.MembershipRequestResponse, error) {
	created, err := h.Service.SubmitRequest(ctx, principal, application.SubmitRequestInput{
		Scope:        entities.RequestScope(request.Scope),
		Organization: request.Organization,
		Space:        request.Space,
		Role:         request.Role,
	})
	if err != nil {
		return httptransport.MembershipRequestResponse{}, err
	}
	return requestResponse(created), nil
}

func (h Handler) AcceptRequestHandler(ctx context.Context, principal entities.Principal, requestID string) (httptransport.MembershipRequestResponse, error) {
	accepted, err := h.Service.AcceptRequest(ctx, principal, requestID)
	if err != nil {
		return httptransport.MembershipRequestResponse{}, err
	}
	return requestResponse(accepted), nil
}

func (h Handler) RejectRequestHandler(ctx context.Context, principal entities.Principal, requestID string) (httptransport.MembershipRequestResponse, error) {
	rejected, err := h.Service.RejectRequest(ctx, principal, requestID)
	if err != nil {
		return httptransport.MembershipRequestResponse{}, err
	}
	return requestResponse(rejected), nil
}

func (h Handler) ListPendingRequestsHandler(ctx context.Context, principal entities.Principal, orgName string) (httptransport.ListRequestsResponse, error) {
	pending, err := h.Service.ListPendingRequests(ctx, principal, orgName)
	if err != nil {
		return httptransport.ListRequestsResponse{}, err
	}
	items := make([]httptransport.MembershipRequestResponse, 0, len(pending))
	for _, request := range pending {
		items = append(items, requestResponse(request))
	}
	return httptransport.ListRequestsResponse{Requests: items}, nil
}

func requestResponse(request entities.MembershipRequest) httptransport.MembershipRequestResponse {
	return httptransport.MembershipRequestResponse{
		ID:           request.ID,
		Subject:      request.Subject,
		Scope:        string(request.Scope),
		Organization: request.Organization,
		Space:        request.Space,
		Role:         request.Role,
		State:        string(request.State),
		CreatedAt:    request.CreatedAt,
		DecidedAt:    request.DecidedAt,
		DecidedBy:    request.DecidedBy,
	}
}
