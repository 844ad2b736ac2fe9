package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"orbit/contexts/identity-access/principal-service/domain/entities"
	domainerrors "orbit/contexts/identity-access/principal-service/domain/errors"
	"orbit/contexts/identity-access/principal-service/domain/services"
	"orbit/contexts/identity-access/principal-service/ports"
)

// Service resolves bearer tokens to principals and manages membership
// requests. Accepting a request assigns the canonical role through the
// identity provider.
type Service struct {
	Authenticator ports.TokenAuthenticator
	Requests      ports.RequestRepository
	Roles         ports.RoleAssigner
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

// Authenticate verifies the bearer token and returns the resolved principal.
func (s Service) Authenticate(ctx context.Context, token string) (entities.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return entities.Principal{}, fmt.Errorf("empty bearer token: %w", domainerrors.ErrInvalidToken)
	}
	return s.Authenticator.Authenticate(ctx, token)
}

// SubmitRequestInput is transport-agnostic membership request input. Space is
// empty for organization-scoped requests.
type SubmitRequestInput struct {
	Scope        entities.RequestScope
	Organization string
	Space        string
	Role         string
}

// SubmitRequest records a pending membership request for the calling
// principal. Requests are validated against the closed role set of their
// scope.
func (s Service) SubmitRequest(ctx context.Context, principal entities.Principal, input SubmitRequestInput) (entities.MembershipRequest, error) {
	org := strings.TrimSpace(input.Organization)
	space := strings.TrimSpace(input.Space)
	role := strings.ToUpper(strings.TrimSpace(input.Role))

	if org == "" {
		return entities.MembershipRequest{}, fmt.Errorf("organization required: %w", domainerrors.ErrValidation)
	}
	switch input.Scope {
	case entities.ScopeOrganization:
		if space != "" {
			return entities.MembershipRequest{}, fmt.Errorf("organization request must not name a space: %w", domainerrors.ErrValidation)
		}
		if !entities.IsOrganizationRole(role) {
			return entities.MembershipRequest{}, fmt.Errorf("role %q: %w", role, domainerrors.ErrUnknownRole)
		}
	case entities.ScopeSpace:
		if space == "" {
			return entities.MembershipRequest{}, fmt.Errorf("space required: %w", domainerrors.ErrValidation)
		}
		if !entities.IsSpaceRole(role) {
			return entities.MembershipRequest{}, fmt.Errorf("role %q: %w", role, domainerrors.ErrUnknownRole)
		}
	default:
		return entities.MembershipRequest{}, fmt.Errorf("scope %q: %w", input.Scope, domainerrors.ErrValidation)
	}

	requestID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.MembershipRequest{}, err
	}
	request := entities.MembershipRequest{
		ID:           requestID,
		Subject:      principal.Subject,
		Scope:        input.Scope,
		Organization: org,
		Space:        space,
		Role:         role,
		State:        entities.RequestPending,
		CreatedAt:    s.now(),
	}
	if err := s.Requests.CreateRequest(ctx, request); err != nil {
		return entities.MembershipRequest{}, err
	}

	resolveLogger(s.Logger).Info("membership request submitted",
		"event", "principal_request_submitted",
		"module", "identity-access/principal-service",
		"layer", "application",
		"request_id", request.ID,
		"subject", request.Subject,
		"org_name", request.Organization,
		"space_name", request.Space,
		"role", request.Role,
	)
	return request, nil
}

// AcceptRequest grants the requested role and marks the request accepted.
// Only superusers, organization admins/trustees, and space trustees of the
// request's scope may decide it. The role assignment happens before the state
// flip so a failed grant leaves the request pending and retryable.
func (s Service) AcceptRequest(ctx context.Context, principal entities.Principal, requestID string) (entities.MembershipRequest, error) {
	logger := resolveLogger(s.Logger)

	request, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return entities.MembershipRequest{}, err
	}
	if !services.CanDecideRequest(principal, request) {
		return entities.MembershipRequest{}, fmt.Errorf("accept request %q: %w", requestID, domainerrors.ErrForbidden)
	}
	if request.IsDecided() {
		return entities.MembershipRequest{}, fmt.Errorf("request %q: %w", requestID, domainerrors.ErrRequestDecided)
	}

	roleName := request.RoleName()
	if err := s.Roles.AssignRole(ctx, request.Subject, roleName); err != nil {
		logger.Error("membership role assignment failed",
			"event", "principal_request_assign_failed",
			"module", "identity-access/principal-service",
			"layer", "application",
			"request_id", request.ID,
			"role", roleName,
			"error", err.Error(),
		)
		return entities.MembershipRequest{}, err
	}

	request.State = entities.RequestAccepted
	request.DecidedAt = s.now()
	request.DecidedBy = principal.Subject
	if err := s.Requests.UpdateRequest(ctx, request); err != nil {
		return entities.MembershipRequest{}, err
	}

	logger.Info("membership request accepted",
		"event", "principal_request_accepted",
		"module", "identity-access/principal-service",
		"layer", "application",
		"request_id", request.ID,
		"subject", request.Subject,
		"role", roleName,
		"decided_by", principal.Subject,
	)
	return request, nil
}

// RejectRequest marks the request rejected without any role assignment.
func (s Service) RejectRequest(ctx context.Context, principal entities.Principal, requestID string) (entities.MembershipRequest, error) {
	request, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return entities.MembershipRequest{}, err
	}
	if !services.CanDecideRequest(principal, request) {
		return entities.MembershipRequest{}, fmt.Errorf("reject request %q: %w", requestID, domainerrors.ErrForbidden)
	}
	if request.IsDecided() {
		return entities.MembershipRequest{}, fmt.Errorf("request %q: %w", requestID, domainerrors.ErrRequestDecided)
	}

	request.State = entities.RequestRejected
	request.DecidedAt = s.now()
	request.DecidedBy = principal.Subject
	if err := s.Requests.UpdateRequest(ctx, request); err != nil {
		return entities.MembershipRequest{}, err
	}
	return request, nil
}

// ListPendingRequests returns the pending requests of an organization,
// restricted to principals who may decide them.
func (s Service) ListPendingRequests(ctx context.Context, principal entities.Principal, orgName string) ([]entities.MembershipRequest, error) {
	orgName = strings.TrimSpace(orgName)
	if orgName == "" {
		return nil, fmt.Errorf("organization required: %w", domainerrors.ErrValidation)
	}
	scopeCheck := entities.MembershipRequest{Scope: entities.ScopeOrganization, Organization: orgName}
	if !services.CanDecideRequest(principal, scopeCheck) {
		return nil, fmt.Errorf("list requests of %q: %w", orgName, domainerrors.ErrForbidden)
	}
	return s.Requests.ListPendingRequests(ctx, orgName)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
