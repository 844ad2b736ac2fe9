package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	principal "orbit/contexts/identity-access/principal-service"
	principalentities "orbit/contexts/identity-access/principal-service/domain/entities"
	principalerrors "orbit/contexts/identity-access/principal-service/domain/errors"
	principalhttp "orbit/contexts/identity-access/principal-service/transport/http"
	lifecycle "orbit/contexts/tenancy/lifecycle-service"
	tenancyentities "orbit/contexts/tenancy/lifecycle-service/domain/entities"
	tenancyerrors "orbit/contexts/tenancy/lifecycle-service/domain/errors"
	tenancyhttp "orbit/contexts/tenancy/lifecycle-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	lifecycle lifecycle.Module
	principal principal.Module
}

func New(
	lifecycleModule lifecycle.Module,
	principalModule principal.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		lifecycle: lifecycleModule,
		principal: principalModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/organizations", s.handleCreateOrganization)
	s.mux.HandleFunc("GET /api/v1/organizations", s.handleListOrganizations)
	s.mux.HandleFunc("GET /api/v1/organizations/{org_id}", s.handleGetOrganization)
	s.mux.HandleFunc("PUT /api/v1/organizations/{org_id}", s.handleUpdateOrganization)
	s.mux.HandleFunc("DELETE /api/v1/organizations/{org_id}", s.handleDeleteOrganization)
	s.mux.HandleFunc("POST /api/v1/organizations/{org_id}/owners", s.handleAddOrganizationOwner)
	s.mux.HandleFunc("DELETE /api/v1/organizations/{org_id}/owners/{subject}", s.handleRemoveOrganizationOwner)

	s.mux.HandleFunc("POST /api/v1/organizations/{org_id}/spaces", s.handleCreateSpace)
	s.mux.HandleFunc("GET /api/v1/organizations/{org_id}/spaces", s.handleListSpaces)
	s.mux.HandleFunc("GET /api/v1/organizations/{org_id}/spaces/{space_id}", s.handleGetSpace)
	s.mux.HandleFunc("PUT /api/v1/organizations/{org_id}/spaces/{space_id}", s.handleUpdateSpace)
	s.mux.HandleFunc("DELETE /api/v1/organizations/{org_id}/spaces/{space_id}", s.handleDeleteSpace)
	s.mux.HandleFunc("POST /api/v1/organizations/{org_id}/spaces/{space_id}/owners", s.handleAddSpaceOwner)
	s.mux.HandleFunc("DELETE /api/v1/organizations/{org_id}/spaces/{space_id}/owners/{subject}", s.handleRemoveSpaceOwner)

	s.mux.HandleFunc("POST /api/v1/membership-requests", s.handleSubmitMembershipRequest)
	s.mux.HandleFunc("GET /api/v1/membership-requests", s.handleListMembershipRequests)
	s.mux.HandleFunc("POST /api/v1/membership-requests/{request_id}/accept", s.handleAcceptMembershipRequest)
	s.mux.HandleFunc("POST /api/v1/membership-requests/{request_id}/reject", s.handleRejectMembershipRequest)
}

// requirePrincipal resolves the Authorization bearer token into a principal.
// Every route is authenticated; there is no anonymous surface.
func (s *Server) requirePrincipal(w http.ResponseWriter, r *http.Request) (principalentities.Principal, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		writeTenancyError(w, http.StatusUnauthorized, "missing_bearer_token", "Authorization: Bearer token is required")
		return principalentities.Principal{}, false
	}

	resolved, err := s.principal.Service.Authenticate(r.Context(), strings.TrimSpace(token))
	if err != nil {
		writeTenancyError(w, http.StatusUnauthorized, "invalid_token", "bearer token could not be verified")
		return principalentities.Principal{}, false
	}
	return resolved, true
}

// authContext flattens a resolved principal into the caller identity the
// tenancy module consumes.
func authContext(p principalentities.Principal) tenancyentities.AuthenticationContext {
	auth := tenancyentities.AuthenticationContext{
		Subject:           p.Subject,
		Superuser:         p.Superuser,
		OrgPublicAccess:   p.OrgPublicAccess,
		SpacePublicAccess: p.SpacePublicAccess,
	}
	for _, grant := range p.OrganizationGrants {
		auth.OrganizationGrants = append(auth.OrganizationGrants, tenancyentities.OrganizationGrant{
			Organization: grant.Organization,
			Role:         tenancyentities.OrganizationRole(grant.Role),
		})
	}
	for _, grant := range p.SpaceGrants {
		auth.SpaceGrants = append(auth.SpaceGrants, tenancyentities.SpaceGrant{
			Organization: grant.Organization,
			Space:        grant.Space,
			Role:         tenancyentities.SpaceRole(grant.Role),
		})
	}
	return auth
}

func writeTenancyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tenancyerrors.ErrForbidden):
		writeTenancyError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, tenancyerrors.ErrOrganizationNotFound),
		errors.Is(err, tenancyerrors.ErrSpaceNotFound),
		errors.Is(err, tenancyerrors.ErrNotFound):
		writeTenancyError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, tenancyerrors.ErrNameTaken):
		writeTenancyError(w, http.StatusConflict, "name_taken", err.Error())
	case errors.Is(err, tenancyerrors.ErrRenamingForbidden):
		writeTenancyError(w, http.StatusUnprocessableEntity, "renaming_forbidden", err.Error())
	case errors.Is(err, tenancyerrors.ErrValidation):
		writeTenancyError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, tenancyerrors.ErrDownstream):
		writeTenancyError(w, http.StatusBadGateway, "downstream_failed", err.Error())
	default:
		writeTenancyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePrincipalDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, principalerrors.ErrInvalidToken):
		writePrincipalError(w, http.StatusUnauthorized, "invalid_token", err.Error())
	case errors.Is(err, principalerrors.ErrForbidden):
		writePrincipalError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, principalerrors.ErrRequestNotFound):
		writePrincipalError(w, http.StatusNotFound, "request_not_found", err.Error())
	case errors.Is(err, principalerrors.ErrRequestDecided):
		writePrincipalError(w, http.StatusConflict, "request_already_decided", err.Error())
	case errors.Is(err, principalerrors.ErrValidation),
		errors.Is(err, principalerrors.ErrUnknownRole):
		writePrincipalError(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		writePrincipalError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTenancyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tenancyhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writePrincipalError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, principalhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
