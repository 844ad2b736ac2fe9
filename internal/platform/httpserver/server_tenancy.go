package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"orbit/contexts/tenancy/lifecycle-service/domain/services"
	tenancyhttp "orbit/contexts/tenancy/lifecycle-service/transport/http"
)

func (s *Server) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	var req tenancyhttp.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenancyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.CreateOrganizationHandler(r.Context(), authContext(caller), req)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.ListOrganizationsHandler(r.Context(), authContext(caller))
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.GetOrganizationHandler(r.Context(), authContext(caller), r.PathValue("org_id"))
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	var req tenancyhttp.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenancyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.UpdateOrganizationHandler(r.Context(), authContext(caller), r.PathValue("org_id"), req)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.lifecycle.Handler.DeleteOrganizationHandler(r.Context(), authContext(caller), r.PathValue("org_id")); err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddOrganizationOwner(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	var req tenancyhttp.OwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenancyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.AddOrganizationOwnerHandler(r.Context(), authContext(caller), r.PathValue("org_id"), req)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveOrganizationOwner(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.RemoveOrganizationOwnerHandler(
		r.Context(),
		authContext(caller),
		r.PathValue("org_id"),
		r.PathValue("subject"),
	)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateSpace(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	var req tenancyhttp.CreateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenancyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.CreateSpaceHandler(r.Context(), authContext(caller), r.PathValue("org_id"), req)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	level, ok := resolvePermissionLevel(r.URL.Query().Get("level"))
	if !ok {
		writeTenancyError(w, http.StatusBadRequest, "invalid_level", "level must be one of GET, READ, WRITE, DELETE")
		return
	}

	resp, err := s.lifecycle.Handler.ListSpacesHandler(r.Context(), authContext(caller), r.PathValue("org_id"), level)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.GetSpaceHandler(
		r.Context(),
		authContext(caller),
		r.PathValue("org_id"),
		r.PathValue("space_id"),
	)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateSpace(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	var req tenancyhttp.UpdateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenancyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.UpdateSpaceHandler(
		r.Context(),
		authContext(caller),
		r.PathValue("org_id"),
		r.PathValue("space_id"),
		req,
	)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSpace(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	err := s.lifecycle.Handler.DeleteSpaceHandler(
		r.Context(),
		authContext(caller),
		r.PathValue("org_id"),
		r.PathValue("space_id"),
	)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSpaceOwner(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	var req tenancyhttp.OwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenancyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.AddSpaceOwnerHandler(
		r.Context(),
		authContext(caller),
		r.PathValue("org_id"),
		r.PathValue("space_id"),
		req,
	)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveSpaceOwner(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.RemoveSpaceOwnerHandler(
		r.Context(),
		authContext(caller),
		r.PathValue("org_id"),
		r.PathValue("space_id"),
		r.PathValue("subject"),
	)
	if err != nil {
		writeTenancyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func resolvePermissionLevel(raw string) (services.PermissionLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "":
		return services.PermissionRead, true
	case string(services.PermissionGet):
		return services.PermissionGet, true
	case string(services.PermissionRead):
		return services.PermissionRead, true
	case string(services.PermissionWrite):
		return services.PermissionWrite, true
	case string(services.PermissionDelete):
		return services.PermissionDelete, true
	default:
		return "", false
	}
}
