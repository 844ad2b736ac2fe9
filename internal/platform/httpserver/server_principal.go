package httpserver

import (
	"encoding/json"
	"net/http"

	principalhttp "orbit/contexts/identity-access/principal-service/transport/http"
)

func (s *Server) handleSubmitMembershipRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	var req principalhttp.SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePrincipalError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.principal.Handler.SubmitRequestHandler(r.Context(), caller, req)
	if err != nil {
		writePrincipalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMembershipRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.principal.Handler.ListPendingRequestsHandler(r.Context(), caller, r.URL.Query().Get("organization"))
	if err != nil {
		writePrincipalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptMembershipRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.principal.Handler.AcceptRequestHandler(r.Context(), caller, r.PathValue("request_id"))
	if err != nil {
		writePrincipalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectMembershipRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.principal.Handler.RejectRequestHandler(r.Context(), caller, r.PathValue("request_id"))
	if err != nil {
		writePrincipalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
