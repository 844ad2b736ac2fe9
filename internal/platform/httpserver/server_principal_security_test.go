package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	principalhttp "orbit/contexts/identity-access/principal-service/transport/http"
)

func TestMembershipRequestsRequireBearerToken(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/v1/membership-requests", "", `{"scope":"ORGANIZATION","organization":"acme","role":"ACCESS"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMembershipRequestAcceptanceFlow(t *testing.T) {
	server := newTestServer()

	requester := mintToken(t, "u1", false)
	rr := doJSON(t, server, http.MethodPost, "/api/v1/membership-requests", requester, `{"scope":"ORGANIZATION","organization":"acme","role":"ACCESS"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var request principalhttp.MembershipRequestResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &request); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	// A plain member of the organization cannot decide requests.
	member := mintToken(t, "m1", false, "acme_ACCESS")
	rr = doJSON(t, server, http.MethodPost, "/api/v1/membership-requests/"+request.ID+"/accept", member, "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("member accept expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	admin := mintToken(t, "a1", false, "acme_ADMIN")
	rr = doJSON(t, server, http.MethodPost, "/api/v1/membership-requests/"+request.ID+"/accept", admin, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("admin accept expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/api/v1/membership-requests/"+request.ID+"/accept", admin, "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("second decision expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}

	if !server.principal.Store.HasAssignment("u1", "acme_ACCESS") {
		t.Fatal("acceptance must assign the canonical role")
	}
}

func TestMembershipRequestValidation(t *testing.T) {
	server := newTestServer()
	requester := mintToken(t, "u1", false)

	rr := doJSON(t, server, http.MethodPost, "/api/v1/membership-requests", requester, `{"scope":"ORGANIZATION","organization":"acme","role":"NOT_A_ROLE"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown role expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}

	admin := mintToken(t, "a1", false, "acme_ADMIN")
	rr = doJSON(t, server, http.MethodGet, "/api/v1/membership-requests?organization=globex", admin, "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("foreign admin list expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}
