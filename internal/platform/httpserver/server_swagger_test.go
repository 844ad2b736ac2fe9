package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSwaggerDocIsServedWithoutAuth(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var doc struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not valid json: %v", err)
	}
	if doc.Swagger != "2.0" {
		t.Fatalf("unexpected swagger version %q", doc.Swagger)
	}
	if _, ok := doc.Paths["/organizations"]; !ok {
		t.Fatalf("doc.json lists no organizations path")
	}
}
