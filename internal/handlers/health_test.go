package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil)
	rec := httptest.NewRecorder()

	HealthHandler{}.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if !resp.Success {
		t.Fatalf("expected success envelope")
	}
	data := dataObject(t, resp)
	if data["status"] != "ok" {
		t.Fatalf("expected ok status got %v", data["status"])
	}
}
