package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fixedCount int

func (n fixedCount) ClientCount() int { return int(n) }

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(fixedCount(3))(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["connections"] != float64(3) {
		t.Errorf("connections = %v, want 3", body["connections"])
	}
}
