package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dukerupert/familytree/internal/family"
)

func newMemberHandler(t *testing.T) *MemberHandler {
	t.Helper()
	r, err := family.New(family.Sample())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return NewMemberHandler(r)
}

func serve(h http.HandlerFunc, pattern, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func viewIDs(views []memberView) []string {
	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}

func TestMemberList(t *testing.T) {
	h := newMemberHandler(t)

	rec := serve(h.List, "GET /api/members", "/api/members")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got []memberView
	json.NewDecoder(rec.Body).Decode(&got)
	if len(got) != 10 {
		t.Errorf("members = %d, want 10", len(got))
	}
}

func TestMemberListByGeneration(t *testing.T) {
	h := newMemberHandler(t)

	rec := serve(h.List, "GET /api/members", "/api/members?generation=0")
	var got []memberView
	json.NewDecoder(rec.Body).Decode(&got)
	if diff := cmp.Diff([]string{"john-sr", "margaret"}, viewIDs(got)); diff != "" {
		t.Errorf("generation 0 mismatch (-want +got):\n%s", diff)
	}

	rec = serve(h.List, "GET /api/members", "/api/members?generation=7")
	got = nil
	json.NewDecoder(rec.Body).Decode(&got)
	if got == nil || len(got) != 0 {
		t.Errorf("generation 7 = %v, want empty array", got)
	}

	rec = serve(h.List, "GET /api/members", "/api/members?generation=abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMemberGet(t *testing.T) {
	h := newMemberHandler(t)

	rec := serve(h.Get, "GET /api/members/{id}", "/api/members/michael")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got memberDetail
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Member.Name != "Michael Smith" {
		t.Errorf("name = %q, want %q", got.Member.Name, "Michael Smith")
	}
	if got.GenerationLabel != "Grandchildren" {
		t.Errorf("label = %q, want %q", got.GenerationLabel, "Grandchildren")
	}
	if diff := cmp.Diff([]string{"john-jr"}, viewIDs(got.Parents)); diff != "" {
		t.Errorf("parents mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sarah", "emma"}, viewIDs(got.Siblings)); diff != "" {
		t.Errorf("siblings mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"thomas"}, viewIDs(got.Children)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if got.Member.Lifespan != "1988 - Present" {
		t.Errorf("lifespan = %q, want %q", got.Member.Lifespan, "1988 - Present")
	}
}

func TestMemberGetFounder(t *testing.T) {
	h := newMemberHandler(t)

	rec := serve(h.Get, "GET /api/members/{id}", "/api/members/john-sr")
	var raw map[string]json.RawMessage
	json.NewDecoder(rec.Body).Decode(&raw)
	if string(raw["siblings"]) != "[]" {
		t.Errorf("siblings = %s, want []", raw["siblings"])
	}
	if string(raw["parents"]) != "[]" {
		t.Errorf("parents = %s, want []", raw["parents"])
	}
}

func TestMemberGetNotFound(t *testing.T) {
	h := newMemberHandler(t)

	rec := serve(h.Get, "GET /api/members/{id}", "/api/members/nobody")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestTree(t *testing.T) {
	h := newMemberHandler(t)

	rec := serve(h.Tree, "GET /api/tree", "/api/tree")
	var got struct {
		Generations []treeRow `json:"generations"`
	}
	json.NewDecoder(rec.Body).Decode(&got)

	if len(got.Generations) != 4 {
		t.Fatalf("rows = %d, want 4", len(got.Generations))
	}
	for i, row := range got.Generations {
		if row.Offset != i*200 {
			t.Errorf("row %d offset = %d, want %d", i, row.Offset, i*200)
		}
	}
	if got.Generations[3].Label != "Great-Grandchildren" {
		t.Errorf("row 3 label = %q, want Great-Grandchildren", got.Generations[3].Label)
	}
}
