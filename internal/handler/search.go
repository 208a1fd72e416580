package handler

import (
	"net/http"

	"github.com/dukerupert/familytree/internal/family"
)

const (
	searchPrompt  = "prompt"
	searchEmpty   = "empty"
	searchResults = "results"
)

type searchResponse struct {
	State    string       `json:"state"`
	Query    string       `json:"query"`
	Results  []memberView `json:"results"`
	Featured []memberView `json:"featured,omitempty"`
}

// Search distinguishes a blank query (prompt with featured members) from a
// query with no matches.
func (h *MemberHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	if family.IsBlank(q) {
		writeJSON(w, http.StatusOK, searchResponse{
			State:    searchPrompt,
			Query:    q,
			Results:  []memberView{},
			Featured: toViews(h.registry.Featured()),
		})
		return
	}

	results := toViews(h.registry.Search(q))
	state := searchResults
	if len(results) == 0 {
		state = searchEmpty
	}
	writeJSON(w, http.StatusOK, searchResponse{State: state, Query: q, Results: results})
}

func (h *MemberHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, toViews(h.registry.Suggest(q)))
}
