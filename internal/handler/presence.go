package handler

import "net/http"

type Presence interface {
	Online() []string
}

// Online lists the user IDs of relatives with an open event stream.
func Online(p Presence) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"online": p.Online()})
	}
}
