package handler

import "net/http"

type ConnectionCounter interface {
	ClientCount() int
}

// Health reports liveness and the number of open event streams.
func Health(c ConnectionCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"connections": c.ClientCount(),
		})
	}
}
