package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/familytree/internal/auth"
)

// HandleEvents upgrades signed-in requests and streams hub events to them.
func HandleEvents(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept failed", "endpoint", "events", "error", err)
			return
		}

		NewClient(hub, conn, auth.ExternalUserID(r.Context())).Run(r.Context())
	}
}

// HandleCanvas returns an HTTP handler that runs a private canvas session
// on each upgraded connection.
func HandleCanvas(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept failed", "endpoint", "canvas", "error", err)
			return
		}

		NewCanvasSession(conn, logger).Run(r.Context())
	}
}
