package websocket

import (
	"context"
	"errors"
	"log/slog"

	ws "github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/dukerupert/familytree/internal/canvas"
	"github.com/dukerupert/familytree/internal/metrics"
)

// CanvasSession owns one view controller for the lifetime of a connection.
// Each inbound event is applied and answered with the resulting transform.
type CanvasSession struct {
	conn       *ws.Conn
	controller *canvas.Controller
	logger     *slog.Logger
}

func NewCanvasSession(conn *ws.Conn, logger *slog.Logger) *CanvasSession {
	return &CanvasSession{
		conn:       conn,
		controller: canvas.New(),
		logger:     logger.With("component", "canvas"),
	}
}

type canvasReply struct {
	canvas.Transform
	Error string `json:"error,omitempty"`
}

// Run blocks until the connection closes or ctx is cancelled.
func (s *CanvasSession) Run(ctx context.Context) {
	metrics.WebsocketClients.WithLabelValues("canvas").Inc()
	defer metrics.WebsocketClients.WithLabelValues("canvas").Dec()
	defer s.conn.CloseNow()

	if err := wsjson.Write(ctx, s.conn, canvasReply{Transform: s.controller.Transform()}); err != nil {
		return
	}

	for {
		var ev canvas.Event
		if err := wsjson.Read(ctx, s.conn, &ev); err != nil {
			if ws.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				s.logger.Debug("canvas read failed", "error", err)
			}
			return
		}

		reply := canvasReply{}
		if err := s.controller.Apply(ev); err != nil {
			reply.Error = err.Error()
		}
		reply.Transform = s.controller.Transform()

		if err := wsjson.Write(ctx, s.conn, reply); err != nil {
			return
		}
	}
}
