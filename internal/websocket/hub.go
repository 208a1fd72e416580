package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dukerupert/familytree/internal/metrics"
	"github.com/dukerupert/familytree/internal/model"
)

// Message is an event broadcast to every connected family member.
type Message struct {
	Type   string         `json:"type"`
	Entity string         `json:"entity"`
	Action string         `json:"action"`
	ID     int64          `json:"id,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

// NewMessage creates a Message with the Type field derived from entity and action.
func NewMessage(entity, action string, id int64, extra map[string]any) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}

// Hub fans events out to every connected client. A slow client misses
// messages rather than blocking the broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger.With("component", "hub"),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WebsocketClients.WithLabelValues("events").Set(float64(n))
	h.logger.Debug("client connected", "uid", c.uid, "clients", n)
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WebsocketClients.WithLabelValues("events").Set(float64(n))
	h.logger.Debug("client disconnected", "uid", c.uid, "clients", n)
}

// Online returns the distinct user IDs with an open event stream.
func (h *Hub) Online() []string {
	h.mu.RLock()
	seen := make(map[string]bool, len(h.clients))
	for c := range h.clients {
		if c.uid != "" {
			seen[c.uid] = true
		}
	}
	h.mu.RUnlock()

	uids := make([]string, 0, len(seen))
	for uid := range seen {
		uids = append(uids, uid)
	}
	slices.Sort(uids)
	return uids
}

func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("dropped message for slow client", "type", msg.Type)
		}
	}
}

// ProfileRegistered announces a newly joined relative.
func (h *Hub) ProfileRegistered(p *model.Profile) {
	h.Broadcast(NewMessage("profile", "registered", p.ID, map[string]any{
		"displayName": p.DisplayName,
	}))
}

// GalleryImageAdded announces a new photo in the gallery.
func (h *Hub) GalleryImageAdded(img *model.GalleryImage) {
	h.Broadcast(NewMessage("gallery_image", "created", img.ID, map[string]any{
		"title": img.Title,
		"src":   img.Src,
	}))
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
