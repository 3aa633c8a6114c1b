// Package websocket pushes live notifications to connected browsers: entity
// change events after each edit, and the saving/saved/error status feed the
// UI shows while a write is in flight.
package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Save status values carried by status events.
const (
	StatusSaving = "saving"
	StatusSaved  = "saved"
	StatusError  = "error"
)

// Event is a real-time notification broadcast to all clients.
type Event struct {
	Type   string `json:"type"`
	Entity string `json:"entity,omitempty"`
	Action string `json:"action,omitempty"`
	// Status is set on save_status events: saving, saved or error.
	Status string `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// ChangeEvent describes a completed edit of an entity.
func ChangeEvent(entity, action string) Event {
	return Event{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
	}
}

// SaveStatusEvent describes a write transitioning between saving, saved and
// error. Detail carries the error text on failure.
func SaveStatusEvent(status, detail string) Event {
	return Event{Type: "save_status", Status: status, Detail: detail}
}

// Hub maintains the set of active WebSocket clients and broadcasts events.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends an event to all connected clients.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
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
			// Client buffer full, drop rather than block the writer
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
