package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// Hub maintains the set of active dashboard Clients and fans events out to
// them. Registration, removal and publishing all go through the hub's lock,
// so the active set never observably contains a closed client.
type Hub struct {
	// clients is the active set. Value is always true; the map is used as a set.
	clients map[*Client]bool

	// mu protects the clients map
	mu sync.RWMutex

	// logger for the hub
	logger *slog.Logger
}

// Ensure Hub implements the EventBroadcaster interface.
var _ ports.EventBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		logger:  logger.With("component", "websocket_hub"),
	}
}

// Register adds a client to the active set. The client is part of the set
// before Register returns, so it cannot miss an event published afterwards.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client registered",
		"session_id", client.SessionID,
		"total_connections", total,
	)
}

// Unregister removes a client and closes its send channel. Calling it twice,
// or for a client that was never registered, is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, known := h.clients[client]
	if known {
		delete(h.clients, client)
	}
	h.mu.Unlock()

	if !known {
		return
	}

	client.CloseSend()

	h.logger.Info("client unregistered", "session_id", client.SessionID)
}

// Broadcast serializes the event once and delivers it to every client active
// at the moment of the call. Serialization failure is returned to the caller
// before any delivery. Per-client failures (full buffer) are logged and
// skipped; no retry, no queueing, and clients joining after the snapshot do
// not receive the event.
func (h *Hub) Broadcast(event domain.Event) error {
	frame, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Copy the client list to avoid holding the lock while sending
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	h.logger.Debug("broadcasting event",
		"event_type", event.Type,
		"client_count", len(clients),
	)

	for _, client := range clients {
		if !client.TrySend(frame) {
			h.logger.Warn("client send buffer full, skipping delivery",
				"session_id", client.SessionID,
				"event_type", event.Type,
			)
		}
	}

	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
