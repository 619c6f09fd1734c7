package ws

import (
	"log/slog"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/mcoot/quickdrawgame-go/internal/broadcast"
	"github.com/mcoot/quickdrawgame-go/internal/model"
)

// Hub tracks live websocket clients and their group memberships. It is
// the transport-side implementation of the core's Broadcaster: groups
// are room memberships, deliveries are per-client buffered sends.
type Hub struct {
	mu      sync.RWMutex
	clients map[model.PlayerID]*Client
	groups  map[string]map[model.PlayerID]bool
	logger  *slog.Logger
}

// Ensure Hub implements Broadcaster
var _ broadcast.Broadcaster = (*Hub)(nil)

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.PlayerID]*Client),
		groups:  make(map[string]map[model.PlayerID]bool),
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// Send delivers an event to a single connection
func (h *Hub) Send(id model.PlayerID, event model.Event) {
	data, err := h.encode(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	client := h.clients[id]
	h.mu.RUnlock()

	if client != nil {
		h.push(client, data)
	}
}

// SendGroup delivers an event to every member of a named group
func (h *Hub) SendGroup(group string, event model.Event) {
	data, err := h.encode(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	var members []*Client
	for id := range h.groups[group] {
		if client := h.clients[id]; client != nil {
			members = append(members, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range members {
		h.push(client, data)
	}
}

// SendAll delivers an event to every connection
func (h *Hub) SendAll(event model.Event) {
	data, err := h.encode(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.push(client, data)
	}
}

// AddToGroup adds a connection to a named group
func (h *Hub) AddToGroup(id model.PlayerID, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.groups[group] == nil {
		h.groups[group] = make(map[model.PlayerID]bool)
	}
	h.groups[group][id] = true
}

// RemoveFromGroup removes a connection from a named group
func (h *Hub) RemoveFromGroup(id model.PlayerID, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.groups[group], id)
	if len(h.groups[group]) == 0 {
		delete(h.groups, group)
	}
}

// DropGroup removes a group and all its memberships
func (h *Hub) DropGroup(group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.groups, group)
}

// Close forcibly disconnects a connection
func (h *Hub) Close(id model.PlayerID) {
	h.mu.RLock()
	client := h.clients[id]
	h.mu.RUnlock()

	if client != nil {
		client.close()
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown disconnects every client
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[model.PlayerID]*Client)
	h.groups = make(map[string]map[model.PlayerID]bool)
	h.mu.Unlock()

	for _, client := range clients {
		client.close()
	}
	h.logger.Info("ws hub shut down", slog.Int("disconnected_clients", len(clients)))
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("ws client connected",
		slog.String("player_id", string(client.id)),
		slog.Int("total_clients", count))
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if h.clients[client.id] == client {
		delete(h.clients, client.id)
	}
	for group, members := range h.groups {
		delete(members, client.id)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
	count := len(h.clients)
	h.mu.Unlock()

	client.close()
	h.logger.Info("ws client disconnected",
		slog.String("player_id", string(client.id)),
		slog.Int("total_clients", count))
}

func (h *Hub) encode(event model.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ws failed to encode event",
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return nil, err
	}
	return data, nil
}

func (h *Hub) push(client *Client, data []byte) {
	if !client.trySend(data) {
		h.logger.Warn("ws message dropped",
			slog.String("player_id", string(client.id)))
	}
}
