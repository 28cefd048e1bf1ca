package ws

import (
	"encoding/json"
	"sync"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
)

// Event types pushed to clients.
const (
	EventTaskCreated = "task_created"
	EventTaskUpdated = "task_updated"
	EventTaskDeleted = "task_deleted"
)

// Event is a task-change notification delivered to the owning user's
// connections.
type Event struct {
	Type string       `json:"type"`
	Task *domain.Task `json:"task,omitempty"`
	ID   int64        `json:"id,omitempty"`
}

// Hub tracks open connections per user and fans task events out to them.
// A user may hold several connections (multiple tabs); all receive every
// event for that user.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.UserID]
	if !ok {
		conns = make(map[*Client]struct{})
		h.clients[c.UserID] = conns
	}
	conns[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.UserID)
	}
}

// Notify sends an event to every connection of the given user. Slow clients
// whose send buffer is full are skipped rather than blocking the caller.
func (h *Hub) Notify(userID int64, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("failed to marshal ws event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws send buffer full, dropping event", "user_id", userID)
		}
	}
}
