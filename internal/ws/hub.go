package ws

import (
	"encoding/json"
	"sync"
)

// Client is one connected notification stream for an employee.
type Client struct {
	EmployeeID uint
	Role       string
	Send       chan []byte
	hub        *Hub
	mu         sync.Mutex
	closed     bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.hub != nil {
		c.hub.unregister(c)
	}
}

// Hub pushes freshly created notifications to connected employees. Polling
// stays the source of truth; this channel only shortens the wait for clients
// that keep a socket open.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	byEmployee map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byEmployee: make(map[uint]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
	if h.byEmployee[c.EmployeeID] == nil {
		h.byEmployee[c.EmployeeID] = make(map[*Client]struct{})
	}
	h.byEmployee[c.EmployeeID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	if m := h.byEmployee[c.EmployeeID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byEmployee, c.EmployeeID)
		}
	}
}

// PushToEmployee delivers payload to every open connection of one employee.
// Slow consumers are skipped rather than blocked on.
func (h *Hub) PushToEmployee(employeeID uint, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.mu.RLock()
	m := h.byEmployee[employeeID]
	clients := make([]*Client, 0, len(m))
	for c := range m {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
