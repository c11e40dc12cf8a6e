package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/events"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/observability"
)

// Hub tracks live sockets per user and pushes gallery events to them
type Hub struct {
	clients    map[*Client]bool
	users      map[uuid.UUID]map[*Client]bool
	broadcast  chan events.Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		users:      make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan events.Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.broadcastToUser(event)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	if h.users[client.userID] == nil {
		h.users[client.userID] = make(map[*Client]bool)
	}
	h.users[client.userID][client] = true
	observability.WSConnections.Inc()
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLocked(client)
}

// dropLocked closes the client's send channel once; callers hold mu
func (h *Hub) dropLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	delete(h.users[client.userID], client)
	if len(h.users[client.userID]) == 0 {
		delete(h.users, client.userID)
	}

	close(client.send)
	observability.WSConnections.Dec()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.dropLocked(client)
	}
}

func (h *Hub) broadcastToUser(event events.Event) {
	message, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.users[event.UserID] {
		select {
		case client.send <- message:
		default:
			// slow consumer
			h.dropLocked(client)
		}
	}
}

// join registers client; false once the hub has stopped
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// deliver queues a reply for one client; it is dropped if the client is gone or backed up
func (h *Hub) deliver(client *Client, message []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.clients[client] {
		return false
	}

	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}

// Publish queues event for the owner's sockets. It never blocks.
func (h *Hub) Publish(_ context.Context, event events.Event) error {
	select {
	case h.broadcast <- event:
		return nil
	default:
		return fmt.Errorf("websocket hub: broadcast queue full, dropped %s", event.Type)
	}
}

func (h *Hub) GetConnectedClients(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.users[userID])
}

var _ events.Publisher = (*Hub)(nil)
