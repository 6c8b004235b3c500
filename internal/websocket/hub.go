package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub owns the presence directory: a process-local mapping from user ID to
// the one active client connection for that user. A fresh connection for a
// user replaces the previous one. The directory is rebuilt empty on restart;
// it is not shared across processes.
type Hub struct {
	// Registered clients, one per online user.
	clients map[uuid.UUID]*Client

	// Register requests from new connections.
	register chan *Client

	// Unregister requests from closing connections.
	unregister chan *Client

	// Mutex to protect concurrent access to the clients map.
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's processing loop. Every connect and disconnect
// broadcasts the full online set to all connected clients.
func (h *Hub) Run() {
	log.Println("WebSocket Hub started.")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.UserID]; ok && old != client {
				// A new connection replaces the previous one for this user.
				delete(h.clients, client.UserID)
				close(old.Send)
			}
			h.clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("WebSocket client registered for user %s", client.UserID)
			h.broadcastOnlineUsers()

		case client := <-h.unregister:
			h.mu.Lock()
			current, ok := h.clients[client.UserID]
			if ok && current == client {
				delete(h.clients, client.UserID)
				close(client.Send)
				h.mu.Unlock()
				log.Printf("WebSocket client unregistered for user %s", client.UserID)
				h.broadcastOnlineUsers()
			} else {
				// A stale connection that was already replaced; the current
				// entry stays.
				h.mu.Unlock()
			}
		}
	}
}

// Register hands a new client connection to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client connection from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// OnlineUsers returns a snapshot of the currently connected user IDs.
func (h *Hub) OnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// SendToUser pushes a payload to the given user's connection if one exists.
// An absent receiver is a normal no-op; the caller gets false and the message
// stays durable in the store.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[userID]
	if !ok {
		return false
	}

	select {
	case client.Send <- payload:
		return true
	default:
		log.Printf("Send buffer full for user %s, message dropped", userID)
		return false
	}
}

func (h *Hub) broadcastOnlineUsers() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id.String())
	}

	payload, err := MarshalEvent(EventOnlineUsers, ids)
	if err != nil {
		log.Printf("Failed to marshal online users event: %v", err)
		return
	}

	for _, client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			log.Printf("Online-set broadcast dropped for user %s", client.UserID)
		}
	}
}
