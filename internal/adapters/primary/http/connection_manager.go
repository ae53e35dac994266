package http

import (
	"context"
	"sync"

	"github.com/deckfold/deckfold/internal/domain/ports"
)

// clientConn is a registered preview client
type clientConn struct {
	id   string
	send chan ports.UpdateEvent
}

// ClientHub tracks connected preview clients and fans events out to them
type ClientHub struct {
	mu         sync.RWMutex
	clients    map[string]*clientConn
	broadcast  chan ports.UpdateEvent
	register   chan *clientConn
	unregister chan string
	done       chan struct{}
}

// NewClientHub creates an empty hub
func NewClientHub() *ClientHub {
	return &ClientHub{
		clients:    make(map[string]*clientConn),
		broadcast:  make(chan ports.UpdateEvent, 256),
		register:   make(chan *clientConn),
		unregister: make(chan string),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until the context is cancelled
func (h *ClientHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn.id] = conn
			h.mu.Unlock()

		case id := <-h.unregister:
			h.mu.Lock()
			if conn, ok := h.clients[id]; ok {
				delete(h.clients, id)
				close(conn.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			for id, conn := range h.clients {
				select {
				case conn.send <- event:
				default:
					// Client is not draining its queue; drop it.
					close(conn.send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client to the hub
func (h *ClientHub) Register(conn *clientConn) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister removes a client from the hub
func (h *ClientHub) Unregister(id string) {
	select {
	case h.unregister <- id:
	case <-h.done:
	}
}

// Broadcast queues an event for all connected clients
func (h *ClientHub) Broadcast(event ports.UpdateEvent) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	}
}

// CloseAll disconnects every client
func (h *ClientHub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.clients {
		close(conn.send)
		delete(h.clients, id)
	}
}

// Count returns the number of connected clients
func (h *ClientHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
