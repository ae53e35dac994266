package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/deckfold/deckfold/internal/domain/ports"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// wsClient pumps update events from the hub to one browser connection
type wsClient struct {
	id     string
	conn   *websocket.Conn
	send   chan ports.UpdateEvent
	hub    *ClientHub
	logger *HTTPLogger
}

// handleWebSocket upgrades the connection and registers the client
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.isValidOrigin(r)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		id:     uuid.New().String(),
		conn:   conn,
		send:   make(chan ports.UpdateEvent, 256),
		hub:    s.hub,
		logger: s.logger,
	}

	s.hub.Register(&clientConn{id: client.id, send: client.send})

	go client.writePump()
	go client.readPump()

	event := ports.UpdateEvent{
		Type:      "connected",
		Timestamp: time.Now(),
		Data:      map[string]string{"client": client.id},
	}
	select {
	case client.send <- event:
	default:
	}
}

// readPump discards client messages and detects disconnects
func (c *wsClient) readPump() {
	defer func() {
		c.hub.Unregister(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket connection error: %v", err)
			}
			return
		}
	}
}

// writePump forwards hub events to the connection and keeps it alive
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastReload sends a reload event to all connected clients
func (s *Server) BroadcastReload() {
	_ = s.NotifyClients(ports.UpdateEvent{
		Type:      ports.EventTypeReload,
		Timestamp: time.Now(),
	})
}

// isValidOrigin validates websocket origins against the configured CORS
// origins; development mode also accepts any localhost origin.
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // same-origin request
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		s.logger.Warn("websocket rejected: unparseable origin %q", origin)
		return false
	}

	if s.config.IsDevelopment() {
		host := originURL.Hostname()
		if host == "localhost" || host == "127.0.0.1" || host == "::1" {
			return true
		}
	}

	for _, allowed := range s.config.GetCORSOrigins() {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}

	s.logger.Warn("websocket rejected: origin %q not allowed", origin)
	return false
}
