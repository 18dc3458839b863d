package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Message is what subscribers receive for every bracket change.
type Message struct {
	Type      string    `json:"type"`
	BracketID uuid.UUID `json:"bracket_id"`
	Payload   any       `json:"payload"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room uuid.UUID
}

// Hub fans bracket events out to the websocket clients watching that bracket.
type Hub struct {
	register   chan *client
	unregister chan *client
	done       chan struct{}

	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*client]struct{}

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger, allowedOrigins []string) *Hub {
	h := &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		rooms:      make(map[uuid.UUID]map[*client]struct{}),
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Run owns room membership until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for room, clients := range h.rooms {
				for c := range clients {
					close(c.send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[c.room]; !ok {
				h.rooms[c.room] = make(map[*client]struct{})
			}
			h.rooms[c.room][c] = struct{}{}
			count := len(h.rooms[c.room])
			h.mu.Unlock()
			h.logger.Debug("live client joined", "bracket_id", c.room, "clients", count)

		case c := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[c.room]; ok {
				if _, ok := clients[c]; ok {
					delete(clients, c)
					close(c.send)
					if len(clients) == 0 {
						delete(h.rooms, c.room)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("live client left", "bracket_id", c.room)
		}
	}
}

// Publish sends an event to everyone watching the bracket. Slow clients
// miss the message instead of blocking the caller.
func (h *Hub) Publish(bracketID uuid.UUID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[bracketID]
	if !ok {
		return
	}

	data, err := json.Marshal(Message{Type: event, BracketID: bracketID, Payload: payload})
	if err != nil {
		h.logger.Error("failed to encode live message", "bracket_id", bracketID, "error", err)
		return
	}

	for c := range clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("live client too slow, dropping message", "bracket_id", bracketID)
		}
	}
}

// Subscribers reports how many clients watch a bracket.
func (h *Hub) Subscribers(bracketID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[bracketID])
}

// ServeWS upgrades the request and subscribes the connection to a bracket.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, bracketID uuid.UUID) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "bracket_id", bracketID, "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), room: bracketID}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump only watches for the connection going away; clients never send anything useful.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("live connection closed", "bracket_id", c.room, "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
