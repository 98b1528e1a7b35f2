package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"foodapp/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is the envelope pushed to connected clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	UserID  string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	manager *Manager
}

// Done is closed when the connection goes away, letting callers tear
// down per-connection subscriptions.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Manager tracks connected clients by user ID. A user may hold several
// connections at once (phone and tablet).
type Manager struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]map[*Client]bool),
	}
}

// HandleConnection upgrades the request and pumps events until the peer
// disconnects.
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request, userID string) (*Client, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	client := &Client{
		UserID:  userID,
		conn:    conn,
		send:    make(chan []byte, 64),
		done:    make(chan struct{}),
		manager: m,
	}

	m.register(client)

	go client.writePump()
	go client.readPump()

	return client, nil
}

func (m *Manager) register(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.clients[c.UserID] == nil {
		m.clients[c.UserID] = make(map[*Client]bool)
	}
	m.clients[c.UserID][c] = true
	logger.Info("WebSocket connected: user=%s connections=%d", c.UserID, len(m.clients[c.UserID]))
}

func (m *Manager) unregister(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.clients[c.UserID]
	if !ok {
		return
	}
	if _, ok := conns[c]; ok {
		delete(conns, c)
		close(c.send)
		close(c.done)
		if len(conns) == 0 {
			delete(m.clients, c.UserID)
		}
		logger.Info("WebSocket disconnected: user=%s", c.UserID)
	}
}

// SendToUser delivers an event to every open connection of a user.
// Returns false when the user has no connection.
func (m *Manager) SendToUser(userID string, event Event) bool {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal websocket event: %v", err)
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	conns, ok := m.clients[userID]
	if !ok || len(conns) == 0 {
		return false
	}

	for c := range conns {
		select {
		case c.send <- data:
		default:
			// Slow consumer, drop the event rather than block everyone.
			logger.Warn("Dropping websocket event for user %s: buffer full", userID)
		}
	}
	return true
}

// Push wraps SendToUser so callers outside this package do not build
// Event values themselves.
func (m *Manager) Push(userID, eventType string, payload interface{}) bool {
	return m.SendToUser(userID, Event{Type: eventType, Payload: payload})
}

// IsOnline reports whether the user has at least one open connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID]) > 0
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Inbound frames are ignored, the socket is push-only. Reading
		// keeps ping/pong and close handling alive.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
