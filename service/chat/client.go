package chat

import (
	"sync"

	"github.com/gorilla/websocket"

	"relaychat/logger"
)

// Client represents one session connected to the gateway.
// A single user may have multiple devices/connections, each maintained
// separately. UserID is empty until a join frame binds the connection;
// the Registry owns all UserID mutations.
type Client struct {
	ConnID string          // unique connection ID (unique within the local gateway)
	UserID string          // user ID, set on join
	WS     *websocket.Conn // WebSocket connection object
	Send   chan []byte     // outbound queue (consumed by a single writer goroutine)

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a new client connection object.
func NewClient(connID string, ws *websocket.Conn, sendQueueSize int) *Client {
	return &Client{
		ConnID: connID,
		WS:     ws,
		Send:   make(chan []byte, sendQueueSize),
	}
}

// Deliver enqueues payload for the writer goroutine. It never blocks:
// a closed client or a full queue (slow consumer) reports false and the
// payload is skipped for this session only.
func (c *Client) Deliver(payload []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

// Close marks the client closed and shuts the send queue exactly once.
// Safe against duplicate close signals.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// writePump drains Send onto the socket until Close; it owns all writes
// to the underlying connection.
func (c *Client) writePump() {
	defer func() {
		if err := c.WS.Close(); err != nil {
			logger.Debug("[writePump] close: " + err.Error())
		}
	}()
	for payload := range c.Send {
		if err := c.WS.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Infof("[writePump] write failed conn=%s err=%v", c.ConnID, err)
			return
		}
	}
}
