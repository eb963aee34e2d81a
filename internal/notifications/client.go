package notifications

import (
	"log/slog"
	"time"

	"nabta/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// writeTimeout bounds every write to the peer.
	writeTimeout = 10 * time.Second

	// pongTimeout is how long we wait for a pong before dropping the peer.
	pongTimeout = 60 * time.Second

	// pingInterval must stay below pongTimeout so the deadline keeps sliding.
	pingInterval = (pongTimeout * 9) / 10

	// maxInboundBytes caps a single frame from the peer.
	maxInboundBytes = 16384

	// sendBufferSize is the per-client outbound queue depth.
	sendBufferSize = 256
)

// WSHub is the minimal surface a hub exposes to its clients.
type WSHub interface {
	UnregisterClient(c *Client)
	Name() string
}

// Client owns one websocket connection on behalf of a hub. All writes go
// through the buffered Send channel so slow readers never block the hub.
type Client struct {
	Hub    WSHub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID uint

	// IncomingHandler, when set, receives every frame the peer sends.
	IncomingHandler func(*Client, []byte)
}

// NewClient wraps a freshly upgraded connection for the given hub.
func NewClient(hub WSHub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		UserID: userID,
		Send:   make(chan []byte, sendBufferSize),
	}
}

// ReadPump consumes frames from the peer until the connection dies, then
// unregisters the client. Run it on the connection's goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.UnregisterClient(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxInboundBytes)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		_, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read failed", "hub", c.Hub.Name(), "user_id", c.UserID, "error", err)
			}
			return
		}
		if c.IncomingHandler != nil {
			c.IncomingHandler(c, frame)
		}
	}
}

// WritePump drains the Send channel onto the wire and keeps the connection
// alive with periodic pings. Run it on its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend enqueues a message without ever blocking the caller. When the
// buffer is full the message is dropped and the client is told about the
// gap so it can re-fetch; sending on a closed channel is absorbed too.
func (c *Client) TrySend(message []byte) {
	defer func() {
		if r := recover(); r != nil {
			observability.WebSocketBackpressureDrops.WithLabelValues(c.Hub.Name(), "closed").Inc()
		}
	}()

	select {
	case c.Send <- message:
	default:
		observability.WebSocketBackpressureDrops.WithLabelValues(c.Hub.Name(), "full").Inc()
		slog.Warn("websocket buffer full, dropping message", "hub", c.Hub.Name(), "user_id", c.UserID)

		dropNotice := []byte(`{"type":"messages_dropped","payload":{"reason":"buffer_full"}}`)
		select {
		case c.Send <- dropNotice:
		default:
		}
	}
}
