package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/windoze95/recipefinder/internal/logger"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Outbound messages buffered per connection.
	sendBuffer = 64
)

// Client represents a single WebSocket connection.
type Client struct {
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
}

// NewClient wraps conn with a buffered outbound queue.
func NewClient(conn *websocket.Conn, sessionID string) *Client {
	return &Client{
		Conn:      conn,
		Send:      make(chan []byte, sendBuffer),
		SessionID: sessionID,
	}
}

// ReadPump reads messages from the WebSocket connection until it fails or
// the peer closes it. The provided handler is called for each incoming
// message on the ReadPump goroutine.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer c.Conn.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				logger.Get().Warn("unexpected websocket close",
					zap.String("session_id", c.SessionID),
					zap.Error(err),
				)
			}
			return
		}
		handler(c, message)
	}
}

// WritePump sends messages from the Send channel to the WebSocket connection.
// It also sends periodic pings to keep the connection alive. It returns when
// Send is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Session closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
