package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/quickdrawgame-go/internal/model"
)

const (
	// writeWait is how long a single write may take
	writeWait = 10 * time.Second
	// pongWait is how long to wait for a pong before giving up on the peer
	pongWait = 60 * time.Second
	// pingPeriod is the ping interval; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize bounds inbound messages
	maxMessageSize = 4096
	// sendBufferSize is the per-client outbound buffer
	sendBufferSize = 64
)

// Client is one websocket connection with its outbound buffer
type Client struct {
	id   model.PlayerID
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newClient(id model.PlayerID, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// close signals the write pump to flush and close the connection.
// Safe to call multiple times.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// trySend queues data for delivery without blocking. Reports false when
// the connection is closed or the buffer is full.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// writePump delivers buffered events to the peer and keeps the
// connection alive with pings. One per connection; exits when the send
// channel is closed or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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

// readPump reads inbound messages until the connection drops and hands
// each one to the dispatcher. Blocks; run on the handler goroutine.
func (c *Client) readPump(handle func(id model.PlayerID, data []byte)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		handle(c.id, data)
	}
}
