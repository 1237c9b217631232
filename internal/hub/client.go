package hub

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client represents one live connection. It is the opaque handle the
// presence and membership tables store and compare; the identity it was
// authenticated as is resolved once at accept time and carried here.
type Client struct {
	id       string
	identity string
	conn     *websocket.Conn
	send     chan []byte
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new client for an upgraded connection.
func NewClient(conn *websocket.Conn, identity string) *Client {
	return &Client{
		id:       uuid.NewString(),
		identity: identity,
		conn:     conn,
		send:     make(chan []byte, 256),
	}
}

// ID returns the connection handle identifier.
func (c *Client) ID() string {
	return c.id
}

// Identity returns the user identity this connection was authenticated as.
func (c *Client) Identity() string {
	return c.identity
}

// Conn returns the underlying WebSocket connection.
func (c *Client) Conn() *websocket.Conn {
	return c.conn
}

// SendChan returns the send channel for the client.
func (c *Client) SendChan() <-chan []byte {
	return c.send
}

// Send queues a message to be sent to the client. Delivery is best effort:
// a client whose buffer is full is closed rather than blocking the sender.
func (c *Client) Send(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		c.closeLocked()
	}
}

// Close closes the client connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// IsClosed returns true if the client is closed.
func (c *Client) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
