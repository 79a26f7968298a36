package room

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// sendBufferSize is the per-client outgoing message buffer
const sendBufferSize = 256

// Client is a single connection for a session. A session may have several
// clients open at once (same player in several tabs); all of them receive
// identical room messages.
type Client struct {
	// Conn is the underlying websocket connection. It is only touched by
	// the transport loops, never by the room.
	Conn *websocket.Conn

	// CloseError contains the reason why the connection was closed
	CloseError error

	sessionID string
	send      chan *Message
	close     chan string
}

// NewClient returns a new client for the given session identity
func NewClient(conn *websocket.Conn, sessionID string) *Client {
	return &Client{
		Conn:      conn,
		sessionID: sessionID,
		send:      make(chan *Message, sendBufferSize),
		close:     make(chan string, 1),
	}
}

// SessionID returns the stable session identity this connection belongs to
func (c *Client) SessionID() string {
	return c.sessionID
}

// Send queues a message for the client without blocking.
// False is returned if the client's buffer is full.
func (c *Client) Send(msg *Message) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of queued messages
func (c *Client) SendChan() <-chan *Message {
	return c.send
}

// CloseWithReason asks the transport to close the connection. It never blocks.
func (c *Client) CloseWithReason(reason string) {
	select {
	case c.close <- reason:
	default:
	}
}

// CloseChan returns a read-only channel that yields the close reason
func (c *Client) CloseChan() <-chan string {
	return c.close
}

// String returns a traceable identifier for the connection
func (c *Client) String() string {
	id := c.sessionID
	if len(id) > 8 {
		id = id[0:8]
	}

	return fmt.Sprintf("client:%s", id)
}
