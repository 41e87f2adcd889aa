package room

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/protocol"
)

// Client is a connection bound to one seat
type Client struct {
	// Seat is the seat the connection plays
	Seat int

	// send is a channel for sending messages to the client
	send chan protocol.ServerMessage

	// inbox holds decoded actions until the dealer asks the seat for one
	inbox chan protocol.ClientAction

	// close is closed when the server wants the transport to hang up
	close     chan struct{}
	closeOnce sync.Once

	// CloseReason contains the reason why the server closed the connection
	CloseReason string

	// gone is closed when the transport is disconnected
	gone     chan struct{}
	goneOnce sync.Once

	// drained is closed when the transport will write no more messages
	drained     chan struct{}
	drainedOnce sync.Once
}

// NewClient returns a new client object
func NewClient(seat int) *Client {
	return &Client{
		Seat:    seat,
		send:    make(chan protocol.ServerMessage, 256),
		inbox:   make(chan protocol.ClientAction, 16),
		close:   make(chan struct{}),
		gone:    make(chan struct{}),
		drained: make(chan struct{}),
	}
}

// Send sends a message to the client without blocking.
// Returns false if the client's buffer is full and the message was dropped.
func (c *Client) Send(msg protocol.ServerMessage) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).WithField("type", msg.Type.String()).Warn("send buffer full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan protocol.ServerMessage {
	return c.send
}

// String returns a traceable identifier for the seat
func (c *Client) String() string {
	return fmt.Sprintf("seat:%d", c.Seat)
}

// ReceivedMessage is called when the server receives a message from the connected client
func (c *Client) ReceivedMessage(msg protocol.ClientAction) bool {
	select {
	case c.inbox <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("inbox full, dropping message")
		return false
	}
}

// Close asks the transport to hang up
func (c *Client) Close(reason string) {
	c.closeOnce.Do(func() {
		c.CloseReason = reason
		close(c.close)
	})
}

// CloseChan is closed when the transport should hang up
func (c *Client) CloseChan() <-chan struct{} {
	return c.close
}

// disconnected marks the transport as gone
func (c *Client) disconnected() {
	c.goneOnce.Do(func() {
		close(c.gone)
	})
}

// Gone is closed once the transport has disconnected
func (c *Client) Gone() <-chan struct{} {
	return c.gone
}

// WriterStopped is called by the transport once it has stopped writing to the connection
func (c *Client) WriterStopped() {
	c.drainedOnce.Do(func() {
		close(c.drained)
	})
}

// Drained is closed once the transport has stopped writing
func (c *Client) Drained() <-chan struct{} {
	return c.drained
}
