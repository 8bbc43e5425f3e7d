// Package wsstream streams a completed query's trace entries to a
// websocket client. This is a demo feature; the request/response contract
// does not require it.
package wsstream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"medbridge/internal/logging"
)

// MessageType is the closed set of message kinds sent over the trace
// stream.
type MessageType string

const (
	MessageTypeTraceEntry MessageType = "trace_entry"
	MessageTypeComplete   MessageType = "complete"
	MessageTypeError      MessageType = "error"
	MessageTypePing       MessageType = "ping"
	MessageTypePong       MessageType = "pong"
)

// Message is the envelope written to the socket for every event.
type Message struct {
	Type      MessageType `json:"type"`
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Step      string      `json:"step,omitempty"`
	Action    string      `json:"action,omitempty"`
	Error     string      `json:"error,omitempty"`
	Payload   any         `json:"payload,omitempty"`
}

// Connection wraps one client's websocket connection and serializes
// writes to it (gorilla/websocket connections are not safe for
// concurrent writers).
type Connection struct {
	conn   *websocket.Conn
	logger logging.Logger
	writes chan Message
	done   chan struct{}
}

// NewConnection starts a write pump for conn and returns the Connection
// handle used to push trace events to it.
func NewConnection(conn *websocket.Conn, logger logging.Logger) *Connection {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	c := &Connection{
		conn:   conn,
		logger: logger,
		writes: make(chan Message, 32),
		done:   make(chan struct{}),
	}
	go c.pump()
	return c
}

func (c *Connection) pump() {
	defer close(c.done)
	for msg := range c.writes {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.Warn("trace stream write failed", "error", err.Error())
			return
		}
	}
}

// PublishTraceEntry sends one pipeline step to the client as it
// completes.
func (c *Connection) PublishTraceEntry(step, action string, traceErr string) {
	c.enqueue(Message{
		Type:      MessageTypeTraceEntry,
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Step:      step,
		Action:    action,
		Error:     traceErr,
	})
}

// PublishComplete sends the final aggregated response and closes the
// write pump once it has drained.
func (c *Connection) PublishComplete(payload any) {
	c.enqueue(Message{
		Type:      MessageTypeComplete,
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Payload:   payload,
	})
	close(c.writes)
}

// PublishError sends a terminal error message and closes the write pump.
func (c *Connection) PublishError(err error) {
	c.enqueue(Message{
		Type:      MessageTypeError,
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Error:     err.Error(),
	})
	close(c.writes)
}

func (c *Connection) enqueue(msg Message) {
	select {
	case c.writes <- msg:
	case <-c.done:
	}
}

// DecodePing reports whether raw is a ping envelope, parsing only the
// base fields before dispatching on type.
func DecodePing(raw json.RawMessage) (isPing bool, id string, err error) {
	var base struct {
		Type MessageType `json:"type"`
		ID   string      `json:"id"`
	}
	if err := json.Unmarshal(raw, &base); err != nil {
		return false, "", fmt.Errorf("failed to parse message: %w", err)
	}
	return base.Type == MessageTypePing, base.ID, nil
}
