package testutil

import (
	"sync"

	"github.com/escapetogether/escape-together/internal/protocol"
)

// SimpleClient is a minimal in-memory ClientInterface implementation
// that records every message sent to it.
type SimpleClient struct {
	ID   string
	name string
	room string

	mu       sync.Mutex
	messages []*protocol.Message
	closed   bool
}

// NewSimpleClient creates a SimpleClient with the given identity.
func NewSimpleClient(id, name string) *SimpleClient {
	return &SimpleClient{ID: id, name: name}
}

func (c *SimpleClient) GetID() string { return c.ID }

func (c *SimpleClient) GetName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *SimpleClient) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

func (c *SimpleClient) GetRoom() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *SimpleClient) SetRoom(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room = code
}

func (c *SimpleClient) SendMessage(msg *protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *SimpleClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Messages returns a copy of all messages received so far.
func (c *SimpleClient) Messages() []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*protocol.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessagesOfType returns received messages matching the given type.
func (c *SimpleClient) MessagesOfType(msgType protocol.MessageType) []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*protocol.Message
	for _, msg := range c.messages {
		if msg.Type == msgType {
			out = append(out, msg)
		}
	}
	return out
}

// LastMessage returns the most recent message, or nil if none.
func (c *SimpleClient) LastMessage() *protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// Reset clears all recorded messages.
func (c *SimpleClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// Closed reports whether Close was called.
func (c *SimpleClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
