package runtime

import (
	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
)

// Conversation is the message log owned by one chat loop. It only grows,
// except for PopLast after a failed exchange and Reset, which replaces the
// whole log. It is not safe for concurrent use.
type Conversation struct {
	messages []entity.Message
}

// NewConversation starts a log holding only the system prompt.
func NewConversation(system string) *Conversation {
	c := &Conversation{}
	c.Reset(system)
	return c
}

// Append adds msg to the end of the log.
func (c *Conversation) Append(msg entity.Message) {
	c.messages = append(c.messages, msg)
}

// PopLast removes and returns the newest message. ok is false when only the
// system prompt is left.
func (c *Conversation) PopLast() (msg entity.Message, ok bool) {
	if len(c.messages) <= 1 {
		return entity.Message{}, false
	}
	last := len(c.messages) - 1
	msg = c.messages[last]
	c.messages = c.messages[:last]
	return msg, true
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []entity.Message {
	return append([]entity.Message(nil), c.messages...)
}

// With returns a copy of the log followed by extra, leaving the log as is.
func (c *Conversation) With(extra ...entity.Message) []entity.Message {
	out := make([]entity.Message, 0, len(c.messages)+len(extra))
	out = append(out, c.messages...)
	return append(out, extra...)
}

// Reset replaces the log with a fresh one holding only system.
func (c *Conversation) Reset(system string) {
	c.messages = []entity.Message{entity.NewSystemMessage(system)}
}

// System returns the system prompt.
func (c *Conversation) System() entity.Message {
	return c.messages[0]
}

// Len is the number of messages, system prompt included.
func (c *Conversation) Len() int {
	return len(c.messages)
}
