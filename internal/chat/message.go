// Package chat holds the conversation and drives one turn at a time.
package chat

import (
	"triphelix-cli/internal/itinerary"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Kind string

const (
	KindPlainText    Kind = "plain-text"
	KindDateRequest  Kind = "date-request"
	KindRenderedHTML Kind = "rendered-html"
)

// Message is one conversation entry. Markdown, Itinerary and Table are
// only set on finalized assistant messages; Content is then sanitized HTML.
type Message struct {
	Role      Role
	Content   string
	Kind      Kind
	Markdown  string
	Itinerary bool
	Table     *itinerary.Table
	Failed    bool
}

// Conversation is an ordered, versioned message sequence. It is a value:
// Append, UpdateLast and Finalize return a new Conversation and never
// change what an earlier value observes.
type Conversation struct {
	msgs    []Message
	version uint64
}

func (c Conversation) Len() int {
	return len(c.msgs)
}

func (c Conversation) Version() uint64 {
	return c.version
}

// Messages returns a copy of the sequence.
func (c Conversation) Messages() []Message {
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

func (c Conversation) Last() (Message, bool) {
	if len(c.msgs) == 0 {
		return Message{}, false
	}
	return c.msgs[len(c.msgs)-1], true
}

func (c Conversation) Append(m Message) Conversation {
	msgs := make([]Message, len(c.msgs), len(c.msgs)+1)
	copy(msgs, c.msgs)
	return Conversation{msgs: append(msgs, m), version: c.version + 1}
}

// UpdateLast replaces the content, and the kind if given, of the final
// message when it is an assistant message. Otherwise it returns c and false.
func (c Conversation) UpdateLast(content string, kind ...Kind) (Conversation, bool) {
	last, ok := c.Last()
	if !ok || last.Role != RoleAssistant {
		return c, false
	}
	last.Content = content
	if len(kind) > 0 {
		last.Kind = kind[0]
	}
	return c.replaceLast(last), true
}

// Finalize replaces the whole trailing assistant message.
func (c Conversation) Finalize(m Message) (Conversation, bool) {
	last, ok := c.Last()
	if !ok || last.Role != RoleAssistant {
		return c, false
	}
	m.Role = RoleAssistant
	return c.replaceLast(m), true
}

func (c Conversation) replaceLast(m Message) Conversation {
	msgs := make([]Message, len(c.msgs))
	copy(msgs, c.msgs)
	msgs[len(msgs)-1] = m
	return Conversation{msgs: msgs, version: c.version + 1}
}
