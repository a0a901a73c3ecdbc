package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"triphelix-cli/internal/api"
	"triphelix-cli/internal/service"
	"triphelix-cli/internal/stream"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrTurnInFlight = errors.New("a response is still streaming")
	ErrInvalidDate  = errors.New("date must be YYYY-MM-DD")
)

// User-visible texts that replace the assistant placeholder when a turn
// fails.
const (
	NoResponseText = "No response received from the travel assistant."
	FallbackText   = "Sorry, something went wrong."
)

// DateLayout is the ISO-8601 calendar date accepted for date requests.
const DateLayout = "2006-01-02"

// ParseDate validates a date-request value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Controller owns the conversation of one session and allows a single
// turn in flight. While a turn is open only the trailing assistant message
// changes.
type Controller struct {
	mu        sync.Mutex
	conv      Conversation
	busy      bool
	sessionID string
}

// NewController starts a conversation. An empty session id gets a random
// UUID.
func NewController(sessionID string) *Controller {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &Controller{sessionID: sessionID}
}

func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Conversation returns the current snapshot. Later changes do not affect it.
func (c *Controller) Conversation() Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv
}

// Submit opens a turn: it appends the user message and an empty assistant
// placeholder. Nothing is appended when the turn is rejected.
func (c *Controller) Submit(content string, kind Kind) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyMessage
	}
	if kind == "" {
		kind = KindPlainText
	}
	if kind == KindDateRequest {
		if _, err := ParseDate(content); err != nil {
			return err
		}
		content = strings.TrimSpace(content)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrTurnInFlight
	}
	c.conv = c.conv.
		Append(Message{Role: RoleUser, Content: content, Kind: kind}).
		Append(Message{Role: RoleAssistant, Kind: KindPlainText})
	c.busy = true
	slog.Debug("Turn started", "session", c.sessionID, "kind", kind, "messages", c.conv.Len())
	return nil
}

// Stream shows the accumulated partial answer in the open message.
func (c *Controller) Stream(state stream.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.busy {
		return
	}
	c.conv, _ = c.conv.UpdateLast(state.Text, KindPlainText)
}

// Complete runs the completion pipeline on the full answer and closes the
// turn.
func (c *Controller) Complete(raw string) service.Result {
	res := service.Finalize(raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.busy {
		return res
	}
	c.busy = false

	if strings.TrimSpace(raw) == "" {
		c.conv, _ = c.conv.Finalize(Message{Content: NoResponseText, Kind: KindPlainText, Failed: true})
		slog.Warn("Empty response", "session", c.sessionID)
		return res
	}

	c.conv, _ = c.conv.Finalize(Message{
		Content:   res.HTML,
		Kind:      KindRenderedHTML,
		Markdown:  res.Normalized,
		Itinerary: res.Itinerary,
		Table:     res.Table,
	})
	slog.Debug("Turn completed", "session", c.sessionID, "rows", res.Table.Len(), "itinerary", res.Itinerary)
	return res
}

// Fail closes the turn with a user-visible error in place of any partial
// answer.
func (c *Controller) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.busy {
		return
	}
	c.busy = false

	text := FallbackText
	if errors.Is(err, stream.ErrNoBody) {
		text = NoResponseText
	}
	c.conv, _ = c.conv.Finalize(Message{Content: text, Kind: KindPlainText, Failed: true})
	slog.Error("Chat turn failed", "session", c.sessionID, "error", err)
}

// Reset starts a new, empty conversation under a new session id.
func (c *Controller) Reset(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrTurnInFlight
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.conv = Conversation{}
	c.sessionID = sessionID
	return nil
}

// LastItinerary returns the most recent assistant answer that either
// mentions an itinerary or carries a day table.
func (c *Controller) LastItinerary() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, _, ok := lo.FindLastIndexOf(c.conv.msgs, func(m Message) bool {
		return m.Role == RoleAssistant && (m.Itinerary || m.Table != nil)
	})
	return m, ok
}

// StartDate returns the date of the most recent date request.
func (c *Controller) StartDate() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, _, ok := lo.FindLastIndexOf(c.conv.msgs, func(m Message) bool {
		return m.Role == RoleUser && m.Kind == KindDateRequest
	})
	if !ok {
		return time.Time{}, false
	}
	t, err := ParseDate(m.Content)
	return t, err == nil
}

// Run performs one blocking turn against the backend. onChunk, if set,
// sees every stream state after the conversation has been updated.
func (c *Controller) Run(ctx context.Context, client api.ChatAPI, content string, kind Kind, onChunk api.StreamCallback) (service.Result, error) {
	if err := c.Submit(content, kind); err != nil {
		return service.Result{}, err
	}

	req := api.ChatRequest{Message: strings.TrimSpace(content), SessionID: c.SessionID()}
	text, err := client.StreamChat(ctx, req, func(s stream.State) {
		c.Stream(s)
		if onChunk != nil {
			onChunk(s)
		}
	})
	if err != nil {
		c.Fail(err)
		return service.Result{}, err
	}
	return c.Complete(text), nil
}
