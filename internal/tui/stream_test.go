package tui

import (
	"context"
	"errors"
	"testing"

	"triphelix-cli/internal/api"
	"triphelix-cli/internal/stream"
)

func TestBeginStream(t *testing.T) {
	t.Run("chunks then done", func(t *testing.T) {
		client := &mockAPI{chunks: []string{"a", "b", "c"}}
		msgs := drain(t, beginStream(context.Background(), client, api.ChatRequest{Message: "hi"}))

		if len(msgs) != 4 {
			t.Fatalf("messages = %d, want 4", len(msgs))
		}
		wantText := []string{"a", "ab", "abc"}
		for i, want := range wantText {
			chunk, ok := msgs[i].(streamChunkMsg)
			if !ok {
				t.Fatalf("msgs[%d] = %T, want streamChunkMsg", i, msgs[i])
			}
			if chunk.state.Text != want {
				t.Errorf("chunk %d = %q, want %q", i, chunk.state.Text, want)
			}
		}
		done, ok := msgs[3].(streamDoneMsg)
		if !ok || done.text != "abc" {
			t.Errorf("last = %#v, want done with full text", msgs[3])
		}
	})

	t.Run("error", func(t *testing.T) {
		client := &mockAPI{err: stream.ErrNoBody}
		msgs := drain(t, beginStream(context.Background(), client, api.ChatRequest{}))
		e, ok := msgs[len(msgs)-1].(streamErrMsg)
		if !ok || !errors.Is(e.err, stream.ErrNoBody) {
			t.Errorf("last = %#v, want ErrNoBody", msgs[len(msgs)-1])
		}
	})
}

func TestWaitForStreamClosed(t *testing.T) {
	closed := beginStream(context.Background(), &mockAPI{}, api.ChatRequest{})
	drain(t, closed)

	msg := waitForStream(closed)()
	if e, ok := msg.(streamErrMsg); !ok || !errors.Is(e.err, context.Canceled) {
		t.Errorf("waitForStream on closed channel = %#v", msg)
	}
}

func TestCheckHealth(t *testing.T) {
	msg := checkHealth(&mockAPI{health: &api.HealthResponse{Status: "healthy"}})().(healthMsg)
	if msg.err != nil || msg.status != "healthy" {
		t.Errorf("healthy = %#v", msg)
	}

	msg = checkHealth(&mockAPI{})().(healthMsg)
	if msg.err == nil {
		t.Error("expected error for unreachable backend")
	}
}

func TestMatchCommands(t *testing.T) {
	tests := []struct {
		prefix  string
		wantLen int
	}{
		{"/", len(slashCommands)},
		{"/h", 2}, // /help, /history
		{"/e", 1}, // /export
		{"/c", 2}, // /clear, /config
		{"/xyz", 0},
		{"/date", 1},
		{"/export trip.ics", 0},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := matchCommands(tt.prefix)
			if len(got) != tt.wantLen {
				names := make([]string, len(got))
				for i, c := range got {
					names[i] = c.name
				}
				t.Errorf("matchCommands(%q) returned %d matches %v, want %d", tt.prefix, len(got), names, tt.wantLen)
			}
		})
	}
}

func TestTruncateUUID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"short", "short"},
		{"12345678-1234-1234-1234-123456789012", "12345678"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := truncateUUID(tt.input); got != tt.want {
				t.Errorf("truncateUUID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
