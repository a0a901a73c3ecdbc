package tui

import (
	"context"
	"time"

	"triphelix-cli/internal/api"
	"triphelix-cli/internal/stream"

	tea "github.com/charmbracelet/bubbletea"
)

// ─── Messages sent from the stream goroutine to Bubble Tea ──────────────────

type streamChunkMsg struct {
	state stream.State
}

type streamDoneMsg struct {
	text string
}

type streamErrMsg struct {
	err error
}

type healthMsg struct {
	status string
	err    error
}

// ─── Stream command ─────────────────────────────────────────────────────────
//
// beginStream runs one chat request in a goroutine and forwards every
// accumulated state through a channel. The model stores the channel and
// re-arms waitForStream after each chunk until a done or error message
// arrives.

func beginStream(ctx context.Context, client api.ChatAPI, req api.ChatRequest) chan tea.Msg {
	ch := make(chan tea.Msg, 64)

	send := func(msg tea.Msg) {
		select {
		case ch <- msg:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(ch)

		text, err := client.StreamChat(ctx, req, func(s stream.State) {
			send(streamChunkMsg{state: s})
		})
		if err != nil {
			send(streamErrMsg{err: err})
			return
		}
		send(streamDoneMsg{text: text})
	}()

	return ch
}

// waitForStream reads the next message from the channel.
func waitForStream(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return streamErrMsg{err: context.Canceled}
		}
		return msg
	}
}

const healthTimeout = 5 * time.Second

func checkHealth(client api.ChatAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		resp, err := client.Health(ctx)
		if err != nil {
			return healthMsg{err: err}
		}
		return healthMsg{status: resp.Status}
	}
}
