package api

import (
	"context"

	"triphelix-cli/internal/stream"
)

// ChatAPI defines the interface for the travel assistant backend.
// *Client satisfies this interface. TUI and tests can use mock implementations.
type ChatAPI interface {
	StreamChat(ctx context.Context, req ChatRequest, onChunk StreamCallback) (string, error)
	Health(ctx context.Context) (*HealthResponse, error)
}

// StreamCallback receives the accumulated response after every chunk and
// once more, with Complete set, at end of stream.
type StreamCallback func(state stream.State)
