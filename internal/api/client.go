package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/samber/oops"

	"triphelix-cli/internal/config"
	"triphelix-cli/internal/stream"
)

const (
	chatStreamPath = "/api/v1/chat/stream"
	healthPath     = "/health"
)

type Client struct {
	baseURL string
	// streamClient has no timeout: a chat stream runs until the server ends it.
	streamClient *http.Client
	httpClient   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return NewClientWithServer(cfg.ServerURL())
}

func NewClientWithServer(server string) *Client {
	return &Client{
		baseURL:      server,
		streamClient: &http.Client{},
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
}

// --- Chat (Streaming) ---

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// StreamChat posts the message and consumes the plain-text body as it
// arrives. The returned string is the full response text.
func (c *Client) StreamChat(ctx context.Context, chatReq ChatRequest, onChunk StreamCallback) (string, error) {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return "", oops.In("api").Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatStreamPath, bytes.NewReader(body))
	if err != nil {
		return "", oops.In("api").Errorf("creating request: %w", err)
	}
	c.setHeaders(req, true)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return "", oops.In("api").Errorf("sending request: %w", err)
	}
	if resp.Body != nil {
		defer resp.Body.Close()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody []byte
		if resp.Body != nil {
			errBody, _ = io.ReadAll(resp.Body)
		}
		return "", oops.In("api").
			With("status", resp.StatusCode).
			Errorf("server returned %d: %s", resp.StatusCode, string(errBody))
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return "", stream.ErrNoBody
	}

	var emit func(stream.State)
	if onChunk != nil {
		emit = func(s stream.State) { onChunk(s) }
	}
	return stream.Consume(resp.Body, emit)
}

// --- Health ---

type HealthResponse struct {
	Status string `json:"status"`
}

func (r *HealthResponse) Healthy() bool {
	return r != nil && r.Status == "healthy"
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, healthPath, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Generic JSON helper ---

func (c *Client) doJSON(ctx context.Context, method, path string, reqBody interface{}, result interface{}) error {
	var bodyReader io.Reader
	if reqBody != nil && method != http.MethodGet {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return oops.In("api").Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return oops.In("api").Errorf("creating request: %w", err)
	}
	c.setHeaders(req, bodyReader != nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return oops.In("api").Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return oops.In("api").Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return oops.In("api").Errorf("parsing response: %w", err)
		}
	}
	return nil
}
