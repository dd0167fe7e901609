// Package llmcoder adapts an HTTP code-generation endpoint to the
// orchestrator.Coder shape. The wire format of the underlying
// language-model transport is deliberately out of scope for the core:
// this adapter is the one place that speaks it.
package llmcoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agentforge/agentforge/internal/orchestrator"
)

// DefaultTimeout bounds one generation request.
const DefaultTimeout = 60 * time.Second

// MaxResponseSize caps how much of a response body is read.
const MaxResponseSize = 10 * 1024 * 1024

// ErrNotConfigured is returned when no endpoint has been set.
var ErrNotConfigured = errors.New("llmcoder: endpoint not configured")

// Config configures a Coder.
type Config struct {
	Endpoint  string
	Model     string
	APIKey    string
	MaxTokens int
}

// Coder calls a code-generation HTTP endpoint and decodes its response
// into orchestrator.Changes.
type Coder struct {
	cfg    Config
	client *http.Client
}

// NewCoder creates a Coder from cfg.
func NewCoder(cfg Config) *Coder {
	return &Coder{
		cfg: cfg,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Available reports whether the endpoint is configured.
func (c *Coder) Available() bool {
	return c.cfg.Endpoint != ""
}

type generateRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens,omitempty"`
	Request   string `json:"request"`
	Feedback  string `json:"feedback,omitempty"`
}

type generateResponse struct {
	Files []orchestrator.GeneratedFile `json:"files"`
	Error string                       `json:"error,omitempty"`
}

// Generate implements orchestrator.Coder.
func (c *Coder) Generate(ctx context.Context, input orchestrator.CoderInput) (orchestrator.Changes, error) {
	if !c.Available() {
		return orchestrator.Changes{}, ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Request:   input.Request,
		Feedback:  input.Feedback,
	})
	if err != nil {
		return orchestrator.Changes{}, fmt.Errorf("llmcoder: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return orchestrator.Changes{}, fmt.Errorf("llmcoder: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return orchestrator.Changes{}, fmt.Errorf("llmcoder: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return orchestrator.Changes{}, fmt.Errorf("llmcoder: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return orchestrator.Changes{}, fmt.Errorf("llmcoder: endpoint returned %d: %s", resp.StatusCode, string(raw))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return orchestrator.Changes{}, fmt.Errorf("llmcoder: decode response: %w", err)
	}
	if out.Error != "" {
		return orchestrator.Changes{}, fmt.Errorf("llmcoder: generation error: %s", out.Error)
	}

	return orchestrator.Changes{Files: out.Files}, nil
}
