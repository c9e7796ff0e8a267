// Package openai provides a client for the OpenAI chat completions API,
// used to analyze bookshelf photos with a vision-capable model.
package openai

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the vision-capable model used when none is configured.
	DefaultModel = "gpt-4o"

	// maxTokens bounds the completion; a full shelf analysis fits well within it.
	maxTokens = 4096
)

// Config holds API credentials and options.
type Config struct {
	APIKey  string
	Model   string // Optional; defaults to DefaultModel
	BaseURL string // Optional; defaults to the public API host
}

// Client calls the chat completions API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new OpenAI client. Returns an error when the API key
// is missing so misconfiguration fails at startup rather than mid-analysis.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			// Vision completions on large images can take a while.
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}, nil
}

// Model returns the configured model name, recorded in session metadata.
func (c *Client) Model() string {
	return c.cfg.Model
}

// chat completions request/response shapes, kept minimal.

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeBookshelf sends the fixed analysis prompt together with the image
// URL and returns the model's raw text response. The caller is responsible
// for parsing it.
func (c *Client) AnalyzeBookshelf(ctx context.Context, imgURL string) (string, error) {
	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: analysisPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: imgURL}},
				},
			},
		},
		MaxTokens: maxTokens,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	c.logger.Debug("requesting bookshelf analysis",
		"model", c.cfg.Model,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai: status %d: %s", resp.StatusCode, truncate(string(respRaw), 512))
	}

	var decoded chatResponse
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("openai: response missing choices")
	}

	return decoded.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
