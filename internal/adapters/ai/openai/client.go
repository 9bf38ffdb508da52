package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-rescue-registry/internal/platform/httpclient"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
)

var (
	ErrNotConfigured = errors.New("openai api key not configured")
	ErrEmptyReply    = errors.New("openai returned no choices")
)

type Config struct {
	APIKey  string
	Model   string        // default gpt-4o-mini
	BaseURL string        // override para tests
	Timeout time.Duration // default 30s
}

// Client implementa ai.Completer contra el endpoint de chat completions.
type Client struct {
	http   *httpclient.Client
	apiKey string
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Client{http: hc, apiKey: apiKey, model: model}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	if c == nil || c.http == nil {
		return "", ErrNotConfigured
	}

	req := chatRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	var resp chatResponse
	err := c.http.DoJSON(ctx, "POST", "/chat/completions", map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, req, &resp)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
