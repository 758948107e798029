// Package insight calls an OpenAI-compatible chat-completions API to turn
// computed performance statistics into natural-language insight text. The
// analytics engine has no dependency in the other direction.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tradejournal/internal/analytics"
	"tradejournal/internal/ports"
)

const defaultBaseURL = "https://api.openai.com/v1"

const systemPrompt = "You are a trading-performance coach. You will receive " +
	"journal statistics as JSON. Reply with two or three short paragraphs of " +
	"plain text highlighting strengths, weaknesses, and one concrete suggestion."

// Config holds configuration for the insight client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // Override for self-hosted/compatible endpoints
	Timeout time.Duration
	Logger  ports.Logger
}

// Client implements ports.InsightGenerator against a chat-completions endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	logger  ports.Logger
}

// New creates a new insight client.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for insight client")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ports.ErrConfigurationError)
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  cfg.Logger,
	}, nil
}

// GenerateInsight sends the summary and trade count to the model and returns
// its text response.
func (c *Client) GenerateInsight(ctx context.Context, summary analytics.StatsSummary, tradeCount int) (string, error) {
	stats, err := json.Marshal(map[string]interface{}{
		"summary":    summary,
		"tradeCount": tradeCount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode stats payload: %w", err)
	}

	body, err := json.Marshal(map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": string(stats)},
		},
		"temperature": 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build insight request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error(ctx, err, "Insight request failed")
		return "", fmt.Errorf("%w: %v", ports.ErrInsightUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.logger.Warn(ctx, "Insight service returned non-success status", map[string]interface{}{"status": resp.StatusCode})
		return "", fmt.Errorf("%w: http %d", ports.ErrInsightUnavailable, resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ports.ErrInsightUnavailable, err)
	}
	if len(r.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ports.ErrInsightUnavailable)
	}
	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
