package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient proxies chat/analysis prompts to the Anthropic messages
// API. Response generation is opaque to this service.
type AnthropicClient struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string
	apiKey  string
	model   string
}

// NewAnthropicClient creates a client. baseURL is overridable for tests;
// pass "" for the production API.
func NewAnthropicClient(apiKey, model, baseURL string, logger *zap.Logger) *AnthropicClient {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	return &AnthropicClient{
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// Configured reports whether an API key is present
func (a *AnthropicClient) Configured() bool {
	return a.apiKey != ""
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one system+user turn and returns the first text block
func (a *AnthropicClient) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("anthropic request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	var payload anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("anthropic decode: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := ""
		if payload.Error != nil {
			msg = payload.Error.Message
		}
		a.logger.Warn("anthropic non-success status",
			zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return "", fmt.Errorf("anthropic error %d: %s", resp.StatusCode, msg)
	}

	for _, block := range payload.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}
