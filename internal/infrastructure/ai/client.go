package ai

import (
	"context"
	"errors"
	"time"

	"hospital-booking/config"

	openai "github.com/sashabaranov/go-openai"
)

// Client wraps the chat-completion API used for symptom triage. A single
// attempt is made per call; callers own the fallback behavior.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewClient(cfg config.AIConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Complete sends a system+user message pair and returns the raw model text.
// The call is bounded by the configured timeout regardless of the parent
// context.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
