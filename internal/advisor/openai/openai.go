// Package openai adapts an OpenAI-compatible chat completion API to the
// advisor.Generator port.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

// requestTimeout bounds a single completion; large histories make slow
// prompts, so the ceiling is generous.
const requestTimeout = 2 * time.Minute

type Client struct {
	api   *goopenai.Client
	model string
}

// New builds a client for the given key, model, and optional base URL. An
// empty baseURL keeps the provider's default endpoint; an empty model falls
// back to defaultModel.
func New(apiKey, model, baseURL string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		api:   goopenai.NewClientWithConfig(cfg),
		model: model,
	}
}

// NewFromEnv creates a client from OPENAI_API_KEY, OPENAI_MODEL, and
// OPENAI_BASE_URL. A missing key is an error so callers can decide whether
// the insight feature is enabled.
func NewFromEnv() (*Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY")
	}
	return New(
		apiKey,
		strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
	), nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(cctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
