package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	requestTimeout = 55 * time.Second
	temperature    = 0.3

	errBodyExcerptLimit = 200
)

// RouterClient talks to an OpenAI-compatible chat-completions endpoint
// (the HuggingFace router in production). One request per call, retries
// disabled: an unreliable model answer is handled by the caller, not by
// hammering the endpoint.
type RouterClient struct {
	client openai.Client
	model  string
}

// NewRouterClient builds a client for the given endpoint. A missing API key
// is not an error here; it surfaces later as an authentication failure from
// the endpoint itself.
func NewRouterClient(apiKey, baseURL, model string) *RouterClient {
	return &RouterClient{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithRequestTimeout(requestTimeout),
			option.WithMaxRetries(0),
		),
		model: model,
	}
}

// Complete sends prompt as a single user message. A non-2xx status fails
// with the status code and a truncated body excerpt. A 2xx reply with a
// malformed envelope (no choices, empty content) degrades to "{}" so the
// caller's JSON parse fails cleanly instead of panicking on shape.
func (c *RouterClient) Complete(
	ctx context.Context,
	prompt string,
	maxTokens int64,
) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf(
				"completion API error %d: %s",
				apiErr.StatusCode,
				truncate(apiErr.Message, errBodyExcerptLimit),
			)
		}

		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "{}", nil
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "{}", nil
	}

	return content, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
