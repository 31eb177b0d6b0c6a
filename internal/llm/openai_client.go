// ABOUTME: OpenAI client for completions and embeddings with retry logic
// ABOUTME: Uses text-embedding-3-small for embeddings, gpt-4o-mini for generation (configurable)
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// Client wraps the OpenAI API client with retry logic.
// Completions and embeddings share the same retry and timeout policy.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a new OpenAI client from service configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &Client{
		client:         openai.NewClient(cfg.OpenAIKey),
		chatModel:      cfg.ChatModel,
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// Complete sends a single-prompt chat completion at the given temperature
// and returns the model's text response.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: temperature,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// GenerateEmbedding generates an embedding vector for the given text.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}

		return embedding64, nil
	}

	return nil, fmt.Errorf("embedding failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
