// Package llm - retry.go provides a transport-level retry decorator.
package llm

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultMaxAttempts is the transport-level attempt budget per call.
	DefaultMaxAttempts = 3
	// defaultBaseDelay is the initial backoff delay, doubled per attempt.
	defaultBaseDelay = 500 * time.Millisecond
)

// RetryingClient wraps a Client with bounded exponential-backoff retries.
// This is distinct from application-level correction loops: it only covers
// transport failures of a single generation call.
type RetryingClient struct {
	inner       Client
	maxAttempts int
	baseDelay   time.Duration
}

// WithRetry wraps client with maxAttempts transport retries. A maxAttempts
// of zero or less uses DefaultMaxAttempts.
func WithRetry(client Client, maxAttempts int) *RetryingClient {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &RetryingClient{
		inner:       client,
		maxAttempts: maxAttempts,
		baseDelay:   defaultBaseDelay,
	}
}

// GenerateContent generates text content, retrying transport failures.
func (c *RetryingClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.retry(ctx, func() (string, error) {
		return c.inner.GenerateContent(ctx, prompt, tier)
	})
}

// GenerateJSON generates JSON content, retrying transport failures.
func (c *RetryingClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.retry(ctx, func() (string, error) {
		return c.inner.GenerateJSON(ctx, prompt, tier)
	})
}

// GetModel returns the model name for a tier from the wrapped client.
func (c *RetryingClient) GetModel(tier ModelTier) string {
	return c.inner.GetModel(tier)
}

// Close releases resources held by the wrapped client.
func (c *RetryingClient) Close() error {
	return c.inner.Close()
}

// retry runs call up to maxAttempts times with exponential backoff.
func (c *RetryingClient) retry(ctx context.Context, call func() (string, error)) (string, error) {
	var lastErr error
	delay := c.baseDelay

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		text, err := call()
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt == c.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", c.maxAttempts, lastErr)
}
