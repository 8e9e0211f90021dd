package llm

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyClient fails a configurable number of times before succeeding.
type flakyClient struct {
	failures int
	calls    int
}

func (c *flakyClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	c.calls++
	if c.calls <= c.failures {
		return "", fmt.Errorf("transient error %d", c.calls)
	}
	return "ok", nil
}

func (c *flakyClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.GenerateContent(ctx, prompt, tier)
}

func (c *flakyClient) GetModel(_ ModelTier) string { return "fake-model" }
func (c *flakyClient) Close() error                { return nil }

func TestRetryingClient_SucceedsAfterTransientFailures(t *testing.T) {
	inner := &flakyClient{failures: 2}
	client := WithRetry(inner, 3)
	client.baseDelay = time.Millisecond

	text, err := client.GenerateContent(context.Background(), "prompt", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingClient_ExhaustsAttempts(t *testing.T) {
	inner := &flakyClient{failures: 10}
	client := WithRetry(inner, 3)
	client.baseDelay = time.Millisecond

	_, err := client.GenerateJSON(context.Background(), "prompt", TierStandard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingClient_RespectsContextCancellation(t *testing.T) {
	inner := &flakyClient{failures: 10}
	client := WithRetry(inner, 3)
	client.baseDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateContent(ctx, "prompt", TierStandard)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithRetry_DefaultsAttemptBudget(t *testing.T) {
	client := WithRetry(&flakyClient{}, 0)
	assert.Equal(t, DefaultMaxAttempts, client.maxAttempts)
}
