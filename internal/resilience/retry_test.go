package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond}
}

func TestDoValSucceedsFirstTry(t *testing.T) {
	calls := 0
	val, err := DoVal(context.Background(), fastConfig(), func(context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 1, calls)
}

func TestDoValRetriesRateLimit(t *testing.T) {
	calls := 0
	val, err := DoVal(context.Background(), fastConfig(), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("upstream returned 429")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 3, calls)
}

func TestDoValRetriesQuotaText(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), fastConfig(), func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("Quota exceeded for model")
		}
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoValDoesNotRetryOtherErrors(t *testing.T) {
	calls := 0
	boom := errors.New("model refused the request")
	_, err := DoVal(context.Background(), fastConfig(), func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)

	var exhausted *RetriesExhaustedError
	assert.False(t, errors.As(err, &exhausted))
}

func TestDoValDoesNotRetryTimeouts(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), fastConfig(), func(context.Context) (int, error) {
		calls++
		return 0, errors.New("request timed out after 30s")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoValExhaustsBudget(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), fastConfig(), func(context.Context) (int, error) {
		calls++
		return 0, &RateLimitError{Err: errors.New("too many requests")}
	})
	assert.Equal(t, 3, calls)

	var exhausted *RetriesExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Contains(t, exhausted.Error(), "3 attempts")
}

func TestDoValStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := DoVal(ctx, RetryConfig{MaxAttempts: 5, InitialBackoff: time.Minute}, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("429")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoValOnRetryCallback(t *testing.T) {
	var attempts []int
	cfg := fastConfig()
	cfg.OnRetry = func(attempt int, err error) {
		attempts = append(attempts, attempt)
	}
	_, _ = DoVal(context.Background(), cfg, func(context.Context) (int, error) {
		return 0, errors.New("429")
	})
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestDoWrapsDoVal(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestComputeBackoffDoubles(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second}
	for attempt := 0; attempt < 4; attempt++ {
		d := computeBackoff(attempt, cfg)
		base := time.Second << attempt
		assert.GreaterOrEqual(t, d, base)
		assert.Less(t, d, base+time.Second)
	}
}
