package clients

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_AllowConsumesBurst(t *testing.T) {
	tb := NewTokenBucketRateLimiter(1, 3)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	stats := tb.GetStats()
	assert.EqualValues(t, 3, stats.AllowedRequests)
	assert.EqualValues(t, 1, stats.BlockedRequests)
}

func TestTokenBucket_Refill(t *testing.T) {
	tb := NewTokenBucketRateLimiter(100, 1)

	require.True(t, tb.Allow())
	require.False(t, tb.Allow())

	time.Sleep(20 * time.Millisecond) // 100/s refills one token in 10ms
	assert.True(t, tb.Allow())
}

func TestTokenBucket_WaitBlocksUntilToken(t *testing.T) {
	tb := NewTokenBucketRateLimiter(50, 1)
	require.True(t, tb.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	err := tb.Wait(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestTokenBucket_WaitCancellation(t *testing.T) {
	tb := NewTokenBucketRateLimiter(0.001, 1)
	require.True(t, tb.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTokenBucket_SetBurstClampsTokens(t *testing.T) {
	tb := NewTokenBucketRateLimiter(1, 10)
	tb.SetBurst(2)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}
