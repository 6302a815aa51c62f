package connector

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// Rate-limit headers checked in order. The platform reports the remaining
// throttling window in X-Retry-After; the standard header is a fallback.
var retryAfterHeaders = []string{"X-Retry-After", "Retry-After"}

// parseRetryAfter reads the server-supplied retry-after duration from the
// response headers. An absent or unparsable value falls back to min.
func parseRetryAfter(h http.Header, min time.Duration) time.Duration {
	for _, name := range retryAfterHeaders {
		value := h.Get(name)
		if value == "" {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			continue
		}
		return time.Duration(seconds) * time.Second
	}
	return min
}

// backoffDelay computes the wall-clock delay before re-attempting a
// throttled call: the server-requested duration plus the configured safety
// margin, optionally randomized by the jitter factor.
func (c *Connector) backoffDelay(retryAfter time.Duration) time.Duration {
	delay := retryAfter + c.config.Reliability.RetryMargin

	if factor := c.config.Reliability.RetryJitter; factor > 0 {
		delta := float64(delay) * factor
		minDelay := float64(delay) - delta
		maxDelay := float64(delay) + delta
		delay = time.Duration(minDelay + rand.Float64()*(maxDelay-minDelay))
	}

	return delay
}

// waitBackoff sleeps for the given delay without blocking the calling
// goroutine past cancellation.
func waitBackoff(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	}
}
