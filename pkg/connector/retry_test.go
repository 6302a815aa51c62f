package connector

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/comet/pkg/config"
)

func TestParseRetryAfter(t *testing.T) {
	const fallback = 1 * time.Second

	tests := []struct {
		name    string
		headers map[string]string
		want    time.Duration
	}{
		{"platform header", map[string]string{"X-Retry-After": "5"}, 5 * time.Second},
		{"standard header", map[string]string{"Retry-After": "3"}, 3 * time.Second},
		{"platform header wins", map[string]string{"X-Retry-After": "5", "Retry-After": "9"}, 5 * time.Second},
		{"zero", map[string]string{"X-Retry-After": "0"}, 0},
		{"absent", nil, fallback},
		{"unparsable", map[string]string{"X-Retry-After": "soon"}, fallback},
		{"negative", map[string]string{"X-Retry-After": "-2"}, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, parseRetryAfter(h, fallback))
		})
	}
}

func TestBackoffDelay_MarginAdded(t *testing.T) {
	cfg := config.NewConnectorConfig("abc123", "token", "client", "https://api.example.com")
	c, err := New(cfg)
	require.NoError(t, err)
	defer c.Close()

	// Server asks for 1s; the default 2s margin yields 3s of wall-clock delay.
	assert.Equal(t, 3*time.Second, c.backoffDelay(1*time.Second))
	assert.Equal(t, config.DefaultRetryMargin, c.backoffDelay(0))
}

func TestBackoffDelay_JitterBounds(t *testing.T) {
	cfg := config.NewConnectorConfig("abc123", "token", "client", "https://api.example.com")
	cfg.Reliability.RetryJitter = 0.25
	c, err := New(cfg)
	require.NoError(t, err)
	defer c.Close()

	base := 4 * time.Second // 2s requested + 2s margin
	for i := 0; i < 100; i++ {
		delay := c.backoffDelay(2 * time.Second)
		assert.GreaterOrEqual(t, delay, time.Duration(float64(base)*0.75))
		assert.LessOrEqual(t, delay, time.Duration(float64(base)*1.25))
	}
}

func TestWaitBackoff_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- waitBackoff(ctx, 30*time.Second)
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("waitBackoff did not observe cancellation")
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/products", normalizePath("products"))
	assert.Equal(t, "/products", normalizePath("/products"))
	assert.Equal(t, "/products/42", normalizePath("products/42"))
}
