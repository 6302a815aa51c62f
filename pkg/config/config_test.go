package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/comet/pkg/config"
	"github.com/ajitpratap0/comet/pkg/errors"
)

func TestConnectorConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := config.NewConnectorConfig("abc123", "token", "client", "https://api.example.com")
		assert.NoError(t, cfg.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*config.ConnectorConfig)
	}{
		{"empty store hash", func(c *config.ConnectorConfig) { c.StoreHash = "" }},
		{"empty access token", func(c *config.ConnectorConfig) { c.AccessToken = "" }},
		{"empty client id", func(c *config.ConnectorConfig) { c.ClientID = "" }},
		{"empty base url", func(c *config.ConnectorConfig) { c.APIBaseURL = "" }},
		{"relative base url", func(c *config.ConnectorConfig) { c.APIBaseURL = "/v2" }},
		{"schemeless base url", func(c *config.ConnectorConfig) { c.APIBaseURL = "api.example.com" }},
		{"negative concurrency", func(c *config.ConnectorConfig) { c.Performance.MaxConcurrentRequests = -1 }},
		{"negative retries", func(c *config.ConnectorConfig) { c.Reliability.MaxRetries = -1 }},
		{"jitter out of range", func(c *config.ConnectorConfig) { c.Reliability.RetryJitter = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConnectorConfig("abc123", "token", "client", "https://api.example.com")
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
		})
	}
}

func TestConnectorConfig_Defaults(t *testing.T) {
	cfg := config.NewConnectorConfig("abc123", "token", "client", "https://api.example.com")

	assert.Equal(t, 2*time.Second, cfg.Reliability.RetryMargin)
	assert.Equal(t, 1*time.Second, cfg.Reliability.MinRetryAfter)
	assert.Equal(t, 0, cfg.Reliability.MaxRetries)
	assert.Equal(t, 0, cfg.Performance.MaxConcurrentRequests)
	assert.False(t, cfg.Performance.IsBounded())
	assert.False(t, cfg.Reliability.IsCapped())
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("COMET_TEST_TOKEN", "env-token")

	content := `
store_hash: abc123
access_token: ${COMET_TEST_TOKEN}
client_id: client
api_base_url: https://api.example.com
performance:
  max_concurrent_requests: 4
reliability:
  max_retries: 5
  retry_margin: 2s
`
	path := filepath.Join(t.TempDir(), "connector.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	var cfg config.ConnectorConfig
	require.NoError(t, config.Load(path, &cfg))

	assert.Equal(t, "env-token", cfg.AccessToken)
	assert.Equal(t, 4, cfg.Performance.MaxConcurrentRequests)
	assert.Equal(t, 5, cfg.Reliability.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Reliability.RetryMargin)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg config.ConnectorConfig
	err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	assert.Error(t, err)
}
