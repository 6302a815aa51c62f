// Package config provides the unified configuration for the Comet store API
// connector. A single ConnectorConfig structure carries the store identity,
// credentials, and the reliability/concurrency knobs the connector honors.
//
// Example usage:
//
//	cfg := config.NewConnectorConfig("abc123", "token", "client-id", "https://api.example.com")
//	cfg.Performance.MaxConcurrentRequests = 8
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"net/url"
	"time"

	"github.com/ajitpratap0/comet/pkg/clients"
	"github.com/ajitpratap0/comet/pkg/errors"
)

// ConnectorConfig is the single configuration structure for the connector.
// StoreHash, AccessToken, ClientID, and APIBaseURL are required; the
// remaining sections have working defaults.
type ConnectorConfig struct {
	// StoreHash identifies the target store in the resource root URL
	StoreHash string `yaml:"store_hash" json:"store_hash"`
	// AccessToken is sent as the X-Auth-Token header on every request.
	// Treat it as a secret; it is never logged.
	AccessToken string `yaml:"access_token" json:"access_token"`
	// ClientID is sent as the X-Auth-Client header on every request
	ClientID string `yaml:"client_id" json:"client_id"`
	// APIBaseURL is the absolute base URL of the remote API
	APIBaseURL string `yaml:"api_base_url" json:"api_base_url"`

	// Performance settings control concurrency
	Performance PerformanceConfig `yaml:"performance" json:"performance"`

	// Reliability settings for throttling recovery
	Reliability ReliabilityConfig `yaml:"reliability" json:"reliability"`

	// HTTP tunes the underlying transport; nil selects defaults
	HTTP *clients.HTTPConfig `yaml:"http,omitempty" json:"http,omitempty"`
}

// PerformanceConfig contains concurrency-related settings.
type PerformanceConfig struct {
	// MaxConcurrentRequests caps simultaneous in-flight requests.
	// 0 means unbounded.
	MaxConcurrentRequests int `yaml:"max_concurrent_requests" json:"max_concurrent_requests"`
}

// ReliabilityConfig controls how the connector reacts to server throttling.
type ReliabilityConfig struct {
	// MaxRetries caps retries of a single logical call after 429 responses.
	// 0 means unbounded, matching the platform's documented behavior.
	MaxRetries int `yaml:"max_retries" json:"max_retries"`
	// RetryMargin is added to the server-requested retry-after delay
	RetryMargin time.Duration `yaml:"retry_margin" json:"retry_margin"`
	// RetryJitter randomizes the backoff delay by +/- the given factor
	// (0.0-1.0). 0 disables jitter.
	RetryJitter float64 `yaml:"retry_jitter" json:"retry_jitter"`
	// MinRetryAfter is used when the server omits a parsable retry-after header
	MinRetryAfter time.Duration `yaml:"min_retry_after" json:"min_retry_after"`
}

// Default reliability values. The 2-second margin on top of the
// server-requested delay keeps a retried attempt clear of the tail end of
// the throttling window.
const (
	DefaultRetryMargin   = 2 * time.Second
	DefaultMinRetryAfter = 1 * time.Second
)

// NewConnectorConfig creates a ConnectorConfig with defaults for everything
// beyond the four required identity fields.
func NewConnectorConfig(storeHash, accessToken, clientID, apiBaseURL string) *ConnectorConfig {
	return &ConnectorConfig{
		StoreHash:   storeHash,
		AccessToken: accessToken,
		ClientID:    clientID,
		APIBaseURL:  apiBaseURL,
		Performance: PerformanceConfig{
			MaxConcurrentRequests: 0,
		},
		Reliability: ReliabilityConfig{
			MaxRetries:    0,
			RetryMargin:   DefaultRetryMargin,
			RetryJitter:   0,
			MinRetryAfter: DefaultMinRetryAfter,
		},
	}
}

// Validate checks required fields and value ranges. Misconfiguration is a
// programmer error; it surfaces here, before any network activity.
func (c *ConnectorConfig) Validate() error {
	if c.StoreHash == "" {
		return errors.New(errors.ErrorTypeConfig, "store_hash is required")
	}
	if c.AccessToken == "" {
		return errors.New(errors.ErrorTypeConfig, "access_token is required")
	}
	if c.ClientID == "" {
		return errors.New(errors.ErrorTypeConfig, "client_id is required")
	}
	if c.APIBaseURL == "" {
		return errors.New(errors.ErrorTypeConfig, "api_base_url is required")
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return errors.New(errors.ErrorTypeConfig, "api_base_url must be a valid absolute URL").
			WithDetail("api_base_url", c.APIBaseURL)
	}

	if c.Performance.MaxConcurrentRequests < 0 {
		return errors.New(errors.ErrorTypeConfig, "max_concurrent_requests cannot be negative")
	}
	if c.Reliability.MaxRetries < 0 {
		return errors.New(errors.ErrorTypeConfig, "max_retries cannot be negative")
	}
	if c.Reliability.RetryJitter < 0 || c.Reliability.RetryJitter > 1 {
		return errors.New(errors.ErrorTypeConfig, "retry_jitter must be between 0 and 1")
	}

	return nil
}

// IsBounded returns true if the admission-control ceiling is enabled
func (p *PerformanceConfig) IsBounded() bool {
	return p.MaxConcurrentRequests > 0
}

// IsCapped returns true if a retry ceiling is enabled
func (r *ReliabilityConfig) IsCapped() bool {
	return r.MaxRetries > 0
}
