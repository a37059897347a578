package config

import "time"

// TravellerMapConfig holds the map service client configuration
type TravellerMapConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Requests per second and token bucket burst
	RateLimit float64 `mapstructure:"rate_limit" validate:"gt=0"`
	Burst     int     `mapstructure:"burst" validate:"min=1"`

	MaxRetries  int           `mapstructure:"max_retries" validate:"min=0"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`

	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`

	// CacheTTL is how long cached jump worlds stay fresh, 0 for forever
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Offline serves only cached worlds and never calls the service
	Offline bool `mapstructure:"offline"`
}

// CircuitBreakerConfig holds circuit breaker settings for the map client
type CircuitBreakerConfig struct {
	// Consecutive failures before the circuit opens
	Threshold int `mapstructure:"threshold" validate:"min=1"`

	// How long the circuit stays open before a trial request
	Timeout time.Duration `mapstructure:"timeout"`
}
