package config

import "time"

// StoreConfig holds kingdom store configuration. Kind "http" talks to the
// remote store; "database" keeps kingdoms in the configured database.
type StoreConfig struct {
	Kind string `mapstructure:"kind" validate:"required,oneof=http database"`

	// Base URL of the remote store, e.g. https://kingdoms.example.net/api
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// Sent as the x-functions-key header
	FunctionsKey string `mapstructure:"functions_key"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	Circuit CircuitConfig `mapstructure:"circuit"`

	// IANA zone for queue times written without an offset, e.g. "Europe/Madrid"
	NaiveTimeZone string `mapstructure:"naive_time_zone" validate:"omitempty,timezone"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// CircuitConfig holds the store circuit breaker settings
type CircuitConfig struct {
	// Consecutive failures before the circuit opens; negative disables the breaker
	MaxFailures int `mapstructure:"max_failures" validate:"min=-1"`

	// How long the circuit stays open before a trial request
	Cooldown time.Duration `mapstructure:"cooldown"`
}
