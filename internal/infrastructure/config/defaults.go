package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Store defaults
	if cfg.Store.Kind == "" {
		cfg.Store.Kind = "http"
	}
	if cfg.Store.BaseURL == "" && cfg.Store.Kind == "http" {
		cfg.Store.BaseURL = "http://localhost:7071/api"
	}
	if cfg.Store.Timeout == 0 {
		cfg.Store.Timeout = 10 * time.Second
	}
	if cfg.Store.RateLimit.Requests == 0 {
		cfg.Store.RateLimit.Requests = 20
	}
	if cfg.Store.RateLimit.Burst == 0 {
		cfg.Store.RateLimit.Burst = 40
	}
	if cfg.Store.Circuit.MaxFailures == 0 {
		cfg.Store.Circuit.MaxFailures = 5
	}
	if cfg.Store.Circuit.Cooldown == 0 {
		cfg.Store.Circuit.Cooldown = 30 * time.Second
	}
	if cfg.Store.NaiveTimeZone == "" {
		cfg.Store.NaiveTimeZone = "UTC"
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "domnus"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "domnus"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost:50061"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
