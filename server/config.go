package server

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds HTTP server initialization parameters.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `json:"addr"`

	// RateLimit is the per-client request budget per window; 0 disables
	// rate limiting.
	RateLimit int `json:"rate_limit,omitempty"`

	// RateWindowSeconds is the refill window for the rate limiter.
	RateWindowSeconds int `json:"rate_window_seconds,omitempty"`

	// RedisAddr selects the Redis cache backend for lender comparisons;
	// empty uses the in-process cache.
	RedisAddr string `json:"redis_addr,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		RateLimit:         30,
		RateWindowSeconds: 60,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Addr != "" {
		c.Addr = source.Addr
	}
	if source.RateLimit > 0 {
		c.RateLimit = source.RateLimit
	}
	if source.RateWindowSeconds > 0 {
		c.RateWindowSeconds = source.RateWindowSeconds
	}
	if source.RedisAddr != "" {
		c.RedisAddr = source.RedisAddr
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
