package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	defaultStageTimeoutSeconds = 30
	defaultLanguage            = "en"
)

// Config holds initialization parameters for the verdict pipeline.
type Config struct {
	// BaseURL is the root of the stage collaborator service.
	BaseURL string `json:"base_url"`

	// StageTimeoutSeconds bounds each stage call; 0 keeps the default.
	// A timed-out required stage aborts the pipeline.
	StageTimeoutSeconds int `json:"stage_timeout_seconds,omitempty"`

	// Language is the default language code sent to every stage when the
	// caller does not supply one.
	Language string `json:"language,omitempty"`

	// Observer names the observer resolved from the observability registry
	// ("noop", "slog", or a custom registration).
	Observer string `json:"observer,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		StageTimeoutSeconds: defaultStageTimeoutSeconds,
		Language:            defaultLanguage,
		Observer:            "slog",
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.StageTimeoutSeconds > 0 {
		c.StageTimeoutSeconds = source.StageTimeoutSeconds
	}
	if source.Language != "" {
		c.Language = source.Language
	}
	if source.Observer != "" {
		c.Observer = source.Observer
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
