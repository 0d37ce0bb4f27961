package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the client configuration.
type Config struct {
	BaseURL           string `toml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds    int    `toml:"timeout_seconds" mapstructure:"timeout_seconds"`
	StateDir          string `toml:"state_dir" mapstructure:"state_dir"`
	FallbackResponse  string `toml:"fallback_response" mapstructure:"fallback_response"`
	SuggestDebounceMS int    `toml:"suggest_debounce_ms" mapstructure:"suggest_debounce_ms"`
}

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig(stateDir string) *Config {
	return &Config{
		BaseURL:           "http://localhost:8000",
		TimeoutSeconds:    60,
		StateDir:          stateDir,
		FallbackResponse:  "No response from bot.",
		SuggestDebounceMS: 300,
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SuggestDebounce returns the suggestion debounce delay as a duration.
func (c *Config) SuggestDebounce() time.Duration {
	return time.Duration(c.SuggestDebounceMS) * time.Millisecond
}

// LoadConfig loads configuration from viper.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	// The state directory is stored relative to the config file when not
	// absolute.
	stateDir, err := ResolvePath(config.StateDir)
	if err != nil {
		return nil, fmt.Errorf("error resolving state directory path '%s': %v", config.StateDir, err)
	}
	config.StateDir = stateDir

	return config, nil
}
