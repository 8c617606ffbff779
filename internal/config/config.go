// Package config manages the client's global configuration stored at
// ~/.skyline/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
)

// Config is the global client configuration.
type Config struct {
	Agent   AgentConfig   `yaml:"agent,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// AgentConfig locates the booking agent service.
type AgentConfig struct {
	// BaseURL is the root URL of the agent service.
	BaseURL string `yaml:"base_url,omitempty"`

	// TimeoutSeconds bounds each request. Zero means the default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// LoggingConfig controls client-side logging.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format,omitempty"` // "text", "json"
}

// Timeout returns the configured request timeout.
func (a AgentConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			BaseURL:        "http://127.0.0.1:8000",
			TimeoutSeconds: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the path of the global configuration file, creating the
// config directory if needed.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".skyline")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yaml"), nil
}

// Load loads the configuration from path, creating a default file if none
// exists yet.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := Save(cfg, path); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to create default config", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to read config", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to parse config", err)
	}

	// Fill gaps so a hand-edited file with missing keys still works.
	if cfg.Agent.BaseURL == "" {
		cfg.Agent.BaseURL = Default().Agent.BaseURL
	}

	return &cfg, nil
}

// Save writes the configuration to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
