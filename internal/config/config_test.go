package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Agent.BaseURL)

	// The default file was written.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &Config{
		Agent:   AgentConfig{BaseURL: "http://agent.example:9000", TimeoutSeconds: 15},
		Logging: LoggingConfig{Level: "debug", Format: "json"},
	}
	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_FillsMissingBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Agent.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAgentConfig_Timeout(t *testing.T) {
	assert.Equal(t, 60*time.Second, AgentConfig{}.Timeout())
	assert.Equal(t, 15*time.Second, AgentConfig{TimeoutSeconds: 15}.Timeout())
}
