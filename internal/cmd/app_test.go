package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/config"
)

func TestAgentBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Agent.BaseURL = "http://configured:8000"

	orig := flagAgentURL
	defer func() { flagAgentURL = orig }()

	flagAgentURL = ""
	assert.Equal(t, "http://configured:8000", agentBaseURL(cfg))

	// The flag overrides the configured URL; everything downstream,
	// status output included, must report the override.
	flagAgentURL = "http://flagged:9000"
	assert.Equal(t, "http://flagged:9000", agentBaseURL(cfg))
}
