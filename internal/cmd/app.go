package cmd

import (
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/agent"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/booking"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/config"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/log"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/session"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/widget"
)

// app bundles the wired application state every command works against.
type app struct {
	cfg      *config.Config
	agentURL string // effective base URL, --agent-url override applied
	logger   *log.Logger
	client   *agent.Client

	registry     *session.Registry
	orchestrator *booking.Orchestrator
	widget       *widget.Controller
}

// buildApp loads configuration, restores any persisted session state, and
// wires the client stack. silent suppresses console logging for commands
// that own the terminal.
func buildApp(silent bool) (*app, error) {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logger := buildLogger(cfg, silent)

	baseURL := agentBaseURL(cfg)
	client := agent.NewClient(baseURL, cfg.Agent.Timeout(), logger)

	statePath, err := session.DefaultStatePath()
	if err != nil {
		return nil, err
	}
	registry := session.NewRegistry(session.NewFileStore(statePath), logger)
	if err := registry.Restore(); err != nil {
		// A broken state file shouldn't keep the client from starting.
		logger.WithError(err).Warn("persisted session not restored")
	}

	return &app{
		cfg:          cfg,
		agentURL:     baseURL,
		logger:       logger,
		client:       client,
		registry:     registry,
		orchestrator: booking.New(client, registry, logger),
		widget:       widget.New(client, registry, logger),
	}, nil
}

// agentBaseURL resolves the agent URL the client talks to: the --agent-url
// flag wins over the configured one.
func agentBaseURL(cfg *config.Config) string {
	if flagAgentURL != "" {
		return flagAgentURL
	}
	return cfg.Agent.BaseURL
}

func buildLogger(cfg *config.Config, silent bool) *log.Logger {
	if silent && !flagVerbose {
		return log.Silent()
	}

	c := log.Config{
		Level:  log.ParseLevel(cfg.Logging.Level),
		Format: log.ParseFormat(cfg.Logging.Format),
		Output: log.OutputStderr(),
	}
	if flagVerbose {
		c.Level = log.LevelDebug
	}
	return log.New(c)
}
