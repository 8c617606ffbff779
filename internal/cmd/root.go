// Package cmd wires the skyline CLI: a handful of scriptable subcommands
// plus the default interactive terminal client.
package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/tui"
)

var (
	flagAgentURL string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "skyline",
	Short: "Conversational flight booking for SkyLine Airways",
	Long: `skyline is a terminal client for the SkyLine Airways booking agent.
It talks to the agent in plain language: search for flights, pick one,
book a seat, and review your trips, all from one conversational surface.

Run it with no arguments to open the interactive client. Subcommands
cover the same ground for scripting:

  skyline login      Log in with your email and password
  skyline search     Search for flights
  skyline bookings   List your booked trips
  skyline chat       Ask the agent a one-off question
  skyline status     Check agent reachability and who is logged in
  skyline logout     Forget the stored credentials and sessions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal; logs would corrupt the screen.
		app, err := buildApp(true)
		if err != nil {
			return err
		}

		model := tui.NewModel(app.client, app.registry, app.orchestrator, app.widget, app.logger)
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		_, err = program.Run()
		return err
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAgentURL, "agent-url", "", "agent base URL (default from ~/.skyline/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}
