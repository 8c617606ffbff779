package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check agent reachability and login state",
	Long: `Check whether the SkyLine agent service is reachable and show who
is logged in, along with any held conversation sessions.

Examples:
  skyline status
  skyline status --agent-url http://localhost:8000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(false)
		if err != nil {
			return err
		}

		fmt.Printf("Agent:    %s\n", app.agentURL)
		if err := app.client.Health(cmd.Context()); err != nil {
			fmt.Println("Health:   unreachable ✗")
			return err
		}
		fmt.Println("Health:   ok ✓")

		if identity, ok := app.registry.Identity(); ok {
			fmt.Printf("Account:  %s <%s>\n", identity.DisplayName, identity.Email)
		} else {
			fmt.Println("Account:  not logged in")
		}

		fmt.Printf("Sessions: primary=%s widget=%s\n",
			sessionLabel(app.registry.SessionID(session.SurfacePrimary)),
			sessionLabel(app.registry.SessionID(session.SurfaceWidget)))
		return nil
	},
}

func sessionLabel(id string) string {
	if id == "" {
		return "none"
	}
	return id
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
