package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget stored sessions",
	Long: `Log out of SkyLine Airways.

Clears the stored token, your profile, and both conversation sessions
(the booking flow and the chat widget) from ~/.skyline/session.yaml.

Examples:
  skyline logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(false)
		if err != nil {
			return err
		}

		identity, ok := app.registry.Identity()
		if !ok {
			fmt.Println("Not logged in.")
			return nil
		}

		if err := app.registry.Clear(); err != nil {
			return err
		}

		fmt.Printf("Logged out %s. See you next trip!\n", identity.DisplayName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
