package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List your booked trips",
	Long: `List the trips booked on your SkyLine Airways account.

Requires a prior 'skyline login'. The agent's reply is printed as-is;
when you have no bookings a short note is shown instead.

Examples:
  skyline bookings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(false)
		if err != nil {
			return err
		}

		if !app.registry.Authenticated() {
			return errors.NewNotLoggedInError("your bookings")
		}

		dash, err := app.orchestrator.LoadDashboard(cmd.Context())
		if err != nil {
			return err
		}

		if dash.Empty {
			fmt.Println("You have no bookings yet. Try 'skyline search' to find a flight.")
			return nil
		}

		fmt.Println(dash.Reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookingsCmd)
}
