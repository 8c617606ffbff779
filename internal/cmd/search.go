package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/booking"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for flights",
	Long: `Search for flights between two cities on a date.

The agent replies in plain language; any structured flight offers it
mentions are listed with their position, which 'skyline search' prints
so you can book one interactively in the full client.

Examples:
  skyline search --from Delhi --to Mumbai --date 2025-12-15
  skyline search          (prompts for the criteria)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, _ := cmd.Flags().GetString("from")
		destination, _ := cmd.Flags().GetString("to")
		date, _ := cmd.Flags().GetString("date")

		if origin == "" || destination == "" || date == "" {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("From").Value(&origin).Validate(nonEmpty("origin")),
				huh.NewInput().Title("To").Value(&destination).Validate(nonEmpty("destination")),
				huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&date).Validate(nonEmpty("date")),
			))
			if err := form.RunWithContext(cmd.Context()); err != nil {
				return err
			}
		}

		app, err := buildApp(false)
		if err != nil {
			return err
		}

		result, err := app.orchestrator.Search(cmd.Context(), booking.Criteria{
			Origin:      origin,
			Destination: destination,
			Date:        date,
		})
		if err != nil {
			return err
		}

		if len(result.Offers) == 0 {
			// Nothing structured in the reply; show the agent's own words.
			fmt.Println(result.Reply)
			return nil
		}

		header := lipgloss.NewStyle().Bold(true).Render(
			fmt.Sprintf("%d flights from %s to %s on %s", len(result.Offers), origin, destination, date))
		fmt.Println(header)
		fmt.Println()

		muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		for i, offer := range result.Offers {
			fmt.Printf("%2d. %-12s %-8s %s → %s  %s  ₹%d\n",
				i+1, offer.Airline, offer.FlightNumber,
				offer.Origin, offer.Destination, offer.DepartureTime, offer.Price)
		}
		fmt.Println()
		fmt.Println(muted.Render("run 'skyline' to pick a flight and complete the booking"))
		return nil
	},
}

func init() {
	searchCmd.Flags().String("from", "", "origin city")
	searchCmd.Flags().String("to", "", "destination city")
	searchCmd.Flags().String("date", "", "travel date (YYYY-MM-DD)")
	rootCmd.AddCommand(searchCmd)
}
