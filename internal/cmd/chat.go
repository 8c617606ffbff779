package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the agent a one-off question",
	Long: `Send one message to the SkyLine assistant and print the reply.

Uses the same conversation as the interactive chat widget, so follow-up
questions keep their context across invocations. Works without logging
in; booking-related questions will ask you to log in first.

Examples:
  skyline chat "What is the baggage allowance on domestic flights?"
  skyline chat "Tell me about flight AI101"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")

		app, err := buildApp(false)
		if err != nil {
			return err
		}

		resp, err := app.widget.Send(cmd.Context(), message)
		if err != nil {
			return err
		}
		app.widget.ApplyReply(resp)

		fmt.Println(resp.Response)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
