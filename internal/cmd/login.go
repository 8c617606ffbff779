package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to SkyLine Airways",
	Long: `Log in with your SkyLine Airways email and password.

On success the token and your profile are stored in ~/.skyline/session.yaml
and reused by every later command until you log out.

Examples:
  skyline login --email priya@example.com --password secret
  skyline login          (prompts for credentials)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		// Prompt for anything not given as a flag.
		if email == "" || password == "" {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&email).
					Validate(nonEmpty("email")),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(nonEmpty("password")),
			))
			if err := form.RunWithContext(cmd.Context()); err != nil {
				return err
			}
		}

		app, err := buildApp(false)
		if err != nil {
			return err
		}

		resp, err := app.client.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		identity := session.Identity{
			UserID:      strconv.Itoa(resp.CustomerID),
			DisplayName: resp.Name,
			Email:       resp.Email,
		}
		if err := app.registry.SetIdentity(identity, resp.Token); err != nil {
			return err
		}

		if resp.Message != "" {
			fmt.Println(resp.Message)
		} else {
			fmt.Printf("Logged in as %s <%s>.\n", resp.Name, resp.Email)
		}
		return nil
	},
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	rootCmd.AddCommand(loginCmd)
}
