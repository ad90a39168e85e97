package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := setup(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		profile := a.session.Profile()
		if profile == nil {
			pterm.Println("Not signed in. Run 'consolectl login' to get started.")
			return nil
		}

		pterm.DefaultSection.Println("Current session")
		pterm.Printfln("Name:     %s", profile.Name)
		pterm.Printfln("Username: %s", profile.Username)
		pterm.Printfln("Role:     %s", profile.Role)

		if expired := a.session.Tokens().IsExpired(ctx); expired {
			pterm.Warning.Println("Access token is expired; it will refresh on the next request.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
