package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	console "github.com/goliatone/go-console"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events visible to the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := setup(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		profile := a.session.Profile()
		if !a.resolver.HasPermission(profile, console.PageEvents) {
			pterm.Error.Println("This account has no access to events.")
			return nil
		}

		events, err := a.events.List(ctx)
		if err != nil {
			if console.IsTokenExpired(err) {
				pterm.Warning.Println("Session expired. Run 'consolectl login' to sign in again.")
				return nil
			}
			return err
		}

		if len(events) == 0 {
			pterm.Println("No events found.")
			return nil
		}

		rows := pterm.TableData{{"ID", "Date", "Time", "Place", "Participants", "Status"}}
		for _, e := range events {
			rows = append(rows, []string{
				e.ID.String(),
				e.Date,
				e.Time,
				e.Place,
				pterm.Sprintf("%d", e.NumberOfParticipants),
				string(e.Status),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
