package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the pages the signed-in account may access",
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

		pages := a.resolver.AvailablePages(profile)
		if len(pages) == 0 {
			pterm.Println("No pages available for this account.")
			return nil
		}

		rows := pterm.TableData{{"Page", "Route"}}
		for _, p := range pages {
			rows = append(rows, []string{p.Title(a.translator), p.Route})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
