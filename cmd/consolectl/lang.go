package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	console "github.com/goliatone/go-console"
)

var langCmd = &cobra.Command{
	Use:   "lang [en|ar]",
	Short: "Show or switch the console language",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := setup(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if len(args) == 0 {
			direction := "LTR"
			if a.translator.IsRTL() {
				direction = "RTL"
			}
			pterm.Printfln("Current language: %s (%s)", a.translator.Language(), direction)
			return nil
		}

		lang, ok := console.ParseLanguage(args[0])
		if !ok {
			pterm.Error.Printfln("Unsupported language %q. Supported: en, ar.", args[0])
			return nil
		}

		if err := a.translator.SetLanguage(ctx, lang); err != nil {
			return err
		}

		pterm.Success.Printfln("Language set to %s.", lang)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
}
