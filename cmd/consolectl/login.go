package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	console "github.com/goliatone/go-console"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the console backend",
	Long: `The login command prompts for a username and password, authenticates
against the backend, and persists the session so subsequent commands
run authenticated. Tokens are refreshed transparently until the
refresh token itself expires.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := setup(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if a.session.Authenticated() {
			if current := a.session.Current(); current != nil {
				pterm.Info.Printfln("Already signed in as %s", current.GetUsername())
				return nil
			}
		}

		username, err := promptLine("Username")
		if err != nil {
			return err
		}

		fmt.Print("Password: ")
		password, err := readPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return err
		}

		if err := a.session.SignIn(ctx, username, string(password)); err != nil {
			if console.IsCredentialRejected(err) {
				pterm.Error.Println(err.Error())
				return nil
			}
			if console.IsNetworkFailure(err) {
				pterm.Error.Println("Could not reach the backend. Check your connection and CONSOLE_API_URL.")
				return err
			}
			return err
		}

		profile := a.session.Profile()
		pterm.Success.Printfln("%s, %s!", a.translator.T("welcome"), profile.Name)

		pages := a.resolver.AvailablePages(profile)
		names := make([]string, 0, len(pages))
		for _, p := range pages {
			names = append(names, p.Title(a.translator))
		}
		pterm.Info.Printfln("Available pages: %s", strings.Join(names, ", "))
		return nil
	},
}

func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
