package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	console "github.com/goliatone/go-console"
)

// app holds the wired console components shared by every subcommand.
type app struct {
	cfg        *console.EnvConfig
	store      console.Store
	client     *console.Client
	session    *console.SessionContext
	translator *console.Translator
	resolver   *console.Resolver
	events     *console.EventsService

	bunStore *console.BunStore
}

// setup wires the console stack: config from the environment, the OS
// keychain as the credential store (sqlite as fallback), the REST
// client, and the session context restored from persisted state.
func setup(ctx context.Context) (*app, error) {
	cfg, err := console.LoadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	if ring, err := console.NewKeyringStore(cfg.GetKeyringService()); err == nil {
		a.store = ring
	} else {
		pterm.Debug.Printfln("keyring unavailable (%v), falling back to sqlite store", err)
		bunStore, err := console.OpenBunStore(ctx, cfg.GetStorePath())
		if err != nil {
			return nil, err
		}
		a.bunStore = bunStore
		a.store = bunStore
	}

	a.client = console.NewClient(cfg.GetBaseURL(), cfg.GetRequestTimeout())
	tokens := console.NewTokenLifecycle(a.store, a.client)
	a.client.WithTokenLifecycle(tokens)

	a.session = console.NewSessionContext(a.store, a.client, tokens).
		WithWatchInterval(cfg.GetWatchInterval()).
		WithExpiredHandler(func() {
			pterm.Warning.Println("Session expired. Run 'consolectl login' to sign in again.")
		})

	a.translator = console.NewTranslator(a.store).
		WithDefaultLanguage(cfg.GetDefaultLanguage())
	if err := a.translator.Init(ctx); err != nil {
		return nil, err
	}

	a.resolver = console.NewResolver()
	a.events = console.NewEventsService(a.client)

	if err := a.session.Restore(ctx); err != nil {
		pterm.Debug.Printfln("no session restored: %v", err)
	}

	return a, nil
}

func (a *app) close() {
	if a.bunStore != nil {
		_ = a.bunStore.Close()
	}
}

var rootCmd = &cobra.Command{
	Use:           "consolectl",
	Short:         "Event management console CLI",
	Long:          `consolectl signs in against the console backend, keeps the token pair fresh, and exposes the pages and events the signed-in account may access.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
