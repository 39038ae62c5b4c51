package cli

import (
	"github.com/spf13/cobra"

	"github.com/hrops/hrc/internal/api"
	"github.com/hrops/hrc/internal/config"
	"github.com/hrops/hrc/internal/credstore"
	"github.com/hrops/hrc/internal/session"
)

// App bundles the wired-up dependencies a command needs: resolved
// config, the credential store, the API client, and the session
// controller. One App is built per command invocation.
type App struct {
	Config  config.Config
	Store   credstore.Store
	Client  *api.Client
	Session *session.Controller

	// events collects session notifications raised while the command
	// runs, for the command to surface after the operation settles.
	events []session.Event
}

// openApp builds the App for a command, or returns the test-injected
// one. The returned cleanup closes the credential store.
func openApp(opts *RootOptions, cmd *cobra.Command) (*App, func(), error) {
	if opts.newApp != nil {
		return opts.newApp(opts)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	store, err := credstore.OpenSQLite(cfg.CredentialsPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open credential store", err)
	}

	client, err := api.New(cfg.APIBaseURL, store, api.WithTimeout(cfg.Timeout()))
	if err != nil {
		_ = store.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to build API client", err)
	}

	app := &App{Config: cfg, Store: store, Client: client}
	app.Session = session.New(client, app.recordEvent, nil)

	cleanup := func() { _ = store.Close() }
	return app, cleanup, nil
}

func (a *App) recordEvent(e session.Event) {
	a.events = append(a.events, e)
}

// Events returns the session notifications raised so far.
func (a *App) Events() []session.Event {
	return a.events
}

// newTestApp wires an App against an existing client and an in-memory
// store; used by command tests.
func newTestApp(cfg config.Config, store credstore.Store, client *api.Client) *App {
	app := &App{Config: cfg, Store: store, Client: client}
	app.Session = session.New(client, app.recordEvent, nil)
	return app
}

// formatter builds the OutputFormatter for a command, writing to the
// command's stdout so tests can capture it.
func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
