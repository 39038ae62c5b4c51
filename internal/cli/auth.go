package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrops/hrc/internal/api"
	"github.com/hrops/hrc/internal/session"
)

// emit routes a result to the formatter: the raw payload for JSON mode,
// the rendered text for text mode.
func emit(f *OutputFormatter, payload any, text fmt.Stringer) error {
	if f.Format == "json" {
		return f.Success(payload)
	}
	return f.Success(text)
}

// message is a plain-line result for commands whose success output is a
// sentence rather than a record.
type message string

func (m message) String() string { return string(m) + "\n" }

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Email    string
	Password string
	Remember bool
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the HR backend",
		Long: `Authenticate with email and password and store the issued token.

The token is persisted in the credential database, so subsequent
commands run authenticated until logout or expiry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password (required)")
	cmd.Flags().BoolVar(&opts.Remember, "remember", false, "request an extended session")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runLogin(opts *LoginOptions, cmd *cobra.Command) error {
	app, cleanup, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	f := formatter(opts.RootOptions, cmd)

	ok, err := app.Session.Login(cmd.Context(), api.Credentials{
		Email:      opts.Email,
		Password:   opts.Password,
		RememberMe: opts.Remember,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "login failed", err)
	}
	if !ok {
		msg := ""
		for _, e := range app.Events() {
			if e.Kind == session.EventLoginFailed {
				msg = e.Message
			}
		}
		return f.Failure(msg, nil)
	}

	snap := app.Session.Snapshot()
	return emit(f, snap.User, message(fmt.Sprintf("Logged in as %s <%s>", snap.User.Name, snap.User.Email)))
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session and discard the stored token",
		Long: `End the server-side session and remove the stored token.

The local token is removed even when the backend cannot be reached.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			if err := app.Session.Logout(cmd.Context()); err != nil {
				return WrapExitError(ExitCommandError, "logout failed", err)
			}
			return emit(f, map[string]string{"result": "logged_out"}, message("Logged out"))
		},
	}
	return cmd
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "whoami",
		Short:         "Show the identity behind the stored token",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			if err := app.Session.Initialize(cmd.Context()); err != nil {
				return WrapExitError(ExitCommandError, "identity check failed", err)
			}
			snap := app.Session.Snapshot()
			if !snap.Authenticated() {
				return f.Failure("Not logged in", nil)
			}

			d := &Details{}
			d.add("User", snap.User.Name)
			d.add("Email", snap.User.Email)
			d.add("Level", snap.User.Level)
			d.add("Employee", snap.Employee.EmployeeID)
			d.add("Department", dash(snap.Employee.Department))
			d.add("Position", dash(snap.Employee.Position))

			payload := map[string]any{
				"user":        snap.User,
				"hr_employee": snap.Employee,
				"permissions": snap.Permissions,
			}
			return emit(f, payload, *d)
		},
	}
	return cmd
}

// NewRefreshCommand creates the refresh command.
func NewRefreshCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "refresh",
		Short:         "Exchange the stored token for a fresh one",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.Refresh(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "refresh failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, map[string]string{"result": "refreshed"}, message("Token refreshed"))
		},
	}
	return cmd
}

// NewStatusCommand creates the status command, reporting backend health.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Check backend reachability",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.Health(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "health check failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			if debug {
				dbg, err := app.Client.Debug(cmd.Context())
				if err != nil {
					return WrapExitError(ExitCommandError, "debug check failed", err)
				}
				if !dbg.Success {
					return f.Failure(dbg.Message, dbg.Errors)
				}
				return emit(f, dbg.Data, message("Backend reachable\n"+string(dbg.Data)))
			}
			return emit(f, map[string]string{"result": "ok"}, message("Backend reachable"))
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "include the backend debug snapshot")
	return cmd
}
