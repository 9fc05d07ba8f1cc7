package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// tokenEnvVar supplies the bearer token when --token is not given.
const tokenEnvVar = "POLYMATH_TOKEN"

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Token string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Establish a session with the remote log provider",
		Long: fmt.Sprintf(`Validate a bearer token against the identity provider and cache it
locally. Later commands resume the cached session automatically.

The token comes from --token or the %s environment variable.`, tokenEnvVar),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Token, "token", "", "bearer token for the remote provider")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *LoginOptions) error {
	ctx := cmd.Context()

	token := opts.Token
	if token == "" {
		token = os.Getenv(tokenEnvVar)
	}
	if token == "" {
		return NewExitError(ExitCommandError, fmt.Sprintf("no token: pass --token or set %s", tokenEnvVar))
	}

	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	profile, err := a.sessions.Login(ctx, token)
	if err != nil {
		return WrapExitError(ExitFailure, "login failed", err)
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(profile)
	}
	return f.Success(fmt.Sprintf("Logged in as %s", profile.Email))
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the cached session",
		Long: `Clear the locally cached session token. Local data stays; new
toggles stop being appended to the remote log until the next login.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd, rootOpts)
		},
	}
	return cmd
}

func runLogout(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.sessions.Logout(ctx); err != nil {
		return WrapExitError(ExitCommandError, "logout", err)
	}
	a.tracker.ClearSession()

	f := newFormatter(opts, cmd)
	if opts.Format == "json" {
		return f.Success(map[string]bool{"logged_out": true})
	}
	return f.Success("Logged out")
}
