package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// syncResult is the json payload for sync.
type syncResult struct {
	Email string `json:"email"`
	Days  int    `json:"days"`
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile local state from the remote log",
		Long: `Fetch the full remote log, replay it, and replace the local
completion map with the result. Locates the remote log by name,
creating it on first use. Requires a session (polymath login).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, rootOpts)
		},
	}
	return cmd
}

func runSync(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	profile, ok, err := a.resumeSession(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "resuming session", err)
	}
	if !ok {
		return NewExitError(ExitCommandError, "no session: run 'polymath login' first")
	}

	if err := a.tracker.Reconcile(ctx); err != nil {
		// Local snapshot untouched; the tracker keeps working offline.
		return WrapExitError(ExitFailure, "sync failed, local data unchanged", err)
	}

	days := len(a.tracker.Completions())
	f := newFormatter(opts, cmd)
	if opts.Format == "json" {
		return f.Success(syncResult{Email: profile.Email, Days: days})
	}
	return f.Success(fmt.Sprintf("Synced as %s: %d day(s) of history", profile.Email, days))
}
