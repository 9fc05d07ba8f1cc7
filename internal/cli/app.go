package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/polymath/internal/config"
	"github.com/roach88/polymath/internal/remotelog"
	"github.com/roach88/polymath/internal/session"
	"github.com/roach88/polymath/internal/storage"
	"github.com/roach88/polymath/internal/tracker"
)

// app bundles the wired-up components every command needs. One app is
// opened per command invocation and closed when it returns.
type app struct {
	cfg      config.Config
	store    *storage.Store
	tracker  *tracker.Tracker
	sessions *session.Manager
}

// openApp loads config, opens the snapshot database, and constructs the
// tracker and session manager.
func openApp(ctx context.Context, opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, WrapExitError(ExitCommandError, "preparing data dir", err)
	}

	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening local store", err)
	}

	remote := remotelog.NewClient(remotelog.ClientConfig{
		DriveBaseURL:  cfg.DriveBaseURL,
		SheetsBaseURL: cfg.SheetsBaseURL,
		LogTitle:      cfg.LogTitle,
	})

	trk, err := tracker.New(ctx, tracker.Config{
		Store:  store,
		Remote: remote,
		Logger: slog.Default(),
	})
	if err != nil {
		store.Close()
		return nil, WrapExitError(ExitCommandError, "initializing tracker", err)
	}

	return &app{
		cfg:     cfg,
		store:   store,
		tracker: trk,
		sessions: session.NewManager(session.Config{
			Store:       store,
			UserinfoURL: cfg.UserinfoURL,
		}),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// resumeSession revalidates any cached token and installs it on the
// tracker. Reports whether a session exists. A missing session is not
// an error; commands that require one decide that themselves.
func (a *app) resumeSession(ctx context.Context) (session.Profile, bool, error) {
	token, profile, ok, err := a.sessions.Resume(ctx)
	if err != nil {
		return session.Profile{}, false, err
	}
	if ok {
		a.tracker.SetSession(token)
	}
	return profile, ok, nil
}

// newFormatter builds the output formatter for a command, writing
// results to stdout and diagnostics to stderr.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// confirm asks the user to confirm a destructive action. The --yes
// flag answers for them.
func confirm(opts *RootOptions, cmd *cobra.Command, prompt string) (bool, error) {
	if opts.Yes {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
