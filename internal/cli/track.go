package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/polymath/internal/habit"
)

// TrackAddOptions holds flags for the track add command.
type TrackAddOptions struct {
	*RootOptions
	Color string
}

// NewTrackCommand creates the track command group.
func NewTrackCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Manage track definitions",
	}
	cmd.AddCommand(newTrackAddCommand(rootOpts))
	cmd.AddCommand(newTrackRemoveCommand(rootOpts))
	return cmd
}

func newTrackAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TrackAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a track",
		Long: fmt.Sprintf(`Add a track (a named group of habits).

Colors: %s`, strings.Join(habit.PaletteNames(), ", ")),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackAdd(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Color, "color", habit.DefaultColor, "palette color name")

	return cmd
}

func runTrackAdd(cmd *cobra.Command, opts *TrackAddOptions, title string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	if !habit.ValidColor(opts.Color) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("unknown color %q: must be one of %s", opts.Color, strings.Join(habit.PaletteNames(), ", ")))
	}

	tr, err := a.tracker.AddTrack(ctx, title, opts.Color)
	if err != nil {
		return WrapExitError(ExitCommandError, "adding track", err)
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(tr)
	}
	return f.Success(fmt.Sprintf("Added track %s (%s)", tr.Title, tr.ID))
}

func newTrackRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <track-id>",
		Short: "Remove a track and all its habits",
		Long: `Remove a track. Every habit in the track is removed with it;
their completion history stays but stops counting.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackRemove(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runTrackRemove(cmd *cobra.Command, opts *RootOptions, id string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	var target habit.Track
	found := false
	for _, tr := range a.tracker.Tracks() {
		if tr.ID == id {
			target, found = tr, true
			break
		}
	}
	if !found {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown track id %q", id))
	}

	inTrack := 0
	for _, h := range a.tracker.Habits() {
		if h.TrackID == id {
			inTrack++
		}
	}

	ok, err := confirm(opts, cmd,
		fmt.Sprintf("Remove track %q and its %d habit(s)?", target.Title, inTrack))
	if err != nil {
		return err
	}
	if !ok {
		return newFormatter(opts, cmd).Success("Aborted")
	}

	if err := a.tracker.RemoveTrack(ctx, id); err != nil {
		return WrapExitError(ExitCommandError, "removing track", err)
	}
	return newFormatter(opts, cmd).Success(fmt.Sprintf("Removed track %s (%d habit(s) removed)", target.Title, inTrack))
}
