package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/polymath/internal/habit"
)

// HabitAddOptions holds flags for the habit add command.
type HabitAddOptions struct {
	*RootOptions
	Duration    string
	Track       string
	Description string
}

// NewHabitCommand creates the habit command group.
func NewHabitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habit definitions",
	}
	cmd.AddCommand(newHabitAddCommand(rootOpts))
	cmd.AddCommand(newHabitRemoveCommand(rootOpts))
	cmd.AddCommand(newHabitListCommand(rootOpts))
	return cmd
}

func newHabitAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HabitAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit to a track",
		Long: `Add a habit definition. The habit gets a generated id and appears
in today's list immediately.

Example:
  polymath habit add "Read 1 Abstract" --duration 5m --track track-mind`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHabitAdd(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Duration, "duration", "", "estimated duration label, e.g. 5m (required)")
	cmd.Flags().StringVar(&opts.Track, "track", "", "id of the track the habit belongs to (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "optional description")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("track")

	return cmd
}

func runHabitAdd(cmd *cobra.Command, opts *HabitAddOptions, title string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	if !trackExists(a.tracker.Tracks(), opts.Track) {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown track id %q (see: polymath habit list)", opts.Track))
	}

	h, err := a.tracker.AddHabit(ctx, title, opts.Duration, opts.Track, opts.Description)
	if err != nil {
		return WrapExitError(ExitCommandError, "adding habit", err)
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(h)
	}
	return f.Success(fmt.Sprintf("Added habit %s (%s)", h.Title, h.ID))
}

func newHabitRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <habit-id>",
		Short: "Remove a habit",
		Long: `Remove a habit definition. Its completion history stays in place
but stops counting toward progress, exports, and the heatmap.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHabitRemove(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runHabitRemove(cmd *cobra.Command, opts *RootOptions, id string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	target, ok := findHabit(a.tracker.Habits(), id)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown habit id %q", id))
	}

	ok, err = confirm(opts, cmd, fmt.Sprintf("Remove habit %q?", target.Title))
	if err != nil {
		return err
	}
	if !ok {
		return newFormatter(opts, cmd).Success("Aborted")
	}

	if err := a.tracker.RemoveHabit(ctx, id); err != nil {
		return WrapExitError(ExitCommandError, "removing habit", err)
	}
	return newFormatter(opts, cmd).Success(fmt.Sprintf("Removed habit %s", target.Title))
}

func newHabitListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List tracks and habits",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHabitList(cmd, rootOpts)
		},
	}
	return cmd
}

// habitListing is the json payload for habit list.
type habitListing struct {
	Tracks []habit.Track `json:"tracks"`
	Habits []habit.Habit `json:"habits"`
}

func runHabitList(cmd *cobra.Command, opts *RootOptions) error {
	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	tracks := a.tracker.Tracks()
	habits := a.tracker.Habits()

	f := newFormatter(opts, cmd)
	if opts.Format == "json" {
		return f.Success(habitListing{Tracks: tracks, Habits: habits})
	}

	out := cmd.OutOrStdout()
	for _, tr := range tracks {
		fmt.Fprintf(out, "%s  [%s]\n", tr.Title, tr.ID)
		for _, h := range habits {
			if h.TrackID != tr.ID {
				continue
			}
			fmt.Fprintf(out, "  %-28s %-6s %s\n", h.Title, h.Duration, h.ID)
		}
	}
	// Habits whose track is gone should not exist; the track cascade
	// deletes them. Print any stragglers anyway rather than hiding them.
	for _, h := range habits {
		if !trackExists(tracks, h.TrackID) {
			fmt.Fprintf(out, "(no track)  %-28s %s\n", h.Title, h.ID)
		}
	}
	return nil
}

func findHabit(habits []habit.Habit, id string) (habit.Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return habit.Habit{}, false
}

func trackExists(tracks []habit.Track, id string) bool {
	for _, tr := range tracks {
		if tr.ID == id {
			return true
		}
	}
	return false
}
