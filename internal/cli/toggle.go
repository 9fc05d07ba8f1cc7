package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/polymath/internal/tracker"
)

// ToggleOptions holds flags for the toggle command.
type ToggleOptions struct {
	*RootOptions
	Date string
}

// toggleResult is the json payload for toggle.
type toggleResult struct {
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Sync      string `json:"sync"`
	SyncError string `json:"sync_error,omitempty"`
}

// NewToggleCommand creates the toggle command.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ToggleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "toggle <habit-id>",
		Short: "Flip a habit's completion flag",
		Long: `Flip the completion flag for a habit on a given day (today by
default). The flip applies locally first; the remote append is
best-effort and a failure never rolls the flip back.

Example:
  polymath toggle habit-read --date 2026-08-30`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "calendar date YYYY-MM-DD (default today)")

	return cmd
}

func runToggle(cmd *cobra.Command, opts *ToggleOptions, habitID string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.Date != "" {
		if _, err := time.Parse("2006-01-02", opts.Date); err != nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid date %q: want YYYY-MM-DD", opts.Date))
		}
	}
	if _, ok := findHabit(a.tracker.Habits(), habitID); !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown habit id %q", habitID))
	}

	if _, _, err := a.resumeSession(ctx); err != nil {
		return WrapExitError(ExitCommandError, "resuming session", err)
	}

	value, err := a.tracker.Toggle(ctx, habitID, opts.Date)
	if err != nil {
		return WrapExitError(ExitCommandError, "toggling", err)
	}

	// The append runs on its own goroutine; a short-lived process has
	// to wait for the outcome or the row never leaves the machine.
	ev := awaitSync(a.tracker, appendWait)

	date := opts.Date
	if date == "" {
		date = a.tracker.Today()
	}

	result := toggleResult{HabitID: habitID, Date: date, Completed: value, Sync: string(ev.Kind), SyncError: ev.Err}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(result)
	}

	mark := "not completed"
	if value {
		mark = "completed"
	}
	switch ev.Kind {
	case tracker.SyncAppended:
		return f.Success(fmt.Sprintf("%s on %s: %s (synced)", habitID, date, mark))
	case tracker.SyncSkipped:
		return f.Success(fmt.Sprintf("%s on %s: %s (local only, no session)", habitID, date, mark))
	default:
		f.VerboseLog("append error: %s", ev.Err)
		return f.Success(fmt.Sprintf("%s on %s: %s (sync failed, kept locally)", habitID, date, mark))
	}
}

// appendWait bounds how long toggle waits for its append outcome.
// Slightly over the dispatcher's own deadline so the event always
// arrives first.
const appendWait = 35 * time.Second

// awaitSync blocks until the dispatcher reports the append outcome.
func awaitSync(t *tracker.Tracker, timeout time.Duration) tracker.SyncEvent {
	select {
	case ev := <-t.Events():
		return ev
	case <-time.After(timeout):
		return tracker.SyncEvent{Kind: tracker.SyncFailed, Err: "timed out waiting for sync outcome"}
	}
}
