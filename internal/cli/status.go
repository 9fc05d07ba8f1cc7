package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/polymath/internal/export"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	Date string
}

// statusHabit is one line of the status payload.
type statusHabit struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	TrackID   string `json:"trackId"`
	Completed bool   `json:"completed"`
}

// statusResult is the json payload for status.
type statusResult struct {
	Date       string        `json:"date"`
	Done       int           `json:"done"`
	Total      int           `json:"total"`
	Percentage int           `json:"percentage"`
	Habits     []statusHabit `json:"habits"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Show completion progress for a day",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "calendar date YYYY-MM-DD (default today)")

	return cmd
}

func runStatus(cmd *cobra.Command, opts *StatusOptions) error {
	a, err := openApp(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	date := opts.Date
	if date == "" {
		date = a.tracker.Today()
	}

	done, total := a.tracker.Progress(date)
	result := statusResult{
		Date:       date,
		Done:       done,
		Total:      total,
		Percentage: export.Percentage(done, total),
	}
	for _, h := range a.tracker.Habits() {
		result.Habits = append(result.Habits, statusHabit{
			ID:        h.ID,
			Title:     h.Title,
			Duration:  h.Duration,
			TrackID:   h.TrackID,
			Completed: a.tracker.IsCompleted(h.ID, date),
		})
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d/%d (%d%%)\n", result.Date, result.Done, result.Total, result.Percentage)
	for _, tr := range a.tracker.Tracks() {
		fmt.Fprintf(out, "%s\n", tr.Title)
		for _, h := range result.Habits {
			if h.TrackID != tr.ID {
				continue
			}
			mark := " "
			if h.Completed {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %-28s %-6s %s\n", mark, h.Title, h.Duration, h.ID)
		}
	}
	return nil
}
