package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/polymath/internal/export"
)

// heatmapGlyphs maps intensity quartiles to display cells, empty to
// full.
var heatmapGlyphs = []string{"·", "░", "▒", "▓", "█"}

// NewHeatmapCommand creates the heatmap command.
func NewHeatmapCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show the 28-day consistency heatmap",
		Long: `Render the trailing four weeks of completions, oldest day first.
Cell shade is the share of active habits completed that day.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeatmap(cmd, rootOpts)
		},
	}
	return cmd
}

func runHeatmap(cmd *cobra.Command, opts *RootOptions) error {
	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	today, err := time.Parse("2006-01-02", a.tracker.Today())
	if err != nil {
		return WrapExitError(ExitCommandError, "parsing today", err)
	}
	cells := export.Heatmap(a.tracker.Completions(), a.tracker.LiveHabitIDs(), today)

	f := newFormatter(opts, cmd)
	if opts.Format == "json" {
		return f.Success(cells)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s .. %s\n", cells[0].Date, cells[len(cells)-1].Date)
	for week := 0; week < export.HeatmapDays/7; week++ {
		for day := 0; day < 7; day++ {
			fmt.Fprint(out, glyphFor(cells[week*7+day].Intensity), " ")
		}
		fmt.Fprintln(out)
	}
	return nil
}

// glyphFor buckets an intensity in [0,1] into one of five shades.
func glyphFor(intensity float64) string {
	switch {
	case intensity <= 0:
		return heatmapGlyphs[0]
	case intensity <= 0.25:
		return heatmapGlyphs[1]
	case intensity <= 0.5:
		return heatmapGlyphs[2]
	case intensity <= 0.75:
		return heatmapGlyphs[3]
	default:
		return heatmapGlyphs[4]
	}
}
