package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/polymath/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Out    string
	Stdout bool
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export completion history as CSV",
		Long: `Write every recorded day as CSV, newest first: date, completion
percentage, then one TRUE/FALSE column per active habit.

The default file name is polymath_data_<today>.csv in the current
directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "output file path")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "write CSV to stdout instead of a file")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	a, err := openApp(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	completions := a.tracker.Completions()
	habits := a.tracker.Habits()

	if opts.Stdout {
		if err := export.WriteCSV(cmd.OutOrStdout(), completions, habits); err != nil {
			return WrapExitError(ExitCommandError, "writing csv", err)
		}
		return nil
	}

	path := opts.Out
	if path == "" {
		path = export.FileName(a.tracker.Today())
	}

	file, err := os.Create(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "creating export file", err)
	}
	if err := export.WriteCSV(file, completions, habits); err != nil {
		file.Close()
		return WrapExitError(ExitCommandError, "writing csv", err)
	}
	if err := file.Close(); err != nil {
		return WrapExitError(ExitCommandError, "closing export file", err)
	}

	return newFormatter(opts.RootOptions, cmd).Success(fmt.Sprintf("Exported %d day(s) to %s", len(completions), path))
}
