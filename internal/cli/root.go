package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// Typically called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the powerflow CLI and returns an error if any command fails.
//
// Logging:
//   - Default: info level (stderr)
//   - With --verbose (-v): debug level
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "powerflow",
		Short:        "powerflow solves AC power-flow cases by Newton-Raphson",
		Long:         `powerflow reads a transmission-network case (ANAREDE .pwf or .json), solves the AC power-flow equations with a full-Jacobian Newton-Raphson method, and writes result tables, a Markdown report and figures.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("powerflow %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())

	return root.ExecuteContext(context.Background())
}
