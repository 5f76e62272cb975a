// Command powerflow solves AC power-flow cases by the Newton-Raphson
// method and writes result tables, a Markdown report and figures.
package main

import (
	"os"

	"github.com/voltlab/powerflow/internal/cli"
)

// Build-time version information, injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
