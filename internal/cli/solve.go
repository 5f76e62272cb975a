package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/voltlab/powerflow/reader"
	"github.com/voltlab/powerflow/report"
	"github.com/voltlab/powerflow/solver"
	"github.com/voltlab/powerflow/system"
)

// newSolveCmd builds the solve subcommand.
func newSolveCmd() *cobra.Command {
	var (
		dataDir    string
		outDir     string
		format     string
		configPath string
		tolerance  float64
		maxIter    int
	)

	cmd := &cobra.Command{
		Use:   "solve <case>",
		Short: "Solve a power-flow case and write its reports",
		Long: `Solve loads <case>.pwf or <case>.json from the data directory, runs the
Newton-Raphson power-flow solution and writes the admittance matrix, the
voltage result, the bus summary, a Markdown report and two figures
(voltage profile, phasor diagram) into the output directory.

Non-convergence within the iteration budget is a reported outcome, not a
failure: the best-known state is still written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			caseName := args[0]

			r, closer, err := openCase(dataDir, caseName, format)
			if err != nil {
				return err
			}
			defer closer.Close()
			c, err := r.Read()
			if err != nil {
				return err
			}
			logger.Debug("case loaded", "buses", len(c.Buses), "lines", len(c.Lines), "transformers", len(c.Transformers))

			sys, err := reader.Assemble(c)
			if err != nil {
				return err
			}

			opts := []solver.Option{solver.WithLogger(logger)}
			if configPath != "" {
				cfg, err := loadRunConfig(configPath)
				if err != nil {
					return err
				}
				opts = append(opts, cfg.options()...)
			}
			// Explicit flags win over the config file.
			if cmd.Flags().Changed("tolerance") {
				opts = append(opts, solver.WithTolerance(tolerance))
			}
			if cmd.Flags().Changed("max-iter") {
				opts = append(opts, solver.WithMaxIterations(maxIter))
			}

			res, err := solver.Solve(sys, opts...)
			if err != nil {
				return err
			}
			if err := sys.Commit(res.V, res.Theta); err != nil {
				return err
			}

			if res.Converged {
				logger.Info("converged", "iterations", res.Iterations, "norm", res.Norm)
			} else {
				logger.Warn("did not converge", "iterations", res.Iterations, "norm", res.Norm)
			}
			for i, name := range res.Names {
				logger.Info("bus", "name", name,
					"v_pu", fmt.Sprintf("%.6f", res.V[i]),
					"theta_deg", fmt.Sprintf("%.4f", res.Theta[i]*180/math.Pi))
			}

			if err := writeReports(outDir, caseName, sys, res); err != nil {
				return err
			}
			logger.Info("reports written", "dir", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "data", "directory containing the input case")
	cmd.Flags().StringVar(&outDir, "out", "output", "directory receiving tables, report and figures")
	cmd.Flags().StringVar(&format, "format", "", "force input format: pwf or json")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML run-configuration file")
	cmd.Flags().Float64Var(&tolerance, "tolerance", solver.DefaultTolerance, "convergence tolerance on the mismatch norm")
	cmd.Flags().IntVar(&maxIter, "max-iter", solver.DefaultMaxIterations, "iteration budget")

	return cmd
}

// openCase locates the case file and wraps it in the matching reader.
// With no forced format, .pwf is preferred and .json is the fallback.
// The returned closer owns the underlying file; the caller must close it.
func openCase(dataDir, caseName, format string) (reader.Reader, io.Closer, error) {
	pwfPath := filepath.Join(dataDir, caseName+".pwf")
	jsonPath := filepath.Join(dataDir, caseName+".json")

	switch format {
	case "pwf":
		f, err := os.Open(pwfPath)
		if err != nil {
			return nil, nil, err
		}
		return reader.NewPWF(caseName, f), f, nil
	case "json":
		f, err := os.Open(jsonPath)
		if err != nil {
			return nil, nil, err
		}
		return reader.NewJSON(caseName, f), f, nil
	case "":
		if f, err := os.Open(pwfPath); err == nil {
			return reader.NewPWF(caseName, f), f, nil
		}
		if f, err := os.Open(jsonPath); err == nil {
			return reader.NewJSON(caseName, f), f, nil
		}
		return nil, nil, fmt.Errorf("case %q not found in %s (.pwf or .json)", caseName, dataDir)
	default:
		return nil, nil, fmt.Errorf("unknown format %q (want pwf or json)", format)
	}
}

// writeReports emits every output artifact for a solved case.
func writeReports(outDir, caseName string, sys *system.System, res *solver.Result) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	profileName := caseName + "_voltage_profile.png"
	phasorName := caseName + "_phasor_diagram.png"

	if err := report.VoltageProfilePNG(filepath.Join(outDir, profileName), res); err != nil {
		return err
	}
	if err := report.PhasorDiagramPNG(filepath.Join(outDir, phasorName), res); err != nil {
		return err
	}

	writers := []struct {
		name  string
		write func(f *os.File) error
	}{
		{caseName + "_ybus.csv", func(f *os.File) error { return report.WriteYbusCSV(f, sys) }},
		{caseName + "_result.csv", func(f *os.File) error { return report.WriteResultCSV(f, res) }},
		{caseName + "_summary.csv", func(f *os.File) error { return report.WriteSummaryCSV(f, sys) }},
		{caseName + "_report.md", func(f *os.File) error {
			return report.WriteMarkdown(f, sys, res, report.Figures{
				VoltageProfile: profileName,
				PhasorDiagram:  phasorName,
			})
		}},
	}
	for _, w := range writers {
		f, err := os.Create(filepath.Join(outDir, w.name))
		if err != nil {
			return err
		}
		if err := w.write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
