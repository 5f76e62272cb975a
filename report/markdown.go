// Package report: Markdown run report.

package report

import (
	"fmt"
	"io"
	"math"

	"github.com/voltlab/powerflow/solver"
	"github.com/voltlab/powerflow/system"
)

// Figures names the image files referenced by the Markdown report.
// Empty fields omit the corresponding section.
type Figures struct {
	VoltageProfile string // relative path to the voltage-profile PNG
	PhasorDiagram  string // relative path to the phasor-diagram PNG
}

// WriteMarkdown renders the run report: case identification, convergence
// outcome, the per-bus voltage table and the generated figures.
func WriteMarkdown(w io.Writer, sys *system.System, res *solver.Result, figs Figures) error {
	var err error
	p := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("# Power-flow report — %s\n\n", sys.Name)
	p("- Base: %.1f MVA\n", sys.BaseMVA)
	p("- Buses: %d (PQ %d, PV %d, swing %d)\n",
		len(sys.Buses), len(sys.Partition.PQ), len(sys.Partition.PV), len(sys.Partition.Swing))
	p("- Branches: %d lines, %d transformers\n", len(sys.Lines), len(sys.Transformers))
	if res.Converged {
		p("- Outcome: **converged** in %d iterations (final mismatch %.3e)\n\n", res.Iterations, res.Norm)
	} else {
		p("- Outcome: **did not converge** within %d iterations (last mismatch %.3e)\n\n", res.Iterations, res.Norm)
	}

	p("## Bus voltages\n\n")
	p("| Bus | Kind | V (pu) | θ (rad) | θ (deg) |\n")
	p("|-----|------|--------|---------|--------|\n")
	for i, name := range res.Names {
		p("| %s | %s | %.*f | %.*f | %.*f |\n",
			name, sys.Buses[i].Kind,
			Precision, res.V[i],
			Precision, res.Theta[i],
			Precision, res.Theta[i]*180/math.Pi)
	}
	p("\n")

	if figs.VoltageProfile != "" {
		p("## Voltage profile\n\n![voltage profile](%s)\n\n", figs.VoltageProfile)
	}
	if figs.PhasorDiagram != "" {
		p("## Phasor diagram\n\n![phasor diagram](%s)\n\n", figs.PhasorDiagram)
	}
	if err != nil {
		return fmt.Errorf("report: markdown: %w", err)
	}
	return nil
}
