// Package report: PNG figures via gonum/plot.

package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/voltlab/powerflow/solver"
)

// VoltageProfilePNG draws the per-bus voltage magnitude profile with a
// 1.0 pu reference line and saves it to path.
func VoltageProfilePNG(path string, res *solver.Result) error {
	p := plot.New()
	p.Title.Text = "Voltage profile"
	p.X.Label.Text = "bus"
	p.Y.Label.Text = "|V| (pu)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(res.V))
	for i, v := range res.V {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("report: voltage profile: %w", err)
	}
	p.Add(line, points)
	p.NominalX(res.Names...)

	ref, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 1}, {X: float64(len(res.V) - 1), Y: 1},
	})
	if err != nil {
		return fmt.Errorf("report: voltage profile: %w", err)
	}
	ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(ref)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: voltage profile: %w", err)
	}
	return nil
}

// PhasorDiagramPNG draws every bus voltage as a phasor V·e^{jθ} from the
// origin in the complex plane, labels the tips with bus names, and saves
// the figure to path.
func PhasorDiagramPNG(path string, res *solver.Result) error {
	p := plot.New()
	p.Title.Text = "Phasor diagram"
	p.X.Label.Text = "Re"
	p.Y.Label.Text = "Im"
	p.Add(plotter.NewGrid())

	tips := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(res.V)),
		Labels: make([]string, len(res.V)),
	}
	reach := 0.0
	for i := range res.V {
		x := res.V[i] * math.Cos(res.Theta[i])
		y := res.V[i] * math.Sin(res.Theta[i])
		tips.XYs[i] = plotter.XY{X: x, Y: y}
		tips.Labels[i] = res.Names[i]
		if res.V[i] > reach {
			reach = res.V[i]
		}

		seg, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: x, Y: y}})
		if err != nil {
			return fmt.Errorf("report: phasor diagram: %w", err)
		}
		p.Add(seg)
	}

	labels, err := plotter.NewLabels(tips)
	if err != nil {
		return fmt.Errorf("report: phasor diagram: %w", err)
	}
	p.Add(labels)

	// Square, zero-centered frame so angles read true.
	reach *= 1.15
	p.X.Min, p.X.Max = -reach, reach
	p.Y.Min, p.Y.Max = -reach, reach

	if err := p.Save(5*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("report: phasor diagram: %w", err)
	}
	return nil
}
