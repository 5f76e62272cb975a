// Package report: CSV table writers.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/voltlab/powerflow/solver"
	"github.com/voltlab/powerflow/system"
)

// Precision is the number of decimal places in all numeric output.
const Precision = 6

// num formats a float at the report precision.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', Precision, 64)
}

// WriteYbusCSV writes the admittance matrix as a labeled square table.
// Cells are complex values in Go syntax (e.g. "(1.941748-9.708738i)").
func WriteYbusCSV(w io.Writer, sys *system.System) error {
	cw := csv.NewWriter(w)
	order := sys.Ybus.Order()

	header := append([]string{"bus"}, order...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report: ybus csv: %w", err)
	}
	for i, from := range order {
		row := make([]string, 0, len(order)+1)
		row = append(row, from)
		for j := range order {
			y, err := sys.Ybus.AtIndex(i, j)
			if err != nil {
				return fmt.Errorf("report: ybus csv: %w", err)
			}
			row = append(row, strconv.FormatComplex(y, 'f', Precision, 128))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: ybus csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultCSV writes the solved voltage state, one row per bus.
func WriteResultCSV(w io.Writer, res *solver.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bus", "v_pu", "theta_rad", "theta_deg"}); err != nil {
		return fmt.Errorf("report: result csv: %w", err)
	}
	for i, name := range res.Names {
		row := []string{
			name,
			num(res.V[i]),
			num(res.Theta[i]),
			num(res.Theta[i] * 180 / math.Pi),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: result csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes the full per-bus table: classification, committed
// voltage state, generation, load, shunt and the specified injections.
func WriteSummaryCSV(w io.Writer, sys *system.System) error {
	cw := csv.NewWriter(w)
	header := []string{
		"bus", "kind", "v_pu", "theta_rad",
		"p_gen", "q_gen", "p_load", "q_load",
		"shunt_b", "p_spec", "q_spec",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report: summary csv: %w", err)
	}
	for _, b := range sys.Buses {
		var pg, qg, pl, ql float64
		for i := range b.Generators {
			pg += b.Generators[i].P
			qg += b.Generators[i].Q
		}
		for i := range b.Loads {
			pl += b.Loads[i].P
			ql += b.Loads[i].Q
		}
		row := []string{
			b.Name, b.Kind.String(), num(b.V), num(b.Theta),
			num(pg), num(qg), num(pl), num(ql),
			num(b.TotalShuntSusceptance()), num(sys.Pspec[b.Name]), num(sys.Qspec[b.Name]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: summary csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
