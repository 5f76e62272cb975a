// Package reader_test: fixed-column PWF parsing tests. Fixtures are built
// byte-by-byte so the column offsets under test are explicit.
package reader_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltlab/powerflow/grid"
	"github.com/voltlab/powerflow/reader"
)

// row builds a fixed-width record by placing each value right-aligned in
// its [from:to) byte window.
func row(fields ...struct {
	from, to int
	val      string
}) string {
	b := []byte(strings.Repeat(" ", 80))
	for _, f := range fields {
		s := f.val
		for i := 0; i < len(s); i++ {
			b[f.to-len(s)+i] = s[i]
		}
	}
	return string(b)
}

type col = struct {
	from, to int
	val      string
}

// dbar lays out a DBAR bus record.
func dbar(num, kind, name, v, theta, pg, qg, qmin, qmax, pl, ql, sh string) string {
	fields := []col{
		{0, 5, num}, {5, 8, kind}, {24, 28, v}, {28, 32, theta},
		{32, 37, pg}, {37, 42, qg}, {42, 47, qmin}, {47, 52, qmax},
		{58, 63, pl}, {63, 68, ql}, {69, 74, sh},
	}
	r := []byte(row(fields...))
	copy(r[10:22], name) // the name field is left-aligned
	return string(r)
}

// dlin lays out a DLIN branch record.
func dlin(from, to, r, x, b, tap, phase string) string {
	return row(col{0, 5, from}, col{10, 15, to}, col{15, 26, r},
		col{26, 32, x}, col{32, 38, b}, col{38, 44, tap}, col{54, 59, phase})
}

// twoBusPWF is a complete document: swing generator bus, PQ load bus with
// a shunt, one line and one tap/phase transformer between them.
func twoBusPWF() string {
	return strings.Join([]string{
		"TITU",
		"case under test",
		"BASE  100.0",
		"DBAR",
		"(num tp   name          v    th   pg   qg  qmin qmax       pl   ql    sh",
		dbar("1", "2", "SLACK-BUS", "1020", "0", "50.0", "10.0", "-30.0", "30.0", "", "", ""),
		dbar("2", "0", "LOAD-BUS", "1000", "0", "", "", "", "", "30.0", "10.0", "5.0"),
		"99999",
		"DLIN",
		"(from     to       r     x     b   tap           phase",
		dlin("1", "2", "1.0", "10.0", "4.0", "", ""),
		dlin("1", "2", "0.0", "2.0", "", "1.05", "5.0"),
		"99999",
	}, "\n")
}

// TestPWFRead parses the full fixture and checks every mapped quantity,
// including the per-unit normalizations against the MVA base.
func TestPWFRead(t *testing.T) {
	c, err := reader.NewPWF("case2", strings.NewReader(twoBusPWF())).Read()
	require.NoError(t, err)

	require.Equal(t, "case2", c.Name)
	require.Equal(t, 100.0, c.BaseMVA)
	require.Len(t, c.Buses, 2)

	slack := c.Buses[0]
	require.Equal(t, 1, slack.Number)
	require.Equal(t, "SLACK-BUS", slack.Name)
	require.Equal(t, grid.Swing, slack.Kind)
	require.InDelta(t, 1.02, slack.V, 1e-12) // column holds thousandths of pu
	require.Len(t, slack.Generators, 1)
	require.InDelta(t, 0.5, slack.Generators[0].P, 1e-12) // 50 MW / 100 MVA
	require.InDelta(t, 0.1, slack.Generators[0].Q, 1e-12)
	require.InDelta(t, -30.0, slack.Generators[0].QMin, 1e-12) // limits stay in MVAr
	require.InDelta(t, 30.0, slack.Generators[0].QMax, 1e-12)

	load := c.Buses[1]
	require.Equal(t, "LOAD-BUS", load.Name)
	require.Equal(t, grid.PQ, load.Kind)
	require.InDelta(t, 1.0, load.V, 1e-12)
	require.Empty(t, load.Generators) // PQ with no output gets none
	require.Len(t, load.Loads, 1)
	require.InDelta(t, 0.3, load.Loads[0].P, 1e-12)
	require.InDelta(t, 0.1, load.Loads[0].Q, 1e-12)
	require.Len(t, load.Shunts, 1)
	require.InDelta(t, 0.05, load.Shunts[0].B, 1e-12)

	require.Len(t, c.Lines, 1)
	ln := c.Lines[0]
	require.Equal(t, "SLACK-BUS", ln.From)
	require.Equal(t, "LOAD-BUS", ln.To)
	require.InDelta(t, 0.01, ln.R, 1e-12) // percent to pu
	require.InDelta(t, 0.10, ln.X, 1e-12)
	require.InDelta(t, 0.04, ln.B, 1e-12) // MVAr to pu on the base
	require.True(t, ln.InService)

	require.Len(t, c.Transformers, 1)
	tr := c.Transformers[0]
	require.InDelta(t, 0.02, tr.X, 1e-12)
	require.InDelta(t, 1.05, tr.Tap, 1e-12)
	require.InDelta(t, 5.0, tr.Phase, 1e-12)
}

// TestPWFGeneratorDefaults: a swing or PV bus always carries a generator
// record, and absent Q limits read back as NaN.
func TestPWFGeneratorDefaults(t *testing.T) {
	doc := strings.Join([]string{
		"BASE  100.0",
		"DBAR",
		dbar("1", "2", "SW", "1000", "0", "", "", "", "", "", "", ""),
		dbar("2", "1", "PV", "1020", "0", "20.0", "", "", "", "", "", ""),
		"99999",
	}, "\n")

	c, err := reader.NewPWF("gen", strings.NewReader(doc)).Read()
	require.NoError(t, err)
	require.Len(t, c.Buses, 2)

	for _, b := range c.Buses {
		require.Len(t, b.Generators, 1, "bus %s", b.Name)
		require.True(t, math.IsNaN(b.Generators[0].QMin))
		require.True(t, math.IsNaN(b.Generators[0].QMax))
	}
	require.Equal(t, grid.PV, c.Buses[1].Kind)
	require.InDelta(t, 0.2, c.Buses[1].Generators[0].P, 1e-12)
}

// TestPWFZeroTapIsLine: a DLIN row with tap 0 is a plain nominal line.
func TestPWFZeroTapIsLine(t *testing.T) {
	doc := strings.Join([]string{
		"BASE  100.0",
		"DBAR",
		dbar("1", "2", "A", "1000", "0", "", "", "", "", "", "", ""),
		dbar("2", "0", "B", "1000", "0", "", "", "", "", "10.0", "", ""),
		"99999",
		"DLIN",
		dlin("1", "2", "", "10.0", "", "0.0", ""),
		"99999",
	}, "\n")

	c, err := reader.NewPWF("zt", strings.NewReader(doc)).Read()
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	require.Empty(t, c.Transformers)
}

// TestPWFSkipsMalformedRows: rows failing their mandatory integer fields
// are dropped, not fatal.
func TestPWFSkipsMalformedRows(t *testing.T) {
	doc := strings.Join([]string{
		"BASE  100.0",
		"DBAR",
		dbar("1", "2", "A", "1000", "0", "", "", "", "", "", "", ""),
		"garbage row that parses nowhere",
		dbar("2", "0", "B", "1000", "0", "", "", "", "", "10.0", "", ""),
		"99999",
	}, "\n")

	c, err := reader.NewPWF("bad", strings.NewReader(doc)).Read()
	require.NoError(t, err)
	require.Len(t, c.Buses, 2)
}

// TestPWFNoBase: a document without a BASE line is unusable.
func TestPWFNoBase(t *testing.T) {
	doc := strings.Join([]string{
		"DBAR",
		dbar("1", "2", "A", "1000", "0", "", "", "", "", "", "", ""),
		"99999",
	}, "\n")

	_, err := reader.NewPWF("nobase", strings.NewReader(doc)).Read()
	require.ErrorIs(t, err, reader.ErrNoBaseSection)
}

// TestPWFAssembleRoundTrip: a read case assembles into a solvable system
// preserving the DBAR order.
func TestPWFAssembleRoundTrip(t *testing.T) {
	c, err := reader.NewPWF("case2", strings.NewReader(twoBusPWF())).Read()
	require.NoError(t, err)

	sys, err := reader.Assemble(c)
	require.NoError(t, err)
	require.Equal(t, []string{"SLACK-BUS", "LOAD-BUS"}, sys.Ybus.Order())
	require.Equal(t, 100.0, sys.BaseMVA)
	require.Equal(t, []string{"SLACK-BUS"}, sys.Partition.Swing)
}
