// Package grid_test contains unit tests for the model types:
// classification parsing, specified-injection aggregation and the
// structural bus-list validation.
package grid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltlab/powerflow/grid"
)

// TestBusKindRoundTrip checks the label mapping in both directions.
func TestBusKindRoundTrip(t *testing.T) {
	for _, k := range []grid.BusKind{grid.PQ, grid.PV, grid.Swing} {
		parsed, err := grid.ParseBusKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, parsed)
	}

	_, err := grid.ParseBusKind("SLACKISH")
	require.ErrorIs(t, err, grid.ErrUnknownBusKind)
	require.Equal(t, "UNKNOWN", grid.BusKind(42).String())
}

// TestSpecifiedInjections: generation minus load, per quantity.
func TestSpecifiedInjections(t *testing.T) {
	b := &grid.Bus{
		Name: "B1", Kind: grid.PQ,
		Generators: []grid.Generator{
			{ID: 1, Bus: "B1", P: 0.9, Q: 0.3},
			{ID: 2, Bus: "B1", P: 0.1, Q: 0.1},
		},
		Loads: []grid.Load{
			{Bus: "B1", P: 0.4, Q: 0.2},
		},
	}
	require.InDelta(t, 0.6, b.PSpecified(), 1e-12) // 0.9+0.1-0.4
	require.InDelta(t, 0.2, b.QSpecified(), 1e-12) // 0.3+0.1-0.2
}

// TestTotalShuntSusceptance sums in-service shunts only.
func TestTotalShuntSusceptance(t *testing.T) {
	b := &grid.Bus{
		Name: "B1", Kind: grid.PQ,
		Shunts: []grid.Shunt{
			{Bus: "B1", B: 0.05, InService: true},
			{Bus: "B1", B: -0.02, InService: true},
			{Bus: "B1", B: 0.99, InService: false}, // ignored
		},
	}
	require.InDelta(t, 0.03, b.TotalShuntSusceptance(), 1e-12)
}

// TestHasQLimits: NaN marks an absent limit.
func TestHasQLimits(t *testing.T) {
	g := grid.Generator{QMin: -0.5, QMax: 0.5}
	require.True(t, g.HasQLimits())

	g.QMax = math.NaN()
	require.False(t, g.HasQLimits())
}

// TestValidateBuses exercises every structural invariant.
func TestValidateBuses(t *testing.T) {
	mk := func(name string, kind grid.BusKind) *grid.Bus {
		return &grid.Bus{Name: name, Kind: kind, V: 1}
	}

	tests := []struct {
		name  string
		buses []*grid.Bus
		want  error
	}{
		{"empty", nil, grid.ErrNoBuses},
		{"duplicate", []*grid.Bus{mk("A", grid.Swing), mk("A", grid.PQ)}, grid.ErrDuplicateBus},
		{"no swing", []*grid.Bus{mk("A", grid.PQ), mk("B", grid.PV)}, grid.ErrNoSwingBus},
		{"two swings", []*grid.Bus{mk("A", grid.Swing), mk("B", grid.Swing)}, grid.ErrMultipleSwing},
		{"bad kind", []*grid.Bus{{Name: "A", Kind: grid.BusKind(9)}}, grid.ErrUnknownBusKind},
		{"ok", []*grid.Bus{mk("A", grid.Swing), mk("B", grid.PQ)}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := grid.ValidateBuses(tc.buses)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestValidateBusesNormalizesShunts: nil shunt slices become empty ones.
func TestValidateBusesNormalizesShunts(t *testing.T) {
	b := &grid.Bus{Name: "A", Kind: grid.Swing, V: 1, Shunts: nil}
	require.NoError(t, grid.ValidateBuses([]*grid.Bus{b}))
	require.NotNil(t, b.Shunts)
	require.Empty(t, b.Shunts)
}

// TestSeriesImpedanceOK rejects only the fully degenerate branch.
func TestSeriesImpedanceOK(t *testing.T) {
	require.True(t, grid.SeriesImpedanceOK(0.01, 0))
	require.True(t, grid.SeriesImpedanceOK(0, 0.1))
	require.False(t, grid.SeriesImpedanceOK(0, 0))
}
