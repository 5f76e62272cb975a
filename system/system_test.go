// Package system_test contains unit tests for case assembly:
// shunt collection, specified-injection tables, ordering and Commit.
package system_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltlab/powerflow/grid"
	"github.com/voltlab/powerflow/system"
)

// twoBus builds a minimal swing+PQ case.
func twoBus() ([]*grid.Bus, []grid.Line) {
	slack := &grid.Bus{
		Name: "SLACK", Kind: grid.Swing, V: 1.0,
		Generators: []grid.Generator{{ID: 1, Bus: "SLACK"}},
	}
	load := &grid.Bus{
		Name: "LOAD", Kind: grid.PQ, V: 1.0,
		Loads:  []grid.Load{{Bus: "LOAD", P: 0.3, Q: 0.1}},
		Shunts: []grid.Shunt{{Bus: "LOAD", B: 0.05, InService: true}},
	}
	lines := []grid.Line{{From: "SLACK", To: "LOAD", R: 0.01, X: 0.1, InService: true}}
	return []*grid.Bus{slack, load}, lines
}

// TestNewSystem verifies the assembled aggregate.
func TestNewSystem(t *testing.T) {
	buses, lines := twoBus()
	sys, err := system.New("case2", 100, buses, lines, nil)
	require.NoError(t, err)

	require.Equal(t, "case2", sys.Name)
	require.Equal(t, 100.0, sys.BaseMVA)
	require.Equal(t, []string{"SLACK", "LOAD"}, sys.Ybus.Order())

	// Bus-attached shunts are collected into the aggregate.
	require.Len(t, sys.Shunts, 1)
	require.Equal(t, "LOAD", sys.Shunts[0].Bus)

	// Specified injections: generation minus load, per bus.
	require.InDelta(t, 0.0, sys.Pspec["SLACK"], 1e-12)
	require.InDelta(t, -0.3, sys.Pspec["LOAD"], 1e-12)
	require.InDelta(t, -0.1, sys.Qspec["LOAD"], 1e-12)

	require.Equal(t, []string{"SLACK"}, sys.Partition.Swing)
	require.Equal(t, []string{"LOAD"}, sys.Partition.PQ)
	require.Equal(t, []string{"SLACK", "LOAD"}, sys.Partition.Magnitude)
}

// TestNewSystemDefaultsBase: a non-positive base falls back to 100 MVA.
func TestNewSystemDefaultsBase(t *testing.T) {
	buses, lines := twoBus()
	sys, err := system.New("case2", 0, buses, lines, nil)
	require.NoError(t, err)
	require.Equal(t, system.DefaultBaseMVA, sys.BaseMVA)
}

// TestNewSystemValidation propagates grid and admittance sentinels.
func TestNewSystemValidation(t *testing.T) {
	_, err := system.New("empty", 100, nil, nil, nil)
	require.ErrorIs(t, err, grid.ErrNoBuses)

	buses, _ := twoBus()
	dead := []grid.Line{{From: "SLACK", To: "GHOST", R: 0.01, X: 0.1, InService: true}}
	_, err = system.New("ghost", 100, buses, dead, nil)
	require.Error(t, err) // unknown endpoint surfaces from assembly
}

// TestCommit writes the final state back into the bus objects.
func TestCommit(t *testing.T) {
	buses, lines := twoBus()
	sys, err := system.New("case2", 100, buses, lines, nil)
	require.NoError(t, err)

	require.NoError(t, sys.Commit([]float64{1.02, 0.97}, []float64{0, -0.05}))
	require.Equal(t, 1.02, buses[0].V)
	require.Equal(t, 0.97, buses[1].V)
	require.Equal(t, -0.05, buses[1].Theta)

	err = sys.Commit([]float64{1.0}, []float64{0})
	require.ErrorIs(t, err, system.ErrStateSizeMismatch)
}
