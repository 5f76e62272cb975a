// Package grid_test: partition derivation tests.
package grid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltlab/powerflow/grid"
)

// TestNewPartition checks set membership and the two unknown orderings.
func TestNewPartition(t *testing.T) {
	buses := []*grid.Bus{
		{Name: "L1", Kind: grid.PQ},
		{Name: "G1", Kind: grid.PV},
		{Name: "SW", Kind: grid.Swing},
		{Name: "L2", Kind: grid.PQ},
	}
	p := grid.NewPartition(buses)

	require.Equal(t, []string{"L1", "L2"}, p.PQ)
	require.Equal(t, []string{"G1"}, p.PV)
	require.Equal(t, []string{"SW"}, p.Swing)

	// Angle ordering is the bus input order; magnitude is swing-first.
	require.Equal(t, []string{"L1", "G1", "SW", "L2"}, p.Angle)
	require.Equal(t, []string{"SW", "L1", "L2"}, p.Magnitude)
}

// TestNewPartitionExhaustive: the three sets partition the bus list.
func TestNewPartitionExhaustive(t *testing.T) {
	buses := []*grid.Bus{
		{Name: "A", Kind: grid.Swing},
		{Name: "B", Kind: grid.PQ},
		{Name: "C", Kind: grid.PV},
	}
	p := grid.NewPartition(buses)

	require.Len(t, p.Angle, len(buses))
	require.Equal(t, len(buses), len(p.PQ)+len(p.PV)+len(p.Swing))
	require.Len(t, p.Magnitude, len(p.Swing)+len(p.PQ))
}
