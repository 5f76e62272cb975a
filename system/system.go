package system

import (
	"errors"
	"fmt"

	"github.com/voltlab/powerflow/admittance"
	"github.com/voltlab/powerflow/grid"
)

// ErrStateSizeMismatch indicates that Commit received vectors whose length
// does not match the bus count.
var ErrStateSizeMismatch = errors.New("system: state vector size mismatch")

// DefaultBaseMVA is the conventional system base when the input case
// does not carry one.
const DefaultBaseMVA = 100.0

// System is the assembled power-flow case: topology, specified injections,
// admittance matrix and bus partition. All electrical quantities are
// per-unit on BaseMVA; normalization happened upstream in the readers.
type System struct {
	Name         string             // case name, used by reports
	BaseMVA      float64            // system MVA base
	Buses        []*grid.Bus        // buses in input order
	Lines        []grid.Line        // plain transmission lines
	Transformers []grid.Transformer // tap/phase branches
	Shunts       []grid.Shunt       // shunt elements collected from the buses
	Ybus         *admittance.Matrix // nodal admittance matrix, bus input order
	Pspec        map[string]float64 // net specified active injection per bus
	Qspec        map[string]float64 // net specified reactive injection per bus
	Partition    grid.Partition     // classification sets and unknown orderings
}

// New validates the bus list, collects bus-attached shunts, assembles the
// admittance matrix over the bus input order and derives the specified
// injections and the partition.
//
// Errors: validation sentinels from package grid, assembly sentinels from
// package admittance; all wrapped with the case name.
func New(name string, baseMVA float64, buses []*grid.Bus, lines []grid.Line, transformers []grid.Transformer) (*System, error) {
	if err := grid.ValidateBuses(buses); err != nil {
		return nil, fmt.Errorf("system %q: %w", name, err)
	}
	if baseMVA <= 0 {
		baseMVA = DefaultBaseMVA
	}

	order := make([]string, len(buses))
	pspec := make(map[string]float64, len(buses))
	qspec := make(map[string]float64, len(buses))
	var shunts []grid.Shunt
	for i, b := range buses {
		order[i] = b.Name
		pspec[b.Name] = b.PSpecified()
		qspec[b.Name] = b.QSpecified()
		shunts = append(shunts, b.Shunts...)
	}

	ybus, err := admittance.Assemble(order, lines, transformers, shunts)
	if err != nil {
		return nil, fmt.Errorf("system %q: %w", name, err)
	}

	return &System{
		Name:         name,
		BaseMVA:      baseMVA,
		Buses:        buses,
		Lines:        lines,
		Transformers: transformers,
		Shunts:       shunts,
		Ybus:         ybus,
		Pspec:        pspec,
		Qspec:        qspec,
		Partition:    grid.NewPartition(buses),
	}, nil
}

// Commit writes a final voltage state back into the Bus objects.
// v and theta follow the bus input order.
func (s *System) Commit(v, theta []float64) error {
	if len(v) != len(s.Buses) || len(theta) != len(s.Buses) {
		return ErrStateSizeMismatch
	}
	for i, b := range s.Buses {
		b.V = v[i]
		b.Theta = theta[i]
	}
	return nil
}
