// Package grid: bus partition derived from bus classification.

package grid

// Partition groups bus names into the three disjoint, exhaustive
// classification sets plus the two unknown orderings used by the solver:
//
//	Angle     – every bus, in input order; one angle unknown per entry.
//	Magnitude – Swing buses followed by PQ buses, each in input order;
//	            one magnitude unknown per entry. PV buses are absent, which
//	            is what pins their voltage setpoint during state update.
//
// A Partition is computed once when the system is assembled and is
// immutable for the duration of a solve; it fixes the Jacobian shape.
type Partition struct {
	PQ        []string // load buses
	PV        []string // generator buses
	Swing     []string // reference bus (exactly one on a validated system)
	Angle     []string // ordered union of all buses
	Magnitude []string // swing ∪ PQ, swing-first
}

// NewPartition derives the partition from a bus list. The caller is expected
// to have validated the list (see ValidateBuses); classification here is a
// pure grouping pass.
func NewPartition(buses []*Bus) Partition {
	p := Partition{
		Angle: make([]string, 0, len(buses)),
	}
	for _, b := range buses {
		p.Angle = append(p.Angle, b.Name)
		switch b.Kind {
		case PV:
			p.PV = append(p.PV, b.Name)
		case Swing:
			p.Swing = append(p.Swing, b.Name)
		default:
			p.PQ = append(p.PQ, b.Name)
		}
	}
	p.Magnitude = make([]string, 0, len(p.Swing)+len(p.PQ))
	p.Magnitude = append(p.Magnitude, p.Swing...)
	p.Magnitude = append(p.Magnitude, p.PQ...)
	return p
}
