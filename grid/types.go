// Package grid: central model types and sentinel errors.
// This file declares BusKind, Bus, Line, Transformer, Shunt, Generator
// and Load. The aggregate that wires them together with an admittance
// matrix lives in package system.

package grid

import (
	"errors"
	"math"
)

// Sentinel errors for model validation.
var (
	// ErrNoBuses indicates that an empty bus list was supplied.
	ErrNoBuses = errors.New("grid: no buses")

	// ErrDuplicateBus indicates that two buses share the same name.
	ErrDuplicateBus = errors.New("grid: duplicate bus name")

	// ErrNoSwingBus indicates that no bus is classified Swing.
	ErrNoSwingBus = errors.New("grid: no swing bus")

	// ErrMultipleSwing indicates that more than one bus is classified Swing.
	ErrMultipleSwing = errors.New("grid: multiple swing buses")

	// ErrUnknownBusKind indicates a classification outside {PQ, PV, Swing}.
	ErrUnknownBusKind = errors.New("grid: unknown bus kind")
)

// BusKind classifies a bus by which quantities are fixed and which are free.
//
// PQ    – load bus: P and Q specified, V and θ free.
// PV    – generator bus: P and V specified, θ and Q free.
// Swing – reference bus: V and θ specified, P and Q free; fixes the angle origin.
type BusKind int

const (
	// PQ is a load bus with fixed active/reactive power.
	PQ BusKind = iota

	// PV is a generator bus with fixed voltage magnitude.
	PV

	// Swing is the reference bus absorbing the system power imbalance.
	Swing
)

// String returns the conventional short label for the bus kind.
func (k BusKind) String() string {
	switch k {
	case PQ:
		return "PQ"
	case PV:
		return "PV"
	case Swing:
		return "SWING"
	default:
		return "UNKNOWN"
	}
}

// ParseBusKind maps the conventional labels "PQ", "PV" and "SWING" onto
// a BusKind. Unknown labels return ErrUnknownBusKind.
func ParseBusKind(s string) (BusKind, error) {
	switch s {
	case "PQ":
		return PQ, nil
	case "PV":
		return PV, nil
	case "SWING":
		return Swing, nil
	default:
		return PQ, ErrUnknownBusKind
	}
}

// Generator represents a generating unit connected to a bus.
//
// QMin and QMax model the reactive capability band; they are carried for
// reporting but never enforced (no PV→PQ switching). Absent limits are NaN.
type Generator struct {
	ID   int     // unit identifier, unique within the case
	Bus  string  // name of the owning bus
	P    float64 // active power output (pu)
	Q    float64 // reactive power output (pu)
	QMin float64 // lower reactive limit (pu), NaN when absent
	QMax float64 // upper reactive limit (pu), NaN when absent
}

// Load represents a consuming unit connected to a bus.
type Load struct {
	Bus string  // name of the owning bus
	P   float64 // active power consumed (pu)
	Q   float64 // reactive power consumed (pu)
}

// Shunt represents a shunt compensation element connected to a bus.
// Susceptance is signed: positive for capacitors, negative for reactors.
type Shunt struct {
	Bus       string  // name of the owning bus
	B         float64 // shunt susceptance (pu)
	InService bool    // out-of-service shunts contribute nothing
}

// Line represents a plain transmission line between two buses.
//
// R and X form the series impedance z = r + jx; B is the total line-charging
// susceptance, half of which is stamped at each terminal.
type Line struct {
	From      string  // origin bus name
	To        string  // destination bus name
	Name      string  // optional display name
	R         float64 // series resistance (pu)
	X         float64 // series reactance (pu)
	B         float64 // total charging susceptance (pu)
	InService bool    // out-of-service lines contribute nothing
}

// Transformer represents a two-winding transformer between two buses,
// with an off-nominal complex tap a = Tap·e^{jφ}.
//
// Phase is stored in degrees as read from input data; the admittance
// assembler converts it to radians. A phase shift makes the mutual
// admittance terms asymmetric (non-conjugate).
type Transformer struct {
	From      string  // origin (tap-side) bus name
	To        string  // destination bus name
	Name      string  // optional display name
	R         float64 // series resistance (pu)
	X         float64 // series reactance (pu)
	B         float64 // magnetizing/charging susceptance (pu)
	Tap       float64 // tap ratio; 1.0 is nominal, 0 is rejected
	Phase     float64 // phase-shift angle (degrees)
	InService bool    // out-of-service transformers contribute nothing
}

// Bus represents a network node.
//
// V and Theta carry the current voltage state: the initial setpoint before a
// solve, the solved operating point after System.Commit.
type Bus struct {
	Number     int         // external bus number from the input case
	Name       string      // unique display name; matrix/vector label
	Kind       BusKind     // PQ, PV or Swing
	V          float64     // voltage magnitude (pu)
	Theta      float64     // voltage angle (radians)
	Generators []Generator // units injecting into this bus
	Loads      []Load      // units drawing from this bus
	Shunts     []Shunt     // shunt elements at this bus, never nil
}

// PSpecified returns the net specified active injection at the bus:
// total generation minus total load.
func (b *Bus) PSpecified() float64 {
	var p float64
	for i := range b.Generators {
		p += b.Generators[i].P
	}
	for i := range b.Loads {
		p -= b.Loads[i].P
	}
	return p
}

// QSpecified returns the net specified reactive injection at the bus:
// total generation minus total load.
func (b *Bus) QSpecified() float64 {
	var q float64
	for i := range b.Generators {
		q += b.Generators[i].Q
	}
	for i := range b.Loads {
		q -= b.Loads[i].Q
	}
	return q
}

// TotalShuntSusceptance sums the susceptance of all in-service shunts
// attached to the bus.
func (b *Bus) TotalShuntSusceptance() float64 {
	var s float64
	for i := range b.Shunts {
		if b.Shunts[i].InService {
			s += b.Shunts[i].B
		}
	}
	return s
}

// SeriesImpedanceOK reports whether r + jx is non-degenerate.
func SeriesImpedanceOK(r, x float64) bool {
	return r != 0 || x != 0
}

// ValidateBuses checks the structural invariants of a bus list:
// non-empty, unique names, known classifications and exactly one Swing bus.
// Shunt slices are normalized to non-nil as a side effect.
func ValidateBuses(buses []*Bus) error {
	if len(buses) == 0 {
		return ErrNoBuses
	}
	seen := make(map[string]struct{}, len(buses))
	swings := 0
	for _, b := range buses {
		if _, dup := seen[b.Name]; dup {
			return ErrDuplicateBus
		}
		seen[b.Name] = struct{}{}
		switch b.Kind {
		case PQ, PV:
		case Swing:
			swings++
		default:
			return ErrUnknownBusKind
		}
		// Empty-but-present shunt collection, never nil with meaning.
		if b.Shunts == nil {
			b.Shunts = []Shunt{}
		}
	}
	if swings == 0 {
		return ErrNoSwingBus
	}
	if swings > 1 {
		return ErrMultipleSwing
	}
	return nil
}

// HasQLimits reports whether the generator carries a usable reactive band.
// Limits are informational only; the solver never enforces them.
func (g *Generator) HasQLimits() bool {
	return !math.IsNaN(g.QMin) && !math.IsNaN(g.QMax)
}
