// Package admittance: element stamping.
//
// Stamp shapes (standard nodal analysis):
//
//	Line, series z = r + jx, total charging b:
//	    y = 1/z
//	    Y[f,f] += y + jb/2     Y[t,t] += y + jb/2
//	    Y[f,t] += -y           Y[t,f] += -y
//
//	Transformer, complex tap a = tap·e^{jφ} (φ in radians):
//	    Y[f,f] += y/(a·ā) + jb/2
//	    Y[f,t] += -y/ā          Y[t,f] += -y/a
//	    Y[t,t] += y + jb/2
//
//	Shunt, susceptance b: Y[k,k] += jb.

package admittance

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/voltlab/powerflow/grid"
)

// Assemble builds the nodal admittance matrix over the given bus ordering.
// Out-of-service elements are skipped; everything else stamps additively.
//
// Errors:
//   - ErrEmptyOrder / ErrDuplicateName for a malformed ordering.
//   - ErrUnknownBus when an element references a name outside the ordering.
//   - ErrDegenerateImpedance when an in-service branch has r + jx == 0.
//   - ErrZeroTap when an in-service transformer has tap == 0.
//
// Complexity: O(n² + E) time, O(n²) memory for the dense storage.
func Assemble(order []string, lines []grid.Line, transformers []grid.Transformer, shunts []grid.Shunt) (*Matrix, error) {
	m, err := newMatrix(order)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		if err := m.stampLine(&lines[i]); err != nil {
			return nil, err
		}
	}
	for i := range transformers {
		if err := m.stampTransformer(&transformers[i]); err != nil {
			return nil, err
		}
	}
	for i := range shunts {
		if err := m.stampShunt(&shunts[i]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// endpoints resolves a branch's terminal names to matrix positions.
func (m *Matrix) endpoints(from, to string) (int, int, error) {
	i, ok := m.index[from]
	if !ok {
		return 0, 0, fmt.Errorf("branch endpoint %q: %w", from, ErrUnknownBus)
	}
	j, ok := m.index[to]
	if !ok {
		return 0, 0, fmt.Errorf("branch endpoint %q: %w", to, ErrUnknownBus)
	}
	return i, j, nil
}

// stampLine adds a plain transmission line: symmetric self and mutual terms
// plus half the charging susceptance on each diagonal.
func (m *Matrix) stampLine(l *grid.Line) error {
	if !l.InService {
		return nil
	}
	if !grid.SeriesImpedanceOK(l.R, l.X) {
		return fmt.Errorf("line %s-%s: %w", l.From, l.To, ErrDegenerateImpedance)
	}
	i, j, err := m.endpoints(l.From, l.To)
	if err != nil {
		return err
	}
	y := 1 / complex(l.R, l.X)
	half := complex(0, l.B/2)

	m.add(i, i, y+half)
	m.add(j, j, y+half)
	m.add(i, j, -y)
	m.add(j, i, -y)
	return nil
}

// stampTransformer adds a two-winding transformer with complex tap.
// The mutual terms divide by a and ā respectively, which breaks value
// symmetry whenever the phase shift is non-zero.
func (m *Matrix) stampTransformer(t *grid.Transformer) error {
	if !t.InService {
		return nil
	}
	if !grid.SeriesImpedanceOK(t.R, t.X) {
		return fmt.Errorf("transformer %s-%s: %w", t.From, t.To, ErrDegenerateImpedance)
	}
	if t.Tap == 0 {
		return fmt.Errorf("transformer %s-%s: %w", t.From, t.To, ErrZeroTap)
	}
	i, j, err := m.endpoints(t.From, t.To)
	if err != nil {
		return err
	}
	y := 1 / complex(t.R, t.X)
	half := complex(0, t.B/2)
	phase := t.Phase * math.Pi / 180
	a := complex(t.Tap, 0) * cmplx.Exp(complex(0, phase))

	m.add(i, i, y/(a*cmplx.Conj(a))+half)
	m.add(i, j, -y/cmplx.Conj(a))
	m.add(j, i, -y/a)
	m.add(j, j, y+half)
	return nil
}

// stampShunt adds a bus shunt on the diagonal.
func (m *Matrix) stampShunt(s *grid.Shunt) error {
	if !s.InService {
		return nil
	}
	k, ok := m.index[s.Bus]
	if !ok {
		return fmt.Errorf("shunt at %q: %w", s.Bus, ErrUnknownBus)
	}
	m.add(k, k, complex(0, s.B))
	return nil
}
