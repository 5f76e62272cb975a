// Package admittance: the name-indexed complex matrix type.
// Assembly (element stamping) lives in assemble.go.

package admittance

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for Ybus assembly and access.
var (
	// ErrEmptyOrder indicates that no bus names were supplied.
	ErrEmptyOrder = errors.New("admittance: empty bus ordering")

	// ErrDuplicateName indicates that the bus ordering repeats a name.
	ErrDuplicateName = errors.New("admittance: duplicate bus name in ordering")

	// ErrUnknownBus indicates that an element references a bus name that is
	// not part of the matrix ordering.
	ErrUnknownBus = errors.New("admittance: unknown bus name")

	// ErrDegenerateImpedance indicates an in-service branch with r + jx == 0.
	ErrDegenerateImpedance = errors.New("admittance: degenerate series impedance")

	// ErrZeroTap indicates an in-service transformer with a zero tap ratio.
	ErrZeroTap = errors.New("admittance: zero transformer tap")

	// ErrOutOfRange indicates a positional index outside the matrix bounds.
	ErrOutOfRange = errors.New("admittance: index out of range")
)

// Matrix is the nodal admittance matrix of a network, labeled by bus name
// in both dimensions. Internally it is a dense complex matrix addressed by
// integer position; index maps names onto positions and order provides the
// reverse lookup. A Matrix is immutable once assembled.
type Matrix struct {
	data  *mat.CDense    // dense complex storage, n×n
	index map[string]int // bus name → row/column position
	order []string       // position → bus name
}

// newMatrix allocates a zeroed n×n matrix over the given ordering.
// The ordering must be non-empty and free of duplicates.
func newMatrix(order []string) (*Matrix, error) {
	if len(order) == 0 {
		return nil, ErrEmptyOrder
	}
	index := make(map[string]int, len(order))
	for i, name := range order {
		if _, dup := index[name]; dup {
			return nil, ErrDuplicateName
		}
		index[name] = i
	}
	names := make([]string, len(order))
	copy(names, order)
	return &Matrix{
		data:  mat.NewCDense(len(order), len(order), nil),
		index: index,
		order: names,
	}, nil
}

// Size returns the matrix dimension (the number of buses).
func (m *Matrix) Size() int {
	return len(m.order)
}

// Order returns the bus names in matrix position order. The slice is a copy;
// mutating it does not affect the matrix.
func (m *Matrix) Order() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// IndexOf returns the matrix position of a bus name and whether it exists.
func (m *Matrix) IndexOf(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Positions resolves an ordered list of bus names to matrix positions.
// Any unknown name fails the whole lookup with ErrUnknownBus.
func (m *Matrix) Positions(names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		k, ok := m.index[name]
		if !ok {
			return nil, ErrUnknownBus
		}
		out[i] = k
	}
	return out, nil
}

// At returns the admittance between two buses addressed by name.
func (m *Matrix) At(from, to string) (complex128, error) {
	i, ok := m.index[from]
	if !ok {
		return 0, ErrUnknownBus
	}
	j, ok := m.index[to]
	if !ok {
		return 0, ErrUnknownBus
	}
	return m.data.At(i, j), nil
}

// AtIndex returns the admittance at a matrix position.
func (m *Matrix) AtIndex(i, j int) (complex128, error) {
	n := len(m.order)
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, ErrOutOfRange
	}
	return m.data.At(i, j), nil
}

// Split decomposes Ybus into its real part G (conductance) and imaginary
// part B (susceptance) as fresh dense matrices sharing the bus ordering.
// The solver consumes G and B; Ybus itself stays untouched.
func (m *Matrix) Split() (g, b *mat.Dense) {
	n := len(m.order)
	g = mat.NewDense(n, n, nil)
	b = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			y := m.data.At(i, j)
			g.Set(i, j, real(y))
			b.Set(i, j, imag(y))
		}
	}
	return g, b
}

// add accumulates y into position (i, j).
func (m *Matrix) add(i, j int, y complex128) {
	m.data.Set(i, j, m.data.At(i, j)+y)
}
