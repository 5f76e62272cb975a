// Package solver: the Newton-Raphson orchestration loop.
//
// Per-iteration transition: injected power → mismatch → convergence check →
// (if not converged) Jacobian → linear solve J·Δx = −mismatch → in-place
// state correction. Terminal outcomes: converged within the budget, or the
// budget exhausted with the last computed state (never a fabricated
// success). A failed linear solve aborts the whole run.

package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/voltlab/powerflow/system"
)

// Result carries the terminal state of a solve.
//
// On non-convergence, V and Theta hold the best-known (last computed) state
// and Iterations equals the configured budget; no partial state is ever
// discarded.
type Result struct {
	Names      []string  // bus names, fixing the order of V and Theta
	V          []float64 // final voltage magnitudes (pu)
	Theta      []float64 // final voltage angles (radians)
	Converged  bool      // whether the mismatch norm went below tolerance
	Iterations int       // iterations consumed (1-based on convergence)
	Norm       float64   // last evaluated mismatch infinity norm
}

// context is the per-solve working set: the mutable (V, θ) pair plus the
// immutable ordering, matrices and specified injections it iterates against.
type context struct {
	names     []string           // bus names in matrix order
	v         []float64          // voltage magnitudes, mutated in place
	theta     []float64          // voltage angles, mutated in place
	g         *mat.Dense         // real part of Ybus
	b         *mat.Dense         // imaginary part of Ybus
	pspec     map[string]float64 // specified active injection per bus
	qspec     map[string]float64 // specified reactive injection per bus
	angle     []int              // angle-unknown positions (all buses)
	magnitude []int              // magnitude-unknown positions (swing ∪ PQ)
	isSwing   []bool             // swing membership per position
	opts      Options
}

// newContext validates the system against the solver preconditions and
// builds the working set. The admittance matrix is referenced through its
// G/B split; it is never copied or mutated.
func newContext(sys *system.System, opts Options) (*context, error) {
	names := sys.Ybus.Order()
	if len(names) != len(sys.Buses) {
		return nil, ErrOrderMismatch
	}
	for i, b := range sys.Buses {
		if names[i] != b.Name {
			return nil, fmt.Errorf("position %d: bus %q vs matrix %q: %w", i, b.Name, names[i], ErrOrderMismatch)
		}
	}

	n := len(names)
	c := &context{
		names:   names,
		v:       make([]float64, n),
		theta:   make([]float64, n),
		pspec:   sys.Pspec,
		qspec:   sys.Qspec,
		isSwing: make([]bool, n),
		opts:    opts,
	}
	for i, b := range sys.Buses {
		if b.V == 0 {
			return nil, fmt.Errorf("bus %q: %w", b.Name, ErrZeroVoltage)
		}
		c.v[i] = b.V
		c.theta[i] = b.Theta
	}
	c.g, c.b = sys.Ybus.Split()

	var err error
	if c.angle, err = sys.Ybus.Positions(sys.Partition.Angle); err != nil {
		return nil, fmt.Errorf("angle ordering: %w", ErrOrderMismatch)
	}
	if c.magnitude, err = sys.Ybus.Positions(sys.Partition.Magnitude); err != nil {
		return nil, fmt.Errorf("magnitude ordering: %w", ErrOrderMismatch)
	}
	for _, name := range sys.Partition.Swing {
		k, ok := sys.Ybus.IndexOf(name)
		if !ok {
			return nil, fmt.Errorf("swing bus %q: %w", name, ErrOrderMismatch)
		}
		c.isSwing[k] = true
	}
	return c, nil
}

// Solve runs the Newton-Raphson loop on an assembled system.
//
// Configuration and singularity errors propagate immediately; exhausting the
// iteration budget is a normal return with Result.Converged == false.
func Solve(sys *system.System, opts ...Option) (*Result, error) {
	if sys == nil {
		return nil, ErrNilSystem
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	c, err := newContext(sys, cfg)
	if err != nil {
		return nil, err
	}

	var norm float64
	for it := 0; it < cfg.maxIter; it++ {
		p, q := injectedPower(c.g, c.b, c.v, c.theta)

		mis, err := c.residuals(p, q)
		if err != nil {
			return nil, err
		}

		var done bool
		if norm, done = c.converged(mis, it); done {
			return c.result(true, it+1, norm), nil
		}

		delta, err := c.linearSolve(c.jacobian(p, q), mis)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", it+1, err)
		}
		c.applyCorrections(delta)
	}

	return c.result(false, cfg.maxIter, norm), nil
}

// linearSolve computes Δx from J·Δx = −mismatch via dense LU. An exactly
// singular factorization (infinite or NaN condition, e.g. an all-zero row
// from an isolated bus) is fatal. A finite condition warning alone is
// tolerated: the Big Number diagonal makes the system stiff but solvable.
func (c *context) linearSolve(j *mat.Dense, mis *mat.VecDense) (*mat.VecDense, error) {
	rhs := mat.NewVecDense(mis.Len(), nil)
	rhs.ScaleVec(-1, mis)

	var lu mat.LU
	lu.Factorize(j)

	delta := mat.NewVecDense(mis.Len(), nil)
	if err := lu.SolveVecTo(delta, false, rhs); err != nil {
		cond, ok := err.(mat.Condition)
		if !ok || math.IsInf(float64(cond), 1) || math.IsNaN(float64(cond)) {
			return nil, fmt.Errorf("%w: %v", ErrSingularJacobian, err)
		}
	}
	return delta, nil
}

// result snapshots the current state into a Result.
func (c *context) result(converged bool, iterations int, norm float64) *Result {
	v := make([]float64, len(c.v))
	theta := make([]float64, len(c.theta))
	copy(v, c.v)
	copy(theta, c.theta)
	return &Result{
		Names:      c.names,
		V:          v,
		Theta:      theta,
		Converged:  converged,
		Iterations: iterations,
		Norm:       norm,
	}
}
