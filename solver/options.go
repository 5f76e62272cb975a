// Package solver: functional configuration for the Newton-Raphson loop.
// Defaults are documented constants; WithX constructors panic on nonsensical
// values (programmer error), never on runtime data.

package solver

import "github.com/charmbracelet/log"

// Documented defaults (single source of truth).
const (
	// DefaultTolerance is the convergence threshold on the infinity norm of
	// the combined mismatch vector [ΔP; ΔQ], in pu.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations bounds the Newton-Raphson loop.
	DefaultMaxIterations = 20

	// DefaultBigNumber is the artificial diagonal magnitude pinning the
	// swing bus state inside the Jacobian. Large enough that the solved
	// correction for the reference variables collapses to zero.
	DefaultBigNumber = 1e10
)

// Options carries the solve configuration. The zero value is not usable;
// obtain one through defaultOptions and the With* constructors.
type Options struct {
	tolerance float64     // convergence threshold, > 0
	maxIter   int         // iteration budget, >= 1
	bigNumber float64     // swing diagonal constant, > 0
	logger    *log.Logger // per-iteration observability, may be nil
}

// Option mutates Options during Solve setup.
type Option func(*Options)

// defaultOptions returns the documented defaults with no logger attached.
func defaultOptions() Options {
	return Options{
		tolerance: DefaultTolerance,
		maxIter:   DefaultMaxIterations,
		bigNumber: DefaultBigNumber,
	}
}

// WithTolerance sets the convergence threshold. Panics if tol <= 0.
func WithTolerance(tol float64) Option {
	if tol <= 0 {
		panic("solver: tolerance must be positive")
	}
	return func(o *Options) { o.tolerance = tol }
}

// WithMaxIterations sets the iteration budget. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic("solver: max iterations must be at least 1")
	}
	return func(o *Options) { o.maxIter = n }
}

// WithBigNumber overrides the swing-pinning diagonal constant.
// Panics if big <= 0.
func WithBigNumber(big float64) Option {
	if big <= 0 {
		panic("solver: big number must be positive")
	}
	return func(o *Options) { o.bigNumber = big }
}

// WithLogger attaches a logger receiving one line per iteration with the
// current mismatch norm. A nil logger disables the output.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.logger = l }
}
