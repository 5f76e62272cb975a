// Package solver: sentinel error set. Configuration errors abort the solve
// immediately; numerical non-convergence is NOT an error (see Result).

package solver

import "errors"

var (
	// ErrNilSystem indicates that Solve received a nil system.
	ErrNilSystem = errors.New("solver: system is nil")

	// ErrOrderMismatch indicates that the admittance matrix rows/columns and
	// the bus list do not share the same bus-name ordering. This is a
	// malformed configuration, not a recoverable condition.
	ErrOrderMismatch = errors.New("solver: bus ordering mismatch between state and admittance matrix")

	// ErrMissingSpecified indicates that a bus has no entry in the
	// specified-power tables (missing topology/data mapping).
	ErrMissingSpecified = errors.New("solver: bus missing from specified-power table")

	// ErrZeroVoltage indicates a zero voltage magnitude in the state, which
	// would divide by zero in the N/L Jacobian diagonals.
	ErrZeroVoltage = errors.New("solver: zero voltage magnitude")

	// ErrSingularJacobian indicates that the per-iteration linear system
	// could not be solved. The run aborts; no retry or regularization.
	ErrSingularJacobian = errors.New("solver: singular jacobian")
)
