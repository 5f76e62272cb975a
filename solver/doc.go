// Package solver implements the Newton-Raphson AC power-flow solution with
// full Jacobian assembly and Big Number reference-bus handling.
//
// Overview:
//
//   - Each iteration evaluates the injected power at every bus from the
//     current voltage state and the admittance matrix, forms the mismatch
//     vector [ΔP; ΔQ] against the specified injections, checks the infinity
//     norm against the tolerance, and — if not converged — assembles the
//     Jacobian blocks H, N, M, L, solves J·Δx = −mismatch and applies the
//     corrections in place.
//   - The swing bus stays inside the linear system: its mismatch entries are
//     forced to zero and its H/L diagonal entries are set to a large constant
//     (the Big Number), which pins the reference angle and magnitude without
//     resizing the matrices per bus-type mix.
//   - PV bus magnitudes are never part of the magnitude unknowns, so their
//     voltage setpoints hold by construction.
//
// The solve is single-threaded and synchronous: iteration i+1 depends on the
// state produced by iteration i, and the only mutable state is the (V, θ)
// pair owned by the solve loop. Exhausting the iteration budget is a normal,
// reportable outcome (Result.Converged == false), never an error; the last
// computed state is always carried in the Result for diagnostics.
//
// Error handling (sentinel errors):
//
//   - ErrNilSystem       — Solve received a nil system.
//   - ErrOrderMismatch   — the admittance matrix ordering disagrees with the
//     bus ordering (malformed configuration, fatal).
//   - ErrMissingSpecified — a bus has no specified-power entry (fatal).
//   - ErrZeroVoltage     — a bus starts at zero voltage magnitude, which
//     would divide by zero in the Jacobian diagonals (fatal).
//   - ErrSingularJacobian — the per-iteration linear solve failed; the run
//     aborts without retry or regularization.
//
// Complexity per iteration: O(n²) for the power evaluation, O((n+m)²) for
// Jacobian assembly and O((n+m)³) for the dense LU solve, where n is the bus
// count and m the number of magnitude unknowns. All matrices are dense.
package solver
