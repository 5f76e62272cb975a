// Package admittance builds the nodal admittance matrix (Ybus) of an AC
// transmission network from its line, transformer and shunt elements.
//
// Overview:
//
//   - Ybus is a square complex matrix relating bus voltages to injected
//     currents. Rows and columns are labeled by bus name; an explicit
//     name→index bijection keeps all storage densely integer-indexed while
//     the public surface stays label-addressable.
//   - Contributions stamp additively: parallel branches between the same
//     pair of buses simply sum. Out-of-service elements contribute nothing.
//   - A transformer with complex tap a = tap·e^{jφ} produces asymmetric
//     mutual terms when φ ≠ 0 (Y_ft = -y/ā versus Y_tf = -y/a), so Ybus is
//     topology-symmetric but not necessarily value-symmetric.
//
// The matrix is assembled once per solve session and is immutable
// afterwards; there is no incremental update path. Storage is dense
// (gonum mat.CDense) — sparse optimization is out of scope.
//
// Error handling (sentinel errors):
//
//   - ErrEmptyOrder          — no bus names were supplied.
//   - ErrDuplicateName       — the bus ordering repeats a name.
//   - ErrUnknownBus          — a branch or shunt references a name outside
//     the ordering.
//   - ErrDegenerateImpedance — an in-service branch has r + jx == 0.
//   - ErrZeroTap             — an in-service transformer has tap == 0.
//   - ErrOutOfRange          — a positional accessor index is out of bounds.
package admittance
