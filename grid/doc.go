// Package grid defines the data model of an AC transmission network:
// buses, branch elements (lines and transformers), shunt compensation,
// generation and load, together with the bus partition used by the
// power-flow solver.
//
// Overview:
//
//   - A Bus is a network node with a classification (PQ, PV or Swing),
//     a voltage state (magnitude in pu, angle in radians) and the
//     generators, loads and shunts connected to it.
//   - Lines and Transformers are structurally distinct branch elements
//     sharing the same series-impedance shape; transformers additionally
//     carry an off-nominal tap ratio and a phase-shift angle.
//   - All electrical quantities are per-unit on a common system base;
//     no unit conversion happens inside this module.
//
// Invariants:
//
//   - Exactly one bus per solvable system is classified Swing; its angle
//     is the system reference and is never moved by state correction.
//   - An in-service branch must have a non-degenerate series impedance
//     (r + jx != 0); a transformer tap of zero is rejected.
//   - Shunt collections are always present (possibly empty), never nil
//     with meaning attached.
//
// Error handling (sentinel errors):
//
//   - ErrNoBuses          — an empty bus list was supplied.
//   - ErrDuplicateBus     — two buses share the same name.
//   - ErrNoSwingBus       — no bus is classified Swing.
//   - ErrMultipleSwing    — more than one bus is classified Swing.
//   - ErrUnknownBusKind   — a classification outside {PQ, PV, Swing}.
//
// See package system for the assembled aggregate consumed by the solver.
package grid
