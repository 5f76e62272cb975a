// Package system assembles a solvable power-flow case from its parts.
//
// A System consolidates the validated bus list, the branch and shunt
// elements, the nodal admittance matrix built over the bus input order,
// the specified net injections (generation minus load, per bus) and the
// bus partition. Assembly happens once; the admittance matrix and the
// partition are immutable afterwards, and the solver references them
// without copying.
//
// Lifecycle: readers produce model objects → New builds the aggregate →
// the solver iterates on its own voltage-state copy → Commit writes the
// final state back into the Bus objects for reporting.
package system
