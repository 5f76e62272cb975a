// Package report renders solved power-flow cases for human consumption:
// CSV tables (admittance matrix, voltage result, per-bus summary), a
// Markdown run report, and PNG figures (voltage profile and phasor diagram)
// drawn with gonum/plot.
//
// The package is a read-only collaborator of the solver: it consumes the
// assembled system and the solve Result and never mutates either. All
// numeric output uses a fixed precision of six decimal places.
package report
