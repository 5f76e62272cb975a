// Package reader loads power-flow cases from external file formats and
// produces the topology consumed by package system.
//
// Two formats are supported behind the Reader capability interface:
//
//   - PWF: the ANAREDE fixed-column text format (sections BASE, DBAR, DLIN,
//     "99999" terminators, "("-prefixed comment lines). Raw quantities are
//     normalized to per-unit on the case base during the read: generation,
//     load and shunt by the MVA base, branch r and x by 100 (percent to pu).
//   - JSON: a structured schema with explicit per-unit values, mirroring the
//     model one-to-one (buses with nested generators/loads/shunts, lines,
//     transformers). Branch endpoints may be bus names or 1-based positions.
//
// Classification rule shared with the source format: a DLIN branch is a
// transformer iff its tap differs from 1.0 or it carries a phase shift;
// a zero tap is coerced to the nominal 1.0. Every PV or Swing bus gets a
// generator record even at zero output, so the specified-power tables stay
// total.
//
// Error handling (sentinel errors):
//
//   - ErrNoBaseSection — the PWF file lacks a BASE section.
//   - ErrBadDocument   — the JSON document does not match the schema.
//   - ErrUnknownBusRef — a branch endpoint references a bus position that
//     does not exist.
//
// Malformed PWF data rows are skipped, matching the tolerant behavior of
// the source format's ecosystem.
package reader
