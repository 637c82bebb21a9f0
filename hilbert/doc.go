// Package hilbert provides the small Hilbert-space label algebra consumed by
// the circuit and operator packages.
//
// A Space is an opaque label set: the trivial space (no degrees of freedom),
// the full space (contains every other space as a factor), a single local
// space identified by a label, or a tensor product of distinct local spaces.
//
// The package offers exactly what the composition engine needs:
//
//   - Tensor:     union of factor sets (idempotent, order independent).
//   - Intersect:  common factors.
//   - Remove:     set difference (undefined for the full space).
//   - IsDisjoint: no common factor.
//   - Compare:    a total order, used to keep products canonical.
//
// Products are always stored with their factors sorted by (order index,
// label), so structurally equal spaces compare equal with Equal and print
// identically.
package hilbert
