// SPDX-License-Identifier: MIT

// Package circuit implements the algebra of composable quantum-optical
// circuits: concrete (S, L, H) components, named symbols, channel
// permutations and the operations that wire them together.
//
// The package provides:
//
//   - Series(A, B): B's outputs drive A's inputs (A << B).
//   - Concat(A, B): A and B side by side, channels numbered from A on.
//   - FB / FeedbackAt: one output fed back into one input.
//   - Inverse: the series inverse.
//   - ToSLH: full reduction to a concrete (S, L, H) triple.
//
// Every constructor returns a canonical circuit: nested products are
// flattened, neutral operands dropped and adjacent operand pairs rewritten
// until no rule applies. Canonical instances are interned in an LRU cache,
// so structurally equal circuits usually share one value. Configure
// replaces the construction engine (logger, rule metrics, cache size and
// rewrite limit).
//
//	a := circuit.MustSymbol("A", 1)
//	b := circuit.MustSymbol("B", 1)
//	ab := circuit.MustConcat(a, b)
//	loop, _ := circuit.FB(ab, circuit.WithOutPort(0), circuit.WithInPort(1))
//	fmt.Println(loop) // B << A
//
// Circuits are immutable and safe for concurrent use.
package circuit
