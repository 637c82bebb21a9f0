// Package operator provides the opaque scalar/operator values that populate
// SLH triples, and dense matrices over them.
//
// The circuit layer consumes only the Operator interface: addition,
// multiplication, scaling by a complex number, adjoint, equality, the
// distinguished Zero and One values, and a Scalar query that recognizes
// multiples of the identity (the only operators the feedback formula can
// invert).
//
// Poly is the concrete implementation: a finite linear combination of
// words over named operator atoms with complex coefficients. It is a free
// (non-commutative) algebra; no commutation relations are applied, so
// Expand is the identity and equality is structural on the canonical
// term list.
//
//	a := operator.MustSymbol("a", cav)
//	n := a.Adjoint().Mul(a)            // a† * a
//	h := n.Scale(complex(0.5, 0))      // 0.5 * a† * a
//
// Matrix is a row-major dense matrix of Operator values following the same
// facade shape as the rest of the module: package-level kernels (Mul, Add,
// Sub, BlockDiag, VStack) validate shapes and return sentinel errors
// wrapped with the operation tag.
package operator
