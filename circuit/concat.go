// SPDX-License-Identifier: MIT

package circuit

import (
	"github.com/katalvlaran/slhnet/expr"
	"github.com/katalvlaran/slhnet/operator"
	"github.com/katalvlaran/slhnet/pattern"
	"github.com/katalvlaran/slhnet/permutation"
)

type (
	rule     = pattern.Rule[Circuit]
	bindings = pattern.Bindings[Circuit]
	elem     = pattern.Elem[Circuit]
)

func wc(name string, pred func(Circuit) bool) elem { return pattern.Wildcard(name, pred) }

func rest(name string) elem { return pattern.Rest[Circuit](name, nil) }

func node(head Kind, elems ...elem) elem { return pattern.Node("", head.String(), elems...) }

// asCircuit keeps a nil *SLH from turning into a non-nil Circuit.
func asCircuit(s *SLH, err error) (Circuit, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

var concatOp *expr.Operation[Circuit]

func newConcatOperation() *expr.Operation[Circuit] {
	return &expr.Operation[Circuit]{
		Name: KindConcatenation.String(),
		Flatten: func(c Circuit) ([]Circuit, bool) {
			if x, ok := c.(*Concatenation); ok {
				return x.ops, true
			}
			return nil, false
		},
		IsNeutral: isKind(KindZero),
		Empty:     func([]Circuit) (Circuit, error) { return CircuitZero, nil },
		Rules:     pattern.NewTable(matcher, concatRules()...),
		Build:     func(ops []Circuit) Circuit { return newConcatNode(ops) },
	}
}

// Concat places the operands side by side; channels are numbered from the
// first operand on. The empty concatenation is CircuitZero.
func Concat(ops ...Circuit) (Circuit, error) {
	return concatOp.Create(engine(), ops)
}

// MustConcat is like Concat but panics on error.
func MustConcat(ops ...Circuit) Circuit {
	c, err := Concat(ops...)
	if err != nil {
		panic(err)
	}
	return c
}

// Identity returns the n-channel identity: CircuitZero for n <= 0,
// CIdentity for n == 1 and a concatenation of n CIdentity otherwise.
func Identity(n int) Circuit {
	switch {
	case n <= 0:
		return CircuitZero
	case n == 1:
		return CIdentity
	}
	ops := make([]Circuit, n)
	for i := range ops {
		ops[i] = CIdentity
	}

	return intern(newConcatNode(ops))
}

// isIdentity reports whether c is Identity(c.CDim()), CircuitZero included.
func isIdentity(c Circuit) bool {
	switch x := c.(type) {
	case cidentity, czero:
		return true
	case *Concatenation:
		for _, o := range x.ops {
			if o.Kind() != KindIdentity {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func concatRules() []rule {
	return []rule{
		{
			Name:    "slh-concat",
			Pattern: pattern.Pattern[Circuit]{wc("A", isSLH), wc("B", isSLH)},
			Rewrite: func(b bindings) (Circuit, error) {
				return asCircuit(slhConcat(b.One("A").(*SLH), b.One("B").(*SLH)))
			},
		},
		{
			Name:    "absorb-hamiltonian-left",
			Pattern: pattern.Pattern[Circuit]{wc("A", nil), wc("Z", isChannelless)},
			Rewrite: func(b bindings) (Circuit, error) {
				return absorbHamiltonian(b.One("A"), b.One("Z").(*SLH))
			},
		},
		{
			Name:    "absorb-hamiltonian-right",
			Pattern: pattern.Pattern[Circuit]{wc("Z", isChannelless), wc("A", nil)},
			Rewrite: func(b bindings) (Circuit, error) {
				return absorbHamiltonian(b.One("A"), b.One("Z").(*SLH))
			},
		},
		{
			Name:    "permutation-concat",
			Pattern: pattern.Pattern[Circuit]{wc("A", isPermutation), wc("B", isPermutation)},
			Rewrite: func(b bindings) (Circuit, error) {
				return Permutation(permutation.Concatenate(
					b.One("A").(*CPermutation).perm,
					b.One("B").(*CPermutation).perm,
				))
			},
		},
		{
			Name:    "permutation-identity",
			Pattern: pattern.Pattern[Circuit]{wc("A", isPermutation), wc("", isCIdentity)},
			Rewrite: func(b bindings) (Circuit, error) {
				return Permutation(permutation.Concatenate(b.One("A").(*CPermutation).perm, []int{0}))
			},
		},
		{
			Name:    "identity-permutation",
			Pattern: pattern.Pattern[Circuit]{wc("", isCIdentity), wc("B", isPermutation)},
			Rewrite: func(b bindings) (Circuit, error) {
				return Permutation(permutation.Concatenate([]int{0}, b.One("B").(*CPermutation).perm))
			},
		},
		{
			// (A << P) + (C << Q) → (A + C) << (P + Q)
			Name: "distribute-both",
			Pattern: pattern.Pattern[Circuit]{
				node(KindSeries, rest("A"), wc("P", isPermutation)),
				node(KindSeries, rest("C"), wc("Q", isPermutation)),
			},
			Rewrite: func(b bindings) (Circuit, error) {
				a, err := Series(b.Many("A")...)
				if err != nil {
					return nil, err
				}
				c, err := Series(b.Many("C")...)
				if err != nil {
					return nil, err
				}
				return distribute(a, c, b.One("P"), b.One("Q"))
			},
		},
		{
			// (A << P) + C → (A + C) << (P + id)
			Name: "distribute-left",
			Pattern: pattern.Pattern[Circuit]{
				node(KindSeries, rest("A"), wc("P", isPermutation)),
				wc("C", nil),
			},
			Rewrite: func(b bindings) (Circuit, error) {
				a, err := Series(b.Many("A")...)
				if err != nil {
					return nil, err
				}
				c := b.One("C")
				return distribute(a, c, b.One("P"), Identity(c.CDim()))
			},
		},
		{
			// A + (B << Q) → (A + B) << (id + Q)
			Name: "distribute-right",
			Pattern: pattern.Pattern[Circuit]{
				wc("A", nil),
				node(KindSeries, rest("B"), wc("Q", isPermutation)),
			},
			Rewrite: func(b bindings) (Circuit, error) {
				rhs, err := Series(b.Many("B")...)
				if err != nil {
					return nil, err
				}
				a := b.One("A")
				return distribute(a, rhs, Identity(a.CDim()), b.One("Q"))
			},
		},
	}
}

// isChannelless matches an SLH without channels, the remainder of a closed
// one-channel loop. Only its Hamiltonian is left.
func isChannelless(c Circuit) bool {
	s, ok := c.(*SLH)
	return ok && s.CDim() == 0
}

// absorbHamiltonian merges the channelless z into its neighbour a:
// a + ([], [], H) equals a << (1, 0, H) on a's channels.
func absorbHamiltonian(a Circuit, z *SLH) (Circuit, error) {
	n := a.CDim()
	if n == 0 || isSLH(a) {
		return nil, pattern.ErrCannotSimplify
	}
	if isIdentity(a) || isPermutation(a) {
		s, err := ToSLH(a)
		if err != nil {
			return nil, err
		}
		return asCircuit(slhConcat(s, z))
	}
	h, err := NewSLH(operator.IdentityMatrix(n), operator.ZeroMatrix(n, 1), z.h)
	if err != nil {
		return nil, err
	}

	return Series(a, h)
}

// distribute builds (a + c) << (p + q).
func distribute(a, c, p, q Circuit) (Circuit, error) {
	top, err := Concat(a, c)
	if err != nil {
		return nil, err
	}
	bottom, err := Concat(p, q)
	if err != nil {
		return nil, err
	}

	return Series(top, bottom)
}
