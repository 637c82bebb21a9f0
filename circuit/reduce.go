// SPDX-License-Identifier: MIT

package circuit

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/slhnet/hilbert"
	"github.com/katalvlaran/slhnet/operator"
)

// Reduce lowers composite circuits by one level: every direct operand is
// rebuilt through its own constructor, which applies the rewrite rules once
// more. Repeated calls yield an increasingly fine-grained decomposition.
func Reduce(c Circuit) (Circuit, error) {
	switch x := c.(type) {
	case *SeriesProduct:
		ops, err := mapOps(x.ops, Reduce)
		if err != nil {
			return nil, err
		}
		return Series(ops...)
	case *Concatenation:
		ops, err := mapOps(x.ops, Reduce)
		if err != nil {
			return nil, err
		}
		return Concat(ops...)
	case *Feedback:
		op, err := Reduce(x.op)
		if err != nil {
			return nil, err
		}
		return FeedbackAt(op, x.out, x.in)
	case *SeriesInverse:
		op, err := Reduce(x.op)
		if err != nil {
			return nil, err
		}
		return Inverse(op)
	default:
		return c, nil
	}
}

// Substitute replaces symbols by name. A replacement must have the channel
// dimension of the symbol it replaces.
func Substitute(c Circuit, repl map[string]Circuit) (Circuit, error) {
	sub := func(o Circuit) (Circuit, error) { return Substitute(o, repl) }
	switch x := c.(type) {
	case *Symbol:
		r, ok := repl[x.name]
		if !ok {
			return c, nil
		}
		if r.CDim() != x.cdim {
			return nil, errors.Wrapf(ErrDimensionMismatch, "substitute %s: cdim %d for %d", x.name, r.CDim(), x.cdim)
		}
		return r, nil
	case *SeriesProduct:
		ops, err := mapOps(x.ops, sub)
		if err != nil {
			return nil, err
		}
		return Series(ops...)
	case *Concatenation:
		ops, err := mapOps(x.ops, sub)
		if err != nil {
			return nil, err
		}
		return Concat(ops...)
	case *Feedback:
		op, err := sub(x.op)
		if err != nil {
			return nil, err
		}
		return FeedbackAt(op, x.out, x.in)
	case *SeriesInverse:
		op, err := sub(x.op)
		if err != nil {
			return nil, err
		}
		return Inverse(op)
	default:
		return c, nil
	}
}

func mapOps(ops []Circuit, f func(Circuit) (Circuit, error)) ([]Circuit, error) {
	out := make([]Circuit, len(ops))
	for i, o := range ops {
		r, err := f(o)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// Equal reports structural equality. Interned circuits usually compare by
// identity; the hash rejects most other mismatches.
func Equal(a, b Circuit) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() || a.Hash() != b.Hash() || a.CDim() != b.CDim() {
		return false
	}

	switch x := a.(type) {
	case *SLH:
		y := b.(*SLH)
		return operator.Equal(x.s, y.s) && operator.Equal(x.l, y.l) && x.h.Equal(y.h)
	case *Symbol:
		return x.name == b.(*Symbol).name
	case cidentity, czero:
		return true
	case *SeriesProduct:
		return equalOps(x.ops, b.(*SeriesProduct).ops)
	case *Concatenation:
		return equalOps(x.ops, b.(*Concatenation).ops)
	case *CPermutation:
		return equalInts(x.perm, b.(*CPermutation).perm)
	case *Feedback:
		y := b.(*Feedback)
		return x.out == y.out && x.in == y.in && Equal(x.op, y.op)
	case *SeriesInverse:
		return Equal(x.op, b.(*SeriesInverse).op)
	default:
		return false
	}
}

func equalOps(a, b []Circuit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// GetSpace returns the Hilbert space c acts on.
func GetSpace(c Circuit) hilbert.Space { return c.Space() }

func (c *SLH) Space() hilbert.Space {
	return hilbert.Tensor(c.s.Space(), c.l.Space(), c.h.Space())
}

func (*Symbol) Space() hilbert.Space          { return hilbert.Full }
func (cidentity) Space() hilbert.Space        { return hilbert.Trivial }
func (czero) Space() hilbert.Space            { return hilbert.Trivial }
func (*CPermutation) Space() hilbert.Space    { return hilbert.Trivial }
func (c *Feedback) Space() hilbert.Space      { return c.op.Space() }
func (c *SeriesInverse) Space() hilbert.Space { return c.op.Space() }

func (c *SeriesProduct) Space() hilbert.Space {
	s, _ := c.space.Get(func() (hilbert.Space, error) { return opsSpace(c.ops), nil })
	return s
}

func (c *Concatenation) Space() hilbert.Space {
	s, _ := c.space.Get(func() (hilbert.Space, error) { return opsSpace(c.ops), nil })
	return s
}

func opsSpace(ops []Circuit) hilbert.Space {
	spaces := make([]hilbert.Space, len(ops))
	for i, o := range ops {
		spaces[i] = o.Space()
	}
	return hilbert.Tensor(spaces...)
}
