// SPDX-License-Identifier: MIT

package circuit

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/slhnet/operator"
	"github.com/katalvlaran/slhnet/permutation"
)

// NewSLH builds a concrete (S, L, H) circuit. S must be n×n and L n×1;
// a nil H is the zero operator.
func NewSLH(s, l *operator.Matrix, h operator.Operator) (*SLH, error) {
	if s == nil || l == nil {
		return nil, errors.Wrap(ErrDimensionMismatch, "NewSLH: nil matrix")
	}
	if s.Rows() != s.Cols() || l.Rows() != s.Rows() || l.Cols() != 1 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "NewSLH: S is %dx%d, L is %dx%d",
			s.Rows(), s.Cols(), l.Rows(), l.Cols())
	}
	if h == nil {
		h = operator.Zero()
	}

	return intern(newSLHNode(s, l, h)).(*SLH), nil
}

// MustSLH is like NewSLH but panics on error.
func MustSLH(s, l *operator.Matrix, h operator.Operator) *SLH {
	c, err := NewSLH(s, l, h)
	if err != nil {
		panic(err)
	}
	return c
}

// Expand expands every operator entry of S, L and H.
func (c *SLH) Expand() *SLH {
	return intern(newSLHNode(c.s.Expand(), c.l.Expand(), c.h.Expand())).(*SLH)
}

// identitySLH is (1_n, 0, 0).
func identitySLH(n int) *SLH {
	return intern(newSLHNode(operator.IdentityMatrix(n), operator.ZeroMatrix(n, 1), operator.Zero())).(*SLH)
}

// permutationSLH is (P, 0, 0) with P[perm[i], i] = 1.
func permutationSLH(perm []int) *SLH {
	n := len(perm)
	return intern(newSLHNode(operator.PermutationMatrix(perm), operator.ZeroMatrix(n, 1), operator.Zero())).(*SLH)
}

// slhSeries folds a << b: a is downstream.
// S = S1·S2, L = S1·L2 + L1, H = H1 + H2 + Im(L1†·S1·L2).
func slhSeries(a, b *SLH) (*SLH, error) {
	if a.CDim() != b.CDim() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "series of SLH with cdim %d and %d", a.CDim(), b.CDim())
	}
	s, err := operator.Mul(a.s, b.s)
	if err != nil {
		return nil, err
	}
	s1l2, err := operator.Mul(a.s, b.l)
	if err != nil {
		return nil, err
	}
	l, err := operator.Add(s1l2, a.l)
	if err != nil {
		return nil, err
	}
	delta, err := operator.Mul(a.l.Adjoint(), s1l2)
	if err != nil {
		return nil, err
	}
	d, err := delta.At(0, 0)
	if err != nil {
		return nil, err
	}
	h := a.h.Add(b.h).Add(operator.Im(d))

	return intern(newSLHNode(s, l, h)).(*SLH), nil
}

// slhConcat places a above b: block-diagonal S, stacked L, H1 + H2.
func slhConcat(a, b *SLH) (*SLH, error) {
	l, err := operator.VStack(a.l, b.l)
	if err != nil {
		return nil, err
	}
	s := operator.BlockDiag(a.s, b.s)

	return intern(newSLHNode(s, l, a.h.Add(b.h))).(*SLH), nil
}

// slhInverse is (S†, -S†·L, -H).
func slhInverse(c *SLH) (*SLH, error) {
	sd := c.s.Adjoint()
	l, err := operator.Mul(sd, c.l)
	if err != nil {
		return nil, err
	}

	return intern(newSLHNode(sd, l.Scale(-1), c.h.Scale(-1))).(*SLH), nil
}

// slhFeedback closes output out onto input in. Both ports are first routed
// to the last channel with signal-mapping permutations.
func slhFeedback(c *SLH, out, in int) (*SLH, error) {
	n := c.CDim() - 1
	if out != n {
		p, err := permutation.MapSignals(map[int]int{out: n}, n+1)
		if err != nil {
			return nil, err
		}
		routed, err := slhSeries(permutationSLH(p), c)
		if err != nil {
			return nil, err
		}
		return slhFeedback(routed, n, in)
	}
	if in != n {
		p, err := permutation.MapSignals(map[int]int{n: in}, n+1)
		if err != nil {
			return nil, err
		}
		routed, err := slhSeries(c, permutationSLH(p))
		if err != nil {
			return nil, err
		}
		return slhFeedback(routed, n, n)
	}

	return slhFeedbackLast(c)
}

// slhFeedbackLast eliminates channel n-1 in closed form:
//
//	d  = 1 - S[n-1,n-1]
//	S' = S[:n-1,:n-1] + S[:n-1,n-1]·d⁻¹·S[n-1,:n-1]
//	L' = L[:n-1] + S[:n-1,n-1]·d⁻¹·L[n-1]
//	H' = H + Im(L[:n-1]†·S[:n-1,n-1]·d⁻¹·L[n-1])
//
// d must be a non-zero multiple of the identity.
func slhFeedbackLast(c *SLH) (*SLH, error) {
	n := c.CDim() - 1
	snn, err := c.s.At(n, n)
	if err != nil {
		return nil, err
	}
	d := operator.One().Add(snn.Scale(-1))
	coeff, ok := d.Scalar()
	if !ok {
		return nil, errors.Wrapf(ErrNonInvertibleLoop, "1 - S[%d,%d] = %s is not a scalar", n, n, d)
	}
	if coeff == 0 {
		return nil, errors.Wrapf(ErrNonInvertibleLoop, "S[%d,%d] = 1", n, n)
	}
	inv := 1 / coeff

	// Stage 1 (Slice): partition S and L around channel n.
	sTop, err := c.s.Slice(0, n, 0, n)
	if err != nil {
		return nil, err
	}
	sCol, err := c.s.Slice(0, n, n, n+1)
	if err != nil {
		return nil, err
	}
	sRow, err := c.s.Slice(n, n+1, 0, n)
	if err != nil {
		return nil, err
	}
	lTop, err := c.l.Slice(0, n, 0, 1)
	if err != nil {
		return nil, err
	}
	lLast, err := c.l.Slice(n, n+1, 0, 1)
	if err != nil {
		return nil, err
	}

	// Stage 2 (Execute): closed-form elimination.
	sColInv := sCol.Scale(inv)
	corr, err := operator.Mul(sColInv, sRow)
	if err != nil {
		return nil, err
	}
	s, err := operator.Add(sTop, corr)
	if err != nil {
		return nil, err
	}
	lCorr, err := operator.Mul(sColInv, lLast)
	if err != nil {
		return nil, err
	}
	l, err := operator.Add(lTop, lCorr)
	if err != nil {
		return nil, err
	}
	dh, err := operator.Mul(lTop.Adjoint(), lCorr)
	if err != nil {
		return nil, err
	}
	dh00, err := dh.At(0, 0)
	if err != nil {
		return nil, err
	}

	return intern(newSLHNode(s, l, c.h.Add(operator.Im(dh00)))).(*SLH), nil
}

// ToSLH reduces c completely to its concrete representation.
// It fails with ErrConversion when a symbol remains, and with
// ErrNonInvertibleLoop for a singular feedback loop.
func ToSLH(c Circuit) (*SLH, error) {
	switch x := c.(type) {
	case *SLH:
		return x, nil
	case *Symbol:
		return nil, errors.Wrapf(ErrConversion, "symbol %s", x.name)
	case cidentity:
		return identitySLH(1), nil
	case czero:
		return identitySLH(0), nil
	case *CPermutation:
		return permutationSLH(x.perm), nil
	case *SeriesProduct:
		return foldSLH(x.ops, slhSeries)
	case *Concatenation:
		return foldSLH(x.ops, slhConcat)
	case *Feedback:
		inner, err := ToSLH(x.op)
		if err != nil {
			return nil, err
		}
		return slhFeedback(inner, x.out, x.in)
	case *SeriesInverse:
		inner, err := ToSLH(x.op)
		if err != nil {
			return nil, err
		}
		return slhInverse(inner)
	default:
		panic("circuit: unknown circuit kind")
	}
}

func foldSLH(ops []Circuit, f func(a, b *SLH) (*SLH, error)) (*SLH, error) {
	acc, err := ToSLH(ops[0])
	if err != nil {
		return nil, err
	}
	for _, o := range ops[1:] {
		next, err := ToSLH(o)
		if err != nil {
			return nil, err
		}
		if acc, err = f(acc, next); err != nil {
			return nil, err
		}
	}

	return acc, nil
}
