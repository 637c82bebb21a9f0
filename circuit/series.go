// SPDX-License-Identifier: MIT

package circuit

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/slhnet/expr"
	"github.com/katalvlaran/slhnet/pattern"
	"github.com/katalvlaran/slhnet/permutation"
)

var seriesOp *expr.Operation[Circuit]

func newSeriesOperation() *expr.Operation[Circuit] {
	return &expr.Operation[Circuit]{
		Name: KindSeries.String(),
		Flatten: func(c Circuit) ([]Circuit, bool) {
			if x, ok := c.(*SeriesProduct); ok {
				return x.ops, true
			}
			return nil, false
		},
		IsNeutral: isIdentity,
		Validate:  validateSeries,
		Empty: func(dropped []Circuit) (Circuit, error) {
			if len(dropped) == 0 {
				return nil, errors.Wrap(expr.ErrNoOperands, KindSeries.String())
			}
			return dropped[0], nil
		},
		Rules: pattern.NewTable(matcher, seriesRules()...),
		Build: func(ops []Circuit) Circuit { return newSeriesNode(ops) },
	}
}

// Series chains the operands feedforward. ops[0] is the most downstream:
// Series(A, B) feeds B's outputs into A's inputs. All operands must share
// one channel dimension.
func Series(ops ...Circuit) (Circuit, error) {
	return seriesOp.Create(engine(), ops)
}

// MustSeries is like Series but panics on error.
func MustSeries(ops ...Circuit) Circuit {
	c, err := Series(ops...)
	if err != nil {
		panic(err)
	}
	return c
}

func validateSeries(ops []Circuit) error {
	if len(ops) == 0 {
		return nil
	}
	for _, o := range ops[1:] {
		if o.CDim() != ops[0].CDim() {
			return errors.Wrapf(ErrDimensionMismatch, "series of cdim %d and %d", ops[0].CDim(), o.CDim())
		}
	}
	return nil
}

func seriesRules() []rule {
	return []rule{
		{
			Name:    "slh-series",
			Pattern: pattern.Pattern[Circuit]{wc("A", isSLH), wc("B", isSLH)},
			Rewrite: func(b bindings) (Circuit, error) {
				return asCircuit(slhSeries(b.One("A").(*SLH), b.One("B").(*SLH)))
			},
		},
		{
			Name:    "permutation-compose",
			Pattern: pattern.Pattern[Circuit]{wc("A", isPermutation), wc("B", isPermutation)},
			Rewrite: func(b bindings) (Circuit, error) {
				p, err := permutation.Compose(b.One("A").(*CPermutation).perm, b.One("B").(*CPermutation).perm)
				if err != nil {
					return nil, err
				}
				return Permutation(p)
			},
		},
		{
			Name:    "tensor-decompose",
			Pattern: pattern.Pattern[Circuit]{wc("A", nil), wc("B", notPermutation)},
			Rewrite: func(b bindings) (Circuit, error) {
				return tensorDecompose(b.One("A"), b.One("B"))
			},
		},
		{
			Name:    "factor-permutation",
			Pattern: pattern.Pattern[Circuit]{wc("A", isPermutation), wc("B", nil)},
			Rewrite: func(b bindings) (Circuit, error) {
				return factorPermutation(b.One("A").(*CPermutation), b.One("B"))
			},
		},
		{
			Name:    "inverse-right",
			Pattern: pattern.Pattern[Circuit]{wc("A", nil), node(KindSeriesInverse, wc("A", nil))},
			Rewrite: func(b bindings) (Circuit, error) {
				return Identity(b.One("A").CDim()), nil
			},
		},
		{
			Name:    "inverse-left",
			Pattern: pattern.Pattern[Circuit]{node(KindSeriesInverse, wc("A", nil)), wc("A", nil)},
			Rewrite: func(b bindings) (Circuit, error) {
				return Identity(b.One("A").CDim()), nil
			},
		},
	}
}

// tensorDecompose splits lhs << rhs into a concatenation of blockwise series
// products over the common block structure.
func tensorDecompose(lhs, rhs Circuit) (Circuit, error) {
	common, err := CommonBlockStructure(lhs.BlockStructure(), rhs.BlockStructure())
	if err != nil {
		return nil, err
	}
	if len(common) <= 1 {
		return nil, pattern.ErrCannotSimplify
	}
	lb, err := GetBlocks(lhs, common)
	if err != nil {
		return nil, err
	}
	rb, err := GetBlocks(rhs, common)
	if err != nil {
		return nil, err
	}
	parts := make([]Circuit, len(common))
	for i := range common {
		if parts[i], err = Series(lb[i], rb[i]); err != nil {
			return nil, err
		}
	}

	return Concat(parts...)
}

// factorPermutation rewrites p << rhs as residual << permuted << carried,
// moving as much of p as possible upstream around the blocks of rhs.
func factorPermutation(p *CPermutation, rhs Circuit) (Circuit, error) {
	if len(rhs.BlockStructure()) <= 1 {
		return nil, pattern.ErrCannotSimplify
	}
	residual, permuted, carried, err := factorizeForRHS(p, rhs)
	if err != nil {
		return nil, err
	}
	if Equal(residual, p) {
		return nil, pattern.ErrCannotSimplify
	}

	return Series(residual, permuted, carried)
}
