// SPDX-License-Identifier: MIT

package circuit

import "github.com/katalvlaran/slhnet/permutation"

// Inverse returns the series inverse of c, so that Series(Inverse(c), c)
// and Series(c, Inverse(c)) reduce to Identity(c.CDim()). Symbols have no
// closed form and yield an explicit SeriesInverse node, as do explicit
// feedback loops.
func Inverse(c Circuit) (Circuit, error) {
	switch x := c.(type) {
	case *SeriesInverse:
		return x.op, nil
	case *SeriesProduct:
		ops := make([]Circuit, len(x.ops))
		for i, o := range x.ops {
			inv, err := Inverse(o)
			if err != nil {
				return nil, err
			}
			ops[len(ops)-1-i] = inv
		}
		return Series(ops...)
	case *Concatenation:
		ops := make([]Circuit, len(x.ops))
		for i, o := range x.ops {
			inv, err := Inverse(o)
			if err != nil {
				return nil, err
			}
			ops[i] = inv
		}
		return Concat(ops...)
	case *SLH:
		return asCircuit(slhInverse(x))
	case *CPermutation:
		return Permutation(permutation.Invert(x.perm))
	case cidentity, czero:
		return c, nil
	default:
		return intern(newSeriesInverseNode(c)), nil
	}
}

// nodeCount is the number of expression nodes in c.
func nodeCount(c Circuit) int {
	switch x := c.(type) {
	case *SeriesProduct:
		return 1 + opsCount(x.ops)
	case *Concatenation:
		return 1 + opsCount(x.ops)
	case *Feedback:
		return 1 + nodeCount(x.op)
	case *SeriesInverse:
		return 1 + nodeCount(x.op)
	default:
		return 1
	}
}

func opsCount(ops []Circuit) int {
	n := 0
	for _, o := range ops {
		n += nodeCount(o)
	}
	return n
}
