// SPDX-License-Identifier: MIT

package circuit

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/slhnet/permutation"
)

// Permutation returns the channel permutation routing input j to output
// perm[j]. The identity permutation yields Identity(len(perm)).
func Permutation(perm []int) (Circuit, error) {
	if err := permutation.Validate(perm); err != nil {
		return nil, err
	}
	if permutation.IsIdentity(perm) {
		return Identity(len(perm)), nil
	}

	return intern(newPermutationNode(append([]int(nil), perm...))), nil
}

// MustPermutation is like Permutation but panics on error.
func MustPermutation(perm ...int) Circuit {
	c, err := Permutation(perm)
	if err != nil {
		panic(err)
	}
	return c
}

// MapSignalsCircuit is the n-channel permutation completing the partial
// mapping {input: output}; see permutation.MapSignals.
func MapSignalsCircuit(mapping map[int]int, n int) (Circuit, error) {
	p, err := permutation.MapSignals(mapping, n)
	if err != nil {
		return nil, err
	}
	return Permutation(p)
}

// ExtractSignalCircuit moves channel k of n to the last position.
func ExtractSignalCircuit(k, n int) (Circuit, error) {
	p, err := permutation.ExtractSignal(k, n)
	if err != nil {
		return nil, err
	}
	return Permutation(p)
}

// PadWithIdentity inserts n pass-through channels into c before channel k.
func PadWithIdentity(c Circuit, k, n int) (Circuit, error) {
	cn := c.CDim()
	if k < 0 || k > cn || n < 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "pad %d channels at %d into cdim %d", n, k, cn)
	}
	if n == 0 {
		return c, nil
	}
	perm := make([]int, 0, cn+n)
	for i := 0; i < k; i++ {
		perm = append(perm, i)
	}
	for i := cn; i < cn+n; i++ {
		perm = append(perm, i)
	}
	for i := k; i < cn; i++ {
		perm = append(perm, i)
	}
	combined, err := Concat(c, Identity(n))
	if err != nil {
		return nil, err
	}
	in, err := Permutation(perm)
	if err != nil {
		return nil, err
	}
	out, err := Permutation(permutation.Invert(perm))
	if err != nil {
		return nil, err
	}

	return Series(out, combined, in)
}

// blockPerms returns the finest block-local permutations.
func (c *CPermutation) blockPerms() [][]int {
	blocks, _ := c.blocks.Get(func() ([][]int, error) { return permutation.ToBlocks(c.perm) })
	return blocks
}

// factorizeForRHS decomposes p << rhs into residual << permuted << carried,
// where permuted is rhs with its blocks reordered and locally permuted and
// carried routes whole blocks.
func factorizeForRHS(p *CPermutation, rhs Circuit) (residual, permuted, carried Circuit, err error) {
	bs := rhs.BlockStructure()
	bp, within, err := permutation.BlockPermAndWithin(p.perm, bs)
	if err != nil {
		return nil, nil, nil, err
	}
	full, err := permutation.FullBlockPerm(bp, bs)
	if err != nil {
		return nil, nil, nil, err
	}
	if err = permutation.Validate(full); err != nil {
		return nil, nil, nil, errors.Wrap(err, "factorize for rhs: block permutation")
	}

	// Stage 1 (Residual): p << W⁻¹ << F⁻¹.
	inner, err := permutation.Compose(permutation.Invert(permutation.FromBlocks(within)), permutation.Invert(full))
	if err != nil {
		return nil, nil, nil, err
	}
	lhs, err := permutation.Compose(p.perm, inner)
	if err != nil {
		return nil, nil, nil, err
	}

	// Stage 2 (Permute): reorder the blocks of rhs with their local permutations.
	rhsBlocks, err := GetBlocks(rhs, bs)
	if err != nil {
		return nil, nil, nil, err
	}
	summands := make([]Circuit, 0, len(bs))
	for _, k := range permutation.Invert(bp) {
		w, err := Permutation(within[k])
		if err != nil {
			return nil, nil, nil, err
		}
		s, err := Series(w, rhsBlocks[k])
		if err != nil {
			return nil, nil, nil, err
		}
		summands = append(summands, s)
	}

	// Stage 3 (Finalize)
	if permuted, err = Concat(summands...); err != nil {
		return nil, nil, nil, err
	}
	if residual, err = Permutation(lhs); err != nil {
		return nil, nil, nil, err
	}
	if carried, err = Permutation(full); err != nil {
		return nil, nil, nil, err
	}

	return residual, permuted, carried, nil
}

// factorLHS solves map{out→n-1} << p == (red + cid(1)) << map{outInv→n-1}
// for the (n-1)-channel red, where outInv is the input routed to out.
func factorLHS(p *CPermutation, out int) (outInv int, red Circuit, err error) {
	n := len(p.perm)
	outInv = permutation.Invert(p.perm)[out]
	m1, err := permutation.MapSignals(map[int]int{out: n - 1}, n)
	if err != nil {
		return 0, nil, err
	}
	m2, err := permutation.MapSignals(map[int]int{n - 1: outInv}, n)
	if err != nil {
		return 0, nil, err
	}
	red, err = reduceLast(m1, p.perm, m2)

	return outInv, red, err
}

// factorRHS solves p << map{n-1→in} == map{n-1→inIm} << (red + cid(1))
// for the (n-1)-channel red, where inIm = p[in].
func factorRHS(p *CPermutation, in int) (inIm int, red Circuit, err error) {
	n := len(p.perm)
	inIm = p.perm[in]
	m1, err := permutation.MapSignals(map[int]int{inIm: n - 1}, n)
	if err != nil {
		return 0, nil, err
	}
	m2, err := permutation.MapSignals(map[int]int{n - 1: in}, n)
	if err != nil {
		return 0, nil, err
	}
	red, err = reduceLast(m1, p.perm, m2)

	return inIm, red, err
}

// reduceLast composes a << p << b, checks that the last channel maps to
// itself and drops it.
func reduceLast(a, p, b []int) (Circuit, error) {
	pb, err := permutation.Compose(p, b)
	if err != nil {
		return nil, err
	}
	full, err := permutation.Compose(a, pb)
	if err != nil {
		return nil, err
	}
	n := len(full)
	if full[n-1] != n-1 {
		return nil, errors.Wrapf(ErrInvalidPermutation, "factor %v: last channel maps to %d", p, full[n-1])
	}

	return Permutation(full[:n-1])
}

// feedbackPermutation closes output out onto input in of p.
func feedbackPermutation(p *CPermutation, out, in int) (Circuit, error) {
	n := len(p.perm)
	m1, err := permutation.MapSignals(map[int]int{out: n - 1}, n)
	if err != nil {
		return nil, err
	}
	m2, err := permutation.MapSignals(map[int]int{n - 1: in}, n)
	if err != nil {
		return nil, err
	}
	pm2, err := permutation.Compose(p.perm, m2)
	if err != nil {
		return nil, err
	}
	next, err := permutation.Compose(m1, pm2)
	if err != nil {
		return nil, err
	}
	if permutation.IsIdentity(next) {
		return Identity(n - 1), nil
	}
	// the channel that reached the loop continues where the loop input goes
	nInv := permutation.Invert(next)[n-1]
	next[nInv] = next[n-1]

	return Permutation(next[:n-1])
}
