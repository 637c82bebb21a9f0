// SPDX-License-Identifier: MIT

package circuit

import "github.com/pkg/errors"

func (c *SLH) BlockStructure() []int           { return single(c.CDim()) }
func (c *Symbol) BlockStructure() []int        { return single(c.cdim) }
func (cidentity) BlockStructure() []int        { return []int{1} }
func (czero) BlockStructure() []int            { return []int{} }
func (c *SeriesProduct) BlockStructure() []int { return single(c.CDim()) }
func (c *Feedback) BlockStructure() []int      { return single(c.CDim()) }
func (c *SeriesInverse) BlockStructure() []int { return single(c.CDim()) }

// single is the structure of an irreducible circuit.
func single(n int) []int {
	if n == 0 {
		return []int{}
	}
	return []int{n}
}

func (c *Concatenation) BlockStructure() []int {
	bs, _ := c.bs.Get(func() ([]int, error) {
		var out []int
		for _, o := range c.ops {
			out = append(out, o.BlockStructure()...)
		}
		return out, nil
	})
	return append([]int(nil), bs...)
}

func (c *CPermutation) BlockStructure() []int {
	blocks := c.blockPerms()
	out := make([]int, len(blocks))
	for i, b := range blocks {
		out[i] = len(b)
	}
	return out
}

// finestBlocks splits c along its block structure.
func finestBlocks(c Circuit) ([]Circuit, error) {
	switch x := c.(type) {
	case czero:
		return nil, nil
	case *Concatenation:
		var out []Circuit
		for _, o := range x.ops {
			sub, err := finestBlocks(o)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	case *CPermutation:
		blocks := x.blockPerms()
		out := make([]Circuit, len(blocks))
		for i, b := range blocks {
			p, err := Permutation(b)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	default:
		return []Circuit{c}, nil
	}
}

// GetBlocks splits c into consecutive sub-circuits with the channel counts
// of structure. Every requested block must be a union of adjacent finest
// blocks; a zero entry yields CircuitZero.
// Complexity: O(b) in the number of finest blocks, plus the Concat calls.
func GetBlocks(c Circuit, structure []int) ([]Circuit, error) {
	total := 0
	for _, s := range structure {
		if s < 0 {
			return nil, errors.Wrapf(ErrIncompatibleBlockStructure, "negative block in %v", structure)
		}
		total += s
	}
	if total != c.CDim() {
		return nil, errors.Wrapf(ErrIncompatibleBlockStructure, "structure %v for cdim %d", structure, c.CDim())
	}
	fine, err := finestBlocks(c)
	if err != nil {
		return nil, err
	}
	if equalInts(structure, c.BlockStructure()) {
		return fine, nil
	}

	out := make([]Circuit, 0, len(structure))
	k := 0
	for _, want := range structure {
		var group []Circuit
		got := 0
		for got < want {
			group = append(group, fine[k])
			got += fine[k].CDim()
			k++
		}
		if got != want {
			return nil, errors.Wrapf(ErrIncompatibleBlockStructure,
				"structure %v against %v", structure, c.BlockStructure())
		}
		b, err := Concat(group...)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if k != len(fine) {
		return nil, errors.Wrapf(ErrIncompatibleBlockStructure,
			"structure %v leaves %d blocks of %v", structure, len(fine)-k, c)
	}

	return out, nil
}

// IndexInBlock locates channel ch: its index within the containing finest
// block and that block's index.
func IndexInBlock(c Circuit, ch int) (index, block int, err error) {
	if ch < 0 || ch >= c.CDim() {
		return 0, 0, errors.Wrapf(ErrDimensionMismatch, "channel %d of cdim %d", ch, c.CDim())
	}
	offset := 0
	for b, size := range c.BlockStructure() {
		if ch < offset+size {
			return ch - offset, b, nil
		}
		offset += size
	}

	return 0, 0, errors.Wrapf(ErrDimensionMismatch, "channel %d of cdim %d", ch, c.CDim())
}

// CommonBlockStructure returns the finest structure that is a coarsening of
// both a and b: a block boundary survives only where both have one.
// Complexity: O(len(a) + len(b)).
func CommonBlockStructure(a, b []int) ([]int, error) {
	if sumInts(a) != sumInts(b) {
		return nil, errors.Wrapf(ErrIncompatibleBlockStructure, "structures %v and %v", a, b)
	}
	var out []int
	i, j, sa, sb, last := 0, 0, 0, 0, 0
	for i < len(a) || j < len(b) {
		if sa <= sb && i < len(a) {
			sa += a[i]
			i++
		} else {
			sb += b[j]
			j++
		}
		if sa == sb && sa > last {
			out = append(out, sa-last)
			last = sa
		}
	}

	return out, nil
}

func sumInts(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
