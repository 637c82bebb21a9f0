// SPDX-License-Identifier: MIT

// Package permutation implements the channel permutation toolkit used by the
// circuit rewrite rules. A permutation of length n is a slice p where input
// channel i is routed to output channel p[i]; p is valid iff it contains
// every index 0..n-1 exactly once.
//
// All functions return fresh slices and never alias their inputs.
package permutation

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrInvalidPermutation is returned for malformed permutations, mappings
// out of range, or inconsistent block decompositions.
var ErrInvalidPermutation = errors.New("permutation: invalid permutation")

// Check reports whether p is a permutation of 0..len(p)-1.
// Complexity: O(n).
func Check(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}

	return true
}

// Validate returns ErrInvalidPermutation if p is not a permutation.
func Validate(p []int) error {
	if !Check(p) {
		return errors.Wrapf(ErrInvalidPermutation, "%v", p)
	}

	return nil
}

// Identity returns 0..n-1.
func Identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

// IsIdentity reports whether p[i] == i for all i.
func IsIdentity(p []int) bool {
	for i, v := range p {
		if v != i {
			return false
		}
	}

	return true
}

// Invert returns q with q[p[i]] = i. p must be valid.
func Invert(p []int) []int {
	out := make([]int, len(p))
	for i, v := range p {
		out[v] = i
	}

	return out
}

// Compose returns a∘b: r[i] = a[b[i]], i.e. b is applied first.
func Compose(a, b []int) ([]int, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrInvalidPermutation, "compose lengths %d and %d", len(a), len(b))
	}
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = a[v]
	}

	return out, nil
}

// Concatenate returns a ⊕ b: a followed by b shifted by len(a).
func Concatenate(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	for _, v := range b {
		out = append(out, v+len(a))
	}

	return out
}

// FromBlocks concatenates block-local permutations.
func FromBlocks(blocks [][]int) []int {
	var out []int
	for _, b := range blocks {
		out = Concatenate(out, b)
	}

	return out
}

// ToBlocks decomposes p into its finest block-diagonal structure and returns
// the block-local permutations. A block closes at index i when the largest
// image seen so far equals i. The empty permutation has no blocks.
// Complexity: O(n).
func ToBlocks(p []int) ([][]int, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	var blocks [][]int
	start, hi := 0, -1
	for i, v := range p {
		if v > hi {
			hi = v
		}
		if hi == i {
			blk := make([]int, i+1-start)
			for k := start; k <= i; k++ {
				blk[k-start] = p[k] - start
			}
			blocks = append(blocks, blk)
			start = i + 1
		}
	}

	return blocks, nil
}

// BlockSizes returns the block lengths of ToBlocks.
func BlockSizes(p []int) ([]int, error) {
	blocks, err := ToBlocks(p)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(blocks))
	for i, b := range blocks {
		out[i] = len(b)
	}

	return out, nil
}

// ToDisjointCycles lists the non-trivial cycles of p, each starting at its
// smallest element, ordered by that element.
func ToDisjointCycles(p []int) ([][]int, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	seen := make([]bool, len(p))
	var cycles [][]int
	for i := range p {
		if seen[i] {
			continue
		}
		var c []int
		for k := i; !seen[k]; k = p[k] {
			seen[k] = true
			c = append(c, k)
		}
		if len(c) > 1 {
			cycles = append(cycles, c)
		}
	}

	return cycles, nil
}

// FromDisjointCycles rebuilds a permutation of length n from cycles, where
// each cycle (c0 c1 ... ck) maps c0→c1, ..., ck→c0.
func FromDisjointCycles(cycles [][]int, n int) ([]int, error) {
	p := Identity(n)
	touched := make([]bool, n)
	for _, c := range cycles {
		for j, v := range c {
			if v < 0 || v >= n || touched[v] {
				return nil, errors.Wrapf(ErrInvalidPermutation, "cycle %v", c)
			}
			touched[v] = true
			p[v] = c[(j+1)%len(c)]
		}
	}

	return p, nil
}

// MapSignals completes a partial mapping {input: output} into a permutation
// of length n. Unmapped inputs take the unused outputs in ascending order.
func MapSignals(mapping map[int]int, n int) ([]int, error) {
	p := make([]int, n)
	used := make([]bool, n)
	keyed := make([]bool, n)
	for k, v := range mapping {
		if k < 0 || k >= n || v < 0 || v >= n || used[v] {
			return nil, errors.Wrapf(ErrInvalidPermutation, "mapping %v for n=%d", mapping, n)
		}
		used[v] = true
		keyed[k] = true
		p[k] = v
	}
	free := 0
	for k := 0; k < n; k++ {
		if keyed[k] {
			continue
		}
		for used[free] {
			free++
		}
		p[k] = free
		used[free] = true
	}

	return p, nil
}

// ExtractSignal moves channel k to the last position and shifts the
// channels after it down by one.
func ExtractSignal(k, n int) ([]int, error) {
	return MapSignals(map[int]int{k: n - 1}, n)
}

// BlockPermAndWithin factors p, whose domain is partitioned by the block
// sizes bs, into a permutation of blocks and one permutation within each
// block. Blocks are ordered by the smallest image they contain; within a
// block, elements are ranked by their image.
func BlockPermAndWithin(p []int, bs []int) (blockPerm []int, within [][]int, err error) {
	total := 0
	for _, b := range bs {
		total += b
	}
	if total != len(p) {
		return nil, nil, errors.Wrapf(ErrInvalidPermutation, "block sizes %v for length %d", bs, len(p))
	}
	if err = Validate(p); err != nil {
		return nil, nil, err
	}

	mins := make([]int, len(bs))
	offset := 0
	for k, b := range bs {
		if b == 0 {
			return nil, nil, errors.Wrapf(ErrInvalidPermutation, "empty block %d", k)
		}
		m := p[offset]
		for _, v := range p[offset : offset+b] {
			m = min(m, v)
		}
		mins[k] = m

		order := make([]int, b)
		for i := range order {
			order[i] = i
		}
		img := p[offset : offset+b]
		sort.Slice(order, func(i, j int) bool { return img[order[i]] < img[order[j]] })
		within = append(within, Invert(order))
		offset += b
	}

	bpInv := Identity(len(bs))
	sort.Slice(bpInv, func(i, j int) bool { return mins[bpInv[i]] < mins[bpInv[j]] })

	return Invert(bpInv), within, nil
}

// FullBlockPerm expands a block permutation over blocks of sizes bs into a
// channel permutation that moves whole blocks.
func FullBlockPerm(blockPerm []int, bs []int) ([]int, error) {
	if len(blockPerm) != len(bs) {
		return nil, errors.Wrapf(ErrInvalidPermutation, "block perm %v for %d blocks", blockPerm, len(bs))
	}
	if err := Validate(blockPerm); err != nil {
		return nil, err
	}
	inv := Invert(blockPerm)
	var out []int
	for k, b := range bs {
		offset := 0
		for j := 0; j < blockPerm[k]; j++ {
			offset += bs[inv[j]]
		}
		for i := 0; i < b; i++ {
			out = append(out, offset+i)
		}
	}

	return out, nil
}

// Permute places seq[i] at position p[i].
func Permute[T any](seq []T, p []int) ([]T, error) {
	if len(seq) != len(p) {
		return nil, errors.Wrapf(ErrInvalidPermutation, "permute %d items with length %d", len(seq), len(p))
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	out := make([]T, len(seq))
	for i, v := range seq {
		out[p[i]] = v
	}

	return out, nil
}
