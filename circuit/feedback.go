// SPDX-License-Identifier: MIT

package circuit

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/slhnet/pattern"
)

const opFeedback = "Feedback"

// FeedbackOption selects the ports closed by FB.
type FeedbackOption func(*feedbackPorts)

type feedbackPorts struct {
	out, in int // -1 selects the last port
}

// WithOutPort selects the output port that leaves the loop.
// Panics if i < 0.
func WithOutPort(i int) FeedbackOption {
	if i < 0 {
		panic("circuit: WithOutPort(i) requires i >= 0")
	}
	return func(p *feedbackPorts) { p.out = i }
}

// WithInPort selects the input port the loop enters.
// Panics if i < 0.
func WithInPort(i int) FeedbackOption {
	if i < 0 {
		panic("circuit: WithInPort(i) requires i >= 0")
	}
	return func(p *feedbackPorts) { p.in = i }
}

// FB feeds an output of c back into one of its inputs. Both ports default
// to the last channel.
func FB(c Circuit, opts ...FeedbackOption) (Circuit, error) {
	p := feedbackPorts{out: -1, in: -1}
	for _, opt := range opts {
		opt(&p)
	}
	if p.out < 0 {
		p.out = c.CDim() - 1
	}
	if p.in < 0 {
		p.in = c.CDim() - 1
	}

	return FeedbackAt(c, p.out, p.in)
}

// FeedbackAt connects output out of c to its input in. The result has one
// channel less than c; c must have at least two channels.
func FeedbackAt(c Circuit, out, in int) (Circuit, error) {
	n := c.CDim()
	if n < 2 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "feedback on cdim %d", n)
	}
	if out < 0 || out >= n || in < 0 || in >= n {
		return nil, errors.Wrapf(ErrDimensionMismatch, "feedback ports (%d, %d) for cdim %d", out, in, n)
	}

	switch x := c.(type) {
	case *Concatenation:
		return feedbackConcat(x, out, in)
	case *CPermutation:
		return feedbackPermutation(x, out, in)
	case *SLH:
		return asCircuit(slhFeedback(x, out, in))
	case *SeriesProduct:
		return feedbackSeries(x, out, in)
	default:
		return feedbackNode(c, out, in), nil
	}
}

func feedbackNode(c Circuit, out, in int) Circuit {
	return intern(newFeedbackNode(c, out, in))
}

// feedbackConcat recurses into the block holding both ports, or turns a
// loop across two blocks into a plain series product.
func feedbackConcat(c *Concatenation, out, in int) (Circuit, error) {
	n := c.cdim
	outIdx, outBlock, err := IndexInBlock(c, out)
	if err != nil {
		return nil, err
	}
	inIdx, inBlock, err := IndexInBlock(c, in)
	if err != nil {
		return nil, err
	}
	blocks, err := GetBlocks(c, c.BlockStructure())
	if err != nil {
		return nil, err
	}

	if inBlock == outBlock {
		closed, err := feedbackBlock(blocks[outBlock], outIdx, inIdx)
		if err != nil {
			return nil, err
		}
		if closed == nil {
			return feedbackNode(c, out, in), nil
		}
		parts := make([]Circuit, 0, len(blocks))
		parts = append(parts, blocks[:outBlock]...)
		parts = append(parts, closed)
		parts = append(parts, blocks[outBlock+1:]...)
		return Concat(parts...)
	}

	// no loop: the two blocks end up in series
	var split int
	var mapping map[int]int
	if inBlock < outBlock {
		split, mapping = outBlock, map[int]int{out - 1: in}
	} else {
		split, mapping = inBlock, map[int]int{out: in - 1}
	}
	b1, err := Concat(blocks[:split]...)
	if err != nil {
		return nil, err
	}
	b2, err := Concat(blocks[split:]...)
	if err != nil {
		return nil, err
	}
	m, err := MapSignalsCircuit(mapping, n-1)
	if err != nil {
		return nil, err
	}
	top, err := Concat(b1, Identity(b2.CDim()-1))
	if err != nil {
		return nil, err
	}
	bottom, err := Concat(Identity(b1.CDim()-1), b2)
	if err != nil {
		return nil, err
	}
	if inBlock < outBlock {
		return Series(top, m, bottom)
	}

	return Series(bottom, m, top)
}

// feedbackBlock closes a loop inside a single finest block. A nil result
// means the one-channel block cannot be closed symbolically.
func feedbackBlock(b Circuit, out, in int) (Circuit, error) {
	if b.CDim() > 1 {
		return FeedbackAt(b, out, in)
	}
	switch x := b.(type) {
	case cidentity:
		return CircuitZero, nil
	case *SLH:
		return asCircuit(slhFeedback(x, out, in))
	default:
		return nil, nil
	}
}

type feedbackRule struct {
	name  string
	match func(s *SeriesProduct) bool
	apply func(s *SeriesProduct, out, in int) (Circuit, error)
}

var feedbackRules []feedbackRule

func newFeedbackRules() []feedbackRule {
	first := func(k Kind) func(*SeriesProduct) bool {
		return func(s *SeriesProduct) bool { return s.ops[0].Kind() == k }
	}
	last := func(k Kind) func(*SeriesProduct) bool {
		return func(s *SeriesProduct) bool { return s.ops[len(s.ops)-1].Kind() == k }
	}

	return []feedbackRule{
		{"double-inverse", func(*SeriesProduct) bool { return true }, feedbackDoubleInverse},
		{"pull-permutation-lhs", first(KindPermutation), pullPermutationLHS},
		{"pull-blocks-lhs", first(KindConcatenation), pullBlocksLHS},
		{"pull-permutation-rhs", last(KindPermutation), pullPermutationRHS},
		{"pull-blocks-rhs", last(KindConcatenation), pullBlocksRHS},
	}
}

// feedbackSeries moves as much of a series product as possible out of the
// loop. When no rule applies, the loop stays explicit.
func feedbackSeries(s *SeriesProduct, out, in int) (Circuit, error) {
	e := engine()
	for _, r := range feedbackRules {
		if !r.match(s) {
			continue
		}
		res, err := r.apply(s, out, in)
		switch {
		case err == nil:
			e.Report(opFeedback, r.name, true)
			return res, nil
		case errors.Is(err, pattern.ErrCannotSimplify):
			e.Report(opFeedback, r.name, false)
		default:
			return nil, errors.Wrapf(err, "%s: rule %s", opFeedback, r.name)
		}
	}

	return feedbackNode(s, out, in), nil
}

// feedbackDoubleInverse re-normalizes the product through two inversions.
// The result must be strictly smaller, which bounds the recursion.
func feedbackDoubleInverse(s *SeriesProduct, out, in int) (Circuit, error) {
	inv, err := Inverse(s)
	if err != nil {
		return nil, err
	}
	twice, err := Inverse(inv)
	if err != nil {
		return nil, err
	}
	if Equal(twice, s) || nodeCount(twice) >= nodeCount(s) {
		return nil, pattern.ErrCannotSimplify
	}

	return FeedbackAt(twice, out, in)
}

func pullPermutationLHS(s *SeriesProduct, out, in int) (Circuit, error) {
	outInv, red, err := factorLHS(s.ops[0].(*CPermutation), out)
	if err != nil {
		return nil, err
	}
	body, err := Series(s.ops[1:]...)
	if err != nil {
		return nil, err
	}
	fb, err := FeedbackAt(body, outInv, in)
	if err != nil {
		return nil, err
	}

	return Series(red, fb)
}

func pullPermutationRHS(s *SeriesProduct, out, in int) (Circuit, error) {
	k := len(s.ops) - 1
	inIm, red, err := factorRHS(s.ops[k].(*CPermutation), in)
	if err != nil {
		return nil, err
	}
	body, err := Series(s.ops[:k]...)
	if err != nil {
		return nil, err
	}
	fb, err := FeedbackAt(body, out, inIm)
	if err != nil {
		return nil, err
	}

	return Series(fb, red)
}

func pullBlocksLHS(s *SeriesProduct, out, in int) (Circuit, error) {
	outer, inner, err := splitUnaffected(s.ops[0], out)
	if err != nil {
		return nil, err
	}
	ops := make([]Circuit, 0, len(s.ops))
	if inner != nil {
		ops = append(ops, inner)
	}
	ops = append(ops, s.ops[1:]...)
	body, err := Series(ops...)
	if err != nil {
		return nil, err
	}
	fb, err := FeedbackAt(body, out, in)
	if err != nil {
		return nil, err
	}

	return Series(outer, fb)
}

func pullBlocksRHS(s *SeriesProduct, out, in int) (Circuit, error) {
	k := len(s.ops) - 1
	outer, inner, err := splitUnaffected(s.ops[k], in)
	if err != nil {
		return nil, err
	}
	ops := make([]Circuit, 0, len(s.ops))
	ops = append(ops, s.ops[:k]...)
	if inner != nil {
		ops = append(ops, inner)
	}
	body, err := Series(ops...)
	if err != nil {
		return nil, err
	}
	fb, err := FeedbackAt(body, out, in)
	if err != nil {
		return nil, err
	}

	return Series(fb, outer)
}

// splitUnaffected separates the blocks of a concatenation c that do not
// touch channel port. outer carries them on the remaining n-1 channels;
// inner is what stays inside the loop, nil when the touched block is an
// identity.
func splitUnaffected(c Circuit, port int) (outer, inner Circuit, err error) {
	_, b, err := IndexInBlock(c, port)
	if err != nil {
		return nil, nil, err
	}
	bs := c.BlockStructure()
	nbefore, nblock, nafter := sumInts(bs[:b]), bs[b], sumInts(bs[b+1:])
	parts, err := GetBlocks(c, []int{nbefore, nblock, nafter})
	if err != nil {
		return nil, nil, err
	}
	before, block, after := parts[0], parts[1], parts[2]

	switch {
	case !isIdentity(before) || !isIdentity(after):
		if inner, err = Concat(Identity(nbefore), block, Identity(nafter)); err != nil {
			return nil, nil, err
		}
	case isIdentity(block):
		inner = nil
	default:
		return nil, nil, pattern.ErrCannotSimplify
	}
	if outer, err = Concat(before, Identity(nblock-1), after); err != nil {
		return nil, nil, err
	}

	return outer, inner, nil
}
