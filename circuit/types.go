// SPDX-License-Identifier: MIT

package circuit

import (
	"github.com/katalvlaran/slhnet/expr"
	"github.com/katalvlaran/slhnet/hilbert"
	"github.com/katalvlaran/slhnet/operator"
)

// Kind tags the closed set of circuit variants.
type Kind int

const (
	KindSLH Kind = iota
	KindSymbol
	KindIdentity
	KindZero
	KindSeries
	KindConcatenation
	KindPermutation
	KindFeedback
	KindSeriesInverse
)

var kindNames = [...]string{
	KindSLH:           "SLH",
	KindSymbol:        "Symbol",
	KindIdentity:      "CIdentity",
	KindZero:          "CircuitZero",
	KindSeries:        "SeriesProduct",
	KindConcatenation: "Concatenation",
	KindPermutation:   "CPermutation",
	KindFeedback:      "Feedback",
	KindSeriesInverse: "SeriesInverse",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Circuit is an immutable circuit expression. The set of implementations is
// closed; every operation in this package switches exhaustively over it.
type Circuit interface {
	Kind() Kind

	// CDim is the number of external channels.
	CDim() int

	// BlockStructure is the finest partition of the channels into
	// independently addressable groups. The returned slice is a copy.
	BlockStructure() []int

	// Space is the Hilbert space the circuit acts on.
	Space() hilbert.Space

	// Hash is a structural hash, equal for Equal circuits.
	Hash() uint64

	String() string

	isCircuit()
}

// SLH is the concrete (S, L, H) representation of a circuit.
type SLH struct {
	s    *operator.Matrix // cdim × cdim scattering matrix
	l    *operator.Matrix // cdim × 1 coupling vector
	h    operator.Operator
	hash uint64
}

// Symbol is a named placeholder with a fixed channel count.
type Symbol struct {
	name string
	cdim int
	hash uint64
}

// cidentity is the single-channel identity; zero has no channels.
type (
	cidentity struct{}
	czero     struct{}
)

var (
	// CIdentity is the one-channel identity, neutral for series products.
	CIdentity Circuit = cidentity{}

	// CircuitZero has no channels and is neutral for concatenation.
	CircuitZero Circuit = czero{}
)

// SeriesProduct is a feedforward chain; ops[0] is the most downstream.
type SeriesProduct struct {
	ops   []Circuit
	hash  uint64
	space expr.Lazy[hilbert.Space]
}

// Concatenation places its operands side by side.
type Concatenation struct {
	ops   []Circuit
	cdim  int
	hash  uint64
	bs    expr.Lazy[[]int]
	space expr.Lazy[hilbert.Space]
}

// CPermutation routes input channel j to output channel perm[j].
type CPermutation struct {
	perm   []int
	hash   uint64
	blocks expr.Lazy[[][]int]
}

// Feedback connects output Out of the operand back to its input In.
type Feedback struct {
	op   Circuit
	out  int
	in   int
	hash uint64
}

// SeriesInverse is the formal series inverse of its operand.
type SeriesInverse struct {
	op   Circuit
	hash uint64
}

func (*SLH) Kind() Kind           { return KindSLH }
func (*Symbol) Kind() Kind        { return KindSymbol }
func (cidentity) Kind() Kind      { return KindIdentity }
func (czero) Kind() Kind          { return KindZero }
func (*SeriesProduct) Kind() Kind { return KindSeries }
func (*Concatenation) Kind() Kind { return KindConcatenation }
func (*CPermutation) Kind() Kind  { return KindPermutation }
func (*Feedback) Kind() Kind      { return KindFeedback }
func (*SeriesInverse) Kind() Kind { return KindSeriesInverse }

func (*SLH) isCircuit()           {}
func (*Symbol) isCircuit()        {}
func (cidentity) isCircuit()      {}
func (czero) isCircuit()          {}
func (*SeriesProduct) isCircuit() {}
func (*Concatenation) isCircuit() {}
func (*CPermutation) isCircuit()  {}
func (*Feedback) isCircuit()      {}
func (*SeriesInverse) isCircuit() {}

func (c *SLH) CDim() int           { return c.s.Rows() }
func (c *Symbol) CDim() int        { return c.cdim }
func (cidentity) CDim() int        { return 1 }
func (czero) CDim() int            { return 0 }
func (c *SeriesProduct) CDim() int { return c.ops[0].CDim() }
func (c *Concatenation) CDim() int { return c.cdim }
func (c *CPermutation) CDim() int  { return len(c.perm) }
func (c *Feedback) CDim() int      { return c.op.CDim() - 1 }
func (c *SeriesInverse) CDim() int { return c.op.CDim() }

func (c *SLH) Hash() uint64           { return c.hash }
func (c *Symbol) Hash() uint64        { return c.hash }
func (cidentity) Hash() uint64        { return identityHash }
func (czero) Hash() uint64            { return zeroHash }
func (c *SeriesProduct) Hash() uint64 { return c.hash }
func (c *Concatenation) Hash() uint64 { return c.hash }
func (c *CPermutation) Hash() uint64  { return c.hash }
func (c *Feedback) Hash() uint64      { return c.hash }
func (c *SeriesInverse) Hash() uint64 { return c.hash }

var (
	identityHash = expr.NewHasher(KindIdentity.String()).Sum()
	zeroHash     = expr.NewHasher(KindZero.String()).Sum()
)

// S returns the scattering matrix.
func (c *SLH) S() *operator.Matrix { return c.s }

// L returns the coupling vector.
func (c *SLH) L() *operator.Matrix { return c.l }

// H returns the Hamiltonian.
func (c *SLH) H() operator.Operator { return c.h }

// Name returns the symbol name.
func (c *Symbol) Name() string { return c.name }

// Operands returns a copy of the series operands, downstream first.
func (c *SeriesProduct) Operands() []Circuit { return append([]Circuit(nil), c.ops...) }

// Operands returns a copy of the concatenated operands.
func (c *Concatenation) Operands() []Circuit { return append([]Circuit(nil), c.ops...) }

// Perm returns a copy of the image tuple.
func (c *CPermutation) Perm() []int { return append([]int(nil), c.perm...) }

// Operand returns the circuit under feedback.
func (c *Feedback) Operand() Circuit { return c.op }

// Ports returns the (out, in) port pair.
func (c *Feedback) Ports() (out, in int) { return c.out, c.in }

// Operand returns the inverted circuit.
func (c *SeriesInverse) Operand() Circuit { return c.op }

func hashOps(tag string, ops []Circuit) uint64 {
	h := expr.NewHasher(tag).Int(len(ops))
	for _, o := range ops {
		h.Uint64(o.Hash())
	}
	return h.Sum()
}

func newSeriesNode(ops []Circuit) *SeriesProduct {
	return &SeriesProduct{ops: ops, hash: hashOps(KindSeries.String(), ops)}
}

func newConcatNode(ops []Circuit) *Concatenation {
	n := 0
	for _, o := range ops {
		n += o.CDim()
	}
	return &Concatenation{ops: ops, cdim: n, hash: hashOps(KindConcatenation.String(), ops)}
}

func newPermutationNode(perm []int) *CPermutation {
	h := expr.NewHasher(KindPermutation.String()).Int(len(perm))
	for _, p := range perm {
		h.Int(p)
	}
	return &CPermutation{perm: perm, hash: h.Sum()}
}

func newFeedbackNode(op Circuit, out, in int) *Feedback {
	h := expr.NewHasher(KindFeedback.String()).Uint64(op.Hash()).Int(out).Int(in)
	return &Feedback{op: op, out: out, in: in, hash: h.Sum()}
}

func newSeriesInverseNode(op Circuit) *SeriesInverse {
	h := expr.NewHasher(KindSeriesInverse.String()).Uint64(op.Hash())
	return &SeriesInverse{op: op, hash: h.Sum()}
}

func newSymbolNode(name string, cdim int) *Symbol {
	h := expr.NewHasher(KindSymbol.String()).String(name).Int(cdim)
	return &Symbol{name: name, cdim: cdim, hash: h.Sum()}
}

func newSLHNode(s, l *operator.Matrix, h operator.Operator) *SLH {
	hs := expr.NewHasher(KindSLH.String()).
		String(s.String()).
		String(l.String()).
		String(h.String())
	return &SLH{s: s, l: l, h: h, hash: hs.Sum()}
}
