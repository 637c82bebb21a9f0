// SPDX-License-Identifier: MIT

package operator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/slhnet/hilbert"
)

// Operator is an element of the operator algebra carried by SLH triples.
// Implementations must be immutable; every method returns a new value.
type Operator interface {
	Add(o Operator) Operator
	Mul(o Operator) Operator
	Scale(c complex128) Operator
	Adjoint() Operator

	// Equal is structural equality after canonicalization.
	Equal(o Operator) bool
	IsZero() bool

	// Scalar reports whether the operator is c·1 and returns c.
	Scalar() (complex128, bool)

	// Expand distributes products over sums.
	Expand() Operator

	// Space is the tensor product of the spaces of all atoms.
	Space() hilbert.Space

	String() string
}

// Atom is a named operator acting on a Hilbert space, optionally daggered.
type Atom struct {
	Name   string
	Dagger bool
	Space  hilbert.Space
}

func (a Atom) adjoint() Atom {
	a.Dagger = !a.Dagger
	return a
}

func (a Atom) String() string {
	if a.Dagger {
		return a.Name + "†"
	}
	return a.Name
}

// key orders atoms by name, then dagger, then space.
func (a Atom) key() string {
	d := "0"
	if a.Dagger {
		d = "1"
	}
	sp := ""
	if a.Space != nil {
		sp = a.Space.String()
	}
	return a.Name + "\x00" + d + "\x00" + sp
}

type term struct {
	coeff complex128
	word  []Atom
	key   string
}

func wordKey(w []Atom) string {
	parts := make([]string, len(w))
	for i, a := range w {
		parts[i] = a.key()
	}
	return strings.Join(parts, "\x01")
}

// Poly is a linear combination of operator words with complex coefficients.
// The empty word is the identity. Terms are kept merged, sorted by word and
// free of zero coefficients, so structural equality is canonical.
type Poly struct {
	terms []term
}

var (
	zeroPoly = &Poly{}
	onePoly  = &Poly{terms: []term{{coeff: 1, key: ""}}}
)

// Zero returns the additive neutral element.
func Zero() *Poly { return zeroPoly }

// One returns the multiplicative neutral element.
func One() *Poly { return onePoly }

// Scalar returns c·1.
func Scalar(c complex128) *Poly {
	if c == 0 {
		return zeroPoly
	}
	return &Poly{terms: []term{{coeff: c, key: ""}}}
}

// NewSymbol returns the operator atom name acting on space.
func NewSymbol(name string, space hilbert.Space) (*Poly, error) {
	if name == "" {
		return nil, ErrBadSymbol
	}
	if space == nil {
		space = hilbert.Trivial
	}
	a := Atom{Name: name, Space: space}
	w := []Atom{a}

	return &Poly{terms: []term{{coeff: 1, word: w, key: wordKey(w)}}}, nil
}

// MustSymbol is like NewSymbol but panics on error.
func MustSymbol(name string, space hilbert.Space) *Poly {
	p, err := NewSymbol(name, space)
	if err != nil {
		panic(err)
	}
	return p
}

// Im returns (o - o†)·(-i/2), the anti-Hermitian part scaled to be Hermitian.
func Im(o Operator) Operator {
	return o.Add(o.Adjoint().Scale(-1)).Scale(complex(0, -0.5))
}

// asPoly panics on a foreign implementation; Poly is the only Operator.
func asPoly(o Operator) *Poly {
	p, ok := o.(*Poly)
	if !ok {
		panic("operator: unsupported Operator implementation")
	}
	return p
}

// normalize merges equal words, drops zero terms, and sorts by key.
// Complexity: O(t log t).
func normalize(ts []term) *Poly {
	if len(ts) == 0 {
		return zeroPoly
	}
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].key < ts[j].key })
	out := make([]term, 0, len(ts))
	for _, t := range ts {
		if n := len(out); n > 0 && out[n-1].key == t.key {
			out[n-1].coeff += t.coeff
			continue
		}
		out = append(out, t)
	}
	kept := out[:0]
	for _, t := range out {
		if t.coeff != 0 {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return zeroPoly
	}
	return &Poly{terms: kept}
}

func (p *Poly) Add(o Operator) Operator {
	q := asPoly(o)
	ts := make([]term, 0, len(p.terms)+len(q.terms))
	ts = append(ts, p.terms...)
	ts = append(ts, q.terms...)

	return normalize(ts)
}

// Mul concatenates words pairwise: (Σ a_i w_i)(Σ b_j v_j) = Σ a_i b_j w_i v_j.
// Complexity: O(|p|·|q|·w).
func (p *Poly) Mul(o Operator) Operator {
	q := asPoly(o)
	ts := make([]term, 0, len(p.terms)*len(q.terms))
	for _, x := range p.terms {
		for _, y := range q.terms {
			w := make([]Atom, 0, len(x.word)+len(y.word))
			w = append(w, x.word...)
			w = append(w, y.word...)
			ts = append(ts, term{coeff: x.coeff * y.coeff, word: w, key: wordKey(w)})
		}
	}

	return normalize(ts)
}

func (p *Poly) Scale(c complex128) Operator {
	if c == 0 {
		return zeroPoly
	}
	ts := make([]term, len(p.terms))
	for i, t := range p.terms {
		ts[i] = term{coeff: t.coeff * c, word: t.word, key: t.key}
	}

	return normalize(ts)
}

// Adjoint reverses every word, toggles daggers and conjugates coefficients.
func (p *Poly) Adjoint() Operator {
	ts := make([]term, len(p.terms))
	for i, t := range p.terms {
		w := make([]Atom, len(t.word))
		for k, a := range t.word {
			w[len(t.word)-1-k] = a.adjoint()
		}
		ts[i] = term{coeff: complex(real(t.coeff), -imag(t.coeff)), word: w, key: wordKey(w)}
	}

	return normalize(ts)
}

func (p *Poly) Equal(o Operator) bool {
	q, ok := o.(*Poly)
	if !ok || len(p.terms) != len(q.terms) {
		return false
	}
	for i := range p.terms {
		if p.terms[i].key != q.terms[i].key || p.terms[i].coeff != q.terms[i].coeff {
			return false
		}
	}
	return true
}

func (p *Poly) IsZero() bool { return len(p.terms) == 0 }

func (p *Poly) Scalar() (complex128, bool) {
	switch {
	case len(p.terms) == 0:
		return 0, true
	case len(p.terms) == 1 && len(p.terms[0].word) == 0:
		return p.terms[0].coeff, true
	default:
		return 0, false
	}
}

// Expand is the identity: terms are always stored distributed.
func (p *Poly) Expand() Operator { return p }

func (p *Poly) Space() hilbert.Space {
	var spaces []hilbert.Space
	for _, t := range p.terms {
		for _, a := range t.word {
			spaces = append(spaces, a.Space)
		}
	}
	return hilbert.Tensor(spaces...)
}

func (p *Poly) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.terms {
		s := formatTerm(t)
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func formatTerm(t term) string {
	if len(t.word) == 0 {
		return formatComplex(t.coeff)
	}
	atoms := make([]string, len(t.word))
	for i, a := range t.word {
		atoms[i] = a.String()
	}
	w := strings.Join(atoms, " * ")
	switch t.coeff {
	case 1:
		return w
	case -1:
		return "-" + w
	default:
		return formatComplex(t.coeff) + " * " + w
	}
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	switch {
	case im == 0:
		return f(re)
	case re == 0:
		return f(im) + "i"
	case im < 0:
		return "(" + f(re) + "-" + f(-im) + "i)"
	default:
		return "(" + f(re) + "+" + f(im) + "i)"
	}
}
