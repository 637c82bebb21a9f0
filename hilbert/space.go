// SPDX-License-Identifier: MIT

package hilbert

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrBadLabel is returned when a local space label is empty or malformed.
	ErrBadLabel = errors.New("hilbert: invalid space label")

	// ErrUndefined marks operations that have no defined result on the full space.
	ErrUndefined = errors.New("hilbert: operation undefined on full space")
)

// labelPattern accepts labels like "1", "q", "cav_a" or "q_(1)".
var labelPattern = regexp.MustCompile(`^[A-Za-z0-9.+-]+(_[A-Za-z0-9().+-]+)?$`)

// Space is an opaque Hilbert space label.
type Space interface {
	fmt.Stringer

	// Factors lists the local factors in canonical order.
	// The full space has no defined factors and returns ErrUndefined.
	Factors() ([]*Local, error)

	isSpace()
}

type trivialSpace struct{}

type fullSpace struct{}

var (
	// Trivial is the one-dimensional space with no factors.
	Trivial Space = trivialSpace{}

	// Full contains every other space as a tensor factor.
	Full Space = fullSpace{}
)

func (trivialSpace) String() string             { return "null" }
func (trivialSpace) Factors() ([]*Local, error) { return nil, nil }
func (trivialSpace) isSpace()                   {}

func (fullSpace) String() string { return "total" }
func (fullSpace) Factors() ([]*Local, error) {
	return nil, errors.Wrap(ErrUndefined, "Factors")
}
func (fullSpace) isSpace() {}

// Local is a single degree of freedom.
type Local struct {
	label string
	order int // math.MaxInt when no order index was given
}

// LocalOption configures a Local space at construction.
type LocalOption func(*Local)

// WithOrderIndex sets the preferred position of the space in products.
// Spaces without an order index sort after all indexed ones, by label.
func WithOrderIndex(i int) LocalOption {
	if i < 0 || i == math.MaxInt {
		panic("hilbert: WithOrderIndex: index must be in [0, MaxInt)")
	}
	return func(l *Local) { l.order = i }
}

// NewLocal creates a local space with the given label.
func NewLocal(label string, opts ...LocalOption) (*Local, error) {
	if !labelPattern.MatchString(label) {
		return nil, errors.Wrapf(ErrBadLabel, "label %q", label)
	}
	l := &Local{label: label, order: math.MaxInt}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// MustLocal is like NewLocal but panics on a malformed label.
func MustLocal(label string, opts ...LocalOption) *Local {
	l, err := NewLocal(label, opts...)
	if err != nil {
		panic(err)
	}

	return l
}

// Label returns the label of the space.
func (l *Local) Label() string { return l.label }

func (l *Local) String() string             { return l.label }
func (l *Local) Factors() ([]*Local, error) { return []*Local{l}, nil }
func (l *Local) isSpace()                   {}

// Product is a tensor product of at least two distinct local spaces.
type Product struct {
	factors []*Local // sorted by lessLocal, no duplicates
}

func (p *Product) String() string {
	labels := make([]string, len(p.factors))
	for i, f := range p.factors {
		labels[i] = f.label
	}

	return strings.Join(labels, "*")
}

func (p *Product) Factors() ([]*Local, error) {
	out := make([]*Local, len(p.factors))
	copy(out, p.factors)

	return out, nil
}

func (p *Product) isSpace() {}

func lessLocal(a, b *Local) bool {
	if a.order != b.order {
		return a.order < b.order
	}

	return a.label < b.label
}

func sameLocal(a, b *Local) bool {
	return a.order == b.order && a.label == b.label
}

// fromFactors builds the canonical space for a factor list.
func fromFactors(fs []*Local) Space {
	sort.SliceStable(fs, func(i, j int) bool { return lessLocal(fs[i], fs[j]) })
	uniq := fs[:0]
	for _, f := range fs {
		if len(uniq) > 0 && sameLocal(uniq[len(uniq)-1], f) {
			continue
		}
		uniq = append(uniq, f)
	}
	switch len(uniq) {
	case 0:
		return Trivial
	case 1:
		return uniq[0]
	default:
		return &Product{factors: uniq}
	}
}

// Tensor returns the tensor product of spaces. Any full operand yields Full,
// an empty argument list yields Trivial.
// Complexity: O(k log k) in the total number of factors.
func Tensor(spaces ...Space) Space {
	var fs []*Local
	for _, s := range spaces {
		if s == nil {
			continue
		}
		if _, ok := s.(fullSpace); ok {
			return Full
		}
		sf, _ := s.Factors()
		fs = append(fs, sf...)
	}

	return fromFactors(fs)
}

// Intersect returns the common factors of a and b.
func Intersect(a, b Space) Space {
	if _, ok := a.(fullSpace); ok {
		return b
	}
	if _, ok := b.(fullSpace); ok {
		return a
	}
	af, _ := a.Factors()
	bf, _ := b.Factors()
	var out []*Local
	for _, x := range af {
		for _, y := range bf {
			if sameLocal(x, y) {
				out = append(out, x)
				break
			}
		}
	}

	return fromFactors(out)
}

// Remove drops the factors of b from a.
// Removing anything from the full space is undefined; removing the full
// space from anything leaves the trivial space.
func Remove(a, b Space) (Space, error) {
	if _, ok := a.(fullSpace); ok {
		return nil, errors.Wrap(ErrUndefined, "Remove")
	}
	if _, ok := b.(fullSpace); ok {
		return Trivial, nil
	}
	af, _ := a.Factors()
	bf, _ := b.Factors()
	var out []*Local
outer:
	for _, x := range af {
		for _, y := range bf {
			if sameLocal(x, y) {
				continue outer
			}
		}
		out = append(out, x)
	}

	return fromFactors(out), nil
}

// IsDisjoint reports whether a and b share no factor. The trivial space is
// disjoint with every space (itself included); the full space with none
// other.
func IsDisjoint(a, b Space) bool {
	_, at := a.(trivialSpace)
	_, bt := b.(trivialSpace)
	if at || bt {
		return true
	}
	_, af := a.(fullSpace)
	_, bf := b.(fullSpace)
	if af || bf {
		return false
	}
	_, common := Intersect(a, b).(trivialSpace)

	return common
}

// rank orders the space kinds: trivial < full < local/product.
func rank(s Space) int {
	switch s.(type) {
	case trivialSpace:
		return 0
	case fullSpace:
		return 1
	default:
		return 2
	}
}

// Compare defines a total order over spaces.
// It returns -1, 0 or +1.
func Compare(a, b Space) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if ra < 2 {
		return 0
	}
	af, _ := a.Factors()
	bf, _ := b.Factors()
	for i := 0; i < len(af) && i < len(bf); i++ {
		if sameLocal(af[i], bf[i]) {
			continue
		}
		if lessLocal(af[i], bf[i]) {
			return -1
		}
		return 1
	}
	switch {
	case len(af) < len(bf):
		return -1
	case len(af) > len(bf):
		return 1
	default:
		return 0
	}
}

// Equal reports structural equality.
func Equal(a, b Space) bool { return Compare(a, b) == 0 }
