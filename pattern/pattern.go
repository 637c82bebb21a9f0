// SPDX-License-Identifier: MIT

// Package pattern is a small sequence pattern matcher with named captures,
// used to express algebraic rewrite rules over operand lists.
//
// A pattern is a slice of elements matched against a slice of operands:
//
//	Wildcard("A", pred)   exactly one operand satisfying pred
//	Rest("xs", pred)      one or more operands, greedy, with backtracking
//	Node("Series", els..) one operand whose head is "Series" and whose
//	                      arguments match els
//	Literal(v)            one operand equal to v
//
// Repeated names must bind equal values. Rules are tried in declaration
// order; a rule whose Rewrite returns ErrCannotSimplify is skipped and the
// next rule is tried.
package pattern

import (
	"github.com/pkg/errors"
)

// ErrCannotSimplify signals that a rule (or a whole table) does not apply.
// It is a control-flow value, never surfaced to library callers.
var ErrCannotSimplify = errors.New("pattern: cannot simplify")

type kind int

const (
	kindWildcard kind = iota
	kindRest
	kindNode
	kindLiteral
)

// Elem is one element of a pattern.
type Elem[T any] struct {
	kind  kind
	name  string
	pred  func(T) bool
	head  string
	elems []Elem[T]
	value T
}

// Wildcard matches a single operand. An empty name captures nothing;
// a nil pred accepts everything.
func Wildcard[T any](name string, pred func(T) bool) Elem[T] {
	return Elem[T]{kind: kindWildcard, name: name, pred: pred}
}

// Rest matches one or more consecutive operands, each satisfying pred.
func Rest[T any](name string, pred func(T) bool) Elem[T] {
	return Elem[T]{kind: kindRest, name: name, pred: pred}
}

// Node matches a single operand whose head is head and whose arguments
// match elems. When name is non-empty the whole operand is captured too.
func Node[T any](name, head string, elems ...Elem[T]) Elem[T] {
	return Elem[T]{kind: kindNode, name: name, head: head, elems: elems}
}

// Literal matches a single operand equal to v.
func Literal[T any](v T) Elem[T] {
	return Elem[T]{kind: kindLiteral, value: v}
}

// Pattern is a sequence of elements matched against a whole operand list.
type Pattern[T any] []Elem[T]

// Bindings holds the captures of a successful match.
type Bindings[T any] struct {
	vals map[string][]T
}

// One returns the single operand captured under name.
// It panics when name captured nothing; rule authors only ask for names
// their own pattern declares.
func (b Bindings[T]) One(name string) T {
	v, ok := b.vals[name]
	if !ok || len(v) != 1 {
		panic("pattern: no single capture named " + name)
	}
	return v[0]
}

// Many returns the operands captured under name, or nil.
func (b Bindings[T]) Many(name string) []T {
	return b.vals[name]
}

func (b Bindings[T]) with(name string, vals []T) Bindings[T] {
	next := make(map[string][]T, len(b.vals)+1)
	for k, v := range b.vals {
		next[k] = v
	}
	next[name] = vals

	return Bindings[T]{vals: next}
}

// Rule rewrites an operand list matching Pattern.
type Rule[T any] struct {
	Name    string
	Pattern Pattern[T]
	Rewrite func(Bindings[T]) (T, error)
}

// Matcher carries the equality and decomposition used during matching.
type Matcher[T any] struct {
	// Equal compares operands for Literal elements and repeated names.
	Equal func(a, b T) bool

	// Split returns the head name and arguments of a compound operand.
	// It must report false for atoms. Nil disables Node elements.
	Split func(x T) (head string, args []T, ok bool)
}

// Match reports whether ops matches p and returns the captures.
// Complexity: exponential in the number of Rest elements in the worst case;
// rule patterns carry at most two.
func (m Matcher[T]) Match(p Pattern[T], ops []T) (Bindings[T], bool) {
	return m.match(p, ops, Bindings[T]{})
}

func (m Matcher[T]) match(p []Elem[T], ops []T, b Bindings[T]) (Bindings[T], bool) {
	if len(p) == 0 {
		return b, len(ops) == 0
	}
	e := p[0]
	if e.kind == kindRest {
		// leave at least one operand for each remaining element
		need := len(p) - 1
		for k := len(ops) - need; k >= 1; k-- {
			if !all(ops[:k], e.pred) {
				continue
			}
			nb, ok := m.bind(b, e.name, ops[:k])
			if !ok {
				continue
			}
			if res, ok := m.match(p[1:], ops[k:], nb); ok {
				return res, true
			}
		}
		return b, false
	}
	if len(ops) == 0 {
		return b, false
	}
	nb, ok := m.matchOne(e, ops[0], b)
	if !ok {
		return b, false
	}

	return m.match(p[1:], ops[1:], nb)
}

func (m Matcher[T]) matchOne(e Elem[T], x T, b Bindings[T]) (Bindings[T], bool) {
	switch e.kind {
	case kindWildcard:
		if e.pred != nil && !e.pred(x) {
			return b, false
		}
	case kindLiteral:
		if !m.Equal(e.value, x) {
			return b, false
		}
		return b, true
	case kindNode:
		if m.Split == nil {
			return b, false
		}
		head, args, ok := m.Split(x)
		if !ok || head != e.head {
			return b, false
		}
		nb, ok := m.match(e.elems, args, b)
		if !ok {
			return b, false
		}
		b = nb
	}

	return m.bind(b, e.name, []T{x})
}

// bind records vals under name. An existing capture must be equal.
func (m Matcher[T]) bind(b Bindings[T], name string, vals []T) (Bindings[T], bool) {
	if name == "" {
		return b, true
	}
	if prev, ok := b.vals[name]; ok {
		if len(prev) != len(vals) {
			return b, false
		}
		for i := range prev {
			if !m.Equal(prev[i], vals[i]) {
				return b, false
			}
		}
		return b, true
	}

	return b.with(name, vals), true
}

func all[T any](xs []T, pred func(T) bool) bool {
	if pred == nil {
		return true
	}
	for _, x := range xs {
		if !pred(x) {
			return false
		}
	}
	return true
}

// Table is an ordered rule list sharing one Matcher.
type Table[T any] struct {
	m     Matcher[T]
	rules []Rule[T]
}

// NewTable builds a rule table. Rules are tried in the given order.
func NewTable[T any](m Matcher[T], rules ...Rule[T]) *Table[T] {
	return &Table[T]{m: m, rules: rules}
}

// Len returns the number of rules.
func (t *Table[T]) Len() int { return len(t.rules) }

// Apply tries the rules against ops and returns the first successful
// rewrite together with the rule name. trace, if non-nil, is called for
// every rule whose pattern matched, with the error its Rewrite returned
// (nil on success, ErrCannotSimplify when it declined).
// When no rule applies Apply returns ErrCannotSimplify. Any other error
// from a Rewrite is returned as is.
func (t *Table[T]) Apply(ops []T, trace func(rule string, err error)) (T, string, error) {
	var zero T
	for _, r := range t.rules {
		b, ok := t.m.Match(r.Pattern, ops)
		if !ok {
			continue
		}
		res, err := r.Rewrite(b)
		if trace != nil {
			trace(r.Name, err)
		}
		switch {
		case err == nil:
			return res, r.Name, nil
		case errors.Is(err, ErrCannotSimplify):
			continue
		default:
			return zero, r.Name, err
		}
	}

	return zero, "", ErrCannotSimplify
}
