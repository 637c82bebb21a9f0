// SPDX-License-Identifier: MIT

package expr

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/slhnet/pattern"
)

// Engine runs constructions for values of type T.
type Engine[T any] struct {
	opts  Options
	hash  func(T) uint64
	cache *Cache[T]
}

// NewEngine creates an engine. equal and hash define structural identity
// for the instance cache.
func NewEngine[T any](equal func(a, b T) bool, hash func(T) uint64, opts ...Option) (*Engine[T], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cache, err := NewCache[T](o.CacheSize, equal)
	if err != nil {
		return nil, errors.Wrap(err, "new engine")
	}

	return &Engine[T]{opts: o, hash: hash, cache: cache}, nil
}

// Options returns the effective configuration.
func (e *Engine[T]) Options() Options { return e.opts }

// Logger returns the configured logger.
func (e *Engine[T]) Logger() *zap.Logger { return e.opts.Logger }

// Cache exposes the instance cache.
func (e *Engine[T]) Cache() *Cache[T] { return e.cache }

// Intern returns the canonical instance structurally equal to v.
func (e *Engine[T]) Intern(v T) T {
	out, hit := e.cache.Intern(e.hash(v), v)
	e.opts.Observer.CacheLookup(hit)

	return out
}

// Report records the outcome of a rule that matched on behalf of operation:
// applied, or declined with ErrCannotSimplify.
func (e *Engine[T]) Report(operation, rule string, applied bool) {
	if !applied {
		e.opts.Observer.RuleDeclined(operation, rule)
		return
	}
	e.opts.Observer.RuleApplied(operation, rule)
	e.opts.Logger.Debug("rule applied",
		zap.String("operation", operation),
		zap.String("rule", rule),
	)
}

// ApplyRules tries tbl on ops on behalf of operation and reports the events
// to the observer and logger. ok is false when no rule applied.
func (e *Engine[T]) ApplyRules(operation string, tbl *pattern.Table[T], ops []T) (res T, ok bool, err error) {
	if tbl == nil || tbl.Len() == 0 {
		return res, false, nil
	}
	trace := func(rule string, rerr error) {
		if errors.Is(rerr, pattern.ErrCannotSimplify) {
			e.Report(operation, rule, false)
		}
	}
	res, rule, err := tbl.Apply(ops, trace)
	switch {
	case err == nil:
		e.Report(operation, rule, true)
		return res, true, nil
	case errors.Is(err, pattern.ErrCannotSimplify):
		return res, false, nil
	default:
		return res, false, errors.Wrapf(err, "%s: rule %s", operation, rule)
	}
}

// Operation describes an n-ary smart constructor.
type Operation[T any] struct {
	// Name labels log entries, metrics and errors.
	Name string

	// Flatten returns the operands of x when x is an instance of this
	// operation.
	Flatten func(x T) ([]T, bool)

	// IsNeutral reports whether x is a neutral element to be dropped.
	IsNeutral func(x T) bool

	// Validate checks the flattened operands before any filtering.
	Validate func(ops []T) error

	// Empty builds the result when every operand was neutral; dropped holds
	// the neutral operands that were removed. Nil means ErrNoOperands.
	Empty func(dropped []T) (T, error)

	// Rules are tried on each adjacent operand pair.
	Rules *pattern.Table[T]

	// Build makes the node for two or more canonical operands.
	Build func(ops []T) T
}

// Create runs the construction pipeline on operands.
// Stage 1 (Flatten): splice nested instances of the operation.
// Stage 2 (Validate): check operand compatibility.
// Stage 3 (Filter): drop neutral operands.
// Stage 4 (Rewrite): binary rules to a fixed point, with backtracking.
// Stage 5 (Finalize): unwrap a single operand or build and intern the node.
// Complexity: O(R·n·r) rule matches for R rewrites over n operands and r rules.
func (op *Operation[T]) Create(e *Engine[T], operands []T) (T, error) {
	var zero T

	ops := op.flatten(operands)

	if op.Validate != nil {
		if err := op.Validate(ops); err != nil {
			return zero, errors.Wrap(err, op.Name)
		}
	}

	kept, dropped := op.filter(ops)

	rewrites := 0
	for j := 1; j < len(kept); {
		res, ok, err := e.ApplyRules(op.Name, op.Rules, kept[j-1:j+1])
		if err != nil {
			return zero, err
		}
		if !ok {
			j++
			continue
		}
		rewrites++
		if rewrites > e.opts.MaxRewrites {
			e.opts.Logger.Warn("rewrite limit exceeded",
				zap.String("operation", op.Name),
				zap.Int("limit", e.opts.MaxRewrites),
			)
			return zero, errors.Wrapf(ErrRewriteLimit, "%s after %d rewrites", op.Name, e.opts.MaxRewrites)
		}

		var repl []T
		if op.isNeutral(res) {
			dropped = append(dropped, res)
		} else if sub, nested := op.flattenOne(res); nested {
			repl = sub
		} else {
			repl = []T{res}
		}
		next := make([]T, 0, len(kept)-2+len(repl))
		next = append(next, kept[:j-1]...)
		next = append(next, repl...)
		next = append(next, kept[j+1:]...)
		kept = next
		j = max(j-1, 1) // retry the new left neighbour
	}

	switch len(kept) {
	case 0:
		if op.Empty == nil {
			return zero, errors.Wrap(ErrNoOperands, op.Name)
		}
		return op.Empty(dropped)
	case 1:
		return kept[0], nil
	default:
		return e.Intern(op.Build(kept)), nil
	}
}

func (op *Operation[T]) flattenOne(x T) ([]T, bool) {
	if op.Flatten == nil {
		return nil, false
	}
	return op.Flatten(x)
}

func (op *Operation[T]) flatten(operands []T) []T {
	out := make([]T, 0, len(operands))
	for _, x := range operands {
		if sub, ok := op.flattenOne(x); ok {
			out = append(out, sub...)
			continue
		}
		out = append(out, x)
	}

	return out
}

func (op *Operation[T]) isNeutral(x T) bool {
	return op.IsNeutral != nil && op.IsNeutral(x)
}

func (op *Operation[T]) filter(ops []T) (kept, dropped []T) {
	for _, x := range ops {
		if op.isNeutral(x) {
			dropped = append(dropped, x)
			continue
		}
		kept = append(kept, x)
	}

	return kept, dropped
}
