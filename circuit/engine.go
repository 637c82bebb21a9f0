// SPDX-License-Identifier: MIT

package circuit

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/slhnet/expr"
	"github.com/katalvlaran/slhnet/pattern"
)

// current is the process-wide construction engine.
var current atomic.Pointer[expr.Engine[Circuit]]

func init() {
	if err := Configure(); err != nil {
		panic(err)
	}
	seriesOp = newSeriesOperation()
	concatOp = newConcatOperation()
	feedbackRules = newFeedbackRules()
}

// Configure replaces the process-wide engine. Circuits built before the call
// stay valid; only the instance cache starts empty.
func Configure(opts ...expr.Option) error {
	e, err := expr.NewEngine[Circuit](Equal, Circuit.Hash, opts...)
	if err != nil {
		return errors.Wrap(err, "configure circuit engine")
	}
	current.Store(e)
	e.Logger().Debug("circuit engine configured",
		zap.Int("cache_size", e.Options().CacheSize),
		zap.Int("max_rewrites", e.Options().MaxRewrites),
	)

	return nil
}

func engine() *expr.Engine[Circuit] { return current.Load() }

func intern(c Circuit) Circuit { return engine().Intern(c) }

// matcher compares circuits structurally and exposes composite heads to
// Node patterns.
var matcher = pattern.Matcher[Circuit]{
	Equal: Equal,
	Split: func(c Circuit) (string, []Circuit, bool) {
		switch x := c.(type) {
		case *SeriesProduct:
			return KindSeries.String(), x.ops, true
		case *Concatenation:
			return KindConcatenation.String(), x.ops, true
		case *SeriesInverse:
			return KindSeriesInverse.String(), []Circuit{x.op}, true
		default:
			return "", nil, false
		}
	},
}

func isKind(k Kind) func(Circuit) bool {
	return func(c Circuit) bool { return c.Kind() == k }
}

var (
	isSLH         = isKind(KindSLH)
	isPermutation = isKind(KindPermutation)
	isCIdentity   = isKind(KindIdentity)
	isConcat      = isKind(KindConcatenation)
)

func notPermutation(c Circuit) bool { return !isPermutation(c) }
