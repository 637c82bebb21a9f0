package expr_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/slhnet/expr"
	"github.com/katalvlaran/slhnet/pattern"
)

// word is a toy free-monoid expression: an atom, or a cat of atoms.
type word struct {
	atom string
	cat  []*word
}

func atom(s string) *word { return &word{atom: s} }

func (w *word) String() string {
	if w.cat == nil {
		return w.atom
	}
	parts := make([]string, len(w.cat))
	for i, c := range w.cat {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, ".") + ")"
}

func equalWord(a, b *word) bool { return a.String() == b.String() }

func hashWord(w *word) uint64 { return expr.NewHasher("word").String(w.String()).Sum() }

func isDigits(w *word) bool {
	return w.cat == nil && w.atom != "" && strings.Trim(w.atom, "0123456789") == ""
}

func isLower(w *word) bool { return w.cat == nil && w.atom != "" && strings.ToLower(w.atom) == w.atom }

var matcher = pattern.Matcher[*word]{Equal: equalWord}

func catOp(rules ...pattern.Rule[*word]) *expr.Operation[*word] {
	return &expr.Operation[*word]{
		Name: "Cat",
		Flatten: func(w *word) ([]*word, bool) {
			return w.cat, w.cat != nil
		},
		IsNeutral: func(w *word) bool { return w.cat == nil && w.atom == "" },
		Validate: func(ops []*word) error {
			for _, w := range ops {
				if w.atom == "!" {
					return expr.ErrNoOperands
				}
			}
			return nil
		},
		Empty: func([]*word) (*word, error) { return atom(""), nil },
		Rules: pattern.NewTable(matcher, rules...),
		Build: func(ops []*word) *word { return &word{cat: ops} },
	}
}

var mergeDigits = pattern.Rule[*word]{
	Name:    "merge-digits",
	Pattern: pattern.Pattern[*word]{pattern.Wildcard("A", isDigits), pattern.Wildcard("B", isDigits)},
	Rewrite: func(b pattern.Bindings[*word]) (*word, error) {
		s := b.One("A").atom + b.One("B").atom
		if len(s) > 3 {
			return nil, pattern.ErrCannotSimplify
		}
		return atom(s), nil
	},
}

var cancel = pattern.Rule[*word]{
	Name: "cancel",
	Pattern: pattern.Pattern[*word]{
		pattern.Literal(atom("a")),
		pattern.Literal(atom("A")),
	},
	Rewrite: func(pattern.Bindings[*word]) (*word, error) { return atom(""), nil },
}

var swap = pattern.Rule[*word]{
	Name:    "swap",
	Pattern: pattern.Pattern[*word]{pattern.Wildcard("A", isLower), pattern.Wildcard("B", isLower)},
	Rewrite: func(b pattern.Bindings[*word]) (*word, error) {
		return &word{cat: []*word{b.One("B"), b.One("A")}}, nil
	},
}

type EngineSuite struct {
	suite.Suite
	reg  *prometheus.Registry
	obs  *expr.PrometheusObserver
	logs *observer.ObservedLogs
	eng  *expr.Engine[*word]
}

func (s *EngineSuite) SetupTest() {
	s.reg = prometheus.NewRegistry()
	obs, err := expr.NewPrometheusObserver(s.reg)
	s.Require().NoError(err)
	s.obs = obs

	core, logs := observer.New(zapcore.DebugLevel)
	s.logs = logs

	eng, err := expr.NewEngine(equalWord, hashWord,
		expr.WithObserver(obs),
		expr.WithLogger(zap.New(core)),
		expr.WithMaxRewrites(8),
	)
	s.Require().NoError(err)
	s.eng = eng
}

func (s *EngineSuite) create(op *expr.Operation[*word], ws ...*word) *word {
	w, err := op.Create(s.eng, ws)
	s.Require().NoError(err)
	return w
}

func (s *EngineSuite) TestFlattenAndFilter() {
	op := catOp()
	inner := s.create(op, atom("x"), atom("y"))
	got := s.create(op, atom(""), inner, atom("z"), atom(""))
	s.Equal("(x.y.z)", got.String())

	// single survivor is returned unwrapped
	s.Equal("x", s.create(op, atom(""), atom("x")).String())

	// all neutral
	s.Equal("", s.create(op, atom(""), atom("")).String())
}

func (s *EngineSuite) TestValidateRunsBeforeFilter() {
	_, err := catOp().Create(s.eng, []*word{atom("!")})
	s.ErrorIs(err, expr.ErrNoOperands)
}

func (s *EngineSuite) TestRulesReachFixedPoint() {
	op := catOp(mergeDigits, cancel)

	s.Equal("(x.123)", s.create(op, atom("x"), atom("1"), atom("2"), atom("3")).String())
	// "1234" exceeds the merge bound: rule declines
	s.Equal("(123.4)", s.create(op, atom("1"), atom("2"), atom("3"), atom("4")).String())
	s.Equal("(b.c)", s.create(op, atom("b"), atom("a"), atom("A"), atom("c")).String())
	// cancellation exposes a new pair that cancels too
	s.Equal("", s.create(op, atom("a"), atom("a"), atom("A"), atom("A")).String())

	s.Equal(float64(4), s.counter("slhnet_rewrite_rules_applied_total", "merge-digits"))
	s.Equal(float64(3), s.counter("slhnet_rewrite_rules_applied_total", "cancel"))
	s.Equal(float64(1), s.counter("slhnet_rewrite_rules_declined_total", "merge-digits"))

	n, err := testutil.GatherAndCount(s.reg, "slhnet_rewrite_rules_applied_total")
	s.Require().NoError(err)
	s.Equal(2, n)

	entries := s.logs.FilterMessage("rule applied").All()
	s.NotEmpty(entries)
	s.Equal("Cat", entries[0].ContextMap()["operation"])
}

func (s *EngineSuite) TestRewriteLimit() {
	_, err := catOp(swap).Create(s.eng, []*word{atom("p"), atom("q")})
	s.ErrorIs(err, expr.ErrRewriteLimit)
	s.Equal(1, s.logs.FilterMessage("rewrite limit exceeded").Len())
}

func (s *EngineSuite) TestInterning() {
	op := catOp()
	a := s.create(op, atom("x"), atom("y"))
	b := s.create(op, atom("x"), atom("y"))
	s.Same(a, b)
	s.Equal(1, s.eng.Cache().Len())
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// counter reads the Cat series of a rule counter family.
func (s *EngineSuite) counter(name, rule string) float64 {
	mfs, err := s.reg.Gather()
	s.Require().NoError(err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["operation"] == "Cat" && labels["rule"] == rule {
				return m.GetCounter().GetValue()
			}
		}
	}
	s.Failf("counter not found", "%s{rule=%q}", name, rule)
	return 0
}

func TestCache_DisabledAndCollision(t *testing.T) {
	c, err := expr.NewCache[*word](0, equalWord)
	require.NoError(t, err)
	w := atom("x")
	got, hit := c.Intern(1, w)
	assert.Same(t, w, got)
	assert.False(t, hit)
	assert.Equal(t, 0, c.Len())

	c, err = expr.NewCache[*word](4, equalWord)
	require.NoError(t, err)
	c.Intern(7, atom("x"))
	// same key, different value: not merged
	y := atom("y")
	got, hit = c.Intern(7, y)
	assert.False(t, hit)
	assert.Same(t, y, got)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestHasher_DistinguishesTags(t *testing.T) {
	a := expr.NewHasher("series").Int(1).Sum()
	b := expr.NewHasher("concat").Int(1).Sum()
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, expr.NewHasher("series").Int(1).Sum())
	assert.NotEqual(t,
		expr.NewHasher("x").Complex(1i).Sum(),
		expr.NewHasher("x").Complex(1).Sum(),
	)
}

func TestLazy_ComputesOnce(t *testing.T) {
	var l expr.Lazy[int]
	calls := 0
	f := func() (int, error) { calls++; return 42, nil }
	for i := 0; i < 3; i++ {
		v, err := l.Get(f)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { expr.WithLogger(nil) })
	assert.Panics(t, func() { expr.WithObserver(nil) })
	assert.Panics(t, func() { expr.WithMaxRewrites(0) })
	assert.Panics(t, func() { expr.WithCacheSize(-1) })

	o := expr.DefaultOptions()
	assert.Equal(t, expr.DefaultMaxRewrites, o.MaxRewrites)
	assert.Equal(t, expr.DefaultCacheSize, o.CacheSize)
}
