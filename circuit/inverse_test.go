package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slhnet/circuit"
)

func mustInverse(t *testing.T, c circuit.Circuit) circuit.Circuit {
	t.Helper()
	inv, err := circuit.Inverse(c)
	require.NoError(t, err)
	return inv
}

func TestInverse_Cancels(t *testing.T) {
	a, b := sym("A", 2), sym("B", 2)

	tests := []struct {
		name string
		c    circuit.Circuit
	}{
		{"symbol", a},
		{"permutation", perm(1, 2, 0)},
		{"concatenation", circuit.MustConcat(sym("A", 1), sym("B", 1))},
		{"series", circuit.MustSeries(a, b)},
		{"mixed", circuit.MustConcat(sym("A", 1), perm(1, 0))},
		{"identity", circuit.Identity(3)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv := mustInverse(t, tc.c)
			id := circuit.Identity(tc.c.CDim())
			assertCircuit(t, id, circuit.MustSeries(tc.c, inv))
			assertCircuit(t, id, circuit.MustSeries(inv, tc.c))
		})
	}
}

func TestInverse_Concrete(t *testing.T) {
	x := circuit.MustConcat(slh1(sc(1i), sc(1), sc(2)), slh1(sc(-1), sc(3), nil))
	id, err := circuit.ToSLH(circuit.Identity(2))
	require.NoError(t, err)

	inv := mustInverse(t, x)
	assertCircuit(t, id, circuit.MustSeries(x, inv))
	assertCircuit(t, id, circuit.MustSeries(inv, x))
}

func TestInverse_Series(t *testing.T) {
	a, b := sym("A", 2), sym("B", 2)

	got := mustInverse(t, circuit.MustSeries(a, b))
	want := circuit.MustSeries(mustInverse(t, b), mustInverse(t, a))
	assertCircuit(t, want, got)
	assert.Equal(t, "[B]^(-1) << [A]^(-1)", got.String())
}

func TestInverse_Involution(t *testing.T) {
	a := sym("A", 2)
	assert.Same(t, a, mustInverse(t, mustInverse(t, a)))

	p := perm(2, 0, 1)
	assertCircuit(t, perm(1, 2, 0), mustInverse(t, p))
	assertCircuit(t, p, mustInverse(t, mustInverse(t, p)))

	assert.Equal(t, circuit.CIdentity, mustInverse(t, circuit.CIdentity))
	assert.Equal(t, circuit.CircuitZero, mustInverse(t, circuit.CircuitZero))
}

func TestInverse_Feedback(t *testing.T) {
	a := sym("A", 3)
	loop := mustFeedbackAt(t, a, 0, 2)

	got := mustInverse(t, loop)
	assert.Equal(t, circuit.KindSeriesInverse, got.Kind())
	assert.Equal(t, "[FB(A, 0, 2)]^(-1)", got.String())
	assert.Same(t, loop, mustInverse(t, got))

	assertCircuit(t, circuit.Identity(2), circuit.MustSeries(loop, got))
	assertCircuit(t, circuit.Identity(2), circuit.MustSeries(got, loop))

	// the concrete loop inverts too
	repl := map[string]circuit.Circuit{"A": circuit.MustConcat(concreteComponent(0, 1), concreteComponent(1, 2))}
	inv, err := circuit.Substitute(got, repl)
	require.NoError(t, err)
	closed, err := circuit.Substitute(loop, repl)
	require.NoError(t, err)
	product := mustToSLH(t, circuit.MustSeries(mustToSLH(t, inv), mustToSLH(t, closed)))
	assertSLHNear(t, mustToSLH(t, circuit.Identity(2)), product, "inverse << loop")
}

func TestConcat_Blocks(t *testing.T) {
	a, b := sym("A", 2), sym("B", 3)
	ab := circuit.MustConcat(a, b)
	assert.Equal(t, a.CDim()+b.CDim(), ab.CDim())

	blocks, err := circuit.GetBlocks(ab, ab.BlockStructure())
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Same(t, a, blocks[0])
	assert.Same(t, b, blocks[1])
}
