package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slhnet/circuit"
	"github.com/katalvlaran/slhnet/operator"
)

func TestFB_Ports(t *testing.T) {
	a := sym("A", 2)

	got, err := circuit.FB(a)
	require.NoError(t, err)
	assert.Equal(t, circuit.KindFeedback, got.Kind())
	assert.Equal(t, 1, got.CDim())
	assert.Equal(t, "FB(A)", got.String())
	out, in := got.(*circuit.Feedback).Ports()
	assert.Equal(t, []int{1, 1}, []int{out, in})

	got, err = circuit.FB(a, circuit.WithOutPort(0), circuit.WithInPort(1))
	require.NoError(t, err)
	assert.Equal(t, "FB(A, 0, 1)", got.String())
	assertCircuit(t, got, mustFeedbackAt(t, a, 0, 1))

	assert.Panics(t, func() { circuit.WithOutPort(-1) })
	assert.Panics(t, func() { circuit.WithInPort(-1) })
}

func TestFB_Errors(t *testing.T) {
	_, err := circuit.FB(sym("A", 1))
	assert.ErrorIs(t, err, circuit.ErrDimensionMismatch)

	_, err = circuit.FeedbackAt(sym("A", 2), 2, 0)
	assert.ErrorIs(t, err, circuit.ErrDimensionMismatch)

	_, err = circuit.FB(sym("A", 2), circuit.WithInPort(5))
	assert.ErrorIs(t, err, circuit.ErrDimensionMismatch)
}

func TestFB_Concatenation(t *testing.T) {
	a, b := sym("A", 1), sym("B", 1)
	ab := circuit.MustConcat(a, b)

	tests := []struct {
		name    string
		c       circuit.Circuit
		out, in int
		want    string
	}{
		{"a into b", ab, 0, 1, "B << A"},
		{"b into a", ab, 1, 0, "A << B"},
		{"inner loop", circuit.MustConcat(sym("W", 2), b), 1, 1, "FB(W) + B"},
		{"one-channel block", circuit.MustConcat(sym("W", 2), b), 2, 2, "FB(W + B)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mustFeedbackAt(t, tc.c, tc.out, tc.in)
			assert.Equal(t, tc.want, got.String())
			assert.Equal(t, tc.c.CDim()-1, got.CDim())
		})
	}
}

func TestFB_Identity(t *testing.T) {
	for n := 2; n <= 4; n++ {
		got, err := circuit.FB(circuit.Identity(n))
		require.NoError(t, err)
		assertCircuit(t, circuit.Identity(n-1), got)
	}
}

func TestFB_Series(t *testing.T) {
	a, c := sym("A", 2), sym("C", 2)
	b := sym("B", 1)
	bid := circuit.MustConcat(b, circuit.CIdentity)

	tests := []struct {
		name string
		c    circuit.Circuit
		want string
	}{
		{"permutation lhs", circuit.MustSeries(perm(1, 0), a), "FB(A, 0, 1)"},
		{"permutation rhs", circuit.MustSeries(a, perm(1, 0)), "FB(A, 1, 0)"},
		{"blocks lhs", circuit.MustSeries(bid, c), "B << FB(C)"},
		{"blocks rhs", circuit.MustSeries(c, bid), "FB(C) << B"},
		{"irreducible", circuit.MustSeries(a, c), "FB(A << C)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := circuit.FB(tc.c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
			assert.Equal(t, 1, got.CDim())
		})
	}
}

func TestFB_SLH(t *testing.T) {
	swap := circuit.MustSLH(
		operator.MustFromRows([][]operator.Operator{{sc(0), sc(1)}, {sc(1), sc(0)}}),
		operator.Column(sc(1), sc(2)),
		nil,
	)

	got, err := circuit.FB(swap)
	require.NoError(t, err)
	require.Equal(t, circuit.KindSLH, got.Kind())
	assertCircuit(t, slh1(sc(1), sc(3), nil), got)

	// closing the loop on a symbol and substituting later agrees
	loop, err := circuit.FB(sym("S", 2))
	require.NoError(t, err)
	sub, err := circuit.Substitute(loop, map[string]circuit.Circuit{"S": swap})
	require.NoError(t, err)
	assertCircuit(t, got, sub)
}

func TestFB_SLHNonInvertible(t *testing.T) {
	id := circuit.MustSLH(operator.IdentityMatrix(2), operator.ZeroMatrix(2, 1), nil)

	_, err := circuit.FB(id)
	assert.ErrorIs(t, err, circuit.ErrNonInvertibleLoop)
}

func mustFeedbackAt(t *testing.T, c circuit.Circuit, out, in int) circuit.Circuit {
	t.Helper()
	got, err := circuit.FeedbackAt(c, out, in)
	require.NoError(t, err)
	return got
}
