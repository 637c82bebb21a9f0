package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slhnet/circuit"
	"github.com/katalvlaran/slhnet/hilbert"
	"github.com/katalvlaran/slhnet/operator"
)

func TestNewSLH(t *testing.T) {
	c, err := circuit.NewSLH(operator.IdentityMatrix(2), operator.ZeroMatrix(2, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.CDim())
	assert.True(t, c.H().IsZero())
	assert.Same(t, c, c.Expand())

	tests := []struct {
		name string
		s, l *operator.Matrix
	}{
		{"nil S", nil, operator.ZeroMatrix(1, 1)},
		{"S not square", operator.ZeroMatrix(2, 1), operator.ZeroMatrix(2, 1)},
		{"L rows", operator.IdentityMatrix(2), operator.ZeroMatrix(1, 1)},
		{"L cols", operator.IdentityMatrix(1), operator.ZeroMatrix(1, 2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := circuit.NewSLH(tc.s, tc.l, nil)
			assert.ErrorIs(t, err, circuit.ErrDimensionMismatch)
		})
	}
}

func TestSeries_SLH(t *testing.T) {
	a := slh1(sc(1), sc(1), nil)
	b := slh1(sc(1), sc(1i), nil)

	got := circuit.MustSeries(a, b)
	require.Equal(t, circuit.KindSLH, got.Kind())
	assertCircuit(t, slh1(sc(1), sc(1+1i), operator.One()), got)

	// the order matters through the coupling term of H
	got = circuit.MustSeries(b, a)
	assertCircuit(t, slh1(sc(1), sc(1+1i), sc(-1)), got)
}

func TestSeries_SLHScatter(t *testing.T) {
	a := slh1(sc(1i), sc(0), nil)
	b := slh1(sc(2), sc(0), nil)

	got := circuit.MustSeries(a, b).(*circuit.SLH)
	s, err := got.S().At(0, 0)
	require.NoError(t, err)
	assert.True(t, s.Equal(sc(2i)), s.String())
}

func TestConcat_SLH(t *testing.T) {
	a := slh1(sc(1), sc(1), sc(2))
	b := slh1(sc(-1), sc(1i), sc(3))

	got := circuit.MustConcat(a, b)
	require.Equal(t, circuit.KindSLH, got.Kind())
	want := circuit.MustSLH(
		operator.MustFromRows([][]operator.Operator{{sc(1), sc(0)}, {sc(0), sc(-1)}}),
		operator.Column(sc(1), sc(1i)),
		sc(5),
	)
	assertCircuit(t, want, got)
}

func TestInverse_SLH(t *testing.T) {
	x := slh1(sc(1i), sc(1), sc(2))

	inv, err := circuit.Inverse(x)
	require.NoError(t, err)
	assertCircuit(t, slh1(sc(-1i), sc(1i), sc(-2)), inv)

	id, err := circuit.ToSLH(circuit.CIdentity)
	require.NoError(t, err)
	assertCircuit(t, id, circuit.MustSeries(inv, x))
	assertCircuit(t, id, circuit.MustSeries(x, inv))
}

func TestToSLH(t *testing.T) {
	a := slh1(sc(1), sc(1), nil)
	b := slh1(sc(1), sc(1i), nil)
	swap := operator.MustFromRows([][]operator.Operator{{sc(0), sc(1)}, {sc(1), sc(0)}})

	tests := []struct {
		name string
		c    circuit.Circuit
		want *circuit.SLH
	}{
		{"identity", circuit.CIdentity, circuit.MustSLH(operator.IdentityMatrix(1), operator.ZeroMatrix(1, 1), nil)},
		{"zero", circuit.CircuitZero, circuit.MustSLH(operator.IdentityMatrix(0), operator.ZeroMatrix(0, 1), nil)},
		{"permutation", perm(1, 0), circuit.MustSLH(swap, operator.ZeroMatrix(2, 1), nil)},
		{"routed", circuit.MustSeries(perm(1, 0), circuit.MustConcat(a, b)),
			circuit.MustSLH(swap, operator.Column(sc(1i), sc(1)), nil)},
		{"padded", circuit.MustConcat(a, circuit.CIdentity),
			circuit.MustSLH(operator.IdentityMatrix(2), operator.Column(sc(1), sc(0)), nil)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := circuit.ToSLH(tc.c)
			require.NoError(t, err)
			assertCircuit(t, tc.want, got)
		})
	}
}

func TestToSLH_Errors(t *testing.T) {
	_, err := circuit.ToSLH(sym("A", 1))
	assert.ErrorIs(t, err, circuit.ErrConversion)

	loop, err := circuit.FB(sym("A", 2))
	require.NoError(t, err)
	_, err = circuit.ToSLH(loop)
	assert.ErrorIs(t, err, circuit.ErrConversion)

	_, err = circuit.ToSLH(circuit.MustConcat(sym("A", 1), slh1(sc(1), sc(0), nil)))
	assert.ErrorIs(t, err, circuit.ErrConversion)
}

func TestCoherentInput(t *testing.T) {
	q := hilbert.MustLocal("q")
	a := operator.MustSymbol("a", q)
	c := slh1(sc(1), a, nil)

	got, err := circuit.CoherentInput(c, sc(2))
	require.NoError(t, err)
	driven, ok := got.(*circuit.SLH)
	require.True(t, ok, got.String())
	assert.True(t, operator.Equal(operator.Column(a.Add(sc(2))), driven.L()), driven.L().String())
	assert.True(t, operator.Equal(operator.IdentityMatrix(1), driven.S()))

	got, err = circuit.CoherentInput(c, operator.Zero())
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = circuit.CoherentInput(c, sc(1), sc(2))
	assert.ErrorIs(t, err, circuit.ErrDimensionMismatch)
}

func TestGetSpace(t *testing.T) {
	q := hilbert.MustLocal("q")
	c := slh1(sc(1), operator.MustSymbol("a", q), nil)

	assert.True(t, hilbert.Equal(q, circuit.GetSpace(c)))
	assert.True(t, hilbert.Equal(hilbert.Trivial, circuit.GetSpace(perm(1, 0))))
	assert.True(t, hilbert.Equal(hilbert.Trivial, circuit.GetSpace(circuit.CIdentity)))
	assert.True(t, hilbert.Equal(hilbert.Full, circuit.GetSpace(sym("A", 1))))
	assert.True(t, hilbert.Equal(hilbert.Full, circuit.GetSpace(circuit.MustConcat(c, sym("A", 1)))))
	assert.True(t, hilbert.Equal(q, circuit.GetSpace(circuit.MustConcat(c, circuit.CIdentity))))
}
