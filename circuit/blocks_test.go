package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slhnet/circuit"
)

func TestCommonBlockStructure(t *testing.T) {
	tests := []struct {
		a, b, want []int
	}{
		{[]int{1, 2}, []int{2, 1}, []int{3}},
		{[]int{1, 1, 2}, []int{2, 2}, []int{2, 2}},
		{[]int{1, 1, 1}, []int{1, 1, 1}, []int{1, 1, 1}},
		{[]int{3}, []int{1, 1, 1}, []int{3}},
		{[]int{}, []int{}, nil},
	}
	for _, tc := range tests {
		got, err := circuit.CommonBlockStructure(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%v vs %v", tc.a, tc.b)
	}

	_, err := circuit.CommonBlockStructure([]int{1, 1}, []int{1, 2})
	assert.ErrorIs(t, err, circuit.ErrIncompatibleBlockStructure)
}

func TestIndexInBlock(t *testing.T) {
	c := circuit.MustConcat(sym("A", 2), sym("B", 1))

	tests := []struct {
		ch, index, block int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 0, 1},
	}
	for _, tc := range tests {
		index, block, err := circuit.IndexInBlock(c, tc.ch)
		require.NoError(t, err)
		assert.Equal(t, tc.index, index, "channel %d", tc.ch)
		assert.Equal(t, tc.block, block, "channel %d", tc.ch)
	}

	_, _, err := circuit.IndexInBlock(c, 3)
	assert.ErrorIs(t, err, circuit.ErrDimensionMismatch)
}

func TestGetBlocks(t *testing.T) {
	a, b := sym("A", 1), sym("B", 1)
	ab := circuit.MustConcat(a, b)

	got, err := circuit.GetBlocks(ab, []int{1, 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])

	got, err = circuit.GetBlocks(ab, []int{2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assertCircuit(t, ab, got[0])

	got, err = circuit.GetBlocks(ab, []int{0, 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, circuit.CircuitZero, got[0])

	got, err = circuit.GetBlocks(perm(1, 0, 2), []int{2, 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assertCircuit(t, perm(1, 0), got[0])
	assert.Equal(t, circuit.CIdentity, got[1])
}

func TestGetBlocks_Errors(t *testing.T) {
	c := circuit.MustConcat(sym("A", 2), sym("B", 1))

	_, err := circuit.GetBlocks(c, []int{1, 2})
	assert.ErrorIs(t, err, circuit.ErrIncompatibleBlockStructure)

	_, err = circuit.GetBlocks(c, []int{2})
	assert.ErrorIs(t, err, circuit.ErrIncompatibleBlockStructure)

	_, err = circuit.GetBlocks(c, []int{4, -1})
	assert.ErrorIs(t, err, circuit.ErrIncompatibleBlockStructure)
}

func TestBlockStructure(t *testing.T) {
	tests := []struct {
		name string
		c    circuit.Circuit
		want []int
	}{
		{"symbol", sym("A", 3), []int{3}},
		{"identity", circuit.CIdentity, []int{1}},
		{"zero", circuit.CircuitZero, []int{}},
		{"series", circuit.MustSeries(sym("A", 2), sym("B", 2)), []int{2}},
		{"concat", circuit.MustConcat(sym("A", 2), perm(1, 0, 2)), []int{2, 2, 1}},
		{"slh", slh1(sc(1), sc(0), nil), []int{1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.c.BlockStructure())
		})
	}
}
