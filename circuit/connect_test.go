package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slhnet/circuit"
)

func TestConnect(t *testing.T) {
	a, b := sym("A", 1), sym("B", 1)
	w := sym("W", 2)

	tests := []struct {
		name        string
		components  []circuit.Circuit
		connections []circuit.Connection
		want        string
	}{
		{"no connections", []circuit.Circuit{a, b}, nil, "A + B"},
		{"a into b", []circuit.Circuit{a, b}, []circuit.Connection{
			{From: circuit.Port{Component: 0, Port: 0}, To: circuit.Port{Component: 1, Port: 0}},
		}, "B << A"},
		{"self loop", []circuit.Circuit{w}, []circuit.Connection{
			{From: circuit.Port{Component: 0, Port: 1}, To: circuit.Port{Component: 0, Port: 1}},
		}, "FB(W)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := circuit.Connect(tc.components, tc.connections)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestConnect_ForceSLH(t *testing.T) {
	a := slh1(sc(1), sc(1), nil)
	b := slh1(sc(1), sc(1i), nil)
	conn := []circuit.Connection{
		{From: circuit.Port{Component: 0, Port: 0}, To: circuit.Port{Component: 1, Port: 0}},
	}

	got, err := circuit.Connect([]circuit.Circuit{a, b}, conn, circuit.WithForceSLH())
	require.NoError(t, err)
	require.Equal(t, circuit.KindSLH, got.Kind())

	want, err := circuit.ToSLH(circuit.MustSeries(b, a))
	require.NoError(t, err)
	assertCircuit(t, want, got)
	assertCircuit(t, slh1(sc(1), sc(1+1i), sc(-1)), got)
}

func TestConnect_Errors(t *testing.T) {
	a, b := sym("A", 1), sym("B", 1)
	port := func(c, p int) circuit.Port { return circuit.Port{Component: c, Port: p} }

	tests := []struct {
		name        string
		connections []circuit.Connection
	}{
		{"unknown component", []circuit.Connection{{From: port(2, 0), To: port(0, 0)}}},
		{"unknown port", []circuit.Connection{{From: port(0, 1), To: port(1, 0)}}},
		{"duplicate output", []circuit.Connection{
			{From: port(0, 0), To: port(1, 0)},
			{From: port(0, 0), To: port(0, 0)},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := circuit.Connect([]circuit.Circuit{a, b}, tc.connections)
			assert.ErrorIs(t, err, circuit.ErrDimensionMismatch)
		})
	}
}
