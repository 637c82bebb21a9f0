package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/slhnet/circuit"
	"github.com/katalvlaran/slhnet/operator"
)

func sym(name string, cdim int) circuit.Circuit { return circuit.MustSymbol(name, cdim) }

func perm(p ...int) circuit.Circuit { return circuit.MustPermutation(p...) }

func sc(c complex128) operator.Operator { return operator.Scalar(c) }

// slh1 builds a single-channel SLH.
func slh1(s, l, h operator.Operator) *circuit.SLH {
	return circuit.MustSLH(operator.MustFromRows([][]operator.Operator{{s}}), operator.Column(l), h)
}

func assertCircuit(t *testing.T, want, got circuit.Circuit) {
	t.Helper()
	assert.Truef(t, circuit.Equal(want, got), "want %s, got %s", want, got)
}
