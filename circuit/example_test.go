package circuit_test

import (
	"fmt"

	"github.com/katalvlaran/slhnet/circuit"
	"github.com/katalvlaran/slhnet/operator"
)

// ExampleSeries shows flattening and dropping of identity channels.
func ExampleSeries() {
	a := circuit.MustSymbol("A", 1)
	b := circuit.MustSymbol("B", 1)
	c := circuit.MustSymbol("C", 1)

	fmt.Println(circuit.MustSeries(a, circuit.CIdentity, circuit.MustSeries(b, c)))
	// Output:
	// A << B << C
}

// ExampleConcat shows how side-by-side series products are gathered into a
// single series product of concatenations.
func ExampleConcat() {
	a := circuit.MustSymbol("A", 2)
	b := circuit.MustSymbol("B", 2)
	p := circuit.MustPermutation(1, 0)

	fmt.Println(circuit.MustConcat(a, b, circuit.CIdentity))
	fmt.Println(circuit.MustConcat(circuit.MustSeries(a, p), circuit.MustSeries(b, p)))
	// Output:
	// A + B + cid(1)
	// (A + B) << P_sigma(1, 0, 3, 2)
}

// ExampleFB closes a loop between two components, which leaves a plain
// series connection.
func ExampleFB() {
	a := circuit.MustSymbol("A", 1)
	b := circuit.MustSymbol("B", 1)

	loop, err := circuit.FB(circuit.MustConcat(a, b), circuit.WithOutPort(0), circuit.WithInPort(1))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(loop)

	w := circuit.MustSymbol("W", 2)
	loop, _ = circuit.FB(w)
	fmt.Println(loop, loop.CDim())
	// Output:
	// B << A
	// FB(W) 1
}

// ExampleToSLH evaluates a small network of concrete components.
func ExampleToSLH() {
	one := operator.IdentityMatrix(1)
	a := circuit.MustSLH(one, operator.Column(operator.Scalar(1)), nil)
	b := circuit.MustSLH(one, operator.Column(operator.Scalar(1i)), nil)

	net, err := circuit.Connect(
		[]circuit.Circuit{a, b},
		[]circuit.Connection{{From: circuit.Port{Component: 0}, To: circuit.Port{Component: 1}}},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	s, err := circuit.ToSLH(net)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s)
	// Output:
	// ([[1]], [[(1+1i)]], -1)
}

// ExampleInverse cancels a component against its series inverse.
func ExampleInverse() {
	x := circuit.MustSymbol("X", 2)
	inv, _ := circuit.Inverse(x)

	fmt.Println(inv)
	fmt.Println(circuit.MustSeries(x, inv))
	// Output:
	// [X]^(-1)
	// cid(2)
}
