// Package slhnet is a symbolic rewriting engine for networks of open
// quantum systems described in the SLH formalism.
//
// What is in the box?
//
//	hilbert/      Hilbert-space labels: local factors, tensor products
//	operator/     operator polynomials and dense operator matrices
//	permutation/  permutation algebra on image tuples
//	pattern/      wildcard pattern matching and ordered rule tables
//	expr/         construction pipeline, instance cache, metrics & logging
//	circuit/      circuits: series, concatenation, feedback, SLH arithmetic
//	builder/      network topologies: cascade, ring, star, parallel
//	examples/     runnable demos (cavity cascade, beamsplitter loop)
//
// Circuits are built with smart constructors that return canonical forms:
//
//	    ┌───┐    ┌───┐
//	 ──▶│ B │───▶│ A │──▶      A << B
//	    └───┘    └───┘
//
// A network closed with FB reduces to plain series products whenever the
// loop does not pass through a component twice; otherwise ToSLH computes the
// closed-form (S, L, H) of the loop.
//
// See the circuit package examples for usage patterns.
package slhnet
