// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// impl_cascade.go - Cascade(n): a feedforward chain.
//
// Contract:
//   - n >= MinCascadeComponents (else ErrTooFewComponents).
//   - Adds n components named by cfg.idFn in ascending netlist order.
//   - Links output 0 of component i to input 0 of component i+1.
//
// Complexity: O(n) components and links.

package builder

import "github.com/katalvlaran/slhnet/circuit"

// Cascade returns a Constructor for a chain of n components.
func Cascade(n int) Constructor {
	return func(nl *Netlist, cfg builderConfig) error {
		if n < MinCascadeComponents {
			return builderErrorf(MethodCascade, ErrTooFewComponents, "n=%d < min=%d", n, MinCascadeComponents)
		}
		base, err := addComponents(nl, cfg, MethodCascade, n, cfg.channels)
		if err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			from := circuit.Port{Component: base + i - 1}
			to := circuit.Port{Component: base + i}
			if err := nl.Link(from, to); err != nil {
				return builderErrorf(MethodCascade, err, "link %d", i)
			}
		}

		return nil
	}
}

// addComponents appends n generated components and returns the index of
// the first one.
func addComponents(nl *Netlist, cfg builderConfig, method string, n, channels int) (int, error) {
	base := nl.Len()
	for i := 0; i < n; i++ {
		idx := base + i
		c, err := cfg.component(method, cfg.idFn(idx), idx, channels)
		if err != nil {
			return 0, err
		}
		nl.Add(c)
	}

	return base, nil
}
