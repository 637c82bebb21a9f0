// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// impl_star.go - Star(n): n-1 leaves driving one hub.
//
// Contract:
//   - n >= MinStarComponents (else ErrTooFewComponents).
//   - The hub is added first, named CenterID, with n-1 channels; the leaves
//     follow with cfg.channels channels, named by cfg.idFn.
//   - Links output 0 of leaf k to input k of the hub.
//
// Complexity: O(n) components and links.

package builder

import "github.com/katalvlaran/slhnet/circuit"

// Star returns a Constructor for a hub fed by n-1 leaves.
func Star(n int) Constructor {
	return func(nl *Netlist, cfg builderConfig) error {
		if n < MinStarComponents {
			return builderErrorf(MethodStar, ErrTooFewComponents, "n=%d < min=%d", n, MinStarComponents)
		}
		hubIdx := nl.Len()
		hub, err := cfg.component(MethodStar, CenterID, hubIdx, n-1)
		if err != nil {
			return err
		}
		nl.Add(hub)

		base, err := addComponents(nl, cfg, MethodStar, n-1, cfg.channels)
		if err != nil {
			return err
		}
		for k := 0; k < n-1; k++ {
			from := circuit.Port{Component: base + k}
			to := circuit.Port{Component: hubIdx, Port: k}
			if err := nl.Link(from, to); err != nil {
				return builderErrorf(MethodStar, err, "leaf %d", k)
			}
		}

		return nil
	}
}
