// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// impl_ring.go - Ring(n): a cascade closed onto itself.
//
// Contract:
//   - n >= MinRingComponents (else ErrTooFewComponents).
//   - cfg.channels >= MinRingChannels (else ErrTooFewChannels), so the
//     closed ring keeps open channels.
//   - Links output 0 of component i to input 0 of component (i+1) mod n, in
//     increasing i.
//
// Complexity: O(n) components and links.

package builder

import "github.com/katalvlaran/slhnet/circuit"

// Ring returns a Constructor for a loop of n components.
func Ring(n int) Constructor {
	return func(nl *Netlist, cfg builderConfig) error {
		if n < MinRingComponents {
			return builderErrorf(MethodRing, ErrTooFewComponents, "n=%d < min=%d", n, MinRingComponents)
		}
		if cfg.channels < MinRingChannels {
			return builderErrorf(MethodRing, ErrTooFewChannels, "channels=%d < min=%d", cfg.channels, MinRingChannels)
		}
		base, err := addComponents(nl, cfg, MethodRing, n, cfg.channels)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			from := circuit.Port{Component: base + i}
			to := circuit.Port{Component: base + (i+1)%n}
			if err := nl.Link(from, to); err != nil {
				return builderErrorf(MethodRing, err, "link %d", i)
			}
		}

		return nil
	}
}
