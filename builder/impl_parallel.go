// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// impl_parallel.go - Parallel(n): a bank of unconnected components.

package builder

// Parallel returns a Constructor adding n components without links.
func Parallel(n int) Constructor {
	return func(nl *Netlist, cfg builderConfig) error {
		if n < MinParallelComponents {
			return builderErrorf(MethodParallel, ErrTooFewComponents, "n=%d < min=%d", n, MinParallelComponents)
		}
		_, err := addComponents(nl, cfg, MethodParallel, n, cfg.channels)
		return err
	}
}
