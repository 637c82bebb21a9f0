// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// constants.go - method tags and parameter minima shared by the topology
// constructors.

package builder

// Method tags prefix constructor errors.
const (
	MethodCascade  = "Cascade"
	MethodRing     = "Ring"
	MethodStar     = "Star"
	MethodParallel = "Parallel"
)

const (
	// MinCascadeComponents is the smallest cascade with a link.
	MinCascadeComponents = 2

	// MinRingComponents is the smallest ring.
	MinRingComponents = 2

	// MinRingChannels keeps at least one open channel per ring component.
	MinRingChannels = 2

	// MinStarComponents is a hub with a single leaf.
	MinStarComponents = 2

	// MinParallelComponents is the smallest parallel bank.
	MinParallelComponents = 1

	// DefaultChannels is the channel count of generated components.
	DefaultChannels = 1

	// CenterID names the hub of a Star.
	CenterID = "Center"
)
