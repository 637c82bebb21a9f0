// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// options.go - functional options for BuildNetwork. Option constructors
// panic on values no network could use.

package builder

import "github.com/katalvlaran/slhnet/circuit"

// BuilderOption configures a BuildNetwork call.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the component naming scheme. Panics if fn is nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithChannels sets the channel count of generated components.
// Panics if k < 1.
func WithChannels(k int) BuilderOption {
	if k < 1 {
		panic("builder: WithChannels(k<1)")
	}
	return func(c *builderConfig) { c.channels = k }
}

// WithComponentFn replaces the component factory. Panics if fn is nil.
func WithComponentFn(fn ComponentFn) BuilderOption {
	if fn == nil {
		panic("builder: WithComponentFn(nil)")
	}
	return func(c *builderConfig) { c.componentFn = fn }
}

// WithForceSLH converts the linked network to its SLH form before the links
// are closed; see circuit.WithForceSLH.
func WithForceSLH() BuilderOption {
	return func(c *builderConfig) {
		c.connectOpts = append(c.connectOpts, circuit.WithForceSLH())
	}
}
