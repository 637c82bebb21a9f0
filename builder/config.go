// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// config.go - resolved builder configuration. BuilderOption values mutate a
// builderConfig once per BuildNetwork call; constructors only read it.

package builder

import "github.com/katalvlaran/slhnet/circuit"

// ComponentFn creates the component with name id and the given channel
// count. idx is the component's position in the netlist.
type ComponentFn func(id string, idx, channels int) (circuit.Circuit, error)

// SymbolComponent is the default ComponentFn: a named symbolic circuit.
func SymbolComponent(id string, _ int, channels int) (circuit.Circuit, error) {
	return circuit.NewSymbol(id, channels)
}

type builderConfig struct {
	idFn        IDFn        // component names by netlist index
	componentFn ComponentFn // component factory
	channels    int         // channels per generated component, >= 1

	connectOpts []circuit.ConnectOption // forwarded to circuit.Connect
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:        DefaultIDFn,
		componentFn: SymbolComponent,
		channels:    DefaultChannels,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// component builds the netlist entry idx with the given channel count.
func (cfg builderConfig) component(method, id string, idx, channels int) (circuit.Circuit, error) {
	c, err := cfg.componentFn(id, idx, channels)
	if err != nil {
		return nil, builderErrorf(method, err, "component %q", id)
	}
	if c.CDim() != channels {
		return nil, builderErrorf(method, ErrConstructFailed,
			"component %q has %d channels, want %d", id, c.CDim(), channels)
	}

	return c, nil
}
