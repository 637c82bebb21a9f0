// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// api.go - public entry points of the builder package.
//
// Contract:
//   - BuildNetlist creates the netlist, resolves the configuration and runs
//     the constructors in order; BuildNetwork additionally closes the links.
//   - Constructors name components with cfg.idFn over the running netlist
//     index, so several constructors in one call never reuse a name.
//   - Constructors validate early and return sentinel errors; no panics.

package builder

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/slhnet/circuit"
)

// Constructor appends components and links to the netlist.
type Constructor func(n *Netlist, cfg builderConfig) error

// BuildNetlist runs the constructors on a fresh netlist.
func BuildNetlist(bopts []BuilderOption, cons ...Constructor) (*Netlist, error) {
	n, _, err := build(bopts, cons)
	return n, err
}

// BuildNetwork runs the constructors and returns the closed network.
func BuildNetwork(bopts []BuilderOption, cons ...Constructor) (circuit.Circuit, error) {
	n, cfg, err := build(bopts, cons)
	if err != nil {
		return nil, err
	}
	c, err := n.Circuit(cfg.connectOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "BuildNetwork")
	}

	return c, nil
}

func build(bopts []BuilderOption, cons []Constructor) (*Netlist, builderConfig, error) {
	n := NewNetlist()
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, cfg, errors.Wrapf(ErrConstructFailed, "nil constructor at index %d", i)
		}
		if err := fn(n, cfg); err != nil {
			return nil, cfg, err
		}
	}
	if n.Len() == 0 {
		return nil, cfg, errors.Wrap(ErrConstructFailed, "empty network")
	}

	return n, cfg, nil
}
