// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// errors.go - sentinel errors of the builder package. Constructors wrap them
// with the method tag; callers branch with errors.Is.

package builder

import "github.com/pkg/errors"

var (
	// ErrTooFewComponents indicates a topology size below its minimum.
	ErrTooFewComponents = errors.New("builder: too few components")

	// ErrTooFewChannels indicates components too narrow for the topology.
	ErrTooFewChannels = errors.New("builder: too few channels")

	// ErrBadPort indicates a link to a component or port that does not exist.
	ErrBadPort = errors.New("builder: no such port")

	// ErrPortInUse indicates a second link on the same output or input.
	ErrPortInUse = errors.New("builder: port already linked")

	// ErrConstructFailed indicates a nil constructor or an empty network.
	ErrConstructFailed = errors.New("builder: construction failed")
)

// builderErrorf prefixes a sentinel with the method tag and a detail message.
func builderErrorf(method string, err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, method+": "+format, args...)
}
