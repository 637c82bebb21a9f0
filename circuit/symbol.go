// SPDX-License-Identifier: MIT

package circuit

import "github.com/pkg/errors"

// NewSymbol returns a named placeholder circuit with cdim channels.
func NewSymbol(name string, cdim int) (*Symbol, error) {
	if name == "" {
		return nil, errors.Wrap(ErrInvalidSymbol, "empty name")
	}
	if cdim < 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "symbol %s with cdim %d", name, cdim)
	}

	return intern(newSymbolNode(name, cdim)).(*Symbol), nil
}

// MustSymbol is like NewSymbol but panics on error.
func MustSymbol(name string, cdim int) *Symbol {
	s, err := NewSymbol(name, cdim)
	if err != nil {
		panic(err)
	}
	return s
}
