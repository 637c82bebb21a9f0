// SPDX-License-Identifier: MIT
// Package circuit: sentinel error set.
// Every exported constructor returns one of these, wrapped with context;
// match them with errors.Is.

package circuit

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/slhnet/permutation"
)

var (
	// ErrConversion is returned when a circuit cannot be reduced to an SLH
	// triple because an unresolved symbol remains.
	ErrConversion = errors.New("circuit: cannot convert to SLH")

	// ErrDimensionMismatch reports unequal channel dimensions in a series
	// product, a feedback index out of range, or feedback on cdim < 2.
	ErrDimensionMismatch = errors.New("circuit: channel dimension mismatch")

	// ErrInvalidPermutation reports a malformed permutation or a violated
	// factorization invariant.
	ErrInvalidPermutation = permutation.ErrInvalidPermutation

	// ErrIncompatibleBlockStructure reports a requested block grouping that
	// does not align with the finest block structure.
	ErrIncompatibleBlockStructure = errors.New("circuit: incompatible block structure")

	// ErrInvalidSymbol reports an empty symbol name.
	ErrInvalidSymbol = errors.New("circuit: invalid symbol")

	// ErrNonInvertibleLoop reports a feedback loop with 1 - S[n-1,n-1]
	// equal to zero or not a scalar.
	ErrNonInvertibleLoop = errors.New("circuit: non-invertible feedback loop")
)
