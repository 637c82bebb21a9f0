// SPDX-License-Identifier: MIT
// Package expr: sentinel error set.

package expr

import (
	"github.com/pkg/errors"
)

// ErrRewriteLimit is returned when a single construction applies more rules
// than Options.MaxRewrites allows, which indicates a non-terminating rule set.
var ErrRewriteLimit = errors.New("expr: rewrite limit exceeded")

// ErrNoOperands is returned by Create for an empty operand list when the
// operation defines no Empty result.
var ErrNoOperands = errors.New("expr: no operands")
