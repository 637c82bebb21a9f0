// SPDX-License-Identifier: MIT
// Package operator: sentinel error set.
// All kernels return these sentinels, wrapped with the operation tag; callers
// match them with errors.Is.

package operator

import (
	"github.com/pkg/errors"
)

var (
	// ErrBadShape is returned when a requested shape is negative or rows are ragged.
	ErrBadShape = errors.New("operator: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("operator: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes,
	// e.g. Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("operator: dimension mismatch")

	// ErrBadSymbol is returned for an empty operator symbol name.
	ErrBadSymbol = errors.New("operator: invalid symbol name")
)

// Operation tags used for error wrapping.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opAt        = "At"
	opSlice     = "Slice"
	opVStack    = "VStack"
	opFromRows  = "FromRows"
	opNewMatrix = "NewMatrix"
)

// matrixErrorf wraps err with an operation tag, preserving the sentinel.
func matrixErrorf(tag string, err error) error {
	return errors.Wrap(err, tag)
}
