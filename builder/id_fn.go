// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// id_fn.go - naming schemes for generated components. A name becomes the
// symbol name of the default component, so every scheme yields non-empty,
// distinct names for distinct indices in its domain.

package builder

import (
	"fmt"
	"strconv"
)

// IDFn maps a netlist index to a component name.
type IDFn func(idx int) string

// DefaultIDFn names components by decimal index: "0", "1", ...
func DefaultIDFn(idx int) string { return strconv.Itoa(idx) }

// SymbolIDFn names components "A" through "Z". Panics outside [0, 25].
func SymbolIDFn(idx int) string {
	if idx < 0 || idx >= 26 {
		panic(fmt.Sprintf("builder: SymbolIDFn(%d) outside [0,25]", idx))
	}
	return string(rune('A' + idx))
}

// ExcelColumnIDFn names components like spreadsheet columns:
// "A", ..., "Z", "AA", "AB", ... Panics if idx < 0.
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("builder: ExcelColumnIDFn(%d)", idx))
	}
	var buf [16]byte
	i := len(buf)
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// SymbolNumberIDFn names components prefix0, prefix1, ...
func SymbolNumberIDFn(prefix string) IDFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("builder: SymbolNumberIDFn(%d)", idx))
		}
		return prefix + strconv.Itoa(idx)
	}
}

// WithDefaultIDs selects DefaultIDFn.
func WithDefaultIDs() BuilderOption { return WithIDScheme(DefaultIDFn) }

// WithSymbolIDs selects SymbolIDFn.
func WithSymbolIDs() BuilderOption { return WithIDScheme(SymbolIDFn) }

// WithExcelColumnIDs selects ExcelColumnIDFn.
func WithExcelColumnIDs() BuilderOption { return WithIDScheme(ExcelColumnIDFn) }

// WithSymbNumb selects SymbolNumberIDFn(prefix).
func WithSymbNumb(prefix string) BuilderOption { return WithIDScheme(SymbolNumberIDFn(prefix)) }
