// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// formula_fn.go - deterministic formula labels for generated fragments.
//
// A FormulaFn maps the running fragment index of a constructor to a label.
// Labels only need to be readable; the core graph does not require them to
// be unique.

package builder

import (
	"fmt"
	"strconv"
)

// FormulaFn maps a fragment index (0-based) to its formula label.
type FormulaFn func(idx int) string

// DefaultFormulaFn renders "F0","F1",....
func DefaultFormulaFn(idx int) string {
	return "F" + strconv.Itoa(idx)
}

// SymbolFormulaFn renders "A".."Z". Panics outside [0,25].
func SymbolFormulaFn(idx int) string {
	if idx < 0 || idx > 25 {
		panic(fmt.Sprintf("SymbolFormulaFn: idx must be in [0,25], got %d", idx))
	}
	return string('A' + rune(idx))
}

// ExcelColumnFormulaFn renders "A".."Z","AA","AB",....
func ExcelColumnFormulaFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnFormulaFn: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	var i, j int
	for i = idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j = 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// PrefixFormulaFn renders prefix followed by the decimal index.
func PrefixFormulaFn(prefix string) FormulaFn {
	return func(idx int) string {
		return prefix + strconv.Itoa(idx)
	}
}

// WithSymbolFormulas labels fragments "A","B",....
func WithSymbolFormulas() BuilderOption {
	return WithFormulaScheme(SymbolFormulaFn)
}

// WithExcelFormulas labels fragments "A",…,"Z","AA",....
func WithExcelFormulas() BuilderOption {
	return WithFormulaScheme(ExcelColumnFormulaFn)
}

// WithFormulaPrefix labels fragments prefix+index.
func WithFormulaPrefix(prefix string) BuilderOption {
	return WithFormulaScheme(PrefixFormulaFn(prefix))
}
