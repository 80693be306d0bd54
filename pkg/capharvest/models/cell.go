// Package models defines data structures for capacity report extraction.
package models

import (
	"strconv"
	"strings"
)

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	// KindEmpty marks a cell with no usable content.
	KindEmpty CellKind = iota
	// KindNumber marks a cell parsed as a number.
	KindNumber
	// KindText marks a cell holding free text.
	KindText
)

// NanText is the sentinel returned for empty cells, matching the
// "nan" marker the source files use for missing values.
const NanText = "nan"

// Cell is one untyped spreadsheet cell value.
type Cell struct {
	Kind CellKind
	// Text is set when Kind is KindText.
	Text string
	// Num is set when Kind is KindNumber.
	Num float64
}

// ParseCell classifies a raw cell string as empty, number, or text.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" || s == NanText || s == "None" {
		return Cell{Kind: KindEmpty}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Cell{Kind: KindNumber, Num: f}
	}
	return Cell{Kind: KindText, Text: s}
}

// String renders the cell the way the row classifier sees it:
// empty cells resolve to the "nan" sentinel.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindText:
		return c.Text
	default:
		return NanText
	}
}

// Float coerces the cell to a number. Empty and non-numeric text
// degrade to 0 rather than failing.
func (c Cell) Float() float64 {
	if c.Kind == KindNumber {
		return c.Num
	}
	return 0
}

// IsEmpty reports whether the cell holds no usable content.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}
