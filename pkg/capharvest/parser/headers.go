package parser

import (
	"strings"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
)

// Absent marks a field whose header label was never found. Values
// read through an absent column default to zero downstream.
const Absent = -1

// headerScanRows bounds the header search; labels never appear below
// the first 15 rows in any published vintage.
const headerScanRows = 15

// fallbackDataStartRow is used when no header label was found at all
// (malformed file).
const fallbackDataStartRow = 5

// ColumnMap maps each logical report field to a column index, built
// once per file and immutable afterward. Labels are not at fixed
// coordinates across report vintages, so detection is content-driven.
type ColumnMap struct {
	State  int
	Sector int

	Coal       int
	Lignite    int
	Gas        int
	Diesel     int
	Nuclear    int
	Hydro      int
	RES        int
	GrandTotal int

	// DataStartRow is the first row below the header block.
	DataStartRow int
}

// headerRule binds a fuzzy label predicate to a ColumnMap field.
// Fuel columns keep the first match; the state and sector columns
// take the last.
type headerRule struct {
	match     func(text string, col int) bool
	target    func(m *ColumnMap) *int
	overwrite bool
}

func contains(sub string) func(string, int) bool {
	return func(text string, _ int) bool { return strings.Contains(text, sub) }
}

var headerRules = []headerRule{
	{
		match:  func(text string, _ int) bool { return text == "STATE" },
		target: func(m *ColumnMap) *int { return &m.State }, overwrite: true,
	},
	{
		match: func(text string, _ int) bool {
			return strings.Contains(text, "OWNERSHIP/SECTOR") || text == "SECTOR"
		},
		target: func(m *ColumnMap) *int { return &m.Sector }, overwrite: true,
	},
	{
		match: func(text string, _ int) bool {
			return strings.Contains(text, "COAL") && !strings.Contains(text, "LIGNITE")
		},
		target: func(m *ColumnMap) *int { return &m.Coal },
	},
	{match: contains("LIGNITE"), target: func(m *ColumnMap) *int { return &m.Lignite }},
	{match: contains("GAS"), target: func(m *ColumnMap) *int { return &m.Gas }},
	{match: contains("DIESEL"), target: func(m *ColumnMap) *int { return &m.Diesel }},
	{match: contains("NUCLEAR"), target: func(m *ColumnMap) *int { return &m.Nuclear }},
	{match: contains("HYDRO"), target: func(m *ColumnMap) *int { return &m.Hydro }},
	// "RES" also matches labels containing it as a substring of a
	// longer word (e.g. RESERVE); kept as-is for compatibility with
	// the published files.
	{match: contains("RES"), target: func(m *ColumnMap) *int { return &m.RES }},
	{
		match: func(text string, col int) bool {
			return strings.Contains(text, "GRAND") || (strings.Contains(text, "TOTAL") && col > 8)
		},
		target: func(m *ColumnMap) *int { return &m.GrandTotal },
	},
}

// LocateHeaders scans the top of the grid for fuzzy label matches and
// returns the resulting column map. Detection failures resolve to
// documented fallbacks rather than errors, so a drifted layout still
// yields best-effort output.
func LocateHeaders(g models.Grid) ColumnMap {
	m := ColumnMap{
		State:      Absent,
		Sector:     Absent,
		Coal:       Absent,
		Lignite:    Absent,
		Gas:        Absent,
		Diesel:     Absent,
		Nuclear:    Absent,
		Hydro:      Absent,
		RES:        Absent,
		GrandTotal: Absent,
	}

	lastHeaderRow := -1
	limit := headerScanRows
	if g.Rows() < limit {
		limit = g.Rows()
	}

	for rowIdx := 0; rowIdx < limit; rowIdx++ {
		for colIdx := range g[rowIdx] {
			cell := g.Cell(rowIdx, colIdx)
			if cell.IsEmpty() {
				continue
			}
			text := strings.ToUpper(strings.TrimSpace(cell.String()))

			for _, rule := range headerRules {
				if !rule.match(text, colIdx) {
					continue
				}
				field := rule.target(&m)
				if *field != Absent && !rule.overwrite {
					continue
				}
				*field = colIdx
				if rowIdx > lastHeaderRow {
					lastHeaderRow = rowIdx
				}
			}
		}
	}

	if lastHeaderRow >= 0 {
		m.DataStartRow = lastHeaderRow + 1
	} else {
		m.DataStartRow = fallbackDataStartRow
	}

	// Structural format shift: older reports lack a lignite column
	// and keep the sector label in column 2, newer ones in column 3.
	if m.Sector == Absent {
		if m.Lignite == Absent {
			m.Sector = 2
		} else {
			m.Sector = 3
		}
	}
	if m.State == Absent {
		m.State = 1
	}

	return m
}
