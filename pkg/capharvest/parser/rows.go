package parser

import (
	"strings"
	"time"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
)

// sectorLabels maps source sector labels to output sector names.
var sectorLabels = map[string]string{
	"STATE SECTOR":   models.SectorState,
	"PVT SECTOR":     models.SectorPrivate,
	"CENTRAL SECTOR": models.SectorCentral,
}

// ExtractRecords walks the rows below the header boundary and emits
// one record per sector data row. The source encodes a two-level
// hierarchy (a state name row, then 1-3 sector rows beneath it) with
// no structural delimiter, so the walk carries the current state name
// and infers everything else from cell content.
func ExtractRecords(g models.Grid, cols ColumnMap, date time.Time, region string) models.Table {
	var out models.Table
	currentState := ""

	for row := cols.DataStartRow; row < g.Rows(); row++ {
		state := g.Cell(row, cols.State).String()
		sector := g.Cell(row, cols.Sector).String()

		if state == models.NanText && sector == models.NanText {
			continue
		}

		if sector == models.NanText || sector == "" || sector == "None" {
			switch {
			case strings.Contains(strings.ToUpper(state), "TOTAL OF"):
				// Per-state subtotal row; the state stays current.
			case state != models.NanText && !isDigits(state):
				if models.IsRegion(state) || strings.HasPrefix(state, "http") {
					// Region-total rows and stray URLs must not be
					// mistaken for state names.
					currentState = ""
				} else {
					currentState = state
				}
			}
			continue
		}

		mapped, ok := sectorLabels[strings.ToUpper(sector)]
		if !ok || currentState == "" {
			continue
		}
		out = append(out, buildRecord(g, cols, row, date, region, currentState, mapped))
	}

	return out
}

// buildRecord extracts and coerces the numeric fields of one sector
// data row. Absent columns and unparseable cells degrade to zero.
func buildRecord(g models.Grid, cols ColumnMap, row int, date time.Time, region, state, sector string) models.CapacityRecord {
	rec := models.CapacityRecord{
		ReportDate: date,
		Region:     region,
		State:      state,
		Sector:     sector,
		Coal:       g.Cell(row, cols.Coal).Float(),
		Lignite:    g.Cell(row, cols.Lignite).Float(),
		Gas:        g.Cell(row, cols.Gas).Float(),
		Diesel:     g.Cell(row, cols.Diesel).Float(),
		Nuclear:    g.Cell(row, cols.Nuclear).Float(),
		Hydro:      g.Cell(row, cols.Hydro).Float(),
		RES:        g.Cell(row, cols.RES).Float(),
	}

	rec.ThermalTotal = rec.Coal + rec.Lignite + rec.Gas + rec.Diesel
	rec.GrandTotal = g.Cell(row, cols.GrandTotal).Float()
	if rec.GrandTotal == 0 {
		rec.GrandTotal = rec.ThermalTotal + rec.Nuclear + rec.Hydro + rec.RES
	}

	return rec
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
