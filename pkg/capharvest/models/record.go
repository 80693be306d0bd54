package models

import "time"

// Sector names as emitted in the output table.
const (
	SectorState   = "State"
	SectorPrivate = "Private"
	SectorCentral = "Central"
	// SectorTotal is the synthetic roll-up sector in All India rows.
	SectorTotal = "Total"
)

// CapacityRecord is one normalized output row: installed generation
// capacity in MW for a state and ownership sector in one report month.
type CapacityRecord struct {
	// ReportDate is the last calendar day of the report month.
	ReportDate time.Time
	Region     string
	State      string
	Sector     string

	Coal    float64
	Lignite float64
	Gas     float64
	Diesel  float64
	// ThermalTotal is always recomputed as Coal+Lignite+Gas+Diesel,
	// never trusted from the source.
	ThermalTotal float64
	Nuclear      float64
	Hydro        float64
	RES          float64
	// GrandTotal is the source value when nonzero, otherwise
	// ThermalTotal+Nuclear+Hydro+RES.
	GrandTotal float64
}

// Table is an ordered sequence of capacity records. A monthly table
// covers up to 5 regions plus roll-up rows; the master table is the
// concatenation of all monthly tables in calendar order.
type Table []CapacityRecord

// ReportDate returns the last calendar day of the given month.
func ReportDate(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a report date as DD-MM-YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02-01-2006")
}
