// Package aggregate assembles per-region extraction results into
// monthly tables with optional national roll-ups.
package aggregate

import (
	"math"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
)

// rollupThreshold is the minimum number of fetched regions required
// before an All India roll-up is emitted. Below it the roll-up would
// silently understate national capacity, which is worse than
// omitting it.
const rollupThreshold = 3

// RegionResult is the outcome of one region's fetch-and-extract.
type RegionResult struct {
	Region  string
	Records models.Table
	// Fetched reports whether the region file was downloaded, even
	// when extraction then yielded nothing.
	Fetched bool
}

// Month concatenates per-region records for one reporting month,
// drops regional-subtotal artifacts, and appends the All India
// roll-up when enough regions were fetched.
func Month(results []RegionResult) models.Table {
	var monthly models.Table
	fetched := 0

	for _, res := range results {
		if res.Fetched {
			fetched++
		}
		for _, rec := range res.Records {
			// Regional subtotal rows slip through the classifier as
			// State == Region; they are not state data.
			if rec.State == rec.Region {
				continue
			}
			monthly = append(monthly, rec)
		}
	}

	if len(monthly) > 0 && fetched >= rollupThreshold {
		monthly = append(monthly, allIndia(monthly)...)
	}
	return monthly
}

// sectorSum accumulates the numeric fields of one sector group.
type sectorSum struct {
	coal, lignite, gas, diesel float64
	thermal                    float64
	nuclear, hydro, res        float64
	grand                      float64
}

func (s *sectorSum) add(r models.CapacityRecord) {
	s.coal += r.Coal
	s.lignite += r.Lignite
	s.gas += r.Gas
	s.diesel += r.Diesel
	s.thermal += r.ThermalTotal
	s.nuclear += r.Nuclear
	s.hydro += r.Hydro
	s.res += r.RES
	s.grand += r.GrandTotal
}

func (s *sectorSum) record(ref models.CapacityRecord, sector string) models.CapacityRecord {
	return models.CapacityRecord{
		ReportDate:   ref.ReportDate,
		Region:       models.RegionAllIndia,
		State:        models.StateAllIndia,
		Sector:       sector,
		Coal:         round2(s.coal),
		Lignite:      round2(s.lignite),
		Gas:          round2(s.gas),
		Diesel:       round2(s.diesel),
		ThermalTotal: round2(s.thermal),
		Nuclear:      round2(s.nuclear),
		Hydro:        round2(s.hydro),
		RES:          round2(s.res),
		GrandTotal:   round2(s.grand),
	}
}

// allIndia sums the month's records per sector and emits one roll-up
// row per present sector plus a synthetic Total row across all three.
func allIndia(monthly models.Table) models.Table {
	groups := map[string]*sectorSum{}
	for _, rec := range monthly {
		g, ok := groups[rec.Sector]
		if !ok {
			g = &sectorSum{}
			groups[rec.Sector] = g
		}
		g.add(rec)
	}

	var rows models.Table
	var overall sectorSum
	first := monthly[0]

	for _, sector := range []string{models.SectorState, models.SectorPrivate, models.SectorCentral} {
		g, ok := groups[sector]
		if !ok {
			continue
		}
		row := g.record(first, sector)
		rows = append(rows, row)
		overall.add(row)
	}
	rows = append(rows, overall.record(first, models.SectorTotal))

	return rows
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
