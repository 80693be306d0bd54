package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
)

var testDate = models.ReportDate(2025, time.June)

func record(region, state, sector string, coal, hydro float64) models.CapacityRecord {
	return models.CapacityRecord{
		ReportDate:   testDate,
		Region:       region,
		State:        state,
		Sector:       sector,
		Coal:         coal,
		ThermalTotal: coal,
		Hydro:        hydro,
		GrandTotal:   coal + hydro,
	}
}

func fetched(region string, records ...models.CapacityRecord) RegionResult {
	return RegionResult{Region: region, Records: records, Fetched: true}
}

func TestMonthBelowRollupThreshold(t *testing.T) {
	monthly := Month([]RegionResult{
		fetched("Northern", record("Northern", "Punjab", models.SectorState, 100, 10)),
		fetched("Eastern", record("Eastern", "Bihar", models.SectorState, 200, 20)),
		{Region: "Western"},
		{Region: "Southern"},
		{Region: "North Eastern"},
	})

	require.Len(t, monthly, 2)
	for _, rec := range monthly {
		assert.NotEqual(t, models.RegionAllIndia, rec.Region,
			"no roll-up may be emitted below the region threshold")
	}
}

func TestMonthAtRollupThreshold(t *testing.T) {
	monthly := Month([]RegionResult{
		fetched("Northern", record("Northern", "Punjab", models.SectorState, 100, 10)),
		fetched("Eastern", record("Eastern", "Bihar", models.SectorPrivate, 200, 20)),
		fetched("Western", record("Western", "Goa", models.SectorCentral, 300, 30)),
		{Region: "Southern"},
		{Region: "North Eastern"},
	})

	// 3 state rows + 3 sector roll-ups + 1 total roll-up.
	require.Len(t, monthly, 7)

	rollups := map[string]models.CapacityRecord{}
	for _, rec := range monthly[3:] {
		assert.Equal(t, models.RegionAllIndia, rec.Region)
		assert.Equal(t, models.StateAllIndia, rec.State)
		assert.Equal(t, testDate, rec.ReportDate)
		rollups[rec.Sector] = rec
	}

	require.Contains(t, rollups, models.SectorTotal)
	total := rollups[models.SectorTotal]
	assert.Equal(t, 600.0, total.Coal)
	assert.Equal(t, 60.0, total.Hydro)
	assert.Equal(t, 660.0, total.GrandTotal)
}

func TestMonthRollupCountsFetchedNotNonempty(t *testing.T) {
	// A region that downloaded but parsed to nothing still counts
	// toward the roll-up gate.
	monthly := Month([]RegionResult{
		fetched("Northern", record("Northern", "Punjab", models.SectorState, 100, 0)),
		fetched("Eastern"),
		fetched("Western"),
		{Region: "Southern"},
		{Region: "North Eastern"},
	})

	require.Len(t, monthly, 3)
	assert.Equal(t, models.SectorTotal, monthly[2].Sector)
}

func TestMonthDropsRegionalSubtotals(t *testing.T) {
	monthly := Month([]RegionResult{
		fetched("Northern",
			record("Northern", "Punjab", models.SectorState, 100, 0),
			record("Northern", "Northern", models.SectorState, 9999, 0),
		),
	})

	require.Len(t, monthly, 1)
	assert.Equal(t, "Punjab", monthly[0].State)
}

func TestMonthSectorOrderAndRounding(t *testing.T) {
	results := []RegionResult{
		fetched("Northern",
			record("Northern", "Punjab", models.SectorCentral, 0.333, 0),
			record("Northern", "Punjab", models.SectorState, 0.333, 0),
		),
		fetched("Eastern", record("Eastern", "Bihar", models.SectorState, 0.333, 0)),
		fetched("Western", record("Western", "Goa", models.SectorPrivate, 0.5, 0)),
	}

	monthly := Month(results)
	require.Len(t, monthly, 8)

	var sectors []string
	for _, rec := range monthly[4:] {
		sectors = append(sectors, rec.Sector)
	}
	assert.Equal(t, []string{
		models.SectorState, models.SectorPrivate, models.SectorCentral, models.SectorTotal,
	}, sectors)

	// 0.333 + 0.333 rounds to 0.67 at the roll-up.
	assert.Equal(t, 0.67, monthly[4].Coal)
}

func TestMonthEmpty(t *testing.T) {
	monthly := Month([]RegionResult{
		fetched("Northern"), fetched("Eastern"), fetched("Western"),
		fetched("Southern"), fetched("North Eastern"),
	})

	assert.Empty(t, monthly, "no records means no roll-up either")
}
