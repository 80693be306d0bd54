package output

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
)

// RegionSummary is one region's slice of the end-of-run statistics.
type RegionSummary struct {
	Region  string
	Records int
	// TotalMW sums the grand totals of the region's records.
	TotalMW float64
}

// Summarize computes per-region record counts and capacity sums for
// the run report, ordered by first appearance in the table.
func Summarize(table models.Table) []RegionSummary {
	totals := map[string][]float64{}
	var order []string

	for _, rec := range table {
		if _, ok := totals[rec.Region]; !ok {
			order = append(order, rec.Region)
		}
		totals[rec.Region] = append(totals[rec.Region], rec.GrandTotal)
	}

	summaries := make([]RegionSummary, 0, len(order))
	for _, region := range order {
		sum, err := stats.Sum(totals[region])
		if err != nil {
			sum = 0
		}
		summaries = append(summaries, RegionSummary{
			Region:  region,
			Records: len(totals[region]),
			TotalMW: math.Round(sum*100) / 100,
		})
	}
	return summaries
}
