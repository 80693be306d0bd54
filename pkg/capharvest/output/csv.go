// Package output writes the harvested dataset and its run summary.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
)

// Columns of the output table, in order.
var Columns = []string{
	"Date", "Region", "State", "Sector",
	"Coal", "Lignite", "Gas", "Diesel", "Thermal Total",
	"Nuclear", "Hydro", "RES", "Total",
}

// FileName returns the default output file name for a harvested
// year range.
func FileName(startYear, endYear int) string {
	return fmt.Sprintf("complete_capacity_data_%d_%d.csv", startYear, endYear)
}

// WriteCSV writes the table to path as delimited text, one row per
// state, sector and month plus roll-up rows.
func WriteCSV(path string, table models.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return err
	}
	for _, rec := range table {
		row := []string{
			models.FormatDate(rec.ReportDate),
			rec.Region,
			rec.State,
			rec.Sector,
			formatNum(rec.Coal),
			formatNum(rec.Lignite),
			formatNum(rec.Gas),
			formatNum(rec.Diesel),
			formatNum(rec.ThermalTotal),
			formatNum(rec.Nuclear),
			formatNum(rec.Hydro),
			formatNum(rec.RES),
			formatNum(rec.GrandTotal),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
