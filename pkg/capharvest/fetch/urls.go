// Package fetch retrieves monthly capacity report files from the
// publisher with a bounded retry policy.
package fetch

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBaseURL is the publisher's monthly installed-capacity
// report root.
const DefaultBaseURL = "https://npp.gov.in/public-reports/cea/monthly/installcap"

// FileName returns the published file name for a region and month,
// e.g. "capacity2-Northern-2025-06.xls".
func FileName(region string, year int, month time.Month) string {
	return fmt.Sprintf("capacity2-%s-%d-%02d.xls", region, year, int(month))
}

// ReportURL returns the deterministic URL of a region's report:
// the year and the 3-letter uppercase month abbreviation are path
// segments, the numeric month goes in the file name.
func ReportURL(base, region string, year int, month time.Month) string {
	return fmt.Sprintf("%s/%d/%s/%s",
		strings.TrimRight(base, "/"),
		year,
		strings.ToUpper(month.String()[:3]),
		FileName(region, year, month))
}
