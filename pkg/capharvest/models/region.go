package models

import "strings"

// Regions lists the 5 grid operating regions that partition all
// states, in the fixed processing order. A region the source adds
// beyond these would classify as a state name.
var Regions = []string{
	"Northern",
	"Eastern",
	"Western",
	"Southern",
	"North Eastern",
}

// Synthetic names used on All India roll-up rows.
const (
	RegionAllIndia = "All India"
	StateAllIndia  = "ALL INDIA"
)

// IsRegion reports whether name matches one of the 5 fixed regions,
// case-insensitively.
func IsRegion(name string) bool {
	for _, r := range Regions {
		if strings.EqualFold(name, r) {
			return true
		}
	}
	return false
}
