// Package stats summarises country collections for reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/worldview/internal/model"
)

// RegionSummary aggregates the countries of one region.
type RegionSummary struct {
	Region     string
	Countries  int
	Population int64
	Largest    string
}

// SummarizeRegions groups countries by region, sorted by region name.
// Countries without a region are grouped under model.Unknown, listed last.
func SummarizeRegions(countries []model.Country) []RegionSummary {
	byRegion := map[string]*RegionSummary{}
	largest := map[string]int64{}
	for _, c := range countries {
		entry, ok := byRegion[c.Region()]
		if !ok {
			entry = &RegionSummary{Region: c.Region()}
			byRegion[c.Region()] = entry
			largest[c.Region()] = -1
		}
		entry.Countries++
		entry.Population += c.Population()
		if c.Population() > largest[c.Region()] {
			largest[c.Region()] = c.Population()
			entry.Largest = c.Name()
		}
	}
	out := make([]RegionSummary, 0, len(byRegion))
	for _, entry := range byRegion {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i].Region == model.Unknown) != (out[j].Region == model.Unknown) {
			return out[j].Region == model.Unknown
		}
		return out[i].Region < out[j].Region
	})
	return out
}
