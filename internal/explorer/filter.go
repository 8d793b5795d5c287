package explorer

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/verte-zerg/worldview/internal/model"
)

// Filter returns the countries whose name contains term (case-insensitive)
// and whose region equals region. An empty region matches every region.
func Filter(countries []model.Country, term, region string) []model.Country {
	fold := cases.Fold()
	needle := fold.String(term)
	out := make([]model.Country, 0, len(countries))
	for _, c := range countries {
		if region != "" && c.Region() != region {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(c.Name()), needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Regions returns the sorted distinct known regions of countries.
func Regions(countries []model.Country) []string {
	seen := map[string]struct{}{}
	for _, c := range countries {
		if c.Region() == model.Unknown {
			continue
		}
		seen[c.Region()] = struct{}{}
	}
	regions := make([]string, 0, len(seen))
	for r := range seen {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}
