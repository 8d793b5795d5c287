package stats

import (
	"sort"

	"github.com/verte-zerg/worldview/internal/model"
)

// TopByPopulation returns the n most populous countries, ties broken by
// name. n <= 0 returns every country in that order.
func TopByPopulation(countries []model.Country, n int) []model.Country {
	items := append([]model.Country(nil), countries...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Population() == items[j].Population() {
			return items[i].Name() < items[j].Name()
		}
		return items[i].Population() > items[j].Population()
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}
