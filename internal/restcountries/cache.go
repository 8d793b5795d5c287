package restcountries

import (
	"slices"
	"sync"

	"github.com/verte-zerg/worldview/internal/model"
)

// collectionCache holds the full collection for the lifetime of a Service.
// It is filled at most once and never invalidated.
type collectionCache struct {
	mu        sync.RWMutex
	countries []model.Country
	filled    bool
}

func (c *collectionCache) get() ([]model.Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.filled {
		return nil, false
	}
	return slices.Clone(c.countries), true
}

// fill stores countries unless the cache is already populated.
func (c *collectionCache) fill(countries []model.Country) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filled || len(countries) == 0 {
		return false
	}
	c.countries = slices.Clone(countries)
	c.filled = true
	return true
}
