package explorer

import (
	"github.com/verte-zerg/worldview/internal/model"
	"github.com/verte-zerg/worldview/internal/restcountries"
)

// Intent is an input to the controller.
type Intent interface {
	isIntent()
}

// Loaded delivers the result of the initial collection fetch.
type Loaded struct {
	Result restcountries.Result[[]model.Country]
}

// LoadFailed reports that the collection could not be requested at all.
type LoadFailed struct {
	Err error
}

// SearchChanged carries the new search text.
type SearchChanged struct {
	Term string
}

// RegionChanged carries the new region selector value; "" means all.
type RegionChanged struct {
	Region string
}

// CardSelected is a click on the summary card identified by Name.
type CardSelected struct {
	Name string
}

// BorderSelected is a click on a border action of the detail view.
type BorderSelected struct {
	Code string
}

// Back leaves the detail or error view.
type Back struct{}

// DetailLoaded delivers a name lookup issued for Token.
type DetailLoaded struct {
	Token  uint64
	Result restcountries.Result[model.Country]
}

// BorderResolved delivers a code lookup issued for Token.
type BorderResolved struct {
	Token  uint64
	Result restcountries.Result[model.Country]
}

func (Loaded) isIntent()         {}
func (LoadFailed) isIntent()     {}
func (SearchChanged) isIntent()  {}
func (RegionChanged) isIntent()  {}
func (CardSelected) isIntent()   {}
func (BorderSelected) isIntent() {}
func (Back) isIntent()           {}
func (DetailLoaded) isIntent()   {}
func (BorderResolved) isIntent() {}

// Effect is work the driver must perform against the data source and
// feed back as DetailLoaded or BorderResolved. A nil Effect means none.
type Effect interface {
	isEffect()
}

// LookupName asks for a name lookup answered with DetailLoaded.
type LookupName struct {
	Name  string
	Token uint64
}

// LookupCode asks for a code lookup answered with BorderResolved.
type LookupCode struct {
	Code  string
	Token uint64
}

func (LookupName) isEffect() {}
func (LookupCode) isEffect() {}
