// Package explorer holds the country list/detail state machine.
//
// The controller owns the loaded collection, the filter state and the
// current phase. Views send typed intents to Dispatch and render the View
// returned by Render; lookups are returned as effects for the caller to
// run so the controller never blocks.
package explorer

import (
	"github.com/verte-zerg/worldview/internal/model"
	"github.com/verte-zerg/worldview/internal/restcountries"
)

// Phase is the state of the visible surface.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseDetail
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseDetail:
		return "detail"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// User-visible messages.
const (
	LoadingMessage     = "Loading countries..."
	LoadErrorMessage   = "Failed to load countries. Please try again later."
	DetailErrorMessage = "Failed to load country details. Please try again later."
	NoResultsMessage   = "No countries found matching your criteria."
)

// View is the render instruction for the current state.
type View struct {
	Phase   Phase
	Cards   []model.Fragment
	Detail  *model.Fragment
	Message string
	Search  string
	Region  string
	Source  restcountries.Source
	Pending bool

	// CanGoBack is set on an error view that Back returns to the grid from.
	CanGoBack bool
}

// Controller is not safe for concurrent use; drive it from one goroutine.
type Controller struct {
	phase   Phase
	message string

	loaded    bool
	source    restcountries.Source
	countries []model.Country
	filtered  []model.Country

	search string
	region string

	detail  *model.Country
	token   uint64
	pending bool
}

// New returns a controller in PhaseLoading.
func New() *Controller {
	return &Controller{phase: PhaseLoading, message: LoadingMessage}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Search returns the current search text.
func (c *Controller) Search() string { return c.search }

// Region returns the current region selector value.
func (c *Controller) Region() string { return c.region }

// Countries returns the full loaded collection.
func (c *Controller) Countries() []model.Country { return c.countries }

// Filtered returns the visible set.
func (c *Controller) Filtered() []model.Country { return c.filtered }

// Detail returns the country shown in PhaseDetail.
func (c *Controller) Detail() (model.Country, bool) {
	if c.detail == nil {
		return model.Country{}, false
	}
	return *c.detail, true
}

// Regions returns the selectable regions of the loaded collection.
func (c *Controller) Regions() []string { return Regions(c.countries) }

// Dispatch applies intent and returns the effect to run, if any.
func (c *Controller) Dispatch(intent Intent) Effect {
	switch in := intent.(type) {
	case Loaded:
		c.onLoaded(in)
	case LoadFailed:
		if c.phase == PhaseLoading || c.phase == PhaseReady {
			c.fail(LoadErrorMessage)
		}
	case SearchChanged:
		c.search = in.Term
		c.refilter()
	case RegionChanged:
		c.region = in.Region
		c.refilter()
	case CardSelected:
		if in.Name == "" {
			return nil
		}
		return c.lookupName(in.Name)
	case BorderSelected:
		if in.Code == "" || c.phase != PhaseDetail {
			return nil
		}
		c.token++
		c.pending = true
		return LookupCode{Code: in.Code, Token: c.token}
	case DetailLoaded:
		c.onDetail(in)
	case BorderResolved:
		return c.onBorder(in)
	case Back:
		c.onBack()
	}
	return nil
}

func (c *Controller) onLoaded(in Loaded) {
	c.loaded = true
	c.source = in.Result.Source
	c.countries = in.Result.Value
	if c.countries == nil {
		c.countries = []model.Country{}
	}
	c.filtered = Filter(c.countries, c.search, c.region)
	if c.phase == PhaseLoading || c.phase == PhaseError {
		c.phase = PhaseReady
		c.message = ""
	}
}

// refilter recomputes the visible set. It leaves an open detail view in
// place and recovers from the error view.
func (c *Controller) refilter() {
	if !c.loaded {
		return
	}
	c.filtered = Filter(c.countries, c.search, c.region)
	if c.phase == PhaseError {
		c.phase = PhaseReady
		c.message = ""
	}
}

func (c *Controller) lookupName(name string) Effect {
	c.token++
	c.pending = true
	return LookupName{Name: name, Token: c.token}
}

func (c *Controller) onDetail(in DetailLoaded) {
	if in.Token != c.token {
		return
	}
	c.pending = false
	if !in.Result.OK() {
		c.fail(DetailErrorMessage)
		return
	}
	country := in.Result.Value
	c.detail = &country
	c.phase = PhaseDetail
	c.message = ""
}

func (c *Controller) onBorder(in BorderResolved) Effect {
	if in.Token != c.token {
		return nil
	}
	c.pending = false
	if !in.Result.OK() {
		return nil
	}
	return c.lookupName(in.Result.Value.Name())
}

func (c *Controller) onBack() {
	// Invalidate any lookup still in flight for the view being left.
	c.token++
	c.pending = false
	switch c.phase {
	case PhaseDetail:
		c.phase = PhaseReady
		c.detail = nil
	case PhaseError:
		if c.loaded {
			c.phase = PhaseReady
			c.message = ""
			c.detail = nil
		}
	}
}

func (c *Controller) fail(message string) {
	c.phase = PhaseError
	c.message = message
	c.detail = nil
}

// Render projects the current state.
func (c *Controller) Render() View {
	v := View{
		Phase:   c.phase,
		Search:  c.search,
		Region:  c.region,
		Source:  c.source,
		Pending: c.pending,
	}
	switch c.phase {
	case PhaseLoading, PhaseError:
		v.Message = c.message
		v.CanGoBack = c.phase == PhaseError && c.loaded
		return v
	}
	v.Cards = make([]model.Fragment, 0, len(c.filtered))
	for _, country := range c.filtered {
		v.Cards = append(v.Cards, country.SummaryFragment())
	}
	if len(v.Cards) == 0 {
		v.Message = NoResultsMessage
	}
	if c.phase == PhaseDetail && c.detail != nil {
		detail := c.detail.DetailFragment()
		v.Detail = &detail
	}
	return v
}
