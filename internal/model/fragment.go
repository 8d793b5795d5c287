package model

// Field is one labelled attribute line of a fragment.
type Field struct {
	Label string
	Value string
}

// BorderAction navigates to a neighbouring country by code.
type BorderAction struct {
	Code  string
	Label string
}

// BorderSection lists the border actions of a detail fragment.
type BorderSection struct {
	Heading string
	Actions []BorderAction
}

// Fragment is a presentation-neutral rendering unit. ID carries the
// country name so a selected card can be traced back to its country.
type Fragment struct {
	ID        string
	Title     string
	FlagURL   string
	FlagEmoji string
	Fields    []Field
	Borders   *BorderSection
}

// Field labels shared by the summary and detail fragments.
const (
	LabelNativeName = "Native Name"
	LabelPopulation = "Population"
	LabelRegion     = "Region"
	LabelSubregion  = "Sub Region"
	LabelCapital    = "Capital"
	LabelTLD        = "Top Level Domain"
	LabelCurrencies = "Currencies"
	LabelLanguages  = "Languages"

	BorderHeading = "Border Countries"
)

// SummaryFragment returns the card shown in the grid.
func (c Country) SummaryFragment() Fragment {
	return Fragment{
		ID:        c.name,
		Title:     c.name,
		FlagURL:   c.flagURL,
		FlagEmoji: c.flagEmoji,
		Fields: []Field{
			{Label: LabelPopulation, Value: c.FormatPopulation()},
			{Label: LabelRegion, Value: c.region},
			{Label: LabelCapital, Value: c.capital},
		},
	}
}

// DetailFragment returns the full attribute view. The border section is
// nil when the country has no neighbours.
func (c Country) DetailFragment() Fragment {
	f := Fragment{
		ID:        c.name,
		Title:     c.name,
		FlagURL:   c.flagURL,
		FlagEmoji: c.flagEmoji,
		Fields: []Field{
			{Label: LabelNativeName, Value: c.nativeName},
			{Label: LabelPopulation, Value: c.FormatPopulation()},
			{Label: LabelRegion, Value: c.region},
			{Label: LabelSubregion, Value: c.subregion},
			{Label: LabelCapital, Value: c.capital},
			{Label: LabelTLD, Value: c.topLevelDomain},
			{Label: LabelCurrencies, Value: c.currencies},
			{Label: LabelLanguages, Value: c.languages},
		},
	}
	if len(c.borders) == 0 {
		return f
	}
	actions := make([]BorderAction, 0, len(c.borders))
	for _, code := range c.borders {
		actions = append(actions, BorderAction{Code: code, Label: code})
	}
	f.Borders = &BorderSection{Heading: BorderHeading, Actions: actions}
	return f
}

// Field returns the value of the labelled field, if present.
func (f Fragment) Field(label string) (string, bool) {
	for _, field := range f.Fields {
		if field.Label == label {
			return field.Value, true
		}
	}
	return "", false
}
