// Package model defines the country entity and its display fragments.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unknown is the value of every optional attribute the source record lacks.
const Unknown = "N/A"

// ErrMalformedRecord is returned when a record lacks the common name or a flag reference.
var ErrMalformedRecord = errors.New("malformed country record")

// RawName is a common/official name pair as served by the API.
type RawName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// RawCountryName holds the name variants of a record.
type RawCountryName struct {
	Common     string             `json:"common"`
	Official   string             `json:"official"`
	NativeName map[string]RawName `json:"nativeName"`
}

// RawCurrency is one entry of the currencies mapping.
type RawCurrency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// RawFlags holds the flag image references.
type RawFlags struct {
	SVG string `json:"svg"`
	PNG string `json:"png"`
	Alt string `json:"alt"`
}

// RawCountry is one record of the REST Countries v3.1 schema.
type RawCountry struct {
	Name       RawCountryName         `json:"name"`
	CCA3       string                 `json:"cca3"`
	Population int64                  `json:"population"`
	Region     string                 `json:"region"`
	Subregion  string                 `json:"subregion"`
	Capital    []string               `json:"capital"`
	TLD        []string               `json:"tld"`
	Currencies map[string]RawCurrency `json:"currencies"`
	Languages  map[string]string      `json:"languages"`
	Borders    []string               `json:"borders"`
	Flags      RawFlags               `json:"flags"`
	Flag       string                 `json:"flag"`
}

// Country is a display-ready country. It is never mutated after NewCountry.
type Country struct {
	name           string
	code           string
	nativeName     string
	population     int64
	region         string
	subregion      string
	capital        string
	topLevelDomain string
	currencies     string
	languages      string
	borders        []string
	flagURL        string
	flagEmoji      string
}

// NewCountry normalizes one raw record. Only the common name and a flag
// reference are required; every other attribute degrades to Unknown.
func NewCountry(raw RawCountry) (Country, error) {
	name := strings.TrimSpace(raw.Name.Common)
	if name == "" {
		return Country{}, fmt.Errorf("%w: missing common name", ErrMalformedRecord)
	}
	flagURL := firstNonEmpty(raw.Flags.SVG, raw.Flags.PNG)
	if flagURL == "" {
		return Country{}, fmt.Errorf("%w: missing flag for %q", ErrMalformedRecord, name)
	}

	population := raw.Population
	if population < 0 {
		population = 0
	}

	borders := make([]string, 0, len(raw.Borders))
	for _, code := range raw.Borders {
		if code = strings.TrimSpace(code); code != "" {
			borders = append(borders, code)
		}
	}

	return Country{
		name:           name,
		code:           orUnknown(strings.ToUpper(strings.TrimSpace(raw.CCA3))),
		nativeName:     nativeName(raw.Name.NativeName),
		population:     population,
		region:         orUnknown(raw.Region),
		subregion:      orUnknown(raw.Subregion),
		capital:        orUnknown(first(raw.Capital)),
		topLevelDomain: orUnknown(first(raw.TLD)),
		currencies:     currencyNames(raw.Currencies),
		languages:      languageNames(raw.Languages),
		borders:        borders,
		flagURL:        flagURL,
		flagEmoji:      raw.Flag,
	}, nil
}

// NewCountries normalizes a batch, skipping malformed records. The
// returned errors describe every skipped record.
func NewCountries(raws []RawCountry) ([]Country, []error) {
	countries := make([]Country, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		c, err := NewCountry(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		countries = append(countries, c)
	}
	return countries, errs
}

func (c Country) Name() string           { return c.name }
func (c Country) Code() string           { return c.code }
func (c Country) NativeName() string     { return c.nativeName }
func (c Country) Population() int64      { return c.population }
func (c Country) Region() string         { return c.region }
func (c Country) Subregion() string      { return c.subregion }
func (c Country) Capital() string        { return c.capital }
func (c Country) TopLevelDomain() string { return c.topLevelDomain }
func (c Country) Currencies() string     { return c.currencies }
func (c Country) Languages() string      { return c.languages }
func (c Country) FlagURL() string        { return c.flagURL }
func (c Country) FlagEmoji() string      { return c.flagEmoji }

// Borders returns a copy of the neighbouring country codes.
func (c Country) Borders() []string {
	out := make([]string, len(c.borders))
	copy(out, c.borders)
	return out
}

// FormatPopulation renders the population with English thousands separators.
func (c Country) FormatPopulation() string {
	return FormatPopulation(c.population)
}

// FormatPopulation formats n the way Country.FormatPopulation does.
func FormatPopulation(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

func nativeName(names map[string]RawName) string {
	if len(names) == 0 {
		return Unknown
	}
	for _, key := range sortedKeys(names) {
		if common := strings.TrimSpace(names[key].Common); common != "" {
			return common
		}
	}
	return Unknown
}

func currencyNames(currencies map[string]RawCurrency) string {
	if len(currencies) == 0 {
		return Unknown
	}
	names := make([]string, 0, len(currencies))
	for _, key := range sortedKeys(currencies) {
		if name := strings.TrimSpace(currencies[key].Name); name != "" {
			names = append(names, name)
		}
	}
	return orUnknown(strings.Join(names, ", "))
}

func languageNames(languages map[string]string) string {
	if len(languages) == 0 {
		return Unknown
	}
	names := make([]string, 0, len(languages))
	for _, key := range sortedKeys(languages) {
		if name := strings.TrimSpace(languages[key]); name != "" {
			names = append(names, name)
		}
	}
	return orUnknown(strings.Join(names, ", "))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func first(values []string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	return first(values)
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return Unknown
	}
	return strings.TrimSpace(value)
}
