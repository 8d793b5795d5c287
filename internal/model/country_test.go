package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const franceJSON = `{
	"name": {"common": "France", "official": "French Republic",
		"nativeName": {"fra": {"official": "République française", "common": "France"}}},
	"cca3": "FRA",
	"population": 67391582,
	"region": "Europe",
	"subregion": "Western Europe",
	"capital": ["Paris"],
	"tld": [".fr"],
	"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
	"languages": {"fra": "French"},
	"borders": ["AND", "BEL", "DEU"],
	"flags": {"svg": "https://flagcdn.com/fr.svg", "png": "https://flagcdn.com/w320/fr.png"},
	"flag": "🇫🇷"
}`

func decodeRaw(t *testing.T, data string) RawCountry {
	t.Helper()
	var raw RawCountry
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	return raw
}

func TestNewCountryFullRecord(t *testing.T) {
	c, err := NewCountry(decodeRaw(t, franceJSON))
	require.NoError(t, err)

	assert.Equal(t, "France", c.Name())
	assert.Equal(t, "FRA", c.Code())
	assert.Equal(t, "France", c.NativeName())
	assert.Equal(t, int64(67391582), c.Population())
	assert.Equal(t, "Europe", c.Region())
	assert.Equal(t, "Western Europe", c.Subregion())
	assert.Equal(t, "Paris", c.Capital())
	assert.Equal(t, ".fr", c.TopLevelDomain())
	assert.Equal(t, "Euro", c.Currencies())
	assert.Equal(t, "French", c.Languages())
	assert.Equal(t, []string{"AND", "BEL", "DEU"}, c.Borders())
	assert.Equal(t, "https://flagcdn.com/fr.svg", c.FlagURL())
}

func TestNewCountryMissingOptionalFieldsUseSentinel(t *testing.T) {
	c, err := NewCountry(decodeRaw(t, `{
		"name": {"common": "Antarctica"},
		"population": 1000,
		"flags": {"png": "https://flagcdn.com/w320/aq.png"}
	}`))
	require.NoError(t, err)

	for name, value := range map[string]string{
		"code":       c.Code(),
		"nativeName": c.NativeName(),
		"region":     c.Region(),
		"subregion":  c.Subregion(),
		"capital":    c.Capital(),
		"tld":        c.TopLevelDomain(),
		"currencies": c.Currencies(),
		"languages":  c.Languages(),
	} {
		assert.Equal(t, Unknown, value, name)
	}
	assert.NotNil(t, c.Borders())
	assert.Empty(t, c.Borders())
	assert.Equal(t, "https://flagcdn.com/w320/aq.png", c.FlagURL())
}

func TestNewCountryRequiresNameAndFlag(t *testing.T) {
	_, err := NewCountry(RawCountry{Flags: RawFlags{SVG: "x.svg"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRecord))

	_, err = NewCountry(RawCountry{Name: RawCountryName{Common: "Nowhere"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}

func TestNewCountryJoinsInKeyOrder(t *testing.T) {
	c, err := NewCountry(decodeRaw(t, `{
		"name": {"common": "Switzerland", "nativeName": {
			"fra": {"common": "Suisse"}, "gsw": {"common": "Schweiz"}, "ita": {"common": "Svizzera"}}},
		"currencies": {"CHF": {"name": "Swiss franc"}},
		"languages": {"fra": "French", "gsw": "Swiss German", "ita": "Italian", "roh": "Romansh"},
		"flags": {"svg": "ch.svg"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Suisse", c.NativeName())
	assert.Equal(t, "French, Swiss German, Italian, Romansh", c.Languages())
	assert.Equal(t, "Swiss franc", c.Currencies())
}

func TestNewCountriesSkipsMalformed(t *testing.T) {
	raws := []RawCountry{
		decodeRaw(t, franceJSON),
		{Name: RawCountryName{Common: "Flagless"}},
	}
	countries, errs := NewCountries(raws)
	require.Len(t, countries, 1)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrMalformedRecord))
}

func TestFormatPopulation(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		67391582:   "67,391,582",
		1402112000: "1,402,112,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPopulation(in))
	}

	a, err := NewCountry(RawCountry{Name: RawCountryName{Common: "A"}, Population: 1234567, Flags: RawFlags{SVG: "a"}})
	require.NoError(t, err)
	b, err := NewCountry(RawCountry{Name: RawCountryName{Common: "B"}, Population: 1234567, Flags: RawFlags{SVG: "b"}})
	require.NoError(t, err)
	assert.Equal(t, a.FormatPopulation(), b.FormatPopulation())
}

func TestSummaryFragment(t *testing.T) {
	c, err := NewCountry(decodeRaw(t, franceJSON))
	require.NoError(t, err)

	f := c.SummaryFragment()
	assert.Equal(t, "France", f.ID)
	assert.Nil(t, f.Borders)
	pop, ok := f.Field(LabelPopulation)
	require.True(t, ok)
	assert.Equal(t, "67,391,582", pop)
	capital, ok := f.Field(LabelCapital)
	require.True(t, ok)
	assert.Equal(t, "Paris", capital)
}

func TestDetailFragmentBorders(t *testing.T) {
	c, err := NewCountry(decodeRaw(t, franceJSON))
	require.NoError(t, err)

	f := c.DetailFragment()
	require.NotNil(t, f.Borders)
	require.Len(t, f.Borders.Actions, 3)
	assert.Equal(t, "BEL", f.Borders.Actions[1].Code)

	island, err := NewCountry(RawCountry{Name: RawCountryName{Common: "Iceland"}, Flags: RawFlags{SVG: "is.svg"}})
	require.NoError(t, err)
	assert.Nil(t, island.DetailFragment().Borders)
}
