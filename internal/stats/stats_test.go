package stats

import (
	"testing"

	"github.com/verte-zerg/worldview/internal/model"
)

func country(t *testing.T, name, region string, population int64) model.Country {
	t.Helper()
	c, err := model.NewCountry(model.RawCountry{
		Name:       model.RawCountryName{Common: name},
		Region:     region,
		Population: population,
		Flags:      model.RawFlags{PNG: name + ".png"},
	})
	if err != nil {
		t.Fatalf("new country: %v", err)
	}
	return c
}

func TestTopByPopulation(t *testing.T) {
	countries := []model.Country{
		country(t, "Iceland", "Europe", 366425),
		country(t, "Germany", "Europe", 83240525),
		country(t, "Bravo", "Oceania", 1000),
		country(t, "Alpha", "Oceania", 1000),
	}
	top := TopByPopulation(countries, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 countries, got %d", len(top))
	}
	got := []string{top[0].Name(), top[1].Name(), top[2].Name()}
	want := []string{"Germany", "Iceland", "Alpha"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
	if countries[0].Name() != "Iceland" {
		t.Fatalf("input was reordered")
	}
	if all := TopByPopulation(countries, 0); len(all) != len(countries) {
		t.Fatalf("expected all countries, got %d", len(all))
	}
}

func TestSummarizeRegions(t *testing.T) {
	countries := []model.Country{
		country(t, "France", "Europe", 67391582),
		country(t, "Antarctica", "", 1000),
		country(t, "Japan", "Asia", 125836021),
		country(t, "Germany", "Europe", 83240525),
	}
	summaries := SummarizeRegions(countries)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(summaries))
	}
	if summaries[0].Region != "Asia" || summaries[1].Region != "Europe" || summaries[2].Region != model.Unknown {
		t.Fatalf("unexpected region order: %+v", summaries)
	}
	europe := summaries[1]
	if europe.Countries != 2 || europe.Population != 67391582+83240525 || europe.Largest != "Germany" {
		t.Fatalf("unexpected europe summary: %+v", europe)
	}
}
