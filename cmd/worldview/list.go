package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/worldview/internal/explorer"
	"github.com/verte-zerg/worldview/internal/model"
	"github.com/verte-zerg/worldview/internal/restcountries"
	"github.com/verte-zerg/worldview/internal/stats"
)

const showConcurrency = 4

var (
	listSearch string
	listRegion string
	listOutput string
	listTop    int

	regionsSummary bool

	showByCode bool
)

// countryRecord is the export shape of a country.
type countryRecord struct {
	Name           string   `json:"name" yaml:"name"`
	Code           string   `json:"code,omitempty" yaml:"code,omitempty"`
	NativeName     string   `json:"nativeName" yaml:"nativeName"`
	Population     int64    `json:"population" yaml:"population"`
	Region         string   `json:"region" yaml:"region"`
	Subregion      string   `json:"subregion" yaml:"subregion"`
	Capital        string   `json:"capital" yaml:"capital"`
	TopLevelDomain string   `json:"topLevelDomain" yaml:"topLevelDomain"`
	Currencies     string   `json:"currencies" yaml:"currencies"`
	Languages      string   `json:"languages" yaml:"languages"`
	Borders        []string `json:"borders" yaml:"borders"`
	Flag           string   `json:"flag" yaml:"flag"`
}

func newCountryRecord(c model.Country) countryRecord {
	code := c.Code()
	if code == model.Unknown {
		code = ""
	}
	return countryRecord{
		Name:           c.Name(),
		Code:           code,
		NativeName:     c.NativeName(),
		Population:     c.Population(),
		Region:         c.Region(),
		Subregion:      c.Subregion(),
		Capital:        c.Capital(),
		TopLevelDomain: c.TopLevelDomain(),
		Currencies:     c.Currencies(),
		Languages:      c.Languages(),
		Borders:        c.Borders(),
		Flag:           c.FlagURL(),
	}
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List countries",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVarP(&listRegion, "region", "r", "", "exact region filter")
	cmd.Flags().StringVarP(&listOutput, "output", "o", "table", "output format (table, json, yaml)")
	cmd.Flags().IntVar(&listTop, "top", 0, "only the N most populous countries")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	switch listOutput {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("--output must be one of table, json, yaml")
	}
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	var countries []model.Country
	if listRegion != "" {
		result := a.service.CountriesByRegion(ctx, listRegion)
		if result.Status == restcountries.StatusFailed {
			// The region endpoint has no fallback; filter the full collection.
			all := a.service.AllCountries(ctx).Value
			countries = explorer.Filter(all, listSearch, canonicalRegion(all, listRegion))
		} else {
			countries = explorer.Filter(result.Value, listSearch, "")
		}
	} else {
		result := a.service.AllCountries(ctx)
		if result.Source == restcountries.SourceFallback {
			logErrf("API unavailable, showing bundled data\n")
		}
		countries = explorer.Filter(result.Value, listSearch, "")
	}

	if listTop > 0 {
		countries = stats.TopByPopulation(countries, listTop)
	}

	out := cmd.OutOrStdout()
	switch listOutput {
	case "json":
		return writeJSON(out, records(countries))
	case "yaml":
		return writeYAML(out, records(countries))
	}
	if len(countries) == 0 {
		_, err := fmt.Fprintln(cmd.ErrOrStderr(), explorer.NoResultsMessage)
		return err
	}
	return writeTable(out, countries)
}

// canonicalRegion matches region against the known regions of countries
// the way the region endpoint does: trimmed and case-insensitive.
func canonicalRegion(countries []model.Country, region string) string {
	region = strings.TrimSpace(region)
	fold := cases.Fold()
	want := fold.String(region)
	for _, known := range explorer.Regions(countries) {
		if fold.String(known) == want {
			return known
		}
	}
	return region
}

func records(countries []model.Country) []countryRecord {
	out := make([]countryRecord, 0, len(countries))
	for _, c := range countries {
		out = append(out, newCountryRecord(c))
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeTable prints aligned columns, truncating rows to the terminal width
// when w is a terminal.
func writeTable(w io.Writer, countries []model.Country) error {
	headers := []string{"NAME", "REGION", "CAPITAL", "POPULATION"}
	rows := make([][]string, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, []string{c.Name(), c.Region(), c.Capital(), c.FormatPopulation()})
	}
	return writeLines(w, stats.FormatTable(headers, rows, map[int]bool{3: true}))
}

func writeLines(w io.Writer, lines []string) error {
	maxWidth := terminalWidth(w)
	for _, line := range lines {
		if maxWidth > 0 {
			line = runewidth.Truncate(line, maxWidth, "…")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// terminalWidth returns the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show NAME...",
		Short: "Show country details",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runShowCmd,
	}
	cmd.Flags().BoolVar(&showByCode, "code", false, "treat arguments as alpha codes")
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	results := make([]restcountries.Result[model.Country], len(args))
	var g errgroup.Group
	g.SetLimit(showConcurrency)
	for i, arg := range args {
		i, arg := i, arg
		g.Go(func() error {
			if showByCode {
				results[i] = a.service.CountryByCode(ctx, arg)
			} else {
				results[i] = a.service.CountryByName(ctx, arg)
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var failed []error
	for i, result := range results {
		switch {
		case result.OK():
			if err := writeDetail(out, result.Value.DetailFragment()); err != nil {
				return err
			}
		case errors.Is(result.Err, restcountries.ErrNotFound):
			failed = append(failed, fmt.Errorf("%s: not found", args[i]))
		default:
			failed = append(failed, fmt.Errorf("%s: %s", args[i], explorer.DetailErrorMessage))
		}
	}
	return errors.Join(failed...)
}

func writeDetail(w io.Writer, f model.Fragment) error {
	var b strings.Builder
	title := f.Title
	if f.FlagEmoji != "" {
		title = f.FlagEmoji + " " + title
	}
	b.WriteString(title + "\n")
	for _, field := range f.Fields {
		fmt.Fprintf(&b, "  %s: %s\n", field.Label, field.Value)
	}
	if f.Borders != nil {
		codes := make([]string, 0, len(f.Borders.Actions))
		for _, action := range f.Borders.Actions {
			codes = append(codes, action.Label)
		}
		fmt.Fprintf(&b, "  %s: %s\n", f.Borders.Heading, strings.Join(codes, ", "))
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRegionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the regions of the loaded countries",
		Args:  cobra.NoArgs,
		RunE:  runRegionsCmd,
	}
	cmd.Flags().BoolVar(&regionsSummary, "summary", false, "show country count and population per region")
	return cmd
}

func runRegionsCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	result := a.service.AllCountries(cmd.Context())
	if !regionsSummary {
		return writeLines(cmd.OutOrStdout(), explorer.Regions(result.Value))
	}
	summaries := stats.SummarizeRegions(result.Value)
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Region,
			strconv.Itoa(s.Countries),
			model.FormatPopulation(s.Population),
			s.Largest,
		})
	}
	headers := []string{"REGION", "COUNTRIES", "POPULATION", "LARGEST"}
	return writeLines(cmd.OutOrStdout(), stats.FormatTable(headers, rows, map[int]bool{1: true, 2: true}))
}
