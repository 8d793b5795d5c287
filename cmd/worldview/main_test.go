package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/worldview/internal/config"
)

const (
	franceRecord  = `{"name":{"common":"France"},"cca3":"FRA","population":67391582,"region":"Europe","capital":["Paris"],"borders":["BEL","DEU"],"flags":{"svg":"fr.svg"}}`
	germanyRecord = `{"name":{"common":"Germany"},"cca3":"DEU","population":83240525,"region":"Europe","capital":["Berlin"],"borders":["FRA"],"flags":{"svg":"de.svg"}}`
	japanRecord   = `{"name":{"common":"Japan"},"cca3":"JPN","population":125836021,"region":"Asia","capital":["Tokyo"],"flags":{"svg":"jp.svg"}}`
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
}

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
	mux.HandleFunc("/all", func(w http.ResponseWriter, _ *http.Request) {
		write(w, "["+franceRecord+","+germanyRecord+","+japanRecord+"]")
	})
	mux.HandleFunc("/name/", func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimPrefix(r.URL.Path, "/name/") {
		case "France":
			write(w, "["+franceRecord+"]")
		case "Germany":
			write(w, "["+germanyRecord+"]")
		default:
			http.Error(w, `{"status":404,"message":"Not Found"}`, http.StatusNotFound)
		}
	})
	mux.HandleFunc("/alpha/DEU", func(w http.ResponseWriter, _ *http.Request) {
		write(w, germanyRecord)
	})
	mux.HandleFunc("/region/Europe", func(w http.ResponseWriter, _ *http.Request) {
		write(w, "["+franceRecord+","+germanyRecord+"]")
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListJSON(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	out, _, err := execute(t, "list", "--base-url", api.URL, "-o", "json", "--search", "an")
	require.NoError(t, err)

	var got []countryRecord
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "France", got[0].Name)
	assert.Equal(t, int64(67391582), got[0].Population)
	assert.Equal(t, []string{"BEL", "DEU"}, got[0].Borders)
}

func TestListRegionYAML(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	out, _, err := execute(t, "list", "--base-url", api.URL, "-o", "yaml", "--region", "Europe", "--search", "ger")
	require.NoError(t, err)

	var got []countryRecord
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Germany", got[0].Name)
	assert.Equal(t, "Berlin", got[0].Capital)
}

func TestListTableFallsBackToBundledData(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	out, _, err := execute(t, "list", "--base-url", server.URL, "--search", "iceland")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[1], "Iceland")
	assert.Contains(t, lines[1], "Reykjavik")
}

func TestListRegionFallbackIgnoresCase(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	out, _, err := execute(t, "list", "--base-url", server.URL, "-o", "json", "--region", " europe ", "--search", "iceland")
	require.NoError(t, err)

	var got []countryRecord
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Iceland", got[0].Name)
	assert.Equal(t, "Europe", got[0].Region)
}

func TestListTop(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	out, _, err := execute(t, "list", "--base-url", api.URL, "-o", "json", "--top", "2")
	require.NoError(t, err)

	var got []countryRecord
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Japan", got[0].Name)
	assert.Equal(t, "Germany", got[1].Name)
}

func TestListNoResults(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	out, errOut, err := execute(t, "list", "--base-url", api.URL, "--search", "atlantis")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No countries found matching your criteria.")
}

func TestListRejectsUnknownOutput(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "list", "-o", "xml")
	require.Error(t, err)
}

func TestShowKeepsArgumentOrder(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	out, _, err := execute(t, "show", "--base-url", api.URL, "Germany", "France")
	require.NoError(t, err)
	germany := strings.Index(out, "Germany")
	france := strings.Index(out, "France\n")
	require.GreaterOrEqual(t, germany, 0)
	require.GreaterOrEqual(t, france, 0)
	assert.Less(t, germany, france)
	assert.Contains(t, out, "Border Countries: BEL, DEU")
}

func TestShowReportsMissing(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	out, _, err := execute(t, "show", "--base-url", api.URL, "France", "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Atlantis: not found")
	assert.Contains(t, out, "France")
}

func TestShowByCode(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	out, _, err := execute(t, "show", "--base-url", api.URL, "--code", "DEU")
	require.NoError(t, err)
	assert.Contains(t, out, "Germany")
	assert.Contains(t, out, "Capital: Berlin")
}

func TestRegions(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	out, _, err := execute(t, "regions", "--base-url", api.URL)
	require.NoError(t, err)
	assert.Equal(t, "Asia\nEurope\n", out)
}

func TestRegionsSummary(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	out, _, err := execute(t, "regions", "--base-url", api.URL, "--summary")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "REGION"))
	assert.Contains(t, lines[1], "Asia")
	assert.Contains(t, lines[1], "Japan")
	assert.Contains(t, lines[2], "150,632,107")
	assert.Contains(t, lines[2], "Germany")
}

func TestThemeRoundTrip(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "light (system)\n", out)

	out, _, err = execute(t, "theme", "set", "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark (saved)\n", out)

	out, _, err = execute(t, "theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "dark (saved)\n", out)

	out, _, err = execute(t, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "light (saved)\n", out)

	out, _, err = execute(t, "theme", "clear")
	require.NoError(t, err)
	assert.Equal(t, "light (system)\n", out)
}

func TestThemeSetRejectsUnknown(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "theme", "set", "sepia")
	require.Error(t, err)
}

func TestInvalidTimeoutIsRejected(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "regions", "--timeout", "0s")
	require.Error(t, err)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "api.timeout", verr.Field)
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	isolate(t)
	api := newAPI(t)

	path := config.DefaultConfigPath()
	require.NoError(t, ensureConfigFile(path))
	require.NoError(t, os.WriteFile(path, []byte("[api]\nbase-url = \""+api.URL+"\"\n"), 0o644))

	out, _, err := execute(t, "regions")
	require.NoError(t, err)
	assert.Equal(t, "Asia\nEurope\n", out)
}

func TestConfigTemplateDecodes(t *testing.T) {
	isolate(t)
	path := config.DefaultConfigPath()
	require.NoError(t, ensureConfigFile(path))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.API.BaseURL)
	assert.Nil(t, cfg.Theme.Default)
}
