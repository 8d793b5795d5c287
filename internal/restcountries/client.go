package restcountries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/verte-zerg/worldview/internal/model"
)

// DefaultBaseURL is the REST Countries v3.1 endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 15 * time.Second

const userAgent = "worldview (+https://github.com/verte-zerg/worldview)"

// The bulk endpoint rejects requests without a field list and caps it at ten.
var allFields = []string{
	"name", "population", "region", "subregion", "capital",
	"tld", "currencies", "languages", "borders", "flags",
}

// Client issues GET requests against the REST Countries API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client. A nil httpClient gets one with the given timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// All fetches the full collection.
func (c *Client) All(ctx context.Context) ([]model.RawCountry, error) {
	q := url.Values{}
	q.Set("fields", strings.Join(allFields, ","))
	return c.get(ctx, "/all", q)
}

// ByName fetches exact (full-text) name matches.
func (c *Client) ByName(ctx context.Context, name string) ([]model.RawCountry, error) {
	q := url.Values{}
	q.Set("fullText", "true")
	return c.get(ctx, "/name/"+url.PathEscape(name), q)
}

// ByRegion fetches every country of a region.
func (c *Client) ByRegion(ctx context.Context, region string) ([]model.RawCountry, error) {
	return c.get(ctx, "/region/"+url.PathEscape(region), nil)
}

// ByCode fetches a country by its cca2/cca3/ccn3/cioc code.
func (c *Client) ByCode(ctx context.Context, code string) ([]model.RawCountry, error) {
	return c.get(ctx, "/alpha/"+url.PathEscape(code), nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]model.RawCountry, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, NewFetchError(target, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewFetchError(target, 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewFetchError(target, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewFetchError(target, 0, fmt.Errorf("failed to read response: %w", err))
	}
	raws, err := DecodeRecords(body)
	if err != nil {
		return nil, NewFetchError(target, 0, err)
	}
	return raws, nil
}

// DecodeRecords decodes either a JSON array of records or a single record.
func DecodeRecords(data []byte) ([]model.RawCountry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("failed to decode countries: empty document")
	}
	if trimmed[0] == '{' {
		var raw model.RawCountry
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode country: %w", err)
		}
		return []model.RawCountry{raw}, nil
	}
	var raws []model.RawCountry
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode countries: %w", err)
	}
	return raws, nil
}
