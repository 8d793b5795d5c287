package restcountries

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/verte-zerg/worldview/internal/model"
)

//go:embed data/countries.json
var bundledCountries []byte

// Loader provides the local dataset used when the remote API is unavailable.
type Loader interface {
	Load(ctx context.Context) ([]model.RawCountry, error)
}

// BundledLoader serves the dataset compiled into the binary.
type BundledLoader struct{}

// Load implements Loader.
func (BundledLoader) Load(ctx context.Context) ([]model.RawCountry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DecodeRecords(bundledCountries)
}

// FileLoader reads a same-schema JSON document from disk.
type FileLoader struct {
	Path string
}

// Load implements Loader.
func (l FileLoader) Load(ctx context.Context) ([]model.RawCountry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.Path == "" {
		return nil, fmt.Errorf("fallback path is empty")
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback dataset: %w", err)
	}
	return DecodeRecords(data)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) ([]model.RawCountry, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context) ([]model.RawCountry, error) {
	return f(ctx)
}
