// Package restcountries fetches country records from the REST Countries API.
//
// Service operations never return an error to the caller. Network, decoding
// and lookup failures are logged and folded into a Result whose Status tells
// "has data" apart from "matched nothing" and "could not fetch".
package restcountries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/verte-zerg/worldview/internal/logging"
	"github.com/verte-zerg/worldview/internal/model"
)

// Options configures a Service.
type Options struct {
	Client   *Client
	Fallback Loader
	Logger   *logging.Logger
}

// Service is the country data source.
type Service struct {
	client   *Client
	fallback Loader
	log      *logging.Logger

	cache   collectionCache
	group   singleflight.Group
	fetches atomic.Int64
}

// NewService constructs a Service with an empty cache. Missing options get
// the default client and the bundled fallback dataset.
func NewService(opts Options) *Service {
	client := opts.Client
	if client == nil {
		client = NewClient(DefaultBaseURL, DefaultTimeout, nil)
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = BundledLoader{}
	}
	return &Service{
		client:   client,
		fallback: fallback,
		log:      opts.Logger,
	}
}

// RemoteFetches returns how many bulk requests reached the remote API.
func (s *Service) RemoteFetches() int64 {
	return s.fetches.Load()
}

// AllCountries returns the full collection. The first successful remote
// fetch populates the cache; later calls are served from it. On failure
// the fallback dataset is returned instead and is not cached.
//
// Concurrent callers share one fetch. The shared fetch is detached from
// any single caller's cancellation and is bounded by the client timeout;
// a caller whose own ctx ends stops waiting and gets StatusFailed.
func (s *Service) AllCountries(ctx context.Context) Result[[]model.Country] {
	if cached, ok := s.cache.get(); ok {
		return Result[[]model.Country]{Value: cached, Status: StatusOK, Source: SourceCache}
	}
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan("all", func() (any, error) {
		if cached, ok := s.cache.get(); ok {
			return Result[[]model.Country]{Value: cached, Status: StatusOK, Source: SourceCache}, nil
		}
		return s.fetchAll(shared), nil
	})
	select {
	case res := <-ch:
		return res.Val.(Result[[]model.Country])
	case <-ctx.Done():
		return Result[[]model.Country]{
			Value:  []model.Country{},
			Status: StatusFailed,
			Source: SourceRemote,
			Err:    fmt.Errorf("%w: %w", ErrFetchFailure, ctx.Err()),
		}
	}
}

func (s *Service) fetchAll(ctx context.Context) Result[[]model.Country] {
	s.fetches.Add(1)
	raws, err := s.client.All(ctx)
	if err != nil {
		s.logFailure("all", err, "failed to fetch countries")
		return s.loadFallback(ctx, err)
	}
	countries, bad := model.NewCountries(raws)
	s.logMalformed("all", bad)
	if len(countries) == 0 {
		err := fmt.Errorf("%w: no usable records in collection", ErrFetchFailure)
		s.logFailure("all", err, "failed to fetch countries")
		return s.loadFallback(ctx, err)
	}
	s.cache.fill(countries)
	s.log.WithFields(map[string]any{"op": "all", "count": len(countries)}).Debug("countries cached")
	return Result[[]model.Country]{Value: countries, Status: StatusOK, Source: SourceRemote}
}

func (s *Service) loadFallback(ctx context.Context, cause error) Result[[]model.Country] {
	raws, err := s.fallback.Load(ctx)
	if err != nil {
		ferr := fmt.Errorf("%w: %w", ErrLocalFallbackFailure, err)
		s.logFailure("fallback", ferr, "failed to load local countries")
		return Result[[]model.Country]{
			Value:  []model.Country{},
			Status: StatusFailed,
			Source: SourceFallback,
			Err:    errors.Join(cause, ferr),
		}
	}
	countries, bad := model.NewCountries(raws)
	s.logMalformed("fallback", bad)
	status := StatusOK
	if len(countries) == 0 {
		status = StatusEmpty
	}
	s.log.WithFields(map[string]any{"op": "fallback", "count": len(countries)}).Info("serving local countries")
	return Result[[]model.Country]{Value: countries, Status: status, Source: SourceFallback, Err: cause}
}

// CountryByName looks a country up by its exact name.
func (s *Service) CountryByName(ctx context.Context, name string) Result[model.Country] {
	name = strings.TrimSpace(name)
	if name == "" {
		return notFound[model.Country]("name", name)
	}
	raws, err := s.client.ByName(ctx, name)
	return s.single("name", name, raws, err)
}

// CountryByCode looks a country up by its code.
func (s *Service) CountryByCode(ctx context.Context, code string) Result[model.Country] {
	code = strings.TrimSpace(code)
	if code == "" {
		return notFound[model.Country]("code", code)
	}
	raws, err := s.client.ByCode(ctx, code)
	return s.single("code", code, raws, err)
}

// CountriesByRegion returns every country of region; empty on failure.
func (s *Service) CountriesByRegion(ctx context.Context, region string) Result[[]model.Country] {
	region = strings.TrimSpace(region)
	if region == "" {
		return notFound[[]model.Country]("region", region, []model.Country{})
	}
	raws, err := s.client.ByRegion(ctx, region)
	if err != nil {
		if IsNotFoundStatus(err) {
			s.logFailure("region", err, "region not found")
			return notFound[[]model.Country]("region", region, []model.Country{})
		}
		s.logFailure("region", err, "failed to fetch countries by region")
		return Result[[]model.Country]{Value: []model.Country{}, Status: StatusFailed, Source: SourceRemote, Err: err}
	}
	countries, bad := model.NewCountries(raws)
	s.logMalformed("region", bad)
	if len(countries) == 0 {
		return notFound[[]model.Country]("region", region, []model.Country{})
	}
	return Result[[]model.Country]{Value: countries, Status: StatusOK, Source: SourceRemote}
}

func (s *Service) single(op, key string, raws []model.RawCountry, err error) Result[model.Country] {
	if err != nil {
		if IsNotFoundStatus(err) {
			s.logFailure(op, err, "country not found")
			return notFound[model.Country](op, key)
		}
		s.logFailure(op, err, "failed to fetch country")
		return Result[model.Country]{Status: StatusFailed, Source: SourceRemote, Err: err}
	}
	if len(raws) == 0 {
		s.log.WithFields(map[string]any{"op": op, "key": key}).Debug("empty lookup result")
		return notFound[model.Country](op, key)
	}
	country, err := model.NewCountry(raws[0])
	if err != nil {
		s.logFailure(op, err, "failed to normalize country")
		return Result[model.Country]{Status: StatusFailed, Source: SourceRemote, Err: err}
	}
	return Result[model.Country]{Value: country, Status: StatusOK, Source: SourceRemote}
}

func notFound[T any](op, key string, empty ...T) Result[T] {
	var value T
	if len(empty) > 0 {
		value = empty[0]
	}
	return Result[T]{
		Value:  value,
		Status: StatusEmpty,
		Source: SourceRemote,
		Err:    fmt.Errorf("%w: %s %q", ErrNotFound, op, key),
	}
}

func (s *Service) logFailure(op string, err error, msg string) {
	fields := map[string]any{"op": op}
	var fe *FetchError
	if errors.As(err, &fe) {
		fields["url"] = fe.URL
		if fe.StatusCode != 0 {
			fields["status"] = fe.StatusCode
		}
	}
	s.log.WithFields(fields).Warn(err, msg)
}

func (s *Service) logMalformed(op string, errs []error) {
	for _, err := range errs {
		s.log.WithFields(map[string]any{"op": op}).Warn(err, "skipped malformed record")
	}
}
