// Package engine orchestrates the response cache and the GitHub API client
// and provides pure filtering, sorting, and lookup over fetched results.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rshade/ghscout/internal/apierr"
	"github.com/rshade/ghscout/internal/engine/cache"
	"github.com/rshade/ghscout/internal/github"
	"github.com/rshade/ghscout/internal/logging"
)

// Logical endpoint names used in cache keys.
const (
	EndpointSearch    = "search"
	EndpointUserRepos = "user_repos"
	EndpointRepo      = "repo"
	EndpointUser      = "user"
)

// Cache is the subset of the cache store the service needs.
type Cache interface {
	Get(endpoint string, params map[string]string) (json.RawMessage, bool)
	Set(endpoint string, data json.RawMessage, params map[string]string) error
	Clear() error
	Cleanup() (int, error)
	Stats() cache.Stats
	Path() string
	TTL() time.Duration
}

// API is the subset of the GitHub client the service needs.
type API interface {
	SearchRepositories(ctx context.Context, p github.SearchParams) (json.RawMessage, error)
	ListUserRepositories(ctx context.Context, p github.ListParams) (json.RawMessage, error)
	GetRepository(ctx context.Context, owner, name string) (json.RawMessage, error)
	GetUser(ctx context.Context, username string) (json.RawMessage, error)
}

// Service answers read operations from the cache when it can and from the
// API otherwise, populating the cache on every successful fetch.
type Service struct {
	cache Cache
	api   API
}

// NewService wires a cache and an API client. A nil cache disables caching.
func NewService(c Cache, api API) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{cache: c, api: api}
}

// fetchFunc performs the uncached request.
type fetchFunc func(ctx context.Context) (json.RawMessage, error)

// fetchCached returns the payload for (endpoint, params) decoded into T,
// from the cache when a decodable entry exists and from fetch otherwise.
// Only payloads that decode are stored. Fetch errors are returned unchanged.
// A failure to persist the cache is logged and does not fail the call.
func fetchCached[T any](
	ctx context.Context,
	s *Service,
	endpoint string,
	params map[string]string,
	fetch fetchFunc,
) (T, error) {
	log := logging.FromContext(ctx)
	var zero T

	if data, ok := s.cache.Get(endpoint, params); ok {
		var out T
		err := decode(data, &out)
		if err == nil {
			log.Debug().Ctx(ctx).
				Str("component", "engine").
				Str("operation", endpoint).
				Bool("cache_hit", true).
				Msg("served from cache")
			return out, nil
		}
		log.Warn().Ctx(ctx).
			Str("component", "engine").
			Str("operation", endpoint).
			Err(err).
			Msg("cached entry does not decode, refetching")
	}

	data, err := fetch(ctx)
	if err != nil {
		return zero, err
	}
	var out T
	if err = decode(data, &out); err != nil {
		return zero, err
	}

	if setErr := s.cache.Set(endpoint, data, params); setErr != nil {
		log.Warn().Ctx(ctx).
			Str("component", "engine").
			Str("operation", endpoint).
			Err(setErr).
			Msg("could not write cache, continuing with fetched data")
	}

	log.Debug().Ctx(ctx).
		Str("component", "engine").
		Str("operation", endpoint).
		Bool("cache_hit", false).
		Int("bytes", len(data)).
		Msg("fetched from API")
	return out, nil
}

// SearchRepositories searches repositories.
func (s *Service) SearchRepositories(ctx context.Context, p github.SearchParams) (*github.SearchResult, error) {
	result, err := fetchCached[github.SearchResult](ctx, s, EndpointSearch, p.Params(),
		func(ctx context.Context) (json.RawMessage, error) {
			return s.api.SearchRepositories(ctx, p)
		})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListUserRepositories lists the public repositories of an owner.
func (s *Service) ListUserRepositories(ctx context.Context, p github.ListParams) ([]github.Repository, error) {
	return fetchCached[[]github.Repository](ctx, s, EndpointUserRepos, p.Params(),
		func(ctx context.Context) (json.RawMessage, error) {
			return s.api.ListUserRepositories(ctx, p)
		})
}

// GetRepository returns a single repository.
func (s *Service) GetRepository(ctx context.Context, owner, name string) (*github.Repository, error) {
	params := map[string]string{"owner": owner, "name": name}
	repo, err := fetchCached[github.Repository](ctx, s, EndpointRepo, params,
		func(ctx context.Context) (json.RawMessage, error) {
			return s.api.GetRepository(ctx, owner, name)
		})
	if err != nil {
		return nil, err
	}
	return &repo, nil
}

// GetUser returns a single user.
func (s *Service) GetUser(ctx context.Context, username string) (*github.User, error) {
	params := map[string]string{"username": username}
	user, err := fetchCached[github.User](ctx, s, EndpointUser, params,
		func(ctx context.Context) (json.RawMessage, error) {
			return s.api.GetUser(ctx, username)
		})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindInSearch runs a search and returns the result item with the given id.
// A missing id yields an apierr.KindNotFoundInResult error.
func (s *Service) FindInSearch(ctx context.Context, p github.SearchParams, id int64) (*github.Repository, error) {
	result, err := s.SearchRepositories(ctx, p)
	if err != nil {
		return nil, err
	}
	repo, ok := FindRepositoryByID(result.Items, id)
	if !ok {
		return nil, apierr.NotFoundInResult("no repository with id %d in results for %q", id, p.Query)
	}
	return &repo, nil
}

// CacheStats reports current cache entry counts.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// ClearCache removes every cache entry.
func (s *Service) ClearCache() error {
	return s.cache.Clear()
}

// CleanupCache removes expired cache entries and returns how many were removed.
func (s *Service) CleanupCache() (int, error) {
	return s.cache.Cleanup()
}

// CachePath returns the cache file path, empty when caching is disabled.
func (s *Service) CachePath() string {
	return s.cache.Path()
}

// CacheTTL returns the configured entry lifetime.
func (s *Service) CacheTTL() time.Duration {
	return s.cache.TTL()
}

// decode unmarshals a payload into its typed form. A failure here means a
// field has an unexpected type.
func decode(data json.RawMessage, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apierr.Validation("invalid response: field '%s' has unexpected type %s", typeErr.Field, typeErr.Value)
		}
		return apierr.Validation("invalid response: %s", err)
	}
	return nil
}
