package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrPersist wraps failures to write the cache file. The in-memory state is
// kept when it occurs.
var ErrPersist = errors.New("failed to persist cache")

// Stats is a point-in-time count of cache entries against the TTL.
type Stats struct {
	Total   int `json:"total"   yaml:"total"`
	Valid   int `json:"valid"   yaml:"valid"`
	Expired int `json:"expired" yaml:"expired"`
}

// Store is a key-value cache of timestamped entries mirrored to one JSON file.
//
// The map and the file are kept consistent after every successful Set, Clear,
// and Cleanup. Mutations and the persist that follows run under one lock, so
// a Store is safe for concurrent use within one process. Nothing coordinates
// separate processes sharing the same file.
type Store struct {
	path   string
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger

	mu      sync.RWMutex
	entries map[string]Entry
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the entry lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for load and persist diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store backed by path and loads any existing entries.
// It never fails: an absent, unreadable, or unparseable file yields an empty
// cache.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:    path,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  zerolog.Nop(),
		entries: make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().
				Str("operation", "load").
				Str("path", s.path).
				Err(err).
				Msg("cache file unreadable, starting empty")
		}
		return
	}

	var entries map[string]Entry
	if unmarshalErr := json.Unmarshal(data, &entries); unmarshalErr != nil {
		s.logger.Warn().
			Str("operation", "load").
			Str("path", s.path).
			Err(unmarshalErr).
			Msg("cache file corrupt, starting empty")
		return
	}
	if entries != nil {
		s.entries = entries
	}

	s.logger.Debug().
		Str("operation", "load").
		Str("path", s.path).
		Int("entries", len(s.entries)).
		Msg("cache loaded")
}

// Get returns the payload stored for (endpoint, params) if it is younger
// than the TTL. Expired entries are ignored but left in place.
func (s *Store) Get(endpoint string, params map[string]string) (json.RawMessage, bool) {
	key := Key(endpoint, params)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || !entry.IsValid(s.now(), s.ttl) {
		return nil, false
	}
	return entry.Data, true
}

// Set stores data for (endpoint, params) with the current time and persists
// the cache. A persist failure is returned wrapped in ErrPersist; the entry
// stays in memory and remains readable.
func (s *Store) Set(endpoint string, data json.RawMessage, params map[string]string) error {
	key := Key(endpoint, params)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = newEntry(data, s.now())
	return s.persistLocked()
}

// Clear removes every entry and persists the empty cache.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Entry)
	return s.persistLocked()
}

// Cleanup removes entries whose age has reached the TTL and returns how many
// were removed. The file is written only when something was removed.
func (s *Store) Cleanup() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if !entry.IsValid(now, s.ttl) {
			delete(s.entries, key)
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}
	return removed, s.persistLocked()
}

// Stats counts entries against the TTL at call time.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	stats := Stats{Total: len(s.entries)}
	for _, entry := range s.entries {
		if entry.IsValid(now, s.ttl) {
			stats.Valid++
		} else {
			stats.Expired++
		}
	}
	return stats
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// TTL returns the entry lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// persistLocked writes the full map to a temp file in the target directory
// and renames it over the cache file. Must be called with mu held.
func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return s.persistFailed(fmt.Errorf("%w: marshal: %w", ErrPersist, err))
	}

	dir := filepath.Dir(s.path)
	if mkErr := os.MkdirAll(dir, 0700); mkErr != nil {
		return s.persistFailed(fmt.Errorf("%w: create directory: %w", ErrPersist, mkErr))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return s.persistFailed(fmt.Errorf("%w: create temp file: %w", ErrPersist, err))
	}
	tmpPath := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return s.persistFailed(fmt.Errorf("%w: write: %w", ErrPersist, writeErr))
	}
	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tmpPath)
		return s.persistFailed(fmt.Errorf("%w: close: %w", ErrPersist, closeErr))
	}
	if renameErr := os.Rename(tmpPath, s.path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return s.persistFailed(fmt.Errorf("%w: rename: %w", ErrPersist, renameErr))
	}

	s.logger.Debug().
		Str("operation", "persist").
		Str("path", s.path).
		Int("entries", len(s.entries)).
		Msg("cache persisted")
	return nil
}

func (s *Store) persistFailed(err error) error {
	s.logger.Warn().
		Str("operation", "persist").
		Str("path", s.path).
		Err(err).
		Msg("cache write failed, keeping in-memory state")
	return err
}
