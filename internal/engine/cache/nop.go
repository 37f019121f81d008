package cache

import (
	"encoding/json"
	"time"
)

// Nop is a cache that stores nothing. It backs --no-cache runs.
type Nop struct{}

// Get always misses.
func (Nop) Get(string, map[string]string) (json.RawMessage, bool) { return nil, false }

// Set discards the payload.
func (Nop) Set(string, json.RawMessage, map[string]string) error { return nil }

// Clear is a no-op.
func (Nop) Clear() error { return nil }

// Cleanup removes nothing.
func (Nop) Cleanup() (int, error) { return 0, nil }

// Stats reports an empty cache.
func (Nop) Stats() Stats { return Stats{} }

// Path returns "".
func (Nop) Path() string { return "" }

// TTL returns 0.
func (Nop) TTL() time.Duration { return 0 }
