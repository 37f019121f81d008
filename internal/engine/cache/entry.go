package cache

import (
	"encoding/json"
	"time"
)

// Entry is a single cached payload with the time it was stored.
// Entries are replaced, never modified, when the same key is written again.
type Entry struct {
	// Data is the cached payload as raw JSON.
	Data json.RawMessage `json:"data"`

	// Timestamp is the store time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// newEntry creates an entry stored at now.
func newEntry(data json.RawMessage, now time.Time) Entry {
	return Entry{Data: data, Timestamp: now.UnixMilli()}
}

// StoredAt returns the store time.
func (e Entry) StoredAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Age returns how long ago the entry was stored relative to now.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt())
}

// IsValid reports whether the entry is younger than ttl at now. An entry
// stored after now is not valid.
func (e Entry) IsValid(now time.Time, ttl time.Duration) bool {
	age := e.Age(now)
	return age >= 0 && age < ttl
}
