// Package cache provides a file-backed response cache with TTL expiration.
//
// The cache avoids redundant GitHub API calls for requests repeated within a
// short window. Key features:
//   - One JSON file (default ~/.ghscout/cache.json) holds every entry
//   - Write-through: every Set, Clear, and effective Cleanup persists the whole map
//   - Crash-atomic writes via temp file and rename
//   - Deterministic keys from endpoint name plus name-sorted parameters
//   - Expired entries are ignored on read and only removed by Cleanup
//
// A missing or corrupt cache file is treated as an empty cache.
package cache
