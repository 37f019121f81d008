package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// noParams is the canonical form of a nil parameter map. It cannot be
// produced by any non-nil map, whose canonical form only holds escaped text.
const noParams = "\x00none"

// Key derives the cache key for a logical request.
//
// The key is "<endpoint>:<16 hex digits>", the digits being the xxhash64 of
// the canonical parameter string. Parameters are sorted by name, so maps built
// in any order produce the same key. A nil map and an empty map produce
// different keys.
func Key(endpoint string, params map[string]string) string {
	return fmt.Sprintf("%s:%016x", endpoint, xxhash.Sum64String(CanonicalParams(params)))
}

// CanonicalParams serializes params as name-sorted, query-escaped name=value
// pairs joined by '&'. A nil map yields a fixed sentinel.
func CanonicalParams(params map[string]string) string {
	if params == nil {
		return noParams
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[name]))
	}
	return b.String()
}
