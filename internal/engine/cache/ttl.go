package cache

import (
	"fmt"
	"strconv"
	"time"
)

// TTL defaults and limits.
const (
	// DefaultTTL is how long an entry stays valid unless configured otherwise.
	DefaultTTL = 5 * time.Minute

	// MaxTTL bounds configured TTLs (7 days).
	MaxTTL = 7 * 24 * time.Hour

	// minutesPerHour is used for duration formatting calculations.
	minutesPerHour = 60

	// hoursPerDay is used for duration formatting calculations.
	hoursPerDay = 24
)

// ErrInvalidTTL is returned for TTLs that are not positive or exceed MaxTTL.
var ErrInvalidTTL = fmt.Errorf("TTL must be greater than 0 and at most %s", FormatDuration(MaxTTL))

// ValidateTTL checks that ttl is within (0, MaxTTL].
func ValidateTTL(ttl time.Duration) error {
	if ttl <= 0 || ttl > MaxTTL {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, ttl)
	}
	return nil
}

// ParseTTL parses a TTL in either form:
//   - Integer seconds: "300".
//   - Duration string: "5m", "1h30m".
func ParseTTL(s string) (time.Duration, error) {
	var ttl time.Duration
	if seconds, err := strconv.Atoi(s); err == nil {
		ttl = time.Duration(seconds) * time.Second
	} else {
		d, parseErr := time.ParseDuration(s)
		if parseErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", parseErr)
		}
		ttl = d
	}

	if err := ValidateTTL(ttl); err != nil {
		return 0, err
	}
	return ttl, nil
}

// FormatDuration formats a duration in a human-readable way.
// Examples: "45s", "5m", "2h30m", "3d2h".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
