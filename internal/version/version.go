// Package version reports the ghscout build version.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// devVersion is reported when no version was injected at build time.
const devVersion = "0.0.0-dev"

// version is set at build time:
//
//	go build -ldflags "-X github.com/rshade/ghscout/internal/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Set via ldflags.
var version = devVersion

// GetVersion returns the build version string.
func GetVersion() string {
	return version
}

// IsRelease reports whether v is a valid semantic version without a
// prerelease suffix.
func IsRelease(v string) bool {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return false
	}
	return sv.Prerelease() == ""
}

// UserAgent returns the User-Agent sent to the GitHub API. Release builds
// report their normalized version; anything else reports "dev".
func UserAgent() string {
	return userAgent(version)
}

func userAgent(v string) string {
	if !IsRelease(v) {
		return "ghscout/dev"
	}
	return "ghscout/" + semver.MustParse(v).String()
}
