// Package codefield is an embeddable terminal code-editing widget. The
// editor, element and lang packages hold the implementation; this package
// carries the library version.
package codefield

import (
	_ "embed"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the library version string in SemVer format (without `v`).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag form of Version (with leading `v`).
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v matches SemVer 2.0.0 exactly: three numeric
// components and no `v` prefix.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// VersionIsSemver reports whether the embedded Version is valid SemVer.
func VersionIsSemver() bool {
	return IsSemver(Version())
}

// CompareVersions returns -1, 0 or +1 as a is lower than, equal to or
// higher than b. Either may carry a `v` prefix. An invalid version sorts
// below every valid one; two invalid versions are equal.
func CompareVersions(a, b string) int {
	return semver.Compare(tag(a), tag(b))
}

// Major returns the major component of the embedded version, like "v0".
func Major() string {
	return semver.Major(VersionTag())
}

func tag(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
