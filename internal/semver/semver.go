// Package semver implements the restricted semantic-version domain bump
// operates in: plain (major, minor, patch) triples with no pre-release or
// build-metadata components. Anything outside that domain is a parse error,
// because a tool that rewrites manifests and creates tags must never guess
// what "1.2.3-rc.1" should bump to.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a validated (major, minor, patch) triple.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Initial is the distinguished untouched-default version. A manifest showing
// exactly this value is treated as never having been deliberately set, so
// resolution defers to tag history instead.
var Initial = Version{Major: 0, Minor: 1, Patch: 0}

// Granularity selects which component a bump increments.
type Granularity int

const (
	Patch Granularity = iota
	Minor
	Major
)

// String returns the lowercase flag name for the granularity.
func (g Granularity) String() string {
	switch g {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return "patch"
	}
}

// GranularityFromFlags maps the mutually exclusive --major/--minor flags to a
// Granularity. Neither flag set means a patch bump.
func GranularityFromFlags(major, minor bool) Granularity {
	switch {
	case major:
		return Major
	case minor:
		return Minor
	default:
		return Patch
	}
}

// Parse parses a version string into a Version. An optional leading "v" is
// stripped first. The remainder must be exactly three dot-separated decimal
// integers; pre-release suffixes ("1.2.3-rc.1") and build metadata
// ("1.2.3+build") are rejected.
func Parse(s string) (Version, error) {
	raw := strings.TrimPrefix(s, "v")
	if raw == "" {
		return Version{}, fmt.Errorf("empty version string")
	}
	if i := strings.IndexByte(raw, '-'); i >= 0 {
		return Version{}, fmt.Errorf("pre-release versions are not supported: %s", s)
	}
	if i := strings.IndexByte(raw, '+'); i >= 0 {
		return Version{}, fmt.Errorf("build metadata versions are not supported: %s", s)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is Parse for test fixtures and constants; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats the version in manifest form, without a "v" prefix.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag formats the version in tag form, with a "v" prefix.
func (v Version) Tag() string {
	return "v" + v.String()
}

// Compare orders two versions lexicographically on the triple. It returns -1,
// 0, or +1 as a is less than, equal to, or greater than b.
func Compare(a, b Version) int {
	if c := compareUint(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareUint(a.Minor, b.Minor); c != 0 {
		return c
	}
	return compareUint(a.Patch, b.Patch)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two versions are the same triple.
func (v Version) Equal(other Version) bool {
	return v == other
}

// Bump returns the next version at the given granularity. Major zeroes minor
// and patch, minor zeroes patch, patch touches only patch.
func (v Version) Bump(g Granularity) Version {
	switch g {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}
