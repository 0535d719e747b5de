// Package release implements bump's decision core: reconciling the manifest
// version with the repository's tag history into a single target version, and
// driving the commit/tag workflow that publishes it.
package release

import (
	"github.com/bcomnes/bump/internal/semver"
)

// Action is the resolver's verdict for one directory: the version to publish
// and how to get there. It is consumed immediately by the workflow and never
// persisted.
type Action struct {
	// Target is the version to tag.
	Target semver.Version

	// NeedsManifestUpdate is true when the manifest must be rewritten to
	// Target before committing.
	NeedsManifestUpdate bool

	// InitialTag is true when no bump occurs: the current state is tagged
	// as-is (first release, or a manifest version never actually published).
	InitialTag bool
}

// Resolve reconciles the two independent version readings into an Action.
// Neither source is authoritative a priori. A manifest reading of exactly
// 0.1.0 is the untouched default and defers to tag history; any other
// manifest value is trusted only when it provably matches the latest tag,
// otherwise the sources have diverged and resolution fails closed.
//
// The nil-ness of manifestVersion and tagVersion encodes absence.
func Resolve(manifestVersion, tagVersion *semver.Version, g semver.Granularity) (Action, error) {
	switch {
	case manifestVersion != nil && tagVersion != nil:
		switch {
		case manifestVersion.Equal(semver.Initial):
			// Untouched default: the tag history is the real release record.
			return Action{Target: tagVersion.Bump(g), NeedsManifestUpdate: true}, nil
		case manifestVersion.Equal(*tagVersion):
			return Action{Target: manifestVersion.Bump(g), NeedsManifestUpdate: true}, nil
		default:
			return Action{}, &MismatchError{Manifest: *manifestVersion, Tag: *tagVersion}
		}

	case manifestVersion != nil:
		// A deliberately set version that was never tagged: publish it as-is.
		return Action{Target: *manifestVersion, InitialTag: true}, nil

	case tagVersion != nil:
		return Action{Target: tagVersion.Bump(g), NeedsManifestUpdate: true}, nil

	default:
		return Action{Target: semver.Initial, NeedsManifestUpdate: true, InitialTag: true}, nil
	}
}
