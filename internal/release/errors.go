package release

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bcomnes/bump/internal/manifest"
	"github.com/bcomnes/bump/internal/semver"
)

// Sentinel errors for the workflow's precondition guards. All are fatal for
// the directory being processed and can be checked with errors.Is.
var (
	// ErrNotARepository means the target directory is not inside a git
	// repository.
	ErrNotARepository = errors.New("not a git repository")

	// ErrManifestNotFound means the target directory has no manifest file.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrHeadAlreadyTagged means the working tree is clean and HEAD already
	// carries a tag: there is nothing new to release.
	ErrHeadAlreadyTagged = errors.New("HEAD is already tagged and the working tree is clean; make changes before releasing")

	// ErrEmptyCommitMessage means the interactive fallback produced no
	// message. The working tree is left staged; re-running recovers.
	ErrEmptyCommitMessage = errors.New("commit aborted: empty commit message")
)

// MismatchError reports that the manifest and the latest tag disagree on the
// current version. No automatic reconciliation is attempted; a human must
// decide which source of truth is right.
type MismatchError struct {
	Manifest semver.Version
	Tag      semver.Version
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("version mismatch: manifest says %s but the latest tag is %s; reconcile them manually before releasing",
		e.Manifest, e.Tag.Tag())
}

// TagExistsError reports that the computed target tag already exists, which
// would mean releasing the same version twice.
type TagExistsError struct {
	TagName string
}

func (e *TagExistsError) Error() string {
	return fmt.Sprintf("tag %s already exists", e.TagName)
}

// IndependentVersionsError reports workspace members that manage their own
// version instead of inheriting the shared one. Single-target version
// bumping cannot safely proceed over divergent members.
type IndependentVersionsError struct {
	Members []manifest.Member
}

func (e *IndependentVersionsError) Error() string {
	var b strings.Builder
	b.WriteString("workspace members manage independent versions:")
	for _, m := range e.Members {
		fmt.Fprintf(&b, "\n  %s (%s): %s", m.Name, m.Path, m.Version)
	}
	return b.String()
}
