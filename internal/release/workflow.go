package release

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/bcomnes/bump/internal/manifest"
	"github.com/bcomnes/bump/internal/semver"
)

// ManifestStore is the manifest collaborator: reading, writing, and lock
// syncing of the version field, plus workspace member enumeration.
type ManifestStore interface {
	Exists(dir string) bool
	Path(dir string) string
	LockPath(dir string) string
	ReadVersion(dir string) (version string, ok bool, err error)
	WriteVersion(dir, version string) error
	SyncLock(dir string) error
	Members(dir string) ([]manifest.Member, error)
}

// TagRepository is the tag-history collaborator.
type TagRepository interface {
	IsRepository(dir string) bool
	LatestTag(dir string) (tag string, ok bool, err error)
	TagExists(dir, tag string) (bool, error)
	CreateAnnotatedTag(dir, tag, message string) error
}

// WorktreeOps is the working-tree collaborator.
type WorktreeOps interface {
	StageAll(dir string) error
	StagedFiles(dir string) ([]string, error)
	Commit(dir, message string) error
	AmendLastCommitKeepMessage(dir string) error
	State(dir string) (RepositoryState, error)
}

// RepositoryState is the one-shot observation of a directory's working tree
// that drives workflow branching. It is read once and never mutated.
type RepositoryState struct {
	HasUncommittedChanges bool
	HeadHasTag            bool
	HeadIsPushed          bool
}

// Workflow performs the release sequence for a single directory: safety
// checks, version resolution, manifest mutation, staging, commit or amend,
// and tag creation.
type Workflow struct {
	Manifest ManifestStore
	Tags     TagRepository
	Tree     WorktreeOps
	Prompt   Prompter

	// Bump is the requested granularity (default patch).
	Bump semver.Granularity
	// DryRun describes the actions instead of performing them.
	DryRun bool
	// Message is an explicit commit message override.
	Message string
	// Automatic requests the synthesized bump message without prompting.
	Automatic bool

	// Out receives user-facing progress output. Nil discards it.
	Out io.Writer
	// Log receives diagnostic logging. Nil discards it.
	Log *slog.Logger
}

func (w *Workflow) out() io.Writer {
	if w.Out != nil {
		return w.Out
	}
	return io.Discard
}

func (w *Workflow) log() *slog.Logger {
	if w.Log != nil {
		return w.Log
	}
	return slog.New(slog.DiscardHandler)
}

// Run processes one target directory to completion. Any returned error is
// fatal for the directory but must not have mutated it unless the failure
// happened after the manifest write, which the caller recovers from by
// re-running.
func (w *Workflow) Run(dir string) error {
	// Preconditions, checked before any write.
	if !w.Tags.IsRepository(dir) {
		return fmt.Errorf("%w: %s", ErrNotARepository, dir)
	}
	if !w.Manifest.Exists(dir) {
		return fmt.Errorf("%w in %s", ErrManifestNotFound, dir)
	}

	members, err := w.Manifest.Members(dir)
	if err != nil {
		return err
	}
	if independent := IndependentMembers(members); len(independent) > 0 {
		return &IndependentVersionsError{Members: independent}
	}

	manifestVersion, err := w.readManifestVersion(dir)
	if err != nil {
		return err
	}
	tagVersion, err := w.readLatestTagVersion(dir)
	if err != nil {
		return err
	}

	action, err := Resolve(manifestVersion, tagVersion, w.Bump)
	if err != nil {
		return err
	}
	tagName := action.Target.Tag()
	w.log().Info("resolved version action",
		"dir", dir,
		"target", action.Target.String(),
		"update_manifest", action.NeedsManifestUpdate,
		"initial_tag", action.InitialTag)

	if action.InitialTag {
		fmt.Fprintf(w.out(), "tag: %s\n", tagName)
	} else {
		fmt.Fprintf(w.out(), "bump: %s -> %s\n", currentVersionLabel(manifestVersion, tagVersion), action.Target)
	}

	// Duplicate release guard, also before any write.
	exists, err := w.Tags.TagExists(dir, tagName)
	if err != nil {
		return err
	}
	if exists {
		return &TagExistsError{TagName: tagName}
	}

	state, err := w.Tree.State(dir)
	if err != nil {
		return err
	}

	// A clean tree whose HEAD is already tagged has nothing to release,
	// dry-run or not.
	if !state.HasUncommittedChanges && state.HeadHasTag {
		return ErrHeadAlreadyTagged
	}

	if w.DryRun {
		w.describe(dir, action, state, tagName)
		return nil
	}

	if action.NeedsManifestUpdate {
		if err := w.Manifest.WriteVersion(dir, action.Target.String()); err != nil {
			return err
		}
		w.log().Info("updated manifest", "dir", dir, "version", action.Target.String())
		if err := w.Manifest.SyncLock(dir); err != nil {
			return err
		}
	}

	if err := w.Tree.StageAll(dir); err != nil {
		return err
	}
	staged, err := w.Tree.StagedFiles(dir)
	if err != nil {
		return err
	}

	tagMessage, err := w.publish(dir, action, state, staged, tagName)
	if err != nil {
		return err
	}

	if err := w.Tags.CreateAnnotatedTag(dir, tagName, tagMessage); err != nil {
		return err
	}
	w.log().Info("created tag", "dir", dir, "tag", tagName)

	fmt.Fprintf(w.out(), "Committed and tagged %s\n", tagName)
	fmt.Fprintln(w.out(), "Run: git push && git push --tags")
	return nil
}

// publish creates the commit (or amend) for the release and returns the
// message to put on the annotated tag. The four working-tree states branch
// explicitly; the clean-and-tagged case was already rejected.
func (w *Workflow) publish(dir string, action Action, state RepositoryState, staged []string, tagName string) (string, error) {
	amend := !state.HasUncommittedChanges && !state.HeadIsPushed

	if len(staged) == 0 {
		// Nothing to commit; tag the current HEAD as-is.
		return "Release " + tagName, nil
	}

	if amend {
		// Unpushed history is still mutable: fold the version bump into the
		// previous commit instead of adding a noise commit.
		if err := w.Tree.AmendLastCommitKeepMessage(dir); err != nil {
			return "", err
		}
		w.log().Info("amended previous commit", "dir", dir)
		return "Bump version to " + tagName, nil
	}

	req := MessageRequest{
		Explicit:     w.Message,
		Automatic:    w.Automatic,
		Staged:       staged,
		InitialTag:   action.InitialTag,
		TagName:      tagName,
		ManifestFile: filepath.Base(w.Manifest.Path(dir)),
		LockFile:     filepath.Base(w.Manifest.LockPath(dir)),
	}
	message, err := req.ResolveMessage(w.Prompt)
	if err != nil {
		return "", err
	}
	if err := w.Tree.Commit(dir, message); err != nil {
		return "", err
	}
	w.log().Info("committed", "dir", dir, "message", message)
	return message, nil
}

// describe reports the mutations a real run would perform, without doing any
// of them. It runs after every guard, so a dry run fails exactly where a
// real run would.
func (w *Workflow) describe(dir string, action Action, state RepositoryState, tagName string) {
	out := w.out()
	if action.NeedsManifestUpdate {
		fmt.Fprintf(out, "[dry-run] Would update: %s\n", filepath.Base(w.Manifest.Path(dir)))
	}
	if !state.HasUncommittedChanges && !state.HeadIsPushed {
		fmt.Fprintf(out, "[dry-run] Would amend the previous commit and tag: %s\n", tagName)
		return
	}
	fmt.Fprintf(out, "[dry-run] Would commit and tag: %s\n", tagName)
}

func (w *Workflow) readManifestVersion(dir string) (*semver.Version, error) {
	raw, ok, err := w.Manifest.ReadVersion(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	v, err := semver.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest version in %s: %w", dir, err)
	}
	return &v, nil
}

func (w *Workflow) readLatestTagVersion(dir string) (*semver.Version, error) {
	raw, ok, err := w.Tags.LatestTag(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	v, err := semver.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("latest tag in %s: %w", dir, err)
	}
	return &v, nil
}

func currentVersionLabel(manifestVersion, tagVersion *semver.Version) string {
	switch {
	case manifestVersion != nil:
		return manifestVersion.String()
	case tagVersion != nil:
		return tagVersion.String()
	default:
		return "unknown"
	}
}
