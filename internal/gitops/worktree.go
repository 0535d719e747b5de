package gitops

import (
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/bcomnes/bump/internal/release"
)

// StageAll stages every change in the working tree, the equivalent of
// git add -A.
func (g *Git) StageAll(dir string) error {
	wt, err := worktree(dir)
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return fmt.Errorf("staging changes in %s: %w", dir, err)
	}
	return nil
}

// StagedFiles returns the paths currently staged in the index, sorted.
func (g *Git) StagedFiles(dir string) ([]string, error) {
	wt, err := worktree(dir)
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status of %s: %w", dir, err)
	}

	var staged []string
	for path, st := range status {
		if st.Staging != gogit.Untracked && st.Staging != gogit.Unmodified {
			staged = append(staged, path)
		}
	}
	sort.Strings(staged)
	return staged, nil
}

// Commit creates a new commit from the index with the given message.
func (g *Git) Commit(dir, message string) error {
	repo, err := open(dir)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree of %s: %w", dir, err)
	}
	sig, err := g.signature(repo)
	if err != nil {
		return err
	}
	if _, err := wt.Commit(message, &gogit.CommitOptions{Author: sig}); err != nil {
		return fmt.Errorf("committing in %s: %w", dir, err)
	}
	return nil
}

// AmendLastCommitKeepMessage folds the index into the HEAD commit, reusing
// HEAD's commit message unchanged.
func (g *Git) AmendLastCommitKeepMessage(dir string) error {
	repo, err := open(dir)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree of %s: %w", dir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("resolving HEAD in %s: %w", dir, err)
	}
	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("reading HEAD commit in %s: %w", dir, err)
	}
	sig, err := g.signature(repo)
	if err != nil {
		return err
	}
	_, err = wt.Commit(headCommit.Message, &gogit.CommitOptions{
		Author: sig,
		Amend:  true,
	})
	if err != nil {
		return fmt.Errorf("amending commit in %s: %w", dir, err)
	}
	return nil
}

// State observes the working tree once per directory: whether it is dirty,
// whether HEAD already carries a tag, and whether HEAD has reached its
// upstream.
func (g *Git) State(dir string) (release.RepositoryState, error) {
	var state release.RepositoryState

	repo, err := open(dir)
	if err != nil {
		return state, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return state, fmt.Errorf("opening worktree of %s: %w", dir, err)
	}
	status, err := wt.Status()
	if err != nil {
		return state, fmt.Errorf("reading status of %s: %w", dir, err)
	}
	state.HasUncommittedChanges = !status.IsClean()

	state.HeadHasTag, err = g.headHasTag(repo)
	if err != nil {
		return state, fmt.Errorf("checking HEAD tags in %s: %w", dir, err)
	}
	state.HeadIsPushed, err = g.headIsPushed(repo)
	if err != nil {
		return state, fmt.Errorf("checking upstream of %s: %w", dir, err)
	}
	return state, nil
}

func (g *Git) headHasTag(repo *gogit.Repository) (bool, error) {
	head, err := repo.Head()
	if err != nil {
		return false, err
	}
	refs, err := repo.Tags()
	if err != nil {
		return false, err
	}

	tagged := false
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		// Annotated tags point at a tag object; follow it to the commit.
		if tagObj, tagErr := repo.TagObject(ref.Hash()); tagErr == nil {
			target = tagObj.Target
		}
		if target == head.Hash() {
			tagged = true
		}
		return nil
	})
	return tagged, err
}

// headIsPushed reports whether HEAD has reached the current branch's
// configured upstream. A detached HEAD or a branch without an upstream counts
// as not pushed: the history is still local and safe to amend.
func (g *Git) headIsPushed(repo *gogit.Repository) (bool, error) {
	head, err := repo.Head()
	if err != nil {
		return false, err
	}
	if !head.Name().IsBranch() {
		return false, nil
	}

	cfg, err := repo.Config()
	if err != nil {
		return false, err
	}
	branchCfg, ok := cfg.Branches[head.Name().Short()]
	if !ok || branchCfg.Remote == "" || branchCfg.Merge == "" {
		return false, nil
	}

	remoteRef := plumbing.NewRemoteReferenceName(branchCfg.Remote, branchCfg.Merge.Short())
	ref, err := repo.Reference(remoteRef, true)
	if err != nil {
		// Upstream configured but never fetched/pushed.
		return false, nil
	}
	if ref.Hash() == head.Hash() {
		return true, nil
	}

	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return false, err
	}
	remoteCommit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return false, err
	}
	return headCommit.IsAncestor(remoteCommit)
}

func worktree(dir string) (*gogit.Worktree, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree of %s: %w", dir, err)
	}
	return wt, nil
}
