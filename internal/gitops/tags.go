package gitops

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/mod/semver"
)

// releaseTagRe matches exactly the tags bump manages: a "v" prefix and a bare
// major.minor.patch triple. Pre-release and build-metadata tags are not
// release tags for this tool and are ignored.
var releaseTagRe = regexp.MustCompile(`^v(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`)

// LatestTag returns the newest release tag by semantic-version precedence.
// The boolean is false when the repository has no release tags.
func (g *Git) LatestTag(dir string) (string, bool, error) {
	repo, err := open(dir)
	if err != nil {
		return "", false, err
	}

	refs, err := repo.Tags()
	if err != nil {
		return "", false, fmt.Errorf("listing tags in %s: %w", dir, err)
	}

	var tags []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if releaseTagRe.MatchString(name) && semver.IsValid(name) {
			tags = append(tags, name)
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("iterating tags in %s: %w", dir, err)
	}
	if len(tags) == 0 {
		return "", false, nil
	}

	sort.Slice(tags, func(i, j int) bool {
		return semver.Compare(tags[i], tags[j]) > 0
	})
	return tags[0], true, nil
}

// TagExists reports whether the named tag exists in the repository.
func (g *Git) TagExists(dir, tag string) (bool, error) {
	repo, err := open(dir)
	if err != nil {
		return false, err
	}
	_, err = repo.Reference(plumbing.NewTagReferenceName(tag), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("looking up tag %s in %s: %w", tag, dir, err)
	}
	return true, nil
}

// CreateAnnotatedTag creates an annotated tag pointing at HEAD.
func (g *Git) CreateAnnotatedTag(dir, tag, message string) error {
	repo, err := open(dir)
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("resolving HEAD in %s: %w", dir, err)
	}
	sig, err := g.signature(repo)
	if err != nil {
		return err
	}
	_, err = repo.CreateTag(tag, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  sig,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("creating tag %s in %s: %w", tag, dir, err)
	}
	return nil
}
