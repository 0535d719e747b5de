// Package gitops implements bump's version-control collaborators on top of
// go-git. Every operation takes a target directory and opens the enclosing
// repository, so one Git value serves an entire batch of independent
// directories.
package gitops

import (
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoCommitterIdentity is returned when neither the repository's git config
// nor bump's own config provide a committer name and email.
var ErrNoCommitterIdentity = errors.New("committer identity not configured: set git user.name and user.email, or committer_name and committer_email in bump's config")

// Git provides tag and working-tree operations for git repositories.
type Git struct {
	// CommitterName and CommitterEmail override the identity read from the
	// repository's git config when set. Tests rely on this to stay clear of
	// global git state.
	CommitterName  string
	CommitterEmail string
}

func open(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return repo, nil
}

// IsRepository reports whether dir is inside a git repository.
func (g *Git) IsRepository(dir string) bool {
	_, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// signature resolves the committer/tagger identity, preferring explicit
// overrides over the repository's (system-scoped) git config.
func (g *Git) signature(repo *gogit.Repository) (*object.Signature, error) {
	name, email := g.CommitterName, g.CommitterEmail
	if name == "" || email == "" {
		if cfg, err := repo.ConfigScoped(config.SystemScope); err == nil {
			if name == "" {
				name = cfg.User.Name
			}
			if email == "" {
				email = cfg.User.Email
			}
		}
	}
	if name == "" || email == "" {
		return nil, ErrNoCommitterIdentity
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}, nil
}
