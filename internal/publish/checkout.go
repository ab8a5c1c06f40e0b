package publish

import (
	"context"
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// checkout prepares a working copy of the pages branch in dir. When the
// branch exists upstream and history is kept, it is cloned single-branch;
// otherwise a fresh repository with an unborn branch is initialized so the
// first publish creates the branch.
func (p *Publisher) checkout(ctx context.Context, dir string, auth transport.AuthMethod) (*git.Repository, error) {
	branchRef := plumbing.NewBranchReferenceName(p.cfg.Branch)

	if p.cfg.KeepsHistory() {
		repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
			URL:           p.cfg.URL,
			RemoteName:    p.cfg.RemoteName,
			ReferenceName: branchRef,
			SingleBranch:  true,
			Auth:          auth,
		})
		if err == nil {
			return repo, nil
		}
		if !isMissingBranch(err) {
			return nil, classifyGitError("clone", p.cfg.URL, err)
		}
		// Branch (or entire history) absent upstream: fall through to init.
	}

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return nil, err
	}
	if _, err := repo.CreateRemote(&gitcfg.RemoteConfig{
		Name: p.cfg.RemoteName,
		URLs: []string{p.cfg.URL},
	}); err != nil {
		return nil, err
	}
	// Point HEAD at the unborn pages branch so the first commit creates it.
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, branchRef)); err != nil {
		return nil, err
	}
	return repo, nil
}

// isMissingBranch reports whether a clone failure means the pages branch (or
// any history at all) does not exist yet on the remote.
func isMissingBranch(err error) bool {
	if errors.Is(err, transport.ErrEmptyRemoteRepository) ||
		errors.Is(err, plumbing.ErrReferenceNotFound) {
		return true
	}
	var noMatch git.NoMatchingRefSpecError
	if errors.As(err, &noMatch) {
		return true
	}
	l := strings.ToLower(err.Error())
	return strings.Contains(l, "couldn't find remote ref") || strings.Contains(l, "reference not found")
}
