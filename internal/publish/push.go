package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"

	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/logfields"
)

// push uploads the pages branch, retrying transient failures per the policy.
// Permanent failures (auth, not-found) abort immediately.
func (p *Publisher) push(ctx context.Context, repo *git.Repository, auth transport.AuthMethod) error {
	refSpec := gitcfg.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", p.cfg.Branch, p.cfg.Branch))
	if !p.cfg.KeepsHistory() {
		// Fresh-history publishes rewrite the branch.
		refSpec = gitcfg.RefSpec("+" + refSpec)
	}
	opts := &git.PushOptions{
		RemoteName: p.cfg.RemoteName,
		RefSpecs:   []gitcfg.RefSpec{refSpec},
		Auth:       auth,
	}

	var lastErr error
	for attempt := 0; attempt <= p.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := p.policy.Delay(attempt)
			slog.Warn("Retrying push",
				logfields.Target(p.cfg.URL),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))
			p.recorder.IncPublishRetry()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := repo.PushContext(ctx, opts)
		if err == nil || errors.Is(err, git.NoErrAlreadyUpToDate) {
			return nil
		}
		lastErr = classifyGitError("push", p.cfg.URL, err)
		if !isTransient(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("push failed after retries: %w", lastErr)
}

// wrapGitError converts typed git errors into structured pipeline errors.
func (p *Publisher) wrapGitError(err error) error {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return pkgerrors.GitAuthError(p.cfg.URL, err)
	}
	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return pkgerrors.PublishFailed(p.cfg.URL, err)
	}
	var toErr *NetworkTimeoutError
	if errors.As(err, &toErr) {
		return pkgerrors.GitNetworkError(p.cfg.URL, err)
	}
	return pkgerrors.PublishFailed(p.cfg.URL, err)
}
