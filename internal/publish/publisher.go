package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/docpub/internal/config"
	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/logfields"
	"git.home.luguber.info/inful/docpub/internal/metrics"
	"git.home.luguber.info/inful/docpub/internal/project"
	"git.home.luguber.info/inful/docpub/internal/retry"
	"git.home.luguber.info/inful/docpub/internal/workspace"
)

// latestDir is the alias directory refreshed for labeled publishes.
const latestDir = "latest"

// versionDirPattern matches directory names that hold published versions.
// These are preserved when a root publish replaces the branch content.
var versionDirPattern = regexp.MustCompile(`^\d+(\.\d+)*$`)

// Request describes one publish operation.
type Request struct {
	SiteDir string // generated html tree to publish
	Project string
	Version string // empty publishes to the branch root
	DryRun  bool   // stage and commit locally, skip the push
}

// Result reports what the publisher did.
type Result struct {
	CommitHash string
	Path       string // directory within the branch ("" for root)
	Pushed     bool
	UpToDate   bool // branch already matched the site; nothing committed
}

// Publisher pushes generated sites to the configured git target.
type Publisher struct {
	cfg      config.PublishConfig
	policy   retry.Policy
	recorder metrics.Recorder
}

// NewPublisher creates a publisher from the application configuration.
func NewPublisher(cfg *config.Config) *Publisher {
	return &Publisher{
		cfg:      cfg.Publish,
		policy:   cfg.Retry.Policy(),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder attaches a metrics recorder (fluent helper).
func (p *Publisher) WithRecorder(r metrics.Recorder) *Publisher {
	if r != nil {
		p.recorder = r
	}
	return p
}

// Publish checks out the pages branch, places the site, commits and pushes.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Result, error) {
	if st, err := os.Stat(req.SiteDir); err != nil || !st.IsDir() {
		return nil, pkgerrors.New(pkgerrors.CategoryPublish, pkgerrors.SeverityFatal,
			"site directory missing or not a directory").WithContext("path", req.SiteDir)
	}

	auth, err := authMethod(p.cfg.Auth)
	if err != nil {
		return nil, pkgerrors.GitAuthError(p.cfg.URL, err)
	}

	ws := workspace.NewManager("")
	if err := ws.Create(); err != nil {
		return nil, pkgerrors.WorkspaceError("create", err)
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("Failed to cleanup publish workspace", logfields.Error(err))
		}
	}()

	checkoutDir := ws.GetPath()
	repo, err := p.checkout(ctx, checkoutDir, auth)
	if err != nil {
		return nil, p.wrapGitError(err)
	}

	versionSlug := ""
	if req.Version != "" {
		versionSlug = project.Slug(req.Version)
	}
	if err := p.placeSite(checkoutDir, req.SiteDir, req.Project, versionSlug); err != nil {
		return nil, pkgerrors.PublishFailed(p.cfg.URL, err)
	}

	commitHash, upToDate, err := p.commit(repo, req)
	if err != nil {
		return nil, pkgerrors.PublishFailed(p.cfg.URL, err)
	}
	result := &Result{CommitHash: commitHash, Path: versionSlug, UpToDate: upToDate}
	if upToDate {
		slog.Info("Publish target already up to date", logfields.Target(p.cfg.URL), logfields.Version(req.Version))
		return result, nil
	}
	if req.DryRun {
		slog.Info("Dry run: skipping push", logfields.Target(p.cfg.URL), slog.String("commit", shortHash(commitHash)))
		return result, nil
	}

	if err := p.push(ctx, repo, auth); err != nil {
		return nil, p.wrapGitError(err)
	}
	result.Pushed = true
	slog.Info("Documentation published",
		logfields.Target(p.cfg.URL),
		logfields.Branch(p.cfg.Branch),
		logfields.Version(req.Version),
		slog.String("commit", shortHash(commitHash)))
	return result, nil
}

// placeSite copies the generated site into the checkout, versioned or root.
func (p *Publisher) placeSite(checkoutDir, siteDir, projectName, versionSlug string) error {
	if versionSlug == "" {
		return p.placeRoot(checkoutDir, siteDir)
	}

	if err := replaceDir(siteDir, filepath.Join(checkoutDir, versionSlug)); err != nil {
		return err
	}
	if p.cfg.WritesLatestAlias() {
		if err := replaceDir(siteDir, filepath.Join(checkoutDir, latestDir)); err != nil {
			return err
		}
		manifest, err := loadManifest(checkoutDir)
		if err != nil {
			return err
		}
		manifest.Project = projectName
		manifest.upsert(versionSlug, time.Now().UTC())
		if err := manifest.write(checkoutDir); err != nil {
			return err
		}
	}
	return nil
}

// placeRoot replaces the branch root content while preserving the repository
// metadata, previously published version directories and the latest alias.
func (p *Publisher) placeRoot(checkoutDir, siteDir string) error {
	entries, err := os.ReadDir(checkoutDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name() == git.GitDirName || e.Name() == latestDir || e.Name() == manifestFile {
			continue
		}
		if e.IsDir() && versionDirPattern.MatchString(e.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(checkoutDir, e.Name())); err != nil {
			return err
		}
	}
	return copyTree(siteDir, checkoutDir)
}

// commit stages everything and commits. Returns the commit hash or
// upToDate=true when the tree did not change.
func (p *Publisher) commit(repo *git.Repository, req Request) (string, bool, error) {
	w, err := repo.Worktree()
	if err != nil {
		return "", false, err
	}
	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", false, err
	}
	status, err := w.Status()
	if err != nil {
		return "", false, err
	}
	if status.IsClean() {
		return "", true, nil
	}

	sig := &object.Signature{
		Name:  p.cfg.CommitterName,
		Email: p.cfg.CommitterEmail,
		When:  time.Now(),
	}
	msg := fmt.Sprintf("docs: publish %s %s", req.Project, req.Version)
	if req.Version == "" {
		msg = fmt.Sprintf("docs: publish %s", req.Project)
	}
	hash, err := w.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return "", false, err
	}
	return hash.String(), false, nil
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
