package doxygen

import (
	"context"
	"os"
	"path/filepath"

	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/project"
)

// stagePrepareOutput cleans (when configured) and creates the output directory.
func stagePrepareOutput(_ context.Context, g *Generator) error {
	out := g.cfg.Doxygen.Output
	if g.cfg.Doxygen.CleanOutput() {
		if err := os.RemoveAll(out); err != nil {
			return pkgerrors.WorkspaceError("clean_output", err).WithContext("path", out)
		}
	}
	if err := os.MkdirAll(out, 0o750); err != nil {
		return pkgerrors.WorkspaceError("create_output", err).WithContext("path", out)
	}
	return nil
}

// stageResolveProject resolves name and version for the documented tree.
func stageResolveProject(_ context.Context, g *Generator) error {
	meta, err := project.Resolve(g.cfg, g.versionOverride)
	if err != nil {
		return err
	}
	g.meta = meta
	return nil
}

// stagePatchDoxyfile writes the substituted Doxyfile into the output directory.
// The stored path must be absolute: doxygen later runs with the source tree as
// its working directory, so a relative output path would resolve wrongly there.
func stagePatchDoxyfile(_ context.Context, g *Generator) error {
	patched, err := filepath.Abs(filepath.Join(g.cfg.Doxygen.Output, "Doxyfile.docpub"))
	if err != nil {
		return pkgerrors.WorkspaceError("resolve_output", err).WithContext("path", g.cfg.Doxygen.Output)
	}
	if err := PatchDoxyfile(g.cfg.Doxygen.Doxyfile, patched, g.substitutions()); err != nil {
		return err
	}
	g.doxyfilePath = patched
	return nil
}

// stageRunDoxygen invokes the external generator binary.
func stageRunDoxygen(ctx context.Context, g *Generator) error {
	return g.runDoxygen(ctx)
}

// stageInspectSite verifies the generated tree and records page statistics.
func stageInspectSite(_ context.Context, g *Generator) error {
	siteDir := filepath.Join(g.cfg.Doxygen.Output, g.cfg.Doxygen.HTMLDir)
	info, err := InspectSite(siteDir)
	if err != nil {
		return err
	}
	g.report.Pages = info.Pages
	g.report.Title = info.Title
	g.report.SiteDir = siteDir
	return nil
}
