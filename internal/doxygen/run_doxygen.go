package doxygen

import (
	"context"
	"log/slog"
	"os"
	"os/exec"

	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/logfields"
)

// runDoxygen executes the configured doxygen binary against the patched
// Doxyfile. The working directory is the source tree so relative INPUT paths
// in the Doxyfile resolve the same way a manual invocation would.
func (g *Generator) runDoxygen(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, g.cfg.Doxygen.Binary, g.doxyfilePath)
	cmd.Dir = g.cfg.Project.Source
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Running doxygen",
		slog.String("binary", g.cfg.Doxygen.Binary),
		logfields.Path(g.doxyfilePath))

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return pkgerrors.Wrap(ctx.Err(), pkgerrors.CategoryRuntime,
				pkgerrors.SeverityError, "doxygen canceled")
		}
		return pkgerrors.GenerationFailed(string(StageRunDoxygen), err).
			WithContext("binary", g.cfg.Doxygen.Binary)
	}
	return nil
}
