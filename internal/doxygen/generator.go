// Package doxygen runs the documentation generation pipeline: it prepares the
// output directory, resolves project metadata, patches the Doxyfile template,
// invokes the doxygen binary and inspects the generated site.
package doxygen

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docpub/internal/config"
	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/logfields"
	"git.home.luguber.info/inful/docpub/internal/metrics"
	"git.home.luguber.info/inful/docpub/internal/project"
)

// Generator executes the generation pipeline for one run.
type Generator struct {
	cfg             *config.Config
	recorder        metrics.Recorder
	versionOverride string

	// populated while the pipeline runs
	meta         project.Metadata
	doxyfilePath string // patched Doxyfile written into the output dir
	report       *Report
}

// NewGenerator creates a generator for the given configuration.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder attaches a metrics recorder (fluent helper).
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// WithVersionOverride forces the version label, bypassing config and CMake extraction.
func (g *Generator) WithVersionOverride(v string) *Generator {
	g.versionOverride = v
	return g
}

// Metadata returns the project metadata resolved by the last run.
func (g *Generator) Metadata() project.Metadata { return g.meta }

// stages returns the canonical stage order.
func (g *Generator) stages() []StageDef {
	return []StageDef{
		{Name: StagePrepareOutput, Fn: stagePrepareOutput},
		{Name: StageResolveProject, Fn: stageResolveProject},
		{Name: StagePatchDoxyfile, Fn: stagePatchDoxyfile},
		{Name: StageRunDoxygen, Fn: stageRunDoxygen},
		{Name: StageInspectSite, Fn: stageInspectSite},
	}
}

// Run executes all stages in order, recording timing and stopping on the
// first fatal error. The returned report is always non-nil.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	g.report = newReport(uuid.NewString())
	slog.Info("Starting documentation generation",
		logfields.RunID(g.report.RunID),
		logfields.Path(g.cfg.Doxygen.Output))

	for _, st := range g.stages() {
		select {
		case <-ctx.Done():
			g.report.recordStage(st.Name, 0, StageResultCanceled, g.recorder)
			g.report.finish(OutcomeCanceled, g.recorder)
			return g.report, pkgerrors.Wrap(ctx.Err(), pkgerrors.CategoryRuntime,
				pkgerrors.SeverityError, "generation canceled").WithContext("stage", string(st.Name))
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, g)
		dur := time.Since(t0)

		if err != nil {
			g.report.recordStage(st.Name, dur, StageResultFatal, g.recorder)
			g.report.finish(OutcomeFailed, g.recorder)
			slog.Error("Stage failed", logfields.Stage(string(st.Name)), logfields.Error(err))
			return g.report, err
		}
		g.report.recordStage(st.Name, dur, StageResultSuccess, g.recorder)
		slog.Debug("Stage complete",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Milliseconds())))
	}

	g.report.Project = g.meta.Name
	g.report.Version = g.meta.Version
	g.report.finish(OutcomeSuccess, g.recorder)
	slog.Info("Documentation generated",
		logfields.RunID(g.report.RunID),
		logfields.Project(g.meta.Name),
		logfields.Version(g.meta.Version),
		logfields.Pages(g.report.Pages))
	return g.report, nil
}
