package doxygen

import "context"

// StageName is a strongly-typed identifier for a pipeline stage. All canonical
// stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names.
const (
	StagePrepareOutput  StageName = "prepare_output"
	StageResolveProject StageName = "resolve_project"
	StagePatchDoxyfile  StageName = "patch_doxyfile"
	StageRunDoxygen     StageName = "run_doxygen"
	StageInspectSite    StageName = "inspect_site"
)

// Stage is the function signature every pipeline stage implements.
type Stage func(ctx context.Context, g *Generator) error

// StageDef pairs a stage name with its executing function (internal wiring helper).
type StageDef struct {
	Name StageName
	Fn   Stage
}

// StageResult enumerates per-stage classification outcomes.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)
