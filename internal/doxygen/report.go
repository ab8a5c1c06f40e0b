package doxygen

import (
	"time"

	"git.home.luguber.info/inful/docpub/internal/metrics"
)

// Outcome is the typed enumeration of final pipeline result states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report captures high-level metrics about a generation run.
type Report struct {
	RunID          string
	Project        string
	Version        string
	Start          time.Time
	End            time.Time
	Outcome        Outcome
	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]StageResult
	Pages          int    // html pages found during inspection
	Title          string // title of the generated index page
	SiteDir        string // absolute path of the generated html tree
}

func newReport(runID string) *Report {
	return &Report{
		RunID:          runID,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
	}
}

// Duration returns the total wall-clock time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// recordStage updates the report and emits metrics for a finished stage.
func (r *Report) recordStage(stage StageName, d time.Duration, res StageResult, recorder metrics.Recorder) {
	r.StageDurations[stage] = d
	r.StageResults[stage] = res
	if recorder == nil {
		return
	}
	recorder.ObserveStageDuration(string(stage), d)
	switch res {
	case StageResultSuccess:
		recorder.IncStageResult(string(stage), metrics.ResultSuccess)
	case StageResultFatal:
		recorder.IncStageResult(string(stage), metrics.ResultFatal)
	case StageResultCanceled:
		recorder.IncStageResult(string(stage), metrics.ResultCanceled)
	}
}

// finish stamps the end time and final outcome, emitting pipeline metrics.
func (r *Report) finish(outcome Outcome, recorder metrics.Recorder) {
	r.End = time.Now()
	r.Outcome = outcome
	if recorder != nil {
		recorder.ObservePipelineDuration(r.End.Sub(r.Start))
		recorder.IncPipelineOutcome(string(outcome))
	}
}
