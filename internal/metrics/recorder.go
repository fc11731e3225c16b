package metrics

import "time"

// BuildOutcomeLabel enumerates the final status of a build.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for builds and timestamp lookups.
type Recorder interface {
	// IncStampOutcome counts a resolved page by outcome kind and skip reason
	// (empty unless the kind is "skipped").
	IncStampOutcome(kind, reason string)
	ObserveQueryDuration(backend string, d time.Duration, success bool)
	ObservePageRenderDuration(builder string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetRenderWorkers(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncStampOutcome(string, string)                   {}
func (NoopRecorder) ObserveQueryDuration(string, time.Duration, bool) {}
func (NoopRecorder) ObservePageRenderDuration(string, time.Duration)  {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)               {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)                {}
func (NoopRecorder) SetRenderWorkers(int)                             {}
