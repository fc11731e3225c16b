package metrics

import (
	"testing"
	"time"
)

// Compile-time interface checks.
var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncStampOutcome("injected", "")
	r.ObserveQueryDuration("exec", time.Millisecond, true)
	r.ObservePageRenderDuration("html", time.Millisecond)
	r.ObserveBuildDuration(time.Millisecond)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.SetRenderWorkers(4)
}
