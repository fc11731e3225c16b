package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncStampOutcome("injected", "")
	pr.IncStampOutcome("skipped", "empty-history")
	pr.IncStampOutcome("skipped", "empty-history")
	pr.ObserveQueryDuration("exec", 20*time.Millisecond, true)
	pr.ObservePageRenderDuration("html", 5*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.SetRenderWorkers(1)

	assert.InDelta(t, 1, testutil.ToFloat64(pr.stampOutcomes.WithLabelValues("injected", "")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.stampOutcomes.WithLabelValues("skipped", "empty-history")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.renderWorkers), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 6)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncStampOutcome("fatal", "")
		pr.ObserveQueryDuration("go-git", time.Second, false)
		pr.ObservePageRenderDuration("text", time.Second)
		pr.ObserveBuildDuration(time.Second)
		pr.IncBuildOutcome(BuildOutcomeFailed)
		pr.SetRenderWorkers(2)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome(BuildOutcomeCanceled)

	path := filepath.Join(t.TempDir(), "gitstamp.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `gitstamp_build_outcomes_total{outcome="canceled"} 1`))
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), prom.NewRegistry())
	require.Error(t, err)
}
