package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "gitstamp"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	stampOutcomes  *prom.CounterVec
	queryDuration  *prom.HistogramVec
	renderDuration *prom.HistogramVec
	buildDuration  prom.Histogram
	buildOutcome   *prom.CounterVec
	renderWorkers  prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stampOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stamp_outcomes_total",
			Help:      "Page timestamp resolutions by outcome and skip reason",
		}, []string{"kind", "reason"})
		pr.queryDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "history_query_duration_seconds",
			Help:      "Duration of version-control history queries",
			Buckets:   prom.DefBuckets,
		}, []string{"backend", "result"})
		pr.renderDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "page_render_duration_seconds",
			Help:      "Duration of rendering a single page including context hooks",
			Buckets:   prom.DefBuckets,
		}, []string{"builder"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.renderWorkers = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "render_workers",
			Help:      "Page render workers used by the last build",
		})
		reg.MustRegister(pr.stampOutcomes, pr.queryDuration, pr.renderDuration, pr.buildDuration, pr.buildOutcome, pr.renderWorkers)
	})
	return pr
}

func (p *PrometheusRecorder) IncStampOutcome(kind, reason string) {
	if p == nil || p.stampOutcomes == nil {
		return
	}
	p.stampOutcomes.WithLabelValues(kind, reason).Inc()
}

func (p *PrometheusRecorder) ObserveQueryDuration(backend string, d time.Duration, success bool) {
	if p == nil || p.queryDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.queryDuration.WithLabelValues(backend, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObservePageRenderDuration(builder string, d time.Duration) {
	if p == nil || p.renderDuration == nil {
		return
	}
	p.renderDuration.WithLabelValues(builder).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetRenderWorkers(n int) {
	if p == nil || p.renderWorkers == nil {
		return
	}
	p.renderWorkers.Set(float64(n))
}

// WriteTextfile writes every metric gathered from g to path in the
// node-exporter textfile collector format.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
