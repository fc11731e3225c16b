// Package metrics provides the observability hooks for gitstamp builds.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never need nil checks at call sites:
//
//	app := build.NewApp(cfg, builder, build.WithRecorder(metrics.NoopRecorder{}))
//
// When the build command is given --metrics-file, a PrometheusRecorder is
// registered on a fresh registry and the registry is written in the
// node-exporter textfile format once the build finishes:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	// ... build ...
//	err := metrics.WriteTextfile(path, reg)
//
// All Recorder implementations must be safe for concurrent use; pages are
// rendered by a worker pool.
package metrics
