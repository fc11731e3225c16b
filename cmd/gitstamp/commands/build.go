package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/gitstamp/internal/config"
	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/gitstamp/internal/logfields"
	"git.home.luguber.info/inful/gitstamp/internal/metrics"
	"git.home.luguber.info/inful/gitstamp/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Builder     string `short:"b" help:"Override the configured builder (html, dirhtml, text)"`
	Output      string `short:"o" help:"Override the configured output directory" type:"path"`
	Watch       bool   `short:"w" help:"Rebuild when sources change"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this file after each build" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		registry *prom.Registry
	)
	if b.MetricsFile != "" {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	run := func(ctx context.Context) error {
		err := RunBuild(ctx, g, cfg, recorder)
		if registry != nil {
			if werr := metrics.WriteTextfile(b.MetricsFile, registry); werr != nil {
				g.Logger.Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(werr))
			}
		}
		return err
	}

	if !b.Watch {
		return run(ctx)
	}

	if err := run(ctx); err != nil {
		g.Logger.Warn("Initial build failed, waiting for changes", logfields.Error(err))
	}
	w := watch.New(cfg.ConfDir(), run,
		watch.WithExclude(cfg.OutputPath()),
		watch.WithLogger(g.Logger))
	return w.Run(ctx)
}

func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.Builder != "" {
		name, err := config.ParseBuilderName(b.Builder)
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid --builder").
				WithContext("field", "builder").
				WithContext("valid", config.BuilderNames()).
				UserAction().
				Build()
		}
		cfg.Builder = name
	}
	if b.Output != "" {
		cfg.OutputDir = b.Output
	}
	return nil
}

// RunBuild builds the project once with a fresh App, so every build gets
// fresh extension state.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, recorder metrics.Recorder) error {
	app, err := newApp(g, cfg, recorder)
	if err != nil {
		return err
	}
	result, err := app.Build(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "Build succeeded: %d files written to %s\n", len(result.Files), result.OutputPath)
	return nil
}
