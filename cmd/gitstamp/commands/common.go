package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gitstamp/internal/build"
	"git.home.luguber.info/inful/gitstamp/internal/config"
	"git.home.luguber.info/inful/gitstamp/internal/gitstamp"
	"git.home.luguber.info/inful/gitstamp/internal/metrics"
	"git.home.luguber.info/inful/gitstamp/internal/plugin"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger   *slog.Logger
	Registry *plugin.Registry
	Stdout   io.Writer
	Stderr   io.Writer
}

// NewGlobal returns the state used by the gitstamp binary.
func NewGlobal() *Global {
	return &Global{
		Logger:   slog.Default(),
		Registry: DefaultRegistry(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// DefaultRegistry returns a registry of the bundled extensions.
func DefaultRegistry() *plugin.Registry {
	reg := plugin.NewRegistry()
	reg.MustRegister(gitstamp.Factory)
	return reg
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"gitstamp.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Build the documentation project"`
	Stamp StampCmd `cmd:"" help:"Print the last-updated stamp of pages"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once. The logging
// section of the configuration file is honored when the file loads.
func (c *CLI) AfterApply(g *Global) error {
	var logging config.LoggingConfig
	if cfg, err := config.Load(c.Config); err == nil {
		logging = cfg.Logging
	}
	g.Logger = NewLogger(g.Stderr, logging, c.Verbose)
	slog.SetDefault(g.Logger)
	return nil
}

// NewLogger builds the process logger. Verbose forces debug level.
func NewLogger(w io.Writer, logging config.LoggingConfig, verbose bool) *slog.Logger {
	level := config.NormalizeLogLevel(string(logging.Level)).SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if config.NormalizeLogFormat(string(logging.Format)) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newApp prepares one build with the configured extensions loaded.
func newApp(g *Global, cfg *config.Config, recorder metrics.Recorder) (*build.App, error) {
	app, err := build.NewApp(cfg, build.WithLogger(g.Logger), build.WithRecorder(recorder))
	if err != nil {
		return nil, err
	}
	if err := app.LoadExtensions(g.Registry, cfg.Extensions); err != nil {
		return nil, err
	}
	return app, nil
}

// extensionDefaults collects the option defaults declared by every
// registered extension.
func extensionDefaults(reg *plugin.Registry) (map[string]any, error) {
	app, err := build.NewApp(config.Default(), build.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		return nil, err
	}
	if err := app.LoadExtensions(reg, reg.Names()); err != nil {
		return nil, err
	}
	return app.Values.Defaults(), nil
}
