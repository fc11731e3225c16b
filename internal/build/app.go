package build

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/gitstamp/internal/config"
	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/gitstamp/internal/logfields"
	"git.home.luguber.info/inful/gitstamp/internal/metrics"
	"git.home.luguber.info/inful/gitstamp/internal/plugin"
	"git.home.luguber.info/inful/gitstamp/internal/templates"
)

// Extension is a plugin that hooks into the build lifecycle.
type Extension interface {
	plugin.Plugin
	// Setup declares configuration values and connects event handlers.
	Setup(app *App) error
}

// BuilderInitedHandler runs once after the builder is selected and before
// any page is rendered. An error aborts the build.
type BuilderInitedHandler func(ctx context.Context, app *App) error

// PageContextHandler runs for every page rendered by an HTML-format builder
// and may modify the page's render context. An error aborts the build.
type PageContextHandler func(ctx context.Context, ev *PageEvent) error

// App is one build of a documentation project.
type App struct {
	Config  *config.Config
	Values  *Values
	Builder Builder

	buildID  string
	recorder metrics.Recorder
	renderer *templates.Renderer
	logger   *slog.Logger

	mu            sync.RWMutex
	extensions    []plugin.PluginMetadata
	builderInited []BuilderInitedHandler
	pageContext   []PageContextHandler

	initOnce sync.Once
	initErr  error
}

// Option configures an App.
type Option func(*App)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(a *App) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithBuildID overrides the generated build ID.
func WithBuildID(id string) Option {
	return func(a *App) { a.buildID = id }
}

// WithLogger sets the logger; the build ID is attached to every record.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewApp prepares a build of cfg with the builder the configuration names.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.ConfigError("config required").Build()
	}

	builder, err := NewBuilder(cfg.Builder)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid builder").
			WithContext("builder", string(cfg.Builder)).
			Fatal().
			Build()
	}

	renderer, err := templates.NewRenderer(cfg.TemplatesPath())
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load page templates").
			WithContext("path", cfg.TemplatesPath()).
			Fatal().
			UserAction().
			Build()
	}

	a := &App{
		Config:   cfg,
		Values:   NewValues(cfg.Values),
		Builder:  builder,
		buildID:  uuid.NewString(),
		recorder: metrics.NoopRecorder{},
		renderer: renderer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logfields.BuildID(a.buildID))

	a.logger.Debug("Preparing build",
		logfields.Path(cfg.Path()),
		logfields.Builder(string(builder.Name())))
	for _, name := range templates.Names() {
		a.logger.Debug("Page template", logfields.Name(name), logfields.Source(renderer.Source(name)))
	}
	return a, nil
}

// BuildID identifies this build in logs and output.
func (a *App) BuildID() string { return a.buildID }

// Recorder returns the metrics recorder; never nil.
func (a *App) Recorder() metrics.Recorder { return a.recorder }

// Logger returns the build's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// ConfDir is the directory page sources are resolved against.
func (a *App) ConfDir() string { return a.Config.ConfDir() }

// Use sets up an extension and records its metadata.
func (a *App) Use(ext Extension) error {
	meta := ext.Metadata()
	if err := meta.Validate(); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "invalid extension metadata").Fatal().Build()
	}

	if err := ext.Setup(a); err != nil {
		if errors.IsClassified(err) {
			return err
		}
		return errors.WrapError(plugin.NewPluginError(meta.Name, "setup", err), errors.CategoryConfig, "extension setup failed").
			WithContext("name", meta.Name).
			Fatal().
			Build()
	}

	a.mu.Lock()
	a.extensions = append(a.extensions, meta)
	a.mu.Unlock()

	a.logger.Debug("Extension loaded", logfields.Name(meta.Name), logfields.Value(meta.Version))
	return nil
}

// LoadExtensions instantiates each named plugin from reg and sets it up.
func (a *App) LoadExtensions(reg *plugin.Registry, names []string) error {
	for _, name := range names {
		if !reg.Has(name) {
			return errors.ConfigError("unknown extension").
				WithContext("name", name).
				WithContext("available", reg.Names()).
				Build()
		}
		p, err := reg.New(name)
		if err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "cannot create extension").
				WithContext("name", name).
				Fatal().
				Build()
		}
		ext, ok := p.(Extension)
		if !ok {
			return errors.WrapError(fmt.Errorf("%w: %s", ErrNotAnExtension, name), errors.CategoryInternal, "cannot load extension").
				WithContext("name", name).
				Fatal().
				Build()
		}
		if err := a.Use(ext); err != nil {
			return err
		}
	}
	return nil
}

// Extensions returns the metadata of the loaded extensions in load order.
func (a *App) Extensions() []plugin.PluginMetadata {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]plugin.PluginMetadata(nil), a.extensions...)
}

// OnBuilderInited connects a builder-inited handler.
func (a *App) OnBuilderInited(h BuilderInitedHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.builderInited = append(a.builderInited, h)
}

// OnPageContext connects a page-context handler.
func (a *App) OnPageContext(h PageContextHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pageContext = append(a.pageContext, h)
}

// Init emits builder-inited. It runs the handlers once; later calls return
// the first call's result.
func (a *App) Init(ctx context.Context) error {
	a.initOnce.Do(func() {
		a.warnUnknownValues()
		a.logDeclaredValues()

		a.mu.RLock()
		handlers := append([]BuilderInitedHandler(nil), a.builderInited...)
		a.mu.RUnlock()

		for _, h := range handlers {
			if err := h(ctx, a); err != nil {
				a.initErr = err
				return
			}
		}
	})
	return a.initErr
}

// EmitPageContext runs the page-context handlers in connection order and
// stops at the first error.
func (a *App) EmitPageContext(ctx context.Context, ev *PageEvent) error {
	a.mu.RLock()
	handlers := append([]PageContextHandler(nil), a.pageContext...)
	a.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) warnUnknownValues() {
	for _, name := range a.Values.Unknown() {
		a.logger.Warn("Unknown configuration value", logfields.Name(name))
	}
}

func (a *App) logDeclaredValues() {
	for _, def := range a.Values.Declared() {
		value, _ := a.Values.Get(def.Name)
		a.logger.Debug("Configuration value",
			logfields.Name(def.Name),
			logfields.Value(fmt.Sprint(value)),
			slog.String("rebuild", def.Rebuild))
	}
}
