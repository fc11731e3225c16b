// Package gitstamp adds a "last updated" timestamp, taken from version
// control history, to the render context of every documentation page.
//
// Setup declares the gitstamp_fmt and gitstamp_backend options and connects
// a builder-inited handler (Session.Gate). The gate only runs for
// HTML-format builders; when a repository is found it connects the
// page-context handler (Session.Inject), which stores the formatted commit
// time of the page's source file under the "gittstamp" context key.
//
// For a commit dated 2020-01-05T15:27:40-05:00 the default format renders
// "Jan 05, 2020 at 03:27 PM (UTC-0500)". The committer's UTC offset is kept.
package gitstamp

import (
	"git.home.luguber.info/inful/gitstamp/internal/build"
	"git.home.luguber.info/inful/gitstamp/internal/git"
	"git.home.luguber.info/inful/gitstamp/internal/plugin"
)

const (
	// Name is the extension name used in the configuration's extensions list.
	Name = "gitstamp"

	// Version of the extension.
	Version = "v1.0.0"

	// ConfigKey is the strftime pattern option.
	ConfigKey = "gitstamp_fmt"

	// BackendKey selects the version-control backend ("exec" or "go-git").
	BackendKey = "gitstamp_backend"

	// DefaultFormat renders e.g. "Jan 05, 2020 at 03:27 PM (UTC-0500)".
	DefaultFormat = "%b %d, %Y at %I:%M %p (UTC%z)"

	// ContextKey is the render context key templates read the stamp from.
	// The spelling is fixed; existing templates depend on it.
	ContextKey = "gittstamp"

	// historyFormat asks for the author date in strict ISO 8601.
	historyFormat = "%aI"
)

// Extension is the gitstamp build extension.
type Extension struct {
	session *Session
}

// Option configures an Extension.
type Option func(*Session)

// WithProviderFactory replaces how the configured backend is turned into a
// git.Provider.
func WithProviderFactory(f func(git.Backend) (git.Provider, error)) Option {
	return func(s *Session) { s.providers = f }
}

// WithWorkDir sets the directory the repository handle is bound to. It
// defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(s *Session) { s.workDir = dir }
}

// New creates the extension.
func New(opts ...Option) *Extension {
	s := newSession()
	for _, opt := range opts {
		opt(s)
	}
	return &Extension{session: s}
}

// Factory creates extensions for the plugin registry.
func Factory() plugin.Plugin { return New() }

// Metadata declares the extension unsafe for parallel page processing: the
// repository handle is shared.
func (e *Extension) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:         Name,
		Version:      Version,
		Description:  "Exposes the last commit time of each page's source file to templates",
		ParallelSafe: false,
	}
}

// Setup declares the options and connects the builder-inited gate.
func (e *Extension) Setup(app *build.App) error {
	if err := app.Values.Add(ConfigKey, DefaultFormat, build.RebuildHTML); err != nil {
		return err
	}
	if err := app.Values.Add(BackendKey, string(git.BackendExec), build.RebuildEnv); err != nil {
		return err
	}
	app.OnBuilderInited(e.session.Gate)
	return nil
}

// Session returns the extension's per-build state.
func (e *Extension) Session() *Session { return e.session }
