package gitstamp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"git.home.luguber.info/inful/gitstamp/internal/build"
	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/gitstamp/internal/foundation/normalization"
	"git.home.luguber.info/inful/gitstamp/internal/git"
	"git.home.luguber.info/inful/gitstamp/internal/logfields"
	"git.home.luguber.info/inful/gitstamp/internal/metrics"
)

var backendNormalizer = normalization.NewNormalizer(BackendKey, map[string]git.Backend{
	"exec":   git.BackendExec,
	"git":    git.BackendExec,
	"go-git": git.BackendGoGit,
	"gogit":  git.BackendGoGit,
}, git.BackendExec)

// ParseBackend validates a gitstamp_backend value. Blank selects exec.
func ParseBackend(raw string) (git.Backend, error) {
	return backendNormalizer.Parse(raw)
}

// Session holds the state of one build: the repository handle and the
// settings read when the builder was initialized.
type Session struct {
	providers func(git.Backend) (git.Provider, error)
	workDir   string

	mu       sync.RWMutex
	handle   Handle
	format   string
	confDir  string
	suffix   string
	backend  git.Backend
	recorder metrics.Recorder
	logger   *slog.Logger
}

func newSession() *Session {
	return &Session{
		providers: git.NewProvider,
		workDir:   ".",
		format:    DefaultFormat,
		suffix:    ".rst",
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
	}
}

// Handle returns the current repository handle.
func (s *Session) Handle() Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handle
}

// Gate is the builder-inited handler. For HTML-format builders it acquires
// the configured backend and opens the repository enclosing the working
// directory, then connects Inject. A missing backend dependency is a fatal
// configuration error; a missing repository only disables stamping.
func (s *Session) Gate(ctx context.Context, app *build.App) error {
	log := app.Logger()

	if format := app.Builder.Format(); format != build.FormatHTML {
		log.Debug("Builder output is not html, gitstamp disabled",
			logfields.Builder(string(app.Builder.Name())),
			logfields.Format(format))
		return nil
	}

	pattern, err := app.Values.String(ConfigKey)
	if err != nil {
		return err
	}
	rawBackend, err := app.Values.String(BackendKey)
	if err != nil {
		return err
	}
	backend, err := ParseBackend(rawBackend)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").
			WithContext("field", BackendKey).
			Fatal().
			UserAction().
			Build()
	}

	provider, err := s.providers(backend)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "cannot create git backend").
			WithContext("backend", string(backend)).
			Fatal().
			Build()
	}
	if err := provider.Available(); err != nil {
		return git.ClassifyGitError(err, "backend")
	}

	repo, err := provider.Open(ctx, s.workDir)
	if err != nil {
		log.Warn("gitstamp extension enabled, but no git repository found. No git datestamps will be generated.",
			logfields.Backend(string(backend)),
			logfields.Path(s.workDir),
			logfields.Error(err))
		return nil
	}

	s.mu.Lock()
	s.handle = ReadyHandle(repo)
	s.format = pattern
	s.confDir = app.ConfDir()
	s.suffix = app.Config.SourceSuffix
	s.backend = backend
	s.recorder = app.Recorder()
	s.logger = log
	s.mu.Unlock()

	log.Debug("gitstamp ready",
		logfields.Backend(string(backend)),
		logfields.Path(repo.Root()),
		logfields.Format(pattern))

	app.OnPageContext(s.Inject)
	return nil
}

// Resolve finds the timestamp for one page without touching any render
// context.
func (s *Session) Resolve(ctx context.Context, page string) Outcome {
	s.mu.RLock()
	handle, pattern, confDir, suffix, backend, recorder := s.handle, s.format, s.confDir, s.suffix, s.backend, s.recorder
	s.mu.RUnlock()

	repo, ok := handle.Repository()
	if !ok {
		return skipped(page, "", ReasonNoHandle)
	}

	path := SourcePath(confDir, page, suffix)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return skipped(page, path, ReasonNoSource)
	}

	start := time.Now()
	raw, err := repo.Log(ctx, git.LogOptions{Format: historyFormat, MaxCount: 1, Path: path})
	recorder.ObserveQueryDuration(string(backend), time.Since(start), err == nil)
	if err != nil {
		if ctx.Err() != nil {
			return fatal(page, path, err)
		}
		return fatal(page, path, errors.WrapError(err, errors.CategoryGit, fmt.Sprintf("can't fetch git history for %s", path)).
			WithContext("page", page).
			WithContext("path", path).
			Fatal().
			Build())
	}
	if raw == "" {
		return skipped(page, path, ReasonEmptyHistory)
	}

	ts, err := ParseTimestamp(raw)
	if err != nil {
		out := skipped(page, path, ReasonUnparsable)
		out.Raw = raw
		return out
	}

	return injected(page, path, FormatTimestamp(pattern, ts), ts)
}

// Stamp resolves a page, then logs and counts the outcome.
func (s *Session) Stamp(ctx context.Context, page string) Outcome {
	out := s.Resolve(ctx, page)

	s.mu.RLock()
	log, recorder := s.logger, s.recorder
	s.mu.RUnlock()

	recorder.IncStampOutcome(out.Kind.String(), string(out.Reason))

	switch out.Kind {
	case Injected:
		log.Debug("Page stamped", logfields.Page(page), logfields.Timestamp(out.Value))
	case Skipped:
		if out.Reason == ReasonUnparsable {
			log.Info("Can't parse datestamp for gitstamp, output won't have last updated time",
				logfields.Page(page),
				logfields.Value(out.Raw))
		} else {
			log.Debug("Page not stamped", logfields.Page(page), logfields.Reason(string(out.Reason)))
		}
	case Fatal:
		// Reported by the caller that stops the build.
		log.Debug("History query failed", logfields.Page(page), logfields.Path(out.Path), logfields.Error(out.Err))
	}
	return out
}

// Inject is the page-context handler. Only an Injected outcome modifies
// the context; a Fatal outcome stops the build.
func (s *Session) Inject(ctx context.Context, ev *build.PageEvent) error {
	out := s.Stamp(ctx, ev.PageName)

	switch out.Kind {
	case Injected:
		ev.Context.Set(ContextKey, out.Value)
		return nil
	case Skipped:
		return nil
	case Fatal:
		return out.Err
	default:
		return errors.InternalError(fmt.Sprintf("unknown gitstamp outcome %d", out.Kind)).
			WithContext("page", ev.PageName).
			Build()
	}
}
