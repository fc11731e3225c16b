// Package watch rebuilds a documentation project when its sources change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/gitstamp/internal/logfields"
)

// DefaultDebounce is the quiet window between the last change and a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc runs one build. Errors are logged; watching continues.
type RebuildFunc func(ctx context.Context) error

// Watcher watches a source tree and calls a RebuildFunc after changes.
type Watcher struct {
	root     string
	exclude  []string
	rebuild  RebuildFunc
	debounce time.Duration
	logger   *slog.Logger

	readyOnce sync.Once
	ready     chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithExclude skips the given directories, typically the build output.
func WithExclude(dirs ...string) Option {
	return func(w *Watcher) {
		for _, d := range dirs {
			if d != "" {
				w.exclude = append(w.exclude, filepath.Clean(d))
			}
		}
	}
}

// New creates a watcher for root.
func New(root string, rebuild RebuildFunc, opts ...Option) *Watcher {
	w := &Watcher{
		root:     filepath.Clean(root),
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once Run watches the tree.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is done. A rebuild in progress when further changes
// arrive is followed by exactly one more rebuild.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := w.addDirsRecursive(fsw, w.root); err != nil {
		return err
	}

	rebuildReq, trigger, stop := debouncer(w.debounce)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildLoop(ctx, rebuildReq)
	}()
	defer wg.Wait()

	w.readyOnce.Do(func() { close(w.ready) })
	w.logger.Info("Watching for changes", logfields.Path(w.root))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped watching", logfields.Path(w.root))
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// debouncer returns a request channel that receives once per quiet window.
func debouncer(quiet time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(quiet, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

// rebuildLoop runs rebuilds one at a time. The request channel holds at
// most one pending request, which coalesces changes made during a rebuild.
func (w *Watcher) rebuildLoop(ctx context.Context, req <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			w.logger.Info("Change detected, rebuilding")
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				w.logger.Warn("Rebuild failed", logfields.Error(err))
				continue
			}
			w.logger.Info("Rebuild finished", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.ignored(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(fsw, ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), logfields.Value(ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && (w.excluded(path) || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func (w *Watcher) excluded(path string) bool {
	clean := filepath.Clean(path)
	for _, e := range w.exclude {
		if clean == e || strings.HasPrefix(clean, e+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) ignored(path string) bool {
	return w.excluded(path) || ShouldIgnore(path)
}

// ShouldIgnore reports whether a changed path is an editor or OS artifact
// that must not trigger a rebuild.
func ShouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db" || base == "4913"
}
