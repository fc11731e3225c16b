package gitstamp

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gitstamp/internal/build"
	"git.home.luguber.info/inful/gitstamp/internal/config"
	"git.home.luguber.info/inful/gitstamp/internal/git"
	"git.home.luguber.info/inful/gitstamp/internal/metrics"
)

// fakeRepo answers Log from a table keyed by page file name.
type fakeRepo struct {
	mu      sync.Mutex
	root    string
	outputs map[string]string
	errs    map[string]error
	queried []string
}

func (r *fakeRepo) Backend() git.Backend { return git.BackendExec }
func (r *fakeRepo) Root() string         { return r.root }

func (r *fakeRepo) Log(_ context.Context, opts git.LogOptions) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := filepath.Base(opts.Path)
	r.queried = append(r.queried, name)
	if err, ok := r.errs[name]; ok {
		return "", err
	}
	return r.outputs[name], nil
}

func (r *fakeRepo) Queried() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queried...)
}

type fakeProvider struct {
	availErr error
	openErr  error
	repo     git.Repository
	opened   int
}

func (p *fakeProvider) Backend() git.Backend { return git.BackendExec }
func (p *fakeProvider) Available() error     { return p.availErr }

func (p *fakeProvider) Open(context.Context, string) (git.Repository, error) {
	p.opened++
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p.repo, nil
}

func providerFactory(p git.Provider) Option {
	return WithProviderFactory(func(git.Backend) (git.Provider, error) { return p, nil })
}

// project is a source tree plus the app building it.
type project struct {
	dir  string
	out  string
	app  *build.App
	ext  *Extension
	logs *bytes.Buffer
}

func newProject(t *testing.T, builder config.BuilderName, pages map[string]string, values map[string]any, opts ...Option) *project {
	t.Helper()
	dir := t.TempDir()
	for name, content := range pages {
		path := filepath.Join(dir, filepath.FromSlash(name)+".rst")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.Project = "Test Docs"
	cfg.SourceDir = dir
	cfg.OutputDir = filepath.Join(dir, "_build")
	cfg.Builder = builder
	for k, v := range values {
		cfg.Values[k] = v
	}

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	app, err := build.NewApp(cfg, build.WithLogger(logger))
	require.NoError(t, err)

	ext := New(opts...)
	require.NoError(t, app.Use(ext))

	return &project{dir: dir, out: cfg.OutputPath(), app: app, ext: ext, logs: logs}
}

func (p *project) output(t *testing.T, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(p.out, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(b)
}

func (p *project) exists(rel string) bool {
	_, err := os.Stat(filepath.Join(p.out, filepath.FromSlash(rel)))
	return err == nil
}

func (p *project) logContains(s string) bool {
	return strings.Contains(p.logs.String(), s)
}

func pageEvent(name string) *build.PageEvent {
	return &build.PageEvent{
		PageName:     name,
		TemplateName: "page.html",
		Context:      build.PageContext{"project": "Test Docs", "pagename": name},
	}
}

func snapshot(ctx build.PageContext) map[string]any {
	out := make(map[string]any, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}

// countingRecorder keeps stamp outcome counts for assertions.
type countingRecorder struct {
	metrics.NoopRecorder

	mu       sync.Mutex
	outcomes map[string]int
	queryN   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{outcomes: map[string]int{}}
}

func (r *countingRecorder) IncStampOutcome(kind, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[kind+"/"+reason]++
}

func (r *countingRecorder) ObserveQueryDuration(string, time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryN++
}

func (r *countingRecorder) count(kind, reason string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[kind+"/"+reason]
}

func (r *countingRecorder) queries() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queryN
}

var eastern = time.FixedZone("", -5*60*60)

func initRepo(t *testing.T, dir string) *gogit.Repository {
	t.Helper()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return repo
}

// commitFile writes content to rel and commits it with the given author time.
func commitFile(t *testing.T, repo *gogit.Repository, rel, content string, when time.Time) {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	path := filepath.Join(wt.Filesystem.Root(), filepath.FromSlash(rel))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	_, err = wt.Add(filepath.ToSlash(rel))
	require.NoError(t, err)
	_, err = wt.Commit("update "+rel, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Docs Writer", Email: "docs@example.com", When: when},
	})
	require.NoError(t, err)
}
