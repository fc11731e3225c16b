package build

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/gitstamp/internal/docs"
	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/gitstamp/internal/logfields"
	"git.home.luguber.info/inful/gitstamp/internal/metrics"
	"git.home.luguber.info/inful/gitstamp/internal/templates"
)

// Build runs the whole build: builder-inited, discovery, then rendering of
// every page. The first error stops the build; pages not yet started are
// not processed.
func (a *App) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{
		BuildID:    a.buildID,
		OutputPath: a.Config.OutputPath(),
		StartTime:  start,
	}

	a.logger.Info("Starting build",
		logfields.Builder(string(a.Builder.Name())),
		logfields.Format(a.Builder.Format()),
		logfields.Path(a.Config.ConfDir()))

	if err := a.Init(ctx); err != nil {
		return a.finish(ctx, result, err)
	}

	pages, err := a.Pages()
	if err != nil {
		return a.finish(ctx, result, err)
	}
	result.Pages = len(pages)

	workers := a.Workers()
	result.Workers = workers
	a.recorder.SetRenderWorkers(workers)

	files, err := a.renderPages(ctx, pages, workers)
	result.Files = files
	result.DocsHash = docs.ComputeHash(pages)
	return a.finish(ctx, result, err)
}

func (a *App) finish(ctx context.Context, result *BuildResult, err error) (*BuildResult, error) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	a.recorder.ObserveBuildDuration(result.Duration)

	switch {
	case err == nil:
		result.Status = BuildStatusSuccess
		a.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		a.logger.Info("Build completed",
			logfields.Pages(result.Pages),
			logfields.Workers(result.Workers),
			logfields.Path(result.OutputPath),
			logfields.DurationMS(float64(result.Duration.Milliseconds())))
	case ctx.Err() != nil && stderrors.Is(err, ctx.Err()):
		result.Status = BuildStatusCancelled
		a.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		a.logger.Warn("Build cancelled", logfields.Error(err))
	default:
		result.Status = BuildStatusFailed
		a.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	}
	return result, err
}

// Pages discovers the source pages and appends the builder's synthetic pages.
func (a *App) Pages() ([]docs.Page, error) {
	discovery := docs.NewDiscovery(a.Config.ConfDir(), a.Config.SourceSuffix, a.Config.OutputPath())
	pages, err := discovery.Discover()
	if err != nil {
		return nil, errors.DocsError("failed to discover source pages").
			WithCause(err).
			WithContext("path", a.Config.ConfDir()).
			Fatal().
			Build()
	}
	for _, name := range a.Builder.SyntheticPages() {
		pages = append(pages, docs.SyntheticPage(name))
	}
	return pages, nil
}

// Workers returns the render pool size: the configured parallelism, or one
// when a loaded extension is not parallel safe.
func (a *App) Workers() int {
	workers := a.Config.Parallel
	if workers < 1 {
		workers = 1
	}
	if workers == 1 {
		return 1
	}
	for _, ext := range a.Extensions() {
		if !ext.ParallelSafe {
			a.logger.Warn("Extension is not parallel safe, rendering pages sequentially",
				logfields.Name(ext.Name),
				logfields.Workers(workers))
			return 1
		}
	}
	return workers
}

func (a *App) renderPages(ctx context.Context, pages []docs.Page, workers int) ([]string, error) {
	names := make([]string, 0, len(pages))
	for _, p := range pages {
		if !p.Synthetic {
			names = append(names, p.Name)
		}
	}

	var (
		mu    sync.Mutex
		files []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range pages {
		if gctx.Err() != nil {
			break
		}
		page := &pages[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file, err := a.renderPage(gctx, page, names)
			if err != nil {
				return err
			}
			mu.Lock()
			files = append(files, file)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	sort.Strings(files)
	return files, err
}

func (a *App) renderPage(ctx context.Context, page *docs.Page, allPages []string) (string, error) {
	start := time.Now()

	if err := page.LoadContent(); err != nil {
		return "", errors.DocsError("failed to read page source").
			WithCause(err).
			WithContext("page", page.Name).
			Fatal().
			Build()
	}

	var tree docs.Doctree
	if !page.Synthetic {
		tree = docs.ParseDoctree(page.Content)
		if tree.Empty() {
			a.logger.Debug("Page has no content", logfields.Page(page.Name))
		}
	}

	ev := &PageEvent{
		PageName:     page.Name,
		TemplateName: a.Builder.TemplateName(page.Name, page.Synthetic),
		Context:      a.baseContext(page, tree, allPages),
		Doctree:      tree,
	}

	if a.Builder.Format() == FormatHTML {
		if err := a.EmitPageContext(ctx, ev); err != nil {
			if errors.IsClassified(err) {
				return "", err
			}
			return "", errors.BuildError("page context handler failed").
				WithCause(err).
				WithContext("page", page.Name).
				Build()
		}
	}

	out, err := a.Builder.Render(a.renderer, ev.TemplateName, ev.Context)
	if err != nil {
		return "", errors.BuildError("failed to render page").
			WithCause(fmt.Errorf("%w: %w", ErrPageRender, err)).
			WithContext("page", page.Name).
			Build()
	}

	rel := a.Builder.OutputPath(page.Name)
	target := filepath.Join(a.Config.OutputPath(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errors.FileSystemError("failed to create output directory").
			WithCause(err).
			WithContext("path", filepath.Dir(target)).
			Fatal().
			Build()
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return "", errors.FileSystemError("failed to write page").
			WithCause(err).
			WithContext("page", page.Name).
			WithContext("path", target).
			Fatal().
			Build()
	}

	elapsed := time.Since(start)
	a.recorder.ObservePageRenderDuration(string(a.Builder.Name()), elapsed)
	a.logger.Debug("Page written",
		logfields.Page(page.Name),
		logfields.File(rel),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return rel, nil
}

func (a *App) baseContext(page *docs.Page, tree docs.Doctree, allPages []string) PageContext {
	title := tree.Title
	if title == "" {
		title = templates.Title(page.Name)
	}
	ctx := PageContext{
		ContextProject:  a.Config.Project,
		ContextTitle:    title,
		ContextPageName: page.Name,
		ContextBody:     tree.Paragraphs,
		ContextSections: tree.Sections,
		ContextBuildID:  a.buildID,
	}
	if page.Synthetic && page.Name == "genindex" {
		ctx[ContextPages] = allPages
	}
	return ctx
}
