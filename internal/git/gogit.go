package git

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/gitstamp/internal/logfields"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GoGitProvider reads repositories in-process with go-git.
type GoGitProvider struct{}

// NewGoGitProvider creates a go-git backed provider.
func NewGoGitProvider() *GoGitProvider { return &GoGitProvider{} }

func (p *GoGitProvider) Backend() Backend { return BackendGoGit }

// Available always succeeds: go-git is linked into the binary.
func (p *GoGitProvider) Available() error { return nil }

// Open finds the repository enclosing dir.
func (p *GoGitProvider) Open(_ context.Context, dir string) (Repository, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	repo, err := git.PlainOpenWithOptions(absDir, &git.PlainOpenOptions{DetectDotGit: true, EnableDotGitCommonDir: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w at %s", ErrRepositoryNotFound, absDir)
		}
		return nil, fmt.Errorf("open repository at %s: %w", absDir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %w", ErrRepositoryNotFound, absDir, err)
	}
	root := wt.Filesystem.Root()
	slog.Debug("Opened git repository", logfields.Backend(string(BackendGoGit)), logfields.Path(root))
	return &goGitRepository{dir: absDir, root: root, repo: repo}, nil
}

type goGitRepository struct {
	dir  string
	root string
	repo *git.Repository
}

func (r *goGitRepository) Backend() Backend { return BackendGoGit }
func (r *goGitRepository) Root() string     { return r.root }

// Log walks history newest first (by committer time) and renders each commit
// with the pretty format.
func (r *goGitRepository) Log(ctx context.Context, opts LogOptions) (string, error) {
	args := logArgs(opts)
	logOpts := &git.LogOptions{Order: git.LogOrderCommitterTime}

	if opts.Path != "" {
		rel, err := r.relative(opts.Path)
		if err != nil {
			return "", &CommandError{Args: args, ExitStatus: 128, Stderr: err.Error(), Err: err}
		}
		logOpts.FileName = &rel
	}

	iter, err := r.repo.Log(logOpts)
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			err = fmt.Errorf("current branch does not have any commits yet: %w", err)
		}
		return "", &CommandError{Args: args, ExitStatus: 128, Stderr: err.Error(), Err: err}
	}
	defer iter.Close()

	var lines []string
	for opts.MaxCount <= 0 || len(lines) < opts.MaxCount {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		c, err := iter.Next()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", &CommandError{Args: args, ExitStatus: 128, Stderr: err.Error(), Err: err}
		}
		lines = append(lines, FormatCommit(opts.Format, c))
	}
	return strings.Join(lines, "\n"), nil
}

// relative maps path onto a slash-separated path inside the working tree.
func (r *goGitRepository) relative(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.dir, path)
	}
	rel, err := filepath.Rel(r.root, filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: '%s' is outside repository at '%s'", path, path, r.root)
	}
	return filepath.ToSlash(rel), nil
}

func logArgs(opts LogOptions) []string {
	args := []string{"log", "--pretty=format:" + opts.Format}
	if opts.MaxCount > 0 {
		args = append(args, "-n", strconv.Itoa(opts.MaxCount))
	}
	if opts.Path != "" {
		args = append(args, "--", opts.Path)
	}
	return args
}
