package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/gitstamp/internal/logfields"
)

// Runner executes the git binary. Non-zero exits come back as *CommandError.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

type execRunner struct {
	binary string
}

func (r execRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	// #nosec G204 -- binary comes from configuration, arguments are built by this package
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return nil, &CommandError{Args: args, ExitStatus: exitErr.ExitCode(), Stderr: stderr.String(), Err: err}
	}
	return nil, fmt.Errorf("run %s: %w", r.binary, err)
}

// ExecProvider runs the git binary.
type ExecProvider struct {
	// Binary is the executable name or path; defaults to "git".
	Binary string
	// Runner overrides process execution, mainly for tests.
	Runner Runner
}

// NewExecProvider creates a provider using the git binary on PATH.
func NewExecProvider() *ExecProvider {
	return &ExecProvider{Binary: "git"}
}

func (p *ExecProvider) Backend() Backend { return BackendExec }

func (p *ExecProvider) binary() string {
	if p.Binary == "" {
		return "git"
	}
	return p.Binary
}

func (p *ExecProvider) runner() Runner {
	if p.Runner != nil {
		return p.Runner
	}
	return execRunner{binary: p.binary()}
}

// Available checks that the git binary can be found.
func (p *ExecProvider) Available() error {
	if p.Runner != nil {
		return nil
	}
	if _, err := exec.LookPath(p.binary()); err != nil {
		return fmt.Errorf("%w: %s not found on PATH (install git or set gitstamp_backend: go-git): %w", ErrBackendUnavailable, p.binary(), err)
	}
	return nil
}

// Open asks git for the top level of the working tree containing dir.
func (p *ExecProvider) Open(ctx context.Context, dir string) (Repository, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	run := p.runner()
	out, err := run.Run(ctx, absDir, "rev-parse", "--show-toplevel")
	if err != nil {
		if _, ok := AsCommandError(err); ok {
			return nil, fmt.Errorf("%w at %s: %w", ErrRepositoryNotFound, absDir, err)
		}
		return nil, err
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		// bare repositories and the inside of .git have no working tree
		return nil, fmt.Errorf("%w at %s: no working tree", ErrRepositoryNotFound, absDir)
	}
	slog.Debug("Opened git repository", logfields.Backend(string(BackendExec)), logfields.Path(filepath.FromSlash(root)))
	return &execRepository{dir: absDir, root: filepath.FromSlash(root), runner: run}, nil
}

type execRepository struct {
	dir    string
	root   string
	runner Runner
}

func (r *execRepository) Backend() Backend { return BackendExec }
func (r *execRepository) Root() string     { return r.root }

func (r *execRepository) Log(ctx context.Context, opts LogOptions) (string, error) {
	args := logArgs(opts)
	out, err := r.runner.Run(ctx, r.dir, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
