package git

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls   [][]string
	dirs    []string
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	f.dirs = append(f.dirs, dir)
	if err := f.errs[args[0]]; err != nil {
		return nil, err
	}
	return []byte(f.outputs[args[0]]), nil
}

func TestExecProvider_AvailableMissingBinary(t *testing.T) {
	p := &ExecProvider{Binary: "gitstamp-no-such-git-binary"}
	err := p.Available()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestExecProvider_OpenAndLogArguments(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"rev-parse": "/srv/docs\n",
		"log":       "2020-01-05T15:27:40-05:00\n",
	}}
	p := &ExecProvider{Runner: runner}
	require.NoError(t, p.Available())

	dir := t.TempDir()
	r, err := p.Open(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/docs"), r.Root())
	assert.Equal(t, BackendExec, r.Backend())

	out, err := r.Log(context.Background(), LogOptions{Format: "%aI", MaxCount: 1, Path: "/srv/docs/index.rst"})
	require.NoError(t, err)
	assert.Equal(t, "2020-01-05T15:27:40-05:00", out)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"rev-parse", "--show-toplevel"}, runner.calls[0])
	assert.Equal(t, []string{"log", "--pretty=format:%aI", "-n", "1", "--", "/srv/docs/index.rst"}, runner.calls[1])
	absDir, _ := filepath.Abs(dir)
	assert.Equal(t, absDir, runner.dirs[1], "log runs from the directory the repository was opened from")
}

func TestExecProvider_OpenOutsideRepository(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"rev-parse": &CommandError{Args: []string{"rev-parse", "--show-toplevel"}, ExitStatus: 128, Stderr: "fatal: not a git repository"},
	}}
	_, err := (&ExecProvider{Runner: runner}).Open(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
}

func TestExecProvider_OpenPropagatesStartFailure(t *testing.T) {
	boom := errors.New("exec format error")
	runner := &fakeRunner{errs: map[string]error{"rev-parse": boom}}
	_, err := (&ExecProvider{Runner: runner}).Open(context.Background(), t.TempDir())
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrRepositoryNotFound)
}

func TestExecRepository_LogCommandError(t *testing.T) {
	runner := &fakeRunner{
		outputs: map[string]string{"rev-parse": "/srv/docs"},
		errs: map[string]error{
			"log": &CommandError{Args: []string{"log"}, ExitStatus: 128, Stderr: "fatal: '/tmp/x.rst' is outside repository"},
		},
	}
	r, err := (&ExecProvider{Runner: runner}).Open(context.Background(), t.TempDir())
	require.NoError(t, err)

	_, err = r.Log(context.Background(), LogOptions{Format: "%aI", MaxCount: 1, Path: "/tmp/x.rst"})
	cmdErr, ok := AsCommandError(err)
	require.True(t, ok)
	assert.Equal(t, 128, cmdErr.ExitStatus)
	assert.Contains(t, cmdErr.Error(), "outside repository")
}

// TestExecProvider_RealGit runs against the git binary when one is installed.
func TestExecProvider_RealGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	root, repo := initRepo(t)
	commitFile(t, repo, root, "docs/index.rst", "Index", time.Date(2020, 1, 5, 15, 27, 40, 0, eastern))
	untracked := writeFile(t, root, "docs/draft.rst", "draft")

	p := NewExecProvider()
	require.NoError(t, p.Available())

	r, err := p.Open(context.Background(), filepath.Join(root, "docs"))
	require.NoError(t, err)

	out, err := r.Log(context.Background(), LogOptions{Format: "%aI", MaxCount: 1, Path: filepath.Join(root, "docs", "index.rst")})
	require.NoError(t, err)
	assert.Equal(t, "2020-01-05T15:27:40-05:00", out)

	out, err = r.Log(context.Background(), LogOptions{Format: "%aI", MaxCount: 1, Path: untracked})
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = r.Log(context.Background(), LogOptions{Format: "%aI", MaxCount: 1, Path: writeFile(t, t.TempDir(), "x.rst", "x")})
	_, ok := AsCommandError(err)
	assert.True(t, ok, "expected *CommandError, got %v", err)
}

func TestExecProvider_RealGitNoRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(t.TempDir()))
	_, err := NewExecProvider().Open(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
}
