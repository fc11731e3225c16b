package git

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoGitProvider_OpenDiscoversRootFromSubdirectory(t *testing.T) {
	root, repo := initRepo(t)
	commitFile(t, repo, root, "docs/index.rst", "Index\n=====\n", time.Date(2020, 1, 5, 15, 27, 40, 0, eastern))

	p := NewGoGitProvider()
	require.NoError(t, p.Available())

	r, err := p.Open(context.Background(), filepath.Join(root, "docs"))
	require.NoError(t, err)
	assert.Equal(t, BackendGoGit, r.Backend())

	wantRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, r.Root())
}

func TestGoGitProvider_OpenWithoutRepository(t *testing.T) {
	_, err := NewGoGitProvider().Open(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRepositoryNotFound), "got %v", err)
}

func TestGoGitRepository_LogLatestCommitKeepsOffset(t *testing.T) {
	root, repo := initRepo(t)
	commitFile(t, repo, root, "docs/guide.rst", "v1", time.Date(2019, 6, 1, 9, 0, 0, 0, time.UTC))
	commitFile(t, repo, root, "docs/other.rst", "other", time.Date(2021, 3, 3, 10, 0, 0, 0, time.UTC))
	commitFile(t, repo, root, "docs/guide.rst", "v2", time.Date(2020, 1, 5, 15, 27, 40, 0, eastern))

	r, err := NewGoGitProvider().Open(context.Background(), root)
	require.NoError(t, err)

	out, err := r.Log(context.Background(), LogOptions{Format: "%aI", MaxCount: 1, Path: filepath.Join(root, "docs", "guide.rst")})
	require.NoError(t, err)
	assert.Equal(t, "2020-01-05T15:27:40-05:00", out)
}

func TestGoGitRepository_LogRelativePathAndCount(t *testing.T) {
	root, repo := initRepo(t)
	commitFile(t, repo, root, "index.rst", "v1", time.Date(2019, 6, 1, 9, 0, 0, 0, time.UTC))
	commitFile(t, repo, root, "index.rst", "v2", time.Date(2019, 6, 2, 9, 0, 0, 0, time.UTC))

	r, err := NewGoGitProvider().Open(context.Background(), root)
	require.NoError(t, err)

	out, err := r.Log(context.Background(), LogOptions{Format: "%aI", Path: "index.rst"})
	require.NoError(t, err)
	assert.Equal(t, "2019-06-02T09:00:00+00:00\n2019-06-01T09:00:00+00:00", out)
}

func TestGoGitRepository_LogUntrackedFileIsEmpty(t *testing.T) {
	root, repo := initRepo(t)
	commitFile(t, repo, root, "index.rst", "v1", time.Date(2019, 6, 1, 9, 0, 0, 0, time.UTC))
	untracked := writeFile(t, root, "draft.rst", "not committed")

	r, err := NewGoGitProvider().Open(context.Background(), root)
	require.NoError(t, err)

	out, err := r.Log(context.Background(), LogOptions{Format: "%aI", MaxCount: 1, Path: untracked})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGoGitRepository_LogOutsideRepositoryIsCommandError(t *testing.T) {
	root, repo := initRepo(t)
	commitFile(t, repo, root, "index.rst", "v1", time.Date(2019, 6, 1, 9, 0, 0, 0, time.UTC))
	outside := writeFile(t, t.TempDir(), "elsewhere.rst", "x")

	r, err := NewGoGitProvider().Open(context.Background(), root)
	require.NoError(t, err)

	_, err = r.Log(context.Background(), LogOptions{Format: "%aI", MaxCount: 1, Path: outside})
	cmdErr, ok := AsCommandError(err)
	require.True(t, ok, "expected *CommandError, got %v", err)
	assert.Equal(t, 128, cmdErr.ExitStatus)
	assert.Contains(t, cmdErr.Error(), "outside repository")
}

func TestGoGitRepository_LogWithoutCommitsIsCommandError(t *testing.T) {
	root, _ := initRepo(t)
	path := writeFile(t, root, "index.rst", "x")

	r, err := NewGoGitProvider().Open(context.Background(), root)
	require.NoError(t, err)

	_, err = r.Log(context.Background(), LogOptions{Format: "%aI", MaxCount: 1, Path: path})
	_, ok := AsCommandError(err)
	assert.True(t, ok, "expected *CommandError, got %v", err)
}

func TestGoGitRepository_LogHonoursCanceledContext(t *testing.T) {
	root, repo := initRepo(t)
	commitFile(t, repo, root, "index.rst", "v1", time.Date(2019, 6, 1, 9, 0, 0, 0, time.UTC))

	r, err := NewGoGitProvider().Open(context.Background(), root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Log(ctx, LogOptions{Format: "%aI", Path: "index.rst"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(BackendGoGit)
	require.NoError(t, err)
	assert.Equal(t, BackendGoGit, p.Backend())

	p, err = NewProvider("")
	require.NoError(t, err)
	assert.Equal(t, BackendExec, p.Backend())

	_, err = NewProvider("svn")
	assert.Error(t, err)
}

