package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// eastern is the committer zone used by fixtures: UTC-05:00 with no name.
var eastern = time.FixedZone("", -5*60*60)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	return root, repo
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func commitFile(t *testing.T, repo *git.Repository, root, rel, content string, when time.Time) plumbing.Hash {
	t.Helper()
	writeFile(t, root, rel, content)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(rel)
	require.NoError(t, err)
	hash, err := wt.Commit("update "+rel, &git.CommitOptions{
		Author: &object.Signature{Name: "Doc Writer", Email: "docs@example.com", When: when},
	})
	require.NoError(t, err)
	return hash
}
