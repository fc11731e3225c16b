package git

import (
	"context"
	"fmt"
)

// Backend names a Provider implementation.
type Backend string

const (
	BackendExec  Backend = "exec"
	BackendGoGit Backend = "go-git"
)

// LogOptions selects what Repository.Log prints.
type LogOptions struct {
	// Format is a git pretty format without the "format:" prefix, e.g. "%aI".
	Format string
	// MaxCount limits the number of commits; zero or less means no limit.
	MaxCount int
	// Path restricts history to one file. Relative paths resolve against the
	// directory the repository was opened from.
	Path string
}

// Repository is an open query handle on a working copy.
type Repository interface {
	Backend() Backend
	// Root is the top level of the working tree.
	Root() string
	Log(ctx context.Context, opts LogOptions) (string, error)
}

// Provider acquires a backend and opens repositories with it.
type Provider interface {
	Backend() Backend
	// Available reports ErrBackendUnavailable when the backend cannot run at all.
	Available() error
	// Open binds a Repository to dir, searching parent directories for the
	// repository. It returns ErrRepositoryNotFound when there is none.
	Open(ctx context.Context, dir string) (Repository, error)
}

// NewProvider returns the Provider for the named backend.
func NewProvider(b Backend) (Provider, error) {
	switch b {
	case BackendExec, "":
		return NewExecProvider(), nil
	case BackendGoGit:
		return NewGoGitProvider(), nil
	default:
		return nil, fmt.Errorf("unknown git backend %q", b)
	}
}
