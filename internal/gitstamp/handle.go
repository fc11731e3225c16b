package gitstamp

import (
	"git.home.luguber.info/inful/gitstamp/internal/foundation"
	"git.home.luguber.info/inful/gitstamp/internal/git"
)

// HandleState tells whether the repository handle was acquired.
type HandleState int

const (
	HandleUnset HandleState = iota
	HandleReady
)

func (s HandleState) String() string {
	if s == HandleReady {
		return "ready"
	}
	return "unset"
}

// Handle is the repository query handle shared by all pages of a build.
// The zero value is unset.
type Handle struct {
	repo foundation.Option[git.Repository]
}

// ReadyHandle wraps an open repository.
func ReadyHandle(repo git.Repository) Handle {
	return Handle{repo: foundation.Some(repo)}
}

// State reports whether the handle holds a repository.
func (h Handle) State() HandleState {
	if h.repo.IsSome() {
		return HandleReady
	}
	return HandleUnset
}

// Repository returns the repository when the handle is ready.
func (h Handle) Repository() (git.Repository, bool) {
	return h.repo.Get()
}
