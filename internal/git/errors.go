package git

import (
	stderrors "errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
)

var (
	// ErrRepositoryNotFound indicates no repository encloses the requested directory.
	ErrRepositoryNotFound = stderrors.New("git repository not found")

	// ErrBackendUnavailable indicates the backend's dependency is missing.
	ErrBackendUnavailable = stderrors.New("git backend unavailable")
)

// CommandError reports a failed history query. Both backends use it so callers
// can tell "the query failed" apart from "the query found nothing".
type CommandError struct {
	Args       []string
	ExitStatus int
	Stderr     string
	Err        error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s", strings.Join(e.Args, " "))
	if e.ExitStatus != 0 {
		msg += fmt.Sprintf(" exited with status %d", e.ExitStatus)
	} else {
		msg += " failed"
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// AsCommandError returns the first *CommandError in err's chain.
func AsCommandError(err error) (*CommandError, bool) {
	var cmdErr *CommandError
	if stderrors.As(err, &cmdErr) {
		return cmdErr, true
	}
	return nil, false
}

// GitError simplifies creating a git-scoped ClassifiedError.
func GitError(message string) *errors.ErrorBuilder {
	return errors.NewError(errors.CategoryGit, message)
}

// ClassifyGitError translates backend errors into ClassifiedErrors.
func ClassifyGitError(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	builder := GitError("git " + op + " failed").
		WithCause(err).
		WithContext("op", op)

	switch {
	case stderrors.Is(err, ErrBackendUnavailable):
		builder.WithCategory(errors.CategoryConfig).Fatal().UserAction()
	case stderrors.Is(err, ErrRepositoryNotFound):
		builder.WithCategory(errors.CategoryNotFound).Warning()
	default:
		if cmdErr, ok := AsCommandError(err); ok {
			builder.WithContext("exit_status", cmdErr.ExitStatus).Fatal()
		}
	}

	return builder.Build()
}
