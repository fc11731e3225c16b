// Package errors provides the classified error primitives used across gitstamp.
//
// A ClassifiedError carries a category (config, git, build, ...), a severity
// and a retry hint alongside the message and wrapped cause. The CLI adapter
// turns them into exit codes and user-facing messages.
//
// Example usage:
//
//	err := errors.GitError("history query failed").
//		WithCause(cmdErr).
//		WithContext("page", pagename).
//		Fatal().
//		Build()
package errors
