package errors

// Package errors provides sentinel errors for documentation discovery operations.
// Callers wrap them with context and classify them at the command boundary.

import "errors"

var (
	// ErrSourceDirNotFound indicates the configured source directory does not exist.
	ErrSourceDirNotFound = errors.New("source directory not found")

	// ErrDirWalkFailed indicates filesystem traversal of the source directory failed.
	ErrDirWalkFailed = errors.New("source directory walk failed")

	// ErrFileReadFailed indicates reading content from a discovered source file failed.
	ErrFileReadFailed = errors.New("source file read failed")

	// ErrInvalidRelativePath indicates calculating a path relative to the source directory failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")

	// ErrNoPagesFound indicates discovery found no source files at all.
	ErrNoPagesFound = errors.New("no source files found")
)
