package build

import "time"

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// Status indicates overall build outcome.
	Status BuildStatus

	// BuildID identifies the build in logs.
	BuildID string

	// OutputPath is the output directory.
	OutputPath string

	// Pages is the count of pages handed to the builder, synthetic pages included.
	Pages int

	// Files lists the written output files relative to OutputPath, sorted.
	Files []string

	// Workers is the number of render workers used.
	Workers int

	// DocsHash fingerprints the rendered sources.
	DocsHash string

	// Duration is the total build execution time.
	Duration time.Duration

	// StartTime is when the build started.
	StartTime time.Time

	// EndTime is when the build completed.
	EndTime time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed successfully.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
