package gitstamp

import "time"

// Kind tags an Outcome.
type Kind int

const (
	// Injected: the formatted stamp is stored in the page context.
	Injected Kind = iota + 1
	// Skipped: the page context is left untouched.
	Skipped
	// Fatal: the history query failed and the build must stop.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Injected:
		return "injected"
	case Skipped:
		return "skipped"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// SkipReason explains a Skipped outcome.
type SkipReason string

const (
	ReasonNoSource     SkipReason = "no-source"
	ReasonEmptyHistory SkipReason = "empty-history"
	ReasonUnparsable   SkipReason = "unparsable"
	ReasonNoHandle     SkipReason = "no-handle"
)

// Outcome is the result of resolving one page.
type Outcome struct {
	Kind Kind
	Page string
	// Path is the resolved source path; empty for ReasonNoHandle.
	Path string

	// Value and Time are set for Injected.
	Value string
	Time  time.Time

	// Reason is set for Skipped. Raw holds the unparsable history output.
	Reason SkipReason
	Raw    string

	// Err is set for Fatal and names the page.
	Err error
}

func injected(page, path, value string, t time.Time) Outcome {
	return Outcome{Kind: Injected, Page: page, Path: path, Value: value, Time: t}
}

func skipped(page, path string, reason SkipReason) Outcome {
	return Outcome{Kind: Skipped, Page: page, Path: path, Reason: reason}
}

func fatal(page, path string, err error) Outcome {
	return Outcome{Kind: Fatal, Page: page, Path: path, Err: err}
}
