package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyBuilder    = "builder"
	KeyFormat     = "format"
	KeyBackend    = "backend"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyFile       = "file"
	KeySource     = "source"
	KeyName       = "name"
	KeyValue      = "value"
	KeyTimestamp  = "timestamp"
	KeyOutcome    = "outcome"
	KeyReason     = "reason"
	KeyPages      = "pages"
	KeyWorkers    = "workers"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Builder(name string) slog.Attr   { return slog.String(KeyBuilder, name) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Backend(b string) slog.Attr      { return slog.String(KeyBackend, b) }
func Page(name string) slog.Attr      { return slog.String(KeyPage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func Value(v string) slog.Attr        { return slog.String(KeyValue, v) }
func Timestamp(ts string) slog.Attr   { return slog.String(KeyTimestamp, ts) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Workers(n int) slog.Attr         { return slog.Int(KeyWorkers, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
