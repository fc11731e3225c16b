package gitstamp

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// SourcePath resolves a page name to its source file: confDir joined with
// the page name plus suffix. An empty confDir leaves the page name relative
// to the working directory.
func SourcePath(confDir, page, suffix string) string {
	name := filepath.FromSlash(page) + suffix
	if confDir == "" {
		return name
	}
	return filepath.Join(confDir, name)
}

// ISO 8601 shapes accepted from the history query. Fractional seconds are
// accepted by time.Parse without being listed.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05 Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO 8601 timestamp, keeping its UTC offset.
// Timestamps without an offset are taken as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", raw)
}

// FormatTimestamp renders t with a strftime pattern in t's own zone.
func FormatTimestamp(pattern string, t time.Time) string {
	return strftime.Format(pattern, t)
}
