package git

import (
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Layouts matching git's %aI and %ai output. Git prints +00:00 rather than Z.
const (
	isoStrictLayout   = "2006-01-02T15:04:05-07:00"
	isoLayout         = "2006-01-02 15:04:05 -0700"
	defaultDateLayout = "Mon Jan 2 15:04:05 2006 -0700"
)

// FormatCommit renders a subset of git's pretty placeholders for one commit.
// Unknown placeholders are copied through verbatim, as git does.
func FormatCommit(format string, c *object.Commit) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			b.WriteByte(format[i])
			continue
		}
		if n, s := placeholder(format[i+1:], c); n > 0 {
			b.WriteString(s)
			i += n
			continue
		}
		b.WriteByte('%')
	}
	return b.String()
}

// placeholder expands the directive at the start of its input, returning the number
// of bytes consumed (zero when unknown).
func placeholder(directive string, c *object.Commit) (int, string) {
	switch directive[0] {
	case '%':
		return 1, "%"
	case 'n':
		return 1, "\n"
	case 'H':
		return 1, c.Hash.String()
	case 'h':
		return 1, c.Hash.String()[:7]
	case 's':
		subject, _, _ := strings.Cut(c.Message, "\n")
		return 1, subject
	case 'a', 'c':
		if len(directive) < 2 {
			return 0, ""
		}
		sig := c.Author
		if directive[0] == 'c' {
			sig = c.Committer
		}
		if s, ok := signature(directive[1], sig); ok {
			return 2, s
		}
	}
	return 0, ""
}

func signature(field byte, sig object.Signature) (string, bool) {
	switch field {
	case 'n':
		return sig.Name, true
	case 'e':
		return sig.Email, true
	case 'I':
		return sig.When.Format(isoStrictLayout), true
	case 'i':
		return sig.When.Format(isoLayout), true
	case 't':
		return strconv.FormatInt(sig.When.Unix(), 10), true
	case 'd':
		return sig.When.Format(defaultDateLayout), true
	}
	return "", false
}
