package docs

import (
	"bufio"
	"bytes"
	"strings"
	"unicode/utf8"
)

// Doctree is the parsed structure of a reStructuredText source page. Only
// what the page templates need is kept.
type Doctree struct {
	Title      string
	Sections   []string
	Paragraphs []string
}

// Empty reports whether the tree carries no content.
func (t Doctree) Empty() bool {
	return t.Title == "" && len(t.Sections) == 0 && len(t.Paragraphs) == 0
}

// ParseDoctree extracts section titles and paragraphs. A section title is
// a line followed by an adornment line of one repeated punctuation
// character at least as long as the title, optionally with a matching
// overline. Directives and comments (".. ") are dropped.
func ParseDoctree(content []byte) Doctree {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r"))
	}

	var tree Doctree
	var para []string
	inDirective := false

	flush := func() {
		if len(para) > 0 {
			tree.Paragraphs = append(tree.Paragraphs, strings.Join(para, " "))
			para = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			inDirective = false
			continue
		}
		if inDirective && line != trimmed {
			continue
		}
		inDirective = false

		if strings.HasPrefix(trimmed, "..") {
			flush()
			inDirective = true
			continue
		}

		// Overline, title, underline.
		if isAdornment(trimmed) && i+2 < len(lines) && isAdornment(strings.TrimSpace(lines[i+2])) {
			title := strings.TrimSpace(lines[i+1])
			if title != "" && width(strings.TrimSpace(lines[i+2])) >= width(title) {
				flush()
				tree.addSection(title)
				i += 2
				continue
			}
		}

		if i+1 < len(lines) {
			under := strings.TrimSpace(lines[i+1])
			if isAdornment(under) && width(under) >= width(trimmed) && len(para) == 0 {
				tree.addSection(trimmed)
				i++
				continue
			}
		}

		para = append(para, trimmed)
	}
	flush()

	return tree
}

func (t *Doctree) addSection(title string) {
	if t.Title == "" {
		t.Title = title
	}
	t.Sections = append(t.Sections, title)
}

// width counts characters, not bytes.
func width(s string) int {
	return utf8.RuneCountInString(s)
}

const adornmentChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isAdornment(line string) bool {
	if len(line) < 2 {
		return false
	}
	c := line[0]
	if !strings.ContainsRune(adornmentChars, rune(c)) {
		return false
	}
	for i := 1; i < len(line); i++ {
		if line[i] != c {
			return false
		}
	}
	return true
}
