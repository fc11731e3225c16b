package templates

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title derives a display title from a slash-separated page name, using
// the last path element with dashes and underscores as word breaks.
// "guide/getting-started" becomes "Getting Started"; "genindex" becomes
// "Index".
func Title(pageName string) string {
	base := path.Base(pageName)
	if base == "." || base == "/" {
		return ""
	}
	if t, ok := specialTitles[base]; ok {
		return t
	}
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(base))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

var specialTitles = map[string]string{
	"genindex": "Index",
	"search":   "Search",
}
