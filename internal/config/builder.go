package config

import "git.home.luguber.info/inful/gitstamp/internal/foundation/normalization"

// BuilderName selects the output builder.
type BuilderName string

const (
	BuilderHTML    BuilderName = "html"
	BuilderDirHTML BuilderName = "dirhtml"
	BuilderText    BuilderName = "text"
)

var builderNormalizer = normalization.NewNormalizer("builder", map[string]BuilderName{
	"html":    BuilderHTML,
	"dirhtml": BuilderDirHTML,
	"text":    BuilderText,
	"txt":     BuilderText,
}, BuilderHTML)

// ParseBuilderName validates raw as a builder name. Blank selects html.
func ParseBuilderName(raw string) (BuilderName, error) {
	return builderNormalizer.Parse(raw)
}

// BuilderNames lists the accepted builder names.
func BuilderNames() []string {
	return builderNormalizer.ValidKeys()
}
