package build

import "git.home.luguber.info/inful/gitstamp/internal/docs"

// Keys of the base render context.
const (
	ContextProject  = "project"
	ContextTitle    = "title"
	ContextPageName = "pagename"
	ContextBody     = "body"
	ContextSections = "sections"
	ContextPages    = "pages"
	ContextBuildID  = "build_id"
)

// PageContext is the mutable key/value mapping handed to page templates.
type PageContext map[string]any

// Set stores value under key.
func (c PageContext) Set(key string, value any) {
	c[key] = value
}

// Get returns the value stored under key.
func (c PageContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (c PageContext) GetString(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// PageEvent carries the arguments of the page-context event.
type PageEvent struct {
	PageName     string
	TemplateName string
	Context      PageContext
	Doctree      docs.Doctree
}
