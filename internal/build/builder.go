package build

import (
	"fmt"
	"path"
	"strings"

	"git.home.luguber.info/inful/gitstamp/internal/config"
	"git.home.luguber.info/inful/gitstamp/internal/templates"
)

// Output formats. Extensions gate on the format rather than the builder name.
const (
	FormatHTML = "html"
	FormatText = "text"
)

// Builder turns page contexts into output files.
type Builder interface {
	Name() config.BuilderName
	Format() string
	// OutputPath returns the slash-separated output file for a page,
	// relative to the output directory.
	OutputPath(pageName string) string
	// TemplateName selects the template for a page.
	TemplateName(pageName string, synthetic bool) string
	Render(r *templates.Renderer, templateName string, ctx PageContext) ([]byte, error)
	// SyntheticPages lists pages the builder generates without a source file.
	SyntheticPages() []string
}

// NewBuilder returns the builder registered under name.
func NewBuilder(name config.BuilderName) (Builder, error) {
	switch name {
	case config.BuilderHTML:
		return &htmlBuilder{name: name}, nil
	case config.BuilderDirHTML:
		return &htmlBuilder{name: name, dirs: true}, nil
	case config.BuilderText:
		return textBuilder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuilder, name)
	}
}

type htmlBuilder struct {
	name config.BuilderName
	dirs bool
}

func (b *htmlBuilder) Name() config.BuilderName { return b.name }
func (b *htmlBuilder) Format() string           { return FormatHTML }

// OutputPath places pages at <page>.html, or <page>/index.html for the
// directory builder. Pages already named index stay in place.
func (b *htmlBuilder) OutputPath(pageName string) string {
	if !b.dirs || pageName == "index" || strings.HasSuffix(pageName, "/index") {
		return pageName + ".html"
	}
	return path.Join(pageName, "index.html")
}

func (b *htmlBuilder) TemplateName(pageName string, synthetic bool) string {
	if synthetic {
		switch pageName {
		case "genindex":
			return templates.GenIndexHTML
		case "search":
			return templates.SearchHTML
		}
	}
	return templates.PageHTML
}

func (b *htmlBuilder) Render(r *templates.Renderer, templateName string, ctx PageContext) ([]byte, error) {
	return r.RenderHTML(templateName, ctx)
}

func (b *htmlBuilder) SyntheticPages() []string {
	return []string{"genindex", "search"}
}

type textBuilder struct{}

func (textBuilder) Name() config.BuilderName { return config.BuilderText }
func (textBuilder) Format() string           { return FormatText }

func (textBuilder) OutputPath(pageName string) string {
	return pageName + ".txt"
}

func (textBuilder) TemplateName(string, bool) string {
	return templates.PageText
}

func (textBuilder) Render(r *templates.Renderer, templateName string, ctx PageContext) ([]byte, error) {
	return r.RenderText(templateName, ctx)
}

func (textBuilder) SyntheticPages() []string { return nil }
