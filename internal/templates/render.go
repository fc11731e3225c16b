package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"
)

// Template names. Each may be overridden by a file of the same name in the
// templates directory.
const (
	PageHTML     = "page.html"
	GenIndexHTML = "genindex.html"
	SearchHTML   = "search.html"
	FooterHTML   = "footer.html"
	PageText     = "page.txt"
)

var (
	htmlNames = []string{FooterHTML, PageHTML, GenIndexHTML, SearchHTML}
	textNames = []string{PageText}
)

// Names lists every template a Renderer loads.
func Names() []string {
	return append(append([]string(nil), htmlNames...), textNames...)
}

//go:embed defaults/*.tmpl
var embeddedTemplates embed.FS

// Renderer executes the page templates of a build.
type Renderer struct {
	html    *htmltemplate.Template
	text    *texttemplate.Template
	sources map[string]string
}

// NewRenderer parses the page templates. Files in overrideDir replace the
// embedded defaults of the same name; an empty overrideDir uses defaults only.
func NewRenderer(overrideDir string) (*Renderer, error) {
	r := &Renderer{sources: make(map[string]string)}

	html := htmltemplate.New("root").Funcs(htmltemplate.FuncMap{
		"title": Title,
		"join":  strings.Join,
	})
	for _, name := range htmlNames {
		raw, err := r.load(overrideDir, name)
		if err != nil {
			return nil, err
		}
		if _, err := html.New(name).Parse(raw); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
	}
	r.html = html

	text := texttemplate.New("root").Funcs(texttemplate.FuncMap{
		"title":     Title,
		"underline": underline,
	})
	for _, name := range textNames {
		raw, err := r.load(overrideDir, name)
		if err != nil {
			return nil, err
		}
		if _, err := text.New(name).Parse(raw); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
	}
	r.text = text

	return r, nil
}

func (r *Renderer) load(overrideDir, name string) (string, error) {
	if overrideDir != "" {
		path := filepath.Join(overrideDir, name)
		b, err := os.ReadFile(path)
		switch {
		case err == nil && strings.TrimSpace(string(b)) != "":
			r.sources[name] = path
			return string(b), nil
		case err != nil && !os.IsNotExist(err):
			return "", fmt.Errorf("read template override %s: %w", path, err)
		}
	}

	b, err := embeddedTemplates.ReadFile("defaults/" + name + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("embedded default template missing for %s: %w", name, err)
	}
	r.sources[name] = "embedded"
	return string(b), nil
}

// Source reports where a template was loaded from: "embedded" or the
// override file path.
func (r *Renderer) Source(name string) string {
	return r.sources[name]
}

// RenderHTML executes the named HTML template.
func (r *Renderer) RenderHTML(name string, data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.html.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// RenderText executes the named text template.
func (r *Renderer) RenderText(name string, data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func underline(s string) string {
	return strings.Repeat("=", len([]rune(s)))
}
