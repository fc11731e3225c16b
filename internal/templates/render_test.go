package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageData() map[string]any {
	return map[string]any{
		"project":  "Handbook",
		"title":    "Install",
		"pagename": "guide/install",
		"body":     []string{"Run <the> installer."},
	}
}

func TestRenderHTML_Defaults(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)
	assert.Equal(t, "embedded", r.Source(PageHTML))

	data := pageData()
	out, err := r.RenderHTML(PageHTML, data)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<title>Install - Handbook</title>")
	assert.Contains(t, html, "<p>Run &lt;the&gt; installer.</p>")
	assert.NotContains(t, html, "Last updated")

	data["gittstamp"] = "Jan 05, 2020 at 03:27 PM (UTC-0500)"
	out, err = r.RenderHTML(PageHTML, data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Last updated: Jan 05, 2020 at 03:27 PM (UTC-0500)")
}

func TestRenderHTML_SyntheticPages(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	out, err := r.RenderHTML(GenIndexHTML, map[string]any{
		"project": "Handbook",
		"title":   "Index",
		"pages":   []string{"guide/install", "index"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<li>guide/install</li>")

	out, err = r.RenderHTML(SearchHTML, map[string]any{"project": "Handbook", "title": "Search"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `name="q"`)
}

func TestRenderText(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	data := pageData()
	data["gittstamp"] = "2020-01-05"
	out, err := r.RenderText(PageText, data)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "Install\n=======\n"))
	assert.Contains(t, text, "Run <the> installer.")
	assert.Contains(t, text, "Last updated: 2020-01-05")
}

func TestRenderer_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PageHTML),
		[]byte(`<h1>{{ title .pagename }}</h1>{{ template "footer" . }}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FooterHTML),
		[]byte(`{{ define "footer" }}[{{ .gittstamp }}]{{ end }}`), 0o644))
	// Blank overrides fall back to the embedded default.
	require.NoError(t, os.WriteFile(filepath.Join(dir, PageText), []byte("  \n"), 0o644))

	r, err := NewRenderer(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, PageHTML), r.Source(PageHTML))
	assert.Equal(t, "embedded", r.Source(PageText))
	assert.Equal(t, "embedded", r.Source(SearchHTML))

	data := pageData()
	data["gittstamp"] = "stamp"
	out, err := r.RenderHTML(PageHTML, data)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Install</h1>[stamp]", string(out))
}

func TestRenderer_OverrideParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PageHTML), []byte("{{ .title "), 0o644))

	_, err := NewRenderer(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), PageHTML)
}

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"index":                 "Index",
		"guide/getting-started": "Getting Started",
		"api/http_client":       "Http Client",
		"genindex":              "Index",
		"search":                "Search",
		"":                      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Title(in), in)
	}
}
