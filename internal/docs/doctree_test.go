package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDoctree(t *testing.T) {
	src := `.. _top:

=========
 Handbook
=========

Welcome to the handbook.
It spans two lines.

.. note::
   Indented directive body.

Install
-------

Run the installer.
`
	tree := ParseDoctree([]byte(src))

	assert.Equal(t, "Handbook", tree.Title)
	assert.Equal(t, []string{"Handbook", "Install"}, tree.Sections)
	assert.Equal(t, []string{
		"Welcome to the handbook. It spans two lines.",
		"Run the installer.",
	}, tree.Paragraphs)
	assert.False(t, tree.Empty())
}

func TestParseDoctree_ShortUnderlineIsParagraph(t *testing.T) {
	tree := ParseDoctree([]byte("A long heading\n--\n"))
	assert.Empty(t, tree.Title)
	assert.Equal(t, []string{"A long heading --"}, tree.Paragraphs)
}

func TestParseDoctree_Empty(t *testing.T) {
	assert.True(t, ParseDoctree(nil).Empty())
	assert.True(t, Doctree{}.Empty())
}

func TestParseDoctree_NonASCIITitles(t *testing.T) {
	tree := ParseDoctree([]byte("Über\n====\n\nBody text.\n\n==========\nNaïve café\n==========\n\n日本語\n======\n"))
	assert.Equal(t, "Über", tree.Title)
	assert.Equal(t, []string{"Über", "Naïve café", "日本語"}, tree.Sections)
	assert.Equal(t, []string{"Body text."}, tree.Paragraphs)
}
