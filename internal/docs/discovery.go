package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	derrors "git.home.luguber.info/inful/gitstamp/internal/docs/errors"
	"git.home.luguber.info/inful/gitstamp/internal/logfields"
)

// Page represents a discovered source page or a synthetic page produced by
// the builder.
type Page struct {
	Name         string // Slash-separated page name without suffix (e.g. "guide/install")
	Path         string // Path to the source file; empty for synthetic pages
	RelativePath string // Path relative to the source directory
	Section      string // Directory part of Name, empty at the root
	Synthetic    bool   // True for pages without a source file
	Content      []byte // File content (loaded on demand)
}

// SyntheticPage returns a page that has no backing source file.
func SyntheticPage(name string) Page {
	return Page{Name: name, Synthetic: true}
}

// Discovery finds source pages below a directory.
type Discovery struct {
	sourceDir string
	suffix    string
	exclude   []string
}

// NewDiscovery creates a discovery for files ending in suffix below
// sourceDir. Paths listed in exclude (typically the output directory) are
// not descended into.
func NewDiscovery(sourceDir, suffix string, exclude ...string) *Discovery {
	cleaned := make([]string, 0, len(exclude))
	for _, e := range exclude {
		if e != "" {
			cleaned = append(cleaned, filepath.Clean(e))
		}
	}
	return &Discovery{
		sourceDir: sourceDir,
		suffix:    suffix,
		exclude:   cleaned,
	}
}

// Discover walks the source directory and returns pages sorted by name.
// Hidden entries and directories starting with "_" are skipped.
func (d *Discovery) Discover() ([]Page, error) {
	info, err := os.Stat(d.sourceDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", derrors.ErrSourceDirNotFound, d.sourceDir)
	}

	var pages []Page
	err = filepath.WalkDir(d.sourceDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := entry.Name()
		if entry.IsDir() {
			if path == d.sourceDir {
				return nil
			}
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || d.excluded(path) {
				slog.Debug("Skipping directory", logfields.Path(path))
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, d.suffix) {
			return nil
		}

		relPath, err := filepath.Rel(d.sourceDir, path)
		if err != nil {
			return fmt.Errorf("%w: %w", derrors.ErrInvalidRelativePath, err)
		}

		pageName := filepath.ToSlash(strings.TrimSuffix(relPath, d.suffix))
		section := ""
		if i := strings.LastIndex(pageName, "/"); i >= 0 {
			section = pageName[:i]
		}

		pages = append(pages, Page{
			Name:         pageName,
			Path:         path,
			RelativePath: relPath,
			Section:      section,
		})
		slog.Debug("Discovered page", logfields.Page(pageName), logfields.File(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDirWalkFailed, d.sourceDir, err)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Name < pages[j].Name })

	slog.Info("Source pages discovered", logfields.Path(d.sourceDir), logfields.Pages(len(pages)))
	return pages, nil
}

func (d *Discovery) excluded(path string) bool {
	clean := filepath.Clean(path)
	for _, e := range d.exclude {
		if clean == e {
			return true
		}
	}
	return false
}

// LoadContent loads the content of a page's source file. Synthetic pages
// have no content.
func (p *Page) LoadContent() error {
	if p.Content != nil || p.Synthetic {
		return nil
	}

	content, err := os.ReadFile(p.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, p.Path, err)
	}

	p.Content = content
	return nil
}
