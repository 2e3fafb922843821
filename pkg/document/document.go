// Package document loads rule documents and discovers them on disk.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/macropower/rulekit/pkg/frontmatter"
)

// Document is one rule/persona/command markdown document: its location, its
// decoded frontmatter, and its body with the frontmatter stripped.
type Document struct {
	Frontmatter *frontmatter.Frontmatter
	Path        string
	Body        string
}

// Load reads a document from disk and splits its frontmatter.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	fm, body, err := frontmatter.Split(string(data))
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", path, err)
	}

	return &Document{
		Path:        path,
		Frontmatter: fm,
		Body:        body,
	}, nil
}

// Name returns the document's output name: its base name without the
// markdown extension.
func (d *Document) Name() string {
	base := filepath.Base(d.Path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Discover returns the paths of every document under baseDir matching any of
// the glob patterns, deduplicated and sorted.
func Discover(baseDir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(baseDir)

	seen := map[string]struct{}{}

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}

		for _, m := range matches {
			seen[filepath.Join(baseDir, filepath.FromSlash(m))] = struct{}{}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}

	slices.Sort(paths)

	return paths, nil
}
