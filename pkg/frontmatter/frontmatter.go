// Package frontmatter splits a `---`-delimited YAML prologue from a markdown
// document body. Only the fields the pipeline understands are decoded into
// typed form; everything else is kept in a raw map for callers.
package frontmatter

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

const delimiter = "---"

// Frontmatter holds the decoded YAML prologue of a rule document.
type Frontmatter struct {
	// Raw contains every frontmatter field as decoded YAML.
	Raw map[string]any
	// Description is an optional human-readable summary.
	Description string
	// When is an optional condition expression gating the whole document.
	When string
}

// Split separates the YAML frontmatter from the document body. Documents
// without a frontmatter prologue return an empty [Frontmatter] and the
// content unchanged.
func Split(content string) (*Frontmatter, string, error) {
	meta, body, ok := bounds(content)
	if !ok {
		return &Frontmatter{}, content, nil
	}

	fm := &Frontmatter{}

	err := yaml.Unmarshal([]byte(meta), &fm.Raw)
	if err != nil {
		return nil, "", fmt.Errorf("decode frontmatter: %w", err)
	}

	if v, ok := fm.Raw["description"].(string); ok {
		fm.Description = v
	}
	if v, ok := fm.Raw["when"].(string); ok {
		fm.When = v
	}

	return fm, body, nil
}

// Strip returns the document body with any frontmatter prologue removed.
// Malformed or absent frontmatter leaves the content unchanged; Strip never
// decodes the YAML.
func Strip(content string) string {
	_, body, ok := bounds(content)
	if !ok {
		return content
	}

	return body
}

// Has reports whether the content starts with a frontmatter prologue.
func Has(content string) bool {
	_, _, ok := bounds(content)

	return ok
}

// bounds locates the frontmatter region. It returns the YAML between the
// delimiters and the body after the closing delimiter.
func bounds(content string) (meta, body string, ok bool) {
	lines := strings.Split(content, "\n")
	if len(lines) < 2 || strings.TrimRight(lines[0], "\r") != delimiter {
		return "", "", false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == delimiter {
			meta = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")

			return meta, body, true
		}
	}

	// Opening delimiter without a closing one is not frontmatter.
	return "", "", false
}
