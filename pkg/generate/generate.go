// Package generate writes transformed rule documents into each AI tool's
// expected on-disk format.
package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/macropower/rulekit/pkg/target"
)

// Rule is one transformed document ready for emission.
type Rule struct {
	// Name is the output file name without extension.
	Name string
	// Description is the optional frontmatter summary.
	Description string
	// Body is the fully resolved, target-transformed markdown body.
	Body string
}

// Generator renders rules into one target platform's format.
type Generator interface {
	// Target identifies the platform this generator serves.
	Target() target.Target
	// Path returns the output path for a rule, relative to the project root.
	Path(name string) string
	// Render produces the output file content.
	Render(r Rule) ([]byte, error)
}

// ForTarget returns the generator for a platform.
func ForTarget(t target.Target) (Generator, error) { //nolint:ireturn // Dispatch over the target enum.
	switch t {
	case target.Claude:
		return claudeGenerator{}, nil
	case target.Cursor:
		return cursorGenerator{}, nil
	case target.Factory:
		return factoryGenerator{}, nil
	}

	return nil, fmt.Errorf("%w: %q", target.ErrUnknownTarget, t)
}

// Write renders the rule and writes it under baseDir, creating parent
// directories as needed. It returns the path of the written file.
func Write(baseDir string, g Generator, r Rule) (string, error) {
	data, err := g.Render(r)
	if err != nil {
		return "", fmt.Errorf("render %s rule %q: %w", g.Target(), r.Name, err)
	}

	path := filepath.Join(baseDir, g.Path(r.Name))

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return "", fmt.Errorf("write rule: %w", err)
	}

	return path, nil
}
