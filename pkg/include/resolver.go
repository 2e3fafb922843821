// Package include expands `@include <path>.md` directives in rule document
// bodies. Resolution is depth-first and strictly sequential; an explicit
// include chain is threaded through the recursion so cycles are detected and
// reportable, independent of host stack limits.
package include

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/macropower/rulekit/pkg/frontmatter"
)

// DefaultMaxDepth is the include nesting limit used when none is configured.
const DefaultMaxDepth = 10

// directivePattern matches an include directive line: optional indentation,
// `@include`, and a target path. Only `.md` targets are directives; lines
// referencing any other extension are left as literal text.
var directivePattern = regexp.MustCompile(`^\s*@include\s+(.+?\.md)\s*$`)

// Resolver expands include directives relative to a base directory.
type Resolver struct {
	baseDir  string
	maxDepth int
}

// ResolverOpt configures a [Resolver].
type ResolverOpt func(*Resolver)

// WithBaseDir resolves top-level include targets against dir instead of the
// including file's directory. Nested includes always resolve relative to the
// included file's own directory.
func WithBaseDir(dir string) ResolverOpt {
	return func(r *Resolver) {
		r.baseDir = dir
	}
}

// WithMaxDepth caps include nesting. A limit of 0 disallows includes
// entirely; even a single directive fails.
func WithMaxDepth(depth int) ResolverOpt {
	return func(r *Resolver) {
		r.maxDepth = depth
	}
}

// NewResolver creates a [Resolver].
func NewResolver(opts ...ResolverOpt) *Resolver {
	r := &Resolver{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Result is the outcome of a successful include resolution.
type Result struct {
	// Content is the fully expanded document body.
	Content string
	// IncludedFiles lists every spliced file in depth-first completion
	// order. Duplicates are preserved for dependency tracking.
	IncludedFiles []string
	// HasIncludes reports whether any directive was expanded.
	HasIncludes bool
}

// Resolve expands every include directive in content. currentFilePath names
// the document being resolved; it anchors relative resolution when no base
// directory is configured and seeds the include chain so that
// self-inclusion is caught immediately. A `---`-delimited frontmatter
// prologue in content is never scanned for directives.
func (r *Resolver) Resolve(ctx context.Context, content, currentFilePath string) (*Result, error) {
	base := r.baseDir
	if base == "" {
		base = filepath.Dir(currentFilePath)
	}

	var chain []string

	if currentFilePath != "" {
		abs, err := filepath.Abs(currentFilePath)
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", currentFilePath, err)
		}

		chain = append(chain, abs)
	}

	res := &Result{}

	out, err := r.resolve(ctx, content, base, chain, 0, res, true)
	if err != nil {
		return nil, err
	}

	res.Content = out

	return res, nil
}

func (r *Resolver) resolve(
	ctx context.Context,
	content, base string,
	chain []string,
	depth int,
	res *Result,
	topLevel bool,
) (string, error) {
	lines := strings.Split(content, "\n")

	// The top-level document may still carry its frontmatter; directives
	// inside the prologue are metadata, not content.
	skipUntil := -1
	if topLevel {
		skipUntil = frontmatterEnd(lines)
	}

	out := make([]string, 0, len(lines))

	for i, line := range lines {
		if i <= skipUntil {
			out = append(out, line)

			continue
		}

		m := directivePattern.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)

			continue
		}

		if err := ctx.Err(); err != nil {
			return "", err //nolint:wrapcheck // Return the original error.
		}

		targetPath, err := filepath.Abs(filepath.Join(base, filepath.FromSlash(strings.TrimSpace(m[1]))))
		if err != nil {
			return "", fmt.Errorf("resolve include target %q: %w", m[1], err)
		}

		if idx := slices.Index(chain, targetPath); idx >= 0 {
			cycle := slices.Clone(chain[idx:])

			return "", &CircularIncludeError{Chain: append(cycle, targetPath)}
		}

		if depth >= r.maxDepth {
			return "", &MaxDepthExceededError{Limit: r.maxDepth, Path: targetPath}
		}

		data, err := os.ReadFile(targetPath)
		if errors.Is(err, fs.ErrNotExist) {
			return "", &FileNotFoundError{Path: targetPath}
		}
		if err != nil {
			return "", fmt.Errorf("read include target: %w", err)
		}

		// Frontmatter of an included file must never leak into the splice.
		body := frontmatter.Strip(string(data))

		expanded, err := r.resolve(ctx, body, filepath.Dir(targetPath), append(chain, targetPath), depth+1, res, false)
		if err != nil {
			return "", err
		}

		res.IncludedFiles = append(res.IncludedFiles, targetPath)
		res.HasIncludes = true

		out = append(out, strings.TrimSuffix(expanded, "\n"))
	}

	return strings.Join(out, "\n"), nil
}

// frontmatterEnd returns the line index of the closing `---` delimiter, or
// -1 when the content has no frontmatter prologue.
func frontmatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return -1
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			return i
		}
	}

	return -1
}
