// Package sync orchestrates one generation run: build a project context,
// discover rule documents, resolve includes, decide participation, transform
// per target, and emit outputs. It also provides the fsnotify-backed watch
// loop that re-runs generation when sources change.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/macropower/rulekit/pkg/condition"
	"github.com/macropower/rulekit/pkg/config"
	"github.com/macropower/rulekit/pkg/document"
	"github.com/macropower/rulekit/pkg/generate"
	"github.com/macropower/rulekit/pkg/include"
	"github.com/macropower/rulekit/pkg/project"
	"github.com/macropower/rulekit/pkg/target"
	"github.com/macropower/rulekit/pkg/transform"
)

// ErrUnknownRule indicates a render request for a rule name that discovery
// did not produce.
var ErrUnknownRule = errors.New("unknown rule")

// Runner executes generation runs for one project directory.
type Runner struct {
	cfg     *config.Config
	baseDir string
	targets []target.Target
	emit    bool
}

// RunnerOpt configures a [Runner].
type RunnerOpt func(*Runner)

// WithTargets overrides the configured target platforms.
func WithTargets(ts []target.Target) RunnerOpt {
	return func(r *Runner) {
		if len(ts) > 0 {
			r.targets = ts
		}
	}
}

// WithDryRun validates the full pipeline without writing outputs.
func WithDryRun() RunnerOpt {
	return func(r *Runner) {
		r.emit = false
	}
}

// NewRunner creates a [Runner] for the project at baseDir.
func NewRunner(baseDir string, cfg *config.Config, opts ...RunnerOpt) (*Runner, error) {
	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve project directory: %w", err)
	}

	targets, err := target.ParseAll(cfg.Targets)
	if err != nil {
		return nil, fmt.Errorf("configured targets: %w", err)
	}

	r := &Runner{
		cfg:     cfg,
		baseDir: absDir,
		targets: targets,
		emit:    true,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// DocumentResult records the outcome of one document in a run.
type DocumentResult struct {
	// Path is the source document path.
	Path string
	// Name is the document's output name.
	Name string
	// Description is the frontmatter summary, if any.
	Description string
	// IncludedFiles lists every file spliced into the document.
	IncludedFiles []string
	// Written lists the emitted output paths, one per target.
	Written []string
	// Included reports the inclusion decision for the document.
	Included bool
}

// Result summarizes one generation run.
type Result struct {
	Documents []DocumentResult
}

// Written returns every output path emitted during the run.
func (r *Result) Written() []string {
	var paths []string
	for _, d := range r.Documents {
		paths = append(paths, d.Written...)
	}

	return paths
}

// IncludedFiles returns every file spliced into any document, deduplicated.
func (r *Result) IncludedFiles() []string {
	seen := map[string]struct{}{}

	var paths []string

	for _, d := range r.Documents {
		for _, p := range d.IncludedFiles {
			if _, ok := seen[p]; ok {
				continue
			}

			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}

	return paths
}

// Run executes one generation run. The project context is rebuilt on every
// call; manifests are never reused across runs.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	pc := project.BuildContext(r.baseDir, project.WithVars(r.cfg.Vars))

	paths, err := document.Discover(r.baseDir, r.cfg.Rules.Patterns)
	if err != nil {
		return nil, fmt.Errorf("discover rule documents: %w", err)
	}

	result := &Result{}

	for _, path := range paths {
		dr, err := r.processDocument(ctx, pc, path)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", path, err)
		}

		result.Documents = append(result.Documents, *dr)
	}

	return result, nil
}

func (r *Runner) processDocument(ctx context.Context, pc *project.Context, path string) (*DocumentResult, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	dr := &DocumentResult{
		Path:        path,
		Name:        doc.Name(),
		Description: doc.Frontmatter.Description,
	}

	// Includes are structural; they expand before the inclusion decision so
	// that shared partials participate in conditional content.
	resolver := include.NewResolver(include.WithMaxDepth(r.cfg.MaxDepth()))

	res, err := resolver.Resolve(ctx, doc.Body, path)
	if err != nil {
		return nil, err
	}

	dr.IncludedFiles = res.IncludedFiles

	dr.Included, err = condition.ShouldInclude(ctx, doc.Frontmatter.When, pc)
	if err != nil {
		return nil, err
	}

	if !dr.Included {
		slog.Debug("document excluded by when expression",
			slog.String("path", path),
			slog.String("when", doc.Frontmatter.When),
		)

		return dr, nil
	}

	for _, t := range r.targets {
		body := transform.Conditional(res.Content, t)

		if !r.emit {
			continue
		}

		gen, err := generate.ForTarget(t)
		if err != nil {
			return nil, err
		}

		written, err := generate.Write(r.baseDir, gen, generate.Rule{
			Name:        dr.Name,
			Description: dr.Description,
			Body:        body,
		})
		if err != nil {
			return nil, err
		}

		dr.Written = append(dr.Written, written)

		slog.Debug("wrote rule",
			slog.String("target", t.String()),
			slog.String("path", written),
		)
	}

	return dr, nil
}

// Render resolves and transforms a single rule document for one target
// without writing output. The rule is addressed by its output name.
func (r *Runner) Render(ctx context.Context, name string, t target.Target) (string, error) {
	pc := project.BuildContext(r.baseDir, project.WithVars(r.cfg.Vars))

	paths, err := document.Discover(r.baseDir, r.cfg.Rules.Patterns)
	if err != nil {
		return "", fmt.Errorf("discover rule documents: %w", err)
	}

	for _, path := range paths {
		doc, err := document.Load(path)
		if err != nil {
			return "", err
		}

		if doc.Name() != name {
			continue
		}

		resolver := include.NewResolver(include.WithMaxDepth(r.cfg.MaxDepth()))

		res, err := resolver.Resolve(ctx, doc.Body, path)
		if err != nil {
			return "", err
		}

		included, err := condition.ShouldInclude(ctx, doc.Frontmatter.When, pc)
		if err != nil {
			return "", err
		}
		if !included {
			return "", fmt.Errorf("%w: %q is excluded for this project", ErrUnknownRule, name)
		}

		return transform.Conditional(res.Content, t), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownRule, name)
}
