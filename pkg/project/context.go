// Package project builds the run-scoped view of a host project that
// condition expressions are evaluated against: its dependency manifests,
// filesystem, and configured variables.
//
// A [Context] is created once per run with [BuildContext]. Each manifest is
// read and parsed at most once per context lifetime; an absent manifest
// means "no dependencies", not an error. Population is idempotent, so
// concurrent evaluations against one context are safe.
package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/macropower/rulekit/pkg/condition"
)

// ErrNoValue indicates a Value lookup on a namespace that only supports
// existence checks.
var ErrNoValue = errors.New("namespace does not carry a value")

// manifestLoader reads and parses one manifest kind, returning the set of
// dependency names it lists. Keys are pre-normalized per ecosystem.
type manifestLoader func(baseDir string) (map[string]struct{}, error)

var loaders = map[condition.Namespace]manifestLoader{
	condition.NamespaceNPM:      loadNPM,
	condition.NamespacePip:      loadPip,
	condition.NamespaceGo:       loadGoMod,
	condition.NamespaceCargo:    loadCargo,
	condition.NamespaceComposer: loadComposer,
	condition.NamespaceGem:      loadGemfile,
	condition.NamespacePub:      loadPubspec,
	condition.NamespaceMaven:    loadMaven,
	condition.NamespaceGradle:   loadGradle,
	condition.NamespaceNuget:    loadNuget,
}

type manifestResult struct {
	deps map[string]struct{}
	raw  []byte // Raw manifest bytes, kept only for pkg: field lookups.
	err  error
}

// Context answers condition lookups against one base directory. It
// implements [condition.ProjectContext] and is read-only after population.
type Context struct {
	manifests map[condition.Namespace]*manifestResult
	vars      map[string]string
	baseDir   string
	mu        sync.Mutex
}

// ContextOpt configures a [Context].
type ContextOpt func(*Context)

// WithVars provides the project-level variables consulted by `var:` terms.
func WithVars(vars map[string]string) ContextOpt {
	return func(c *Context) {
		c.vars = vars
	}
}

// BuildContext creates a [Context] rooted at baseDir. Manifests are loaded
// lazily on first lookup.
func BuildContext(baseDir string, opts ...ContextOpt) *Context {
	c := &Context{
		baseDir:   baseDir,
		manifests: map[condition.Namespace]*manifestResult{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseDir returns the directory the context is rooted at.
func (c *Context) BaseDir() string {
	return c.baseDir
}

// Has reports whether the identifier exists in the project: a listed
// dependency for the package namespaces, a file or directory for file/dir,
// a resolvable field for pkg, or a defined variable for var.
func (c *Context) Has(ctx context.Context, ns condition.Namespace, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err //nolint:wrapcheck // Return the original error.
	}

	switch ns {
	case condition.NamespaceFile:
		return c.statLocal(name, false)

	case condition.NamespaceDir:
		return c.statLocal(name, true)

	case condition.NamespacePkg, condition.NamespaceVar:
		_, ok, err := c.Value(ctx, ns, name)

		return ok, err
	}

	deps, err := c.deps(ns)
	if err != nil {
		return false, err
	}

	_, ok := deps[normalizeName(ns, name)]

	return ok, nil
}

// Value resolves the value behind a pkg/var identifier, stringified for
// comparison against a term literal.
func (c *Context) Value(ctx context.Context, ns condition.Namespace, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err //nolint:wrapcheck // Return the original error.
	}

	switch ns {
	case condition.NamespacePkg:
		return c.packageJSONValue(name)

	case condition.NamespaceVar:
		v, ok := c.vars[name]

		return v, ok, nil
	}

	return "", false, fmt.Errorf("%w: %s", ErrNoValue, ns)
}

// deps returns the memoized dependency set for a package namespace.
func (c *Context) deps(ns condition.Namespace) (map[string]struct{}, error) {
	loader, ok := loaders[ns]
	if !ok {
		return nil, fmt.Errorf("no manifest loader for namespace %q", ns)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.manifests[ns]
	if !ok {
		deps, err := loader(c.baseDir)
		res = &manifestResult{deps: deps, err: err}
		c.manifests[ns] = res
	}

	return res.deps, res.err
}

// statLocal checks whether a relative path exists under the base directory.
// Paths escaping the base directory never match.
func (c *Context) statLocal(name string, wantDir bool) (bool, error) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return false, nil
	}

	info, err := os.Stat(filepath.Join(c.baseDir, filepath.FromSlash(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", name, err)
	}

	return info.IsDir() == wantDir, nil
}

// readManifest reads one manifest file. A missing file yields (nil, nil):
// existence checks against an absent manifest are false, not an error.
func readManifest(baseDir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return data, nil
}
