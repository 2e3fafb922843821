package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/macropower/rulekit/pkg/condition"
)

const packageJSONName = "package.json"

type packageJSON struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// loadNPM collects dependency names from every dependency block of
// package.json. Scoped names (`@scope/name`) are kept verbatim.
func loadNPM(baseDir string) (map[string]struct{}, error) {
	data, err := readManifest(baseDir, packageJSONName)
	if err != nil || data == nil {
		return nil, err
	}

	var pkg packageJSON

	err = json.Unmarshal(data, &pkg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", packageJSONName, err)
	}

	deps := map[string]struct{}{}
	for _, block := range []map[string]string{
		pkg.Dependencies,
		pkg.DevDependencies,
		pkg.PeerDependencies,
		pkg.OptionalDependencies,
	} {
		for name := range block {
			deps[name] = struct{}{}
		}
	}

	return deps, nil
}

// packageJSONValue resolves a dotted field path inside package.json and
// returns its stringified value. JSON is a YAML subset, so the lookup reuses
// the YAML path machinery. An unresolvable path is "absent", not an error.
func (c *Context) packageJSONValue(dotPath string) (string, bool, error) {
	data, err := c.packageJSONData()
	if err != nil {
		return "", false, err
	}
	if data == nil {
		return "", false, nil
	}

	path, err := yaml.PathString("$." + strings.TrimPrefix(dotPath, "."))
	if err != nil {
		return "", false, fmt.Errorf("invalid field path %q: %w", dotPath, err)
	}

	var value any

	err = path.Read(bytes.NewReader(data), &value)
	if err != nil {
		// The path does not resolve in this manifest.
		return "", false, nil
	}

	return stringifyValue(value), true, nil
}

// packageJSONData returns the memoized raw bytes of package.json, or nil
// when the manifest is absent.
func (c *Context) packageJSONData() ([]byte, error) {
	const key = condition.NamespacePkg

	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.manifests[key]
	if !ok {
		res = &manifestResult{}
		res.raw, res.err = readManifest(c.baseDir, packageJSONName)
		c.manifests[key] = res
	}

	return res.raw, res.err
}

// stringifyValue renders a decoded manifest value the way term literals are
// written: scalars in their natural form, everything else via fmt.
func stringifyValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}
