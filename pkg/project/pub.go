package project

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

const pubspecName = "pubspec.yaml"

type pubspecYAML struct {
	Dependencies    map[string]any `yaml:"dependencies"`
	DevDependencies map[string]any `yaml:"dev_dependencies"`
}

// loadPubspec collects package names from pubspec.yaml.
func loadPubspec(baseDir string) (map[string]struct{}, error) {
	data, err := readManifest(baseDir, pubspecName)
	if err != nil || data == nil {
		return nil, err
	}

	var pubspec pubspecYAML

	err = yaml.Unmarshal(data, &pubspec)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pubspecName, err)
	}

	deps := map[string]struct{}{}
	for _, block := range []map[string]any{pubspec.Dependencies, pubspec.DevDependencies} {
		for name := range block {
			deps[name] = struct{}{}
		}
	}

	return deps, nil
}
