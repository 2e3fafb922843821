package project

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

const cargoTOMLName = "Cargo.toml"

type cargoTOML struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// loadCargo collects crate names from every dependency table of Cargo.toml.
func loadCargo(baseDir string) (map[string]struct{}, error) {
	data, err := readManifest(baseDir, cargoTOMLName)
	if err != nil || data == nil {
		return nil, err
	}

	var cargo cargoTOML

	err = toml.Unmarshal(data, &cargo)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", cargoTOMLName, err)
	}

	deps := map[string]struct{}{}
	for _, table := range []map[string]any{
		cargo.Dependencies,
		cargo.DevDependencies,
		cargo.BuildDependencies,
	} {
		for name := range table {
			deps[name] = struct{}{}
		}
	}

	return deps, nil
}
