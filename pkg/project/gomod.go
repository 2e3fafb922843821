package project

import (
	"fmt"

	"golang.org/x/mod/modfile"
)

const goModName = "go.mod"

// loadGoMod collects required module paths from go.mod, including indirect
// requirements.
func loadGoMod(baseDir string) (map[string]struct{}, error) {
	data, err := readManifest(baseDir, goModName)
	if err != nil || data == nil {
		return nil, err
	}

	f, err := modfile.Parse(goModName, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", goModName, err)
	}

	deps := map[string]struct{}{}
	for _, req := range f.Require {
		deps[req.Mod.Path] = struct{}{}
	}

	return deps, nil
}
