package project

import (
	"encoding/json"
	"fmt"
	"strings"
)

const composerJSONName = "composer.json"

type composerJSON struct {
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

// loadComposer collects package names from composer.json. PHP platform
// pseudo-packages (`php`, `ext-*`) are listed as authored; names are stored
// lowercase since composer identifiers are case-insensitive.
func loadComposer(baseDir string) (map[string]struct{}, error) {
	data, err := readManifest(baseDir, composerJSONName)
	if err != nil || data == nil {
		return nil, err
	}

	var composer composerJSON

	err = json.Unmarshal(data, &composer)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", composerJSONName, err)
	}

	deps := map[string]struct{}{}
	for _, block := range []map[string]string{composer.Require, composer.RequireDev} {
		for name := range block {
			deps[strings.ToLower(name)] = struct{}{}
		}
	}

	return deps, nil
}
