package project

import (
	"regexp"
)

const gemfileName = "Gemfile"

// gemPattern matches `gem "name"` declarations at the start of a Gemfile
// line. A full Ruby parser is deliberately out of scope; line scanning
// covers how Gemfiles are written in practice.
var gemPattern = regexp.MustCompile(`(?m)^\s*gem\s+['"]([^'"]+)['"]`)

// loadGemfile collects gem names declared in the Gemfile.
func loadGemfile(baseDir string) (map[string]struct{}, error) {
	data, err := readManifest(baseDir, gemfileName)
	if err != nil || data == nil {
		return nil, err
	}

	deps := map[string]struct{}{}
	for _, m := range gemPattern.FindAllSubmatch(data, -1) {
		deps[string(m[1])] = struct{}{}
	}

	return deps, nil
}
