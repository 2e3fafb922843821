package project

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	requirementsName = "requirements.txt"
	pyprojectName    = "pyproject.toml"
)

type pyprojectTOML struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// loadPip collects dependency names from requirements.txt and
// pyproject.toml, whichever are present. Names are stored PEP 503
// normalized.
func loadPip(baseDir string) (map[string]struct{}, error) {
	deps := map[string]struct{}{}

	data, err := readManifest(baseDir, requirementsName)
	if err != nil {
		return nil, err
	}

	for line := range strings.Lines(string(data)) {
		name := requirementName(line)
		if name != "" {
			deps[normalizePipName(name)] = struct{}{}
		}
	}

	data, err = readManifest(baseDir, pyprojectName)
	if err != nil {
		return nil, err
	}
	if data != nil {
		var py pyprojectTOML

		err = toml.Unmarshal(data, &py)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", pyprojectName, err)
		}

		for _, spec := range py.Project.Dependencies {
			if name := requirementName(spec); name != "" {
				deps[normalizePipName(name)] = struct{}{}
			}
		}

		for name := range py.Tool.Poetry.Dependencies {
			if name == "python" {
				continue
			}

			deps[normalizePipName(name)] = struct{}{}
		}
	}

	return deps, nil
}

// requirementName extracts the project name from one requirement specifier,
// stopping at extras, version constraints, markers, or comments.
func requirementName(spec string) string {
	s := strings.TrimSpace(spec)
	if s == "" || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "-") {
		return ""
	}

	end := len(s)
	for i := range len(s) {
		c := s[i]
		isNameChar := c == '.' || c == '-' || c == '_' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isNameChar {
			end = i

			break
		}
	}

	return s[:end]
}
