package project

import (
	"strings"

	"github.com/macropower/rulekit/pkg/condition"
)

// normalizeName canonicalizes a dependency name per its ecosystem's identity
// rules so that lookups match the way the manifest loader stored it.
func normalizeName(ns condition.Namespace, name string) string {
	switch ns {
	case condition.NamespacePip:
		return normalizePipName(name)
	case condition.NamespaceComposer, condition.NamespaceNuget:
		// Both ecosystems treat package identifiers case-insensitively.
		return strings.ToLower(name)
	}

	return name
}

// normalizePipName applies PEP 503 normalization: lowercase with runs of
// `-`, `_`, and `.` collapsed to a single `-`.
func normalizePipName(name string) string {
	var (
		sb   strings.Builder
		dash bool
	)

	for _, r := range strings.ToLower(name) {
		if r == '-' || r == '_' || r == '.' {
			if !dash {
				sb.WriteByte('-')
				dash = true
			}

			continue
		}

		dash = false

		sb.WriteRune(r)
	}

	return sb.String()
}
