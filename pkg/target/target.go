// Package target enumerates the AI tool platforms that rule documents can be
// rendered for.
package target

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTarget indicates that a string does not name a supported platform.
var ErrUnknownTarget = errors.New("unknown target")

// Target identifies one output platform.
type Target string

const (
	Claude  Target = "claude"
	Cursor  Target = "cursor"
	Factory Target = "factory"
)

// All lists every supported target, in stable order.
var All = []Target{Claude, Cursor, Factory}

// IsValid reports whether s names a supported target.
func IsValid(s string) bool {
	switch Target(s) {
	case Claude, Cursor, Factory:
		return true
	}

	return false
}

// Parse converts a string into a [Target].
func Parse(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	if !IsValid(string(t)) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
	}

	return t, nil
}

// ParseAll converts a list of strings into targets. An empty input selects
// every supported target.
func ParseAll(ss []string) ([]Target, error) {
	if len(ss) == 0 {
		return All, nil
	}

	ts := make([]Target, 0, len(ss))
	for _, s := range ss {
		t, err := Parse(s)
		if err != nil {
			return nil, err
		}

		ts = append(ts, t)
	}

	return ts, nil
}

func (t Target) String() string {
	return string(t)
}

// Names returns the string form of every supported target.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = string(t)
	}

	return names
}
