package condition

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownNamespace indicates an identifier with a missing or unsupported
// namespace prefix.
var ErrUnknownNamespace = errors.New("unknown namespace")

// Namespace identifies what kind of project check an identifier performs.
type Namespace string

const (
	NamespaceNPM      Namespace = "npm"
	NamespacePip      Namespace = "pip"
	NamespaceGo       Namespace = "go"
	NamespaceCargo    Namespace = "cargo"
	NamespaceComposer Namespace = "composer"
	NamespaceGem      Namespace = "gem"
	NamespacePub      Namespace = "pub"
	NamespaceMaven    Namespace = "maven"
	NamespaceGradle   Namespace = "gradle"
	NamespaceNuget    Namespace = "nuget"
	NamespaceFile     Namespace = "file"
	NamespaceDir      Namespace = "dir"
	NamespacePkg      Namespace = "pkg"
	NamespaceVar      Namespace = "var"
)

var namespaces = map[Namespace]struct{}{
	NamespaceNPM:      {},
	NamespacePip:      {},
	NamespaceGo:       {},
	NamespaceCargo:    {},
	NamespaceComposer: {},
	NamespaceGem:      {},
	NamespacePub:      {},
	NamespaceMaven:    {},
	NamespaceGradle:   {},
	NamespaceNuget:    {},
	NamespaceFile:     {},
	NamespaceDir:      {},
	NamespacePkg:      {},
	NamespaceVar:      {},
}

// Comparable reports whether the namespace carries a value that supports
// `==`/`!=` comparison.
func (n Namespace) Comparable() bool {
	return n == NamespacePkg || n == NamespaceVar
}

// Identifier is a single namespaced reference, e.g. `npm:react` or
// `file:"a b.json"`.
type Identifier struct {
	Namespace Namespace `json:"namespace"`
	Name      string    `json:"name"`
}

func (id Identifier) String() string {
	return string(id.Namespace) + ":" + id.Name
}

// UnknownNamespaceError carries the offending token of an identifier whose
// namespace prefix is missing or not in the supported set.
type UnknownNamespaceError struct {
	Token string
}

func (e *UnknownNamespaceError) Error() string {
	return fmt.Sprintf("unknown namespace in %q", e.Token)
}

func (e *UnknownNamespaceError) Unwrap() error {
	return ErrUnknownNamespace
}

// ParseIdentifier parses one namespaced reference at the start of the token.
// The name may be a bare word, which ends at the first `==`, `!=`,
// whitespace, or end of token, or a double-quoted string, which may contain
// spaces. It returns the identifier and the unconsumed remainder of the
// token.
func ParseIdentifier(token string) (Identifier, string, error) {
	colon := strings.Index(token, ":")
	if colon <= 0 {
		return Identifier{}, "", &UnknownNamespaceError{Token: token}
	}

	ns := Namespace(token[:colon])
	if _, ok := namespaces[ns]; !ok {
		return Identifier{}, "", &UnknownNamespaceError{Token: token}
	}

	rest := token[colon+1:]
	if strings.HasPrefix(rest, `"`) {
		end := strings.Index(rest[1:], `"`)
		if end < 0 {
			return Identifier{}, "", fmt.Errorf("unterminated quoted name in %q", token)
		}

		return Identifier{Namespace: ns, Name: rest[1 : end+1]}, rest[end+2:], nil
	}

	end := len(rest)
	for i := range len(rest) {
		if rest[i] == ' ' || rest[i] == '\t' {
			end = i

			break
		}
		if strings.HasPrefix(rest[i:], "==") || strings.HasPrefix(rest[i:], "!=") {
			end = i

			break
		}
	}

	if end == 0 {
		return Identifier{}, "", fmt.Errorf("missing name in %q", token)
	}

	return Identifier{Namespace: ns, Name: rest[:end]}, rest[end:], nil
}
