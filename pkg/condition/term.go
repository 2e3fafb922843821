package condition

import (
	"fmt"
	"strings"
)

// Operator is a value comparison operator in a condition term.
type Operator string

const (
	OperatorEqual    Operator = "=="
	OperatorNotEqual Operator = "!="
)

// Term is one boolean atom of a condition expression: an optionally negated
// identifier with an optional value comparison. Operator is empty for
// existence-check terms; Value is meaningful only when Operator is set.
type Term struct {
	Identifier Identifier `json:"identifier"`
	Operator   Operator   `json:"operator,omitempty"`
	Value      string     `json:"value,omitempty"`
	Negated    bool       `json:"negated,omitempty"`
}

func (t Term) String() string {
	var sb strings.Builder
	if t.Negated {
		sb.WriteString("!")
	}

	sb.WriteString(t.Identifier.String())

	if t.Operator != "" {
		sb.WriteString(" " + string(t.Operator) + " " + t.Value)
	}

	return sb.String()
}

// ParseTerm parses a single condition term. Comparison operators are only
// accepted on value-bearing namespaces (pkg, var); on every other namespace
// the term is an existence check and trailing content is an error.
func ParseTerm(token string) (Term, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return Term{}, fmt.Errorf("empty condition term in %q", token)
	}

	t := Term{}
	if strings.HasPrefix(s, "!") {
		t.Negated = true
		s = strings.TrimSpace(s[1:])
	}

	id, rest, err := ParseIdentifier(s)
	if err != nil {
		return Term{}, err
	}

	t.Identifier = id

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return t, nil
	}

	if !id.Namespace.Comparable() {
		return Term{}, fmt.Errorf("namespace %q does not support comparison: %q", id.Namespace, token)
	}

	var op Operator

	switch {
	case strings.HasPrefix(rest, string(OperatorEqual)):
		op = OperatorEqual
	case strings.HasPrefix(rest, string(OperatorNotEqual)):
		op = OperatorNotEqual
	default:
		return Term{}, fmt.Errorf("expected == or != in %q", token)
	}

	value, err := parseValue(strings.TrimSpace(rest[len(op):]))
	if err != nil {
		return Term{}, fmt.Errorf("%w in %q", err, token)
	}

	t.Operator = op
	t.Value = value

	return t, nil
}

// parseValue parses a comparison literal, either double-quoted or bare.
func parseValue(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing comparison value")
	}

	if strings.HasPrefix(s, `"`) {
		end := strings.Index(s[1:], `"`)
		if end < 0 {
			return "", fmt.Errorf("unterminated quoted value")
		}
		if rest := strings.TrimSpace(s[end+2:]); rest != "" {
			return "", fmt.Errorf("unexpected trailing content %q", rest)
		}

		return s[1 : end+1], nil
	}

	if i := strings.IndexAny(s, " \t"); i >= 0 {
		if rest := strings.TrimSpace(s[i:]); rest != "" {
			return "", fmt.Errorf("unexpected trailing content %q", rest)
		}

		s = s[:i]
	}

	return s, nil
}
