package condition

import (
	"context"
	"fmt"
	"strings"
)

// ProjectContext answers existence and value lookups for condition terms.
// It is implemented by [github.com/macropower/rulekit/pkg/project.Context].
type ProjectContext interface {
	// Has reports whether the named dependency, file, directory, field, or
	// variable exists in the project.
	Has(ctx context.Context, ns Namespace, name string) (bool, error)
	// Value resolves the stringified value behind a pkg/var identifier.
	// The boolean reports whether the value exists.
	Value(ctx context.Context, ns Namespace, name string) (string, bool, error)
}

// Evaluate parses expr and evaluates it against the project context,
// folding terms strictly left to right across the written operators.
func Evaluate(ctx context.Context, expr string, pc ProjectContext) (bool, error) {
	e, err := ParseExpression(expr)
	if err != nil {
		return false, err
	}

	return e.Evaluate(ctx, pc)
}

// Evaluate computes the boolean result of a parsed expression:
// acc = acc OP next, in written order, with no operator precedence.
func (e *Expression) Evaluate(ctx context.Context, pc ProjectContext) (bool, error) {
	if len(e.Conditions) == 0 {
		return false, ErrEmptyExpression
	}

	acc, err := e.Conditions[0].Evaluate(ctx, pc)
	if err != nil {
		return false, err
	}

	for i, op := range e.Operators {
		next, err := e.Conditions[i+1].Evaluate(ctx, pc)
		if err != nil {
			return false, err
		}

		switch op {
		case LogicalAnd:
			acc = acc && next
		case LogicalOr:
			acc = acc || next
		default:
			return false, fmt.Errorf("unknown logical operator %q", op)
		}
	}

	return acc, nil
}

// Evaluate computes the boolean result of a single term.
func (t Term) Evaluate(ctx context.Context, pc ProjectContext) (bool, error) {
	matched, err := t.evaluate(ctx, pc)
	if err != nil {
		return false, err
	}

	if t.Negated {
		return !matched, nil
	}

	return matched, nil
}

func (t Term) evaluate(ctx context.Context, pc ProjectContext) (bool, error) {
	if t.Operator == "" {
		ok, err := pc.Has(ctx, t.Identifier.Namespace, t.Identifier.Name)
		if err != nil {
			return false, fmt.Errorf("evaluate %q: %w", t.Identifier, err)
		}

		return ok, nil
	}

	value, ok, err := pc.Value(ctx, t.Identifier.Namespace, t.Identifier.Name)
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", t.Identifier, err)
	}

	switch t.Operator {
	case OperatorEqual:
		return ok && value == t.Value, nil
	case OperatorNotEqual:
		// An absent value is trivially not equal to the literal.
		return !ok || value != t.Value, nil
	}

	return false, fmt.Errorf("unknown operator %q", t.Operator)
}

// ShouldInclude decides whether a document participates in generation. A
// document without a `when:` expression always participates.
func ShouldInclude(ctx context.Context, when string, pc ProjectContext) (bool, error) {
	if strings.TrimSpace(when) == "" {
		return true, nil
	}

	matches, err := Evaluate(ctx, when, pc)
	if err != nil {
		return false, fmt.Errorf("evaluate when expression: %w", err)
	}

	return matches, nil
}
