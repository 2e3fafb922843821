package condition

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyExpression indicates an empty or whitespace-only `when:` string.
var ErrEmptyExpression = errors.New("empty condition expression")

// LogicalOperator joins two terms of an expression.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "&&"
	LogicalOr  LogicalOperator = "||"
)

// Expression is an ordered list of terms and the operators between them.
// len(Operators) is always len(Conditions)-1.
type Expression struct {
	Conditions []Term            `json:"conditions"`
	Operators  []LogicalOperator `json:"operators"`
}

func (e *Expression) String() string {
	var sb strings.Builder
	for i, c := range e.Conditions {
		if i > 0 {
			sb.WriteString(" " + string(e.Operators[i-1]) + " ")
		}

		sb.WriteString(c.String())
	}

	return sb.String()
}

// ParseExpression splits a `when:` string on top-level `&&` and `||` tokens,
// outside quoted literals, preserving their written order. No precedence is
// assigned; evaluation folds strictly left to right.
func ParseExpression(expr string) (*Expression, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmptyExpression
	}

	e := &Expression{}

	var (
		start    int
		inQuotes bool
	)

	flush := func(end int) error {
		t, err := ParseTerm(expr[start:end])
		if err != nil {
			return err
		}

		e.Conditions = append(e.Conditions, t)

		return nil
	}

	i := 0
	for i < len(expr) {
		c := expr[i]

		if c == '"' {
			inQuotes = !inQuotes
			i++

			continue
		}

		if !inQuotes && (strings.HasPrefix(expr[i:], string(LogicalAnd)) || strings.HasPrefix(expr[i:], string(LogicalOr))) {
			err := flush(i)
			if err != nil {
				return nil, err
			}

			e.Operators = append(e.Operators, LogicalOperator(expr[i:i+2]))
			i += 2
			start = i

			continue
		}

		i++
	}

	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in expression %q", expr)
	}

	err := flush(len(expr))
	if err != nil {
		return nil, err
	}

	return e, nil
}
