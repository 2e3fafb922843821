package condition_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rulekit/pkg/condition"
)

// fakeContext resolves identifiers from fixed maps.
type fakeContext struct {
	present map[string]struct{}
	values  map[string]string
}

func (f *fakeContext) Has(_ context.Context, ns condition.Namespace, name string) (bool, error) {
	if ns.Comparable() {
		_, ok := f.values[string(ns)+":"+name]

		return ok, nil
	}

	_, ok := f.present[string(ns)+":"+name]

	return ok, nil
}

func (f *fakeContext) Value(_ context.Context, ns condition.Namespace, name string) (string, bool, error) {
	v, ok := f.values[string(ns)+":"+name]

	return v, ok, nil
}

func TestParseIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    string
		want     condition.Identifier
		wantRest string
		wantErr  bool
	}{
		{
			name:  "bare name",
			token: "npm:react",
			want:  condition.Identifier{Namespace: condition.NamespaceNPM, Name: "react"},
		},
		{
			name:  "scoped npm package",
			token: "npm:@types/node",
			want:  condition.Identifier{Namespace: condition.NamespaceNPM, Name: "@types/node"},
		},
		{
			name:  "quoted name with spaces",
			token: `file:"docs/my file.md"`,
			want:  condition.Identifier{Namespace: condition.NamespaceFile, Name: "docs/my file.md"},
		},
		{
			name:     "bare name stops at comparison",
			token:    "var:env==prod",
			want:     condition.Identifier{Namespace: condition.NamespaceVar, Name: "env"},
			wantRest: "==prod",
		},
		{
			name:     "bare name stops at whitespace",
			token:    "pkg:version == 2",
			want:     condition.Identifier{Namespace: condition.NamespacePkg, Name: "version"},
			wantRest: " == 2",
		},
		{
			name:    "unknown namespace",
			token:   "brew:jq",
			wantErr: true,
		},
		{
			name:    "no namespace",
			token:   "react",
			wantErr: true,
		},
		{
			name:    "missing name",
			token:   "npm:",
			wantErr: true,
		},
		{
			name:    "unterminated quote",
			token:   `file:"broken`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, rest, err := condition.ParseIdentifier(tt.token)

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestParseIdentifierUnknownNamespaceError(t *testing.T) {
	t.Parallel()

	_, _, err := condition.ParseIdentifier("brew:jq")
	require.Error(t, err)
	require.ErrorIs(t, err, condition.ErrUnknownNamespace)

	var unkErr *condition.UnknownNamespaceError

	require.ErrorAs(t, err, &unkErr)
	assert.Equal(t, "brew:jq", unkErr.Token)
}

func TestParseTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		token   string
		want    condition.Term
		wantErr bool
	}{
		{
			name:  "existence check",
			token: "npm:typescript",
			want: condition.Term{
				Identifier: condition.Identifier{Namespace: condition.NamespaceNPM, Name: "typescript"},
			},
		},
		{
			name:  "negated existence check",
			token: "!file:tsconfig.json",
			want: condition.Term{
				Identifier: condition.Identifier{Namespace: condition.NamespaceFile, Name: "tsconfig.json"},
				Negated:    true,
			},
		},
		{
			name:  "equality on pkg",
			token: `pkg:type == "module"`,
			want: condition.Term{
				Identifier: condition.Identifier{Namespace: condition.NamespacePkg, Name: "type"},
				Operator:   condition.OperatorEqual,
				Value:      "module",
			},
		},
		{
			name:  "inequality on var with bare value",
			token: "var:env != prod",
			want: condition.Term{
				Identifier: condition.Identifier{Namespace: condition.NamespaceVar, Name: "env"},
				Operator:   condition.OperatorNotEqual,
				Value:      "prod",
			},
		},
		{
			name:  "no space around operator",
			token: "var:env==prod",
			want: condition.Term{
				Identifier: condition.Identifier{Namespace: condition.NamespaceVar, Name: "env"},
				Operator:   condition.OperatorEqual,
				Value:      "prod",
			},
		},
		{
			name:  "negated comparison",
			token: `!var:ci == "true"`,
			want: condition.Term{
				Identifier: condition.Identifier{Namespace: condition.NamespaceVar, Name: "ci"},
				Operator:   condition.OperatorEqual,
				Value:      "true",
				Negated:    true,
			},
		},
		{
			name:    "comparison on non-comparable namespace",
			token:   "npm:react == 18",
			wantErr: true,
		},
		{
			name:    "missing comparison value",
			token:   "var:env ==",
			wantErr: true,
		},
		{
			name:    "trailing garbage after value",
			token:   "var:env == prod extra",
			wantErr: true,
		},
		{
			name:    "empty term",
			token:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := condition.ParseTerm(tt.token)

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		expr          string
		wantTerms     int
		wantOperators []condition.LogicalOperator
		wantErr       error
	}{
		{
			name:      "single term",
			expr:      "npm:react",
			wantTerms: 1,
		},
		{
			name:          "mixed operators keep written order",
			expr:          "npm:react && npm:typescript || npm:vue",
			wantTerms:     3,
			wantOperators: []condition.LogicalOperator{condition.LogicalAnd, condition.LogicalOr},
		},
		{
			name:          "operator inside quotes is literal",
			expr:          `file:"a&&b.md" || npm:react`,
			wantTerms:     2,
			wantOperators: []condition.LogicalOperator{condition.LogicalOr},
		},
		{
			name:    "empty expression",
			expr:    "  ",
			wantErr: condition.ErrEmptyExpression,
		},
		{
			name:    "dangling operator",
			expr:    "npm:react &&",
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := condition.ParseExpression(tt.expr)

			if tt.wantErr != nil {
				require.Error(t, err)
				if tt.wantErr != assert.AnError {
					require.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Len(t, e.Conditions, tt.wantTerms)
			assert.Equal(t, tt.wantOperators, e.Operators)
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	pc := &fakeContext{
		present: map[string]struct{}{
			"npm:react":      {},
			"npm:typescript": {},
			"file:Dockerfile": {},
		},
		values: map[string]string{
			"var:env":  "prod",
			"pkg:type": "module",
		},
	}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{
			name: "present dependency",
			expr: "npm:react",
			want: true,
		},
		{
			name: "absent dependency",
			expr: "npm:vue",
			want: false,
		},
		{
			name: "negation",
			expr: "!npm:vue",
			want: true,
		},
		{
			name: "and",
			expr: "npm:react && npm:typescript",
			want: true,
		},
		{
			name: "or",
			expr: "npm:vue || file:Dockerfile",
			want: true,
		},
		{
			name: "and then or",
			expr: "npm:react && npm:typescript || npm:vue",
			want: true,
		},
		{
			name: "left to right fold without precedence",
			// (false && true) || true, not false && (true || true).
			expr: "npm:vue && npm:react || file:Dockerfile",
			want: true,
		},
		{
			name: "left to right fold where precedence would differ",
			// ((true || false) && false) is false; true || (false && false)
			// would be true.
			expr: "npm:react || npm:vue && npm:svelte",
			want: false,
		},
		{
			name: "equality match",
			expr: `var:env == "prod"`,
			want: true,
		},
		{
			name: "equality mismatch",
			expr: `var:env == "dev"`,
			want: false,
		},
		{
			name: "equality on absent value",
			expr: `var:missing == "x"`,
			want: false,
		},
		{
			name: "inequality on absent value",
			expr: `var:missing != "x"`,
			want: true,
		},
		{
			name: "pkg field equality",
			expr: `pkg:type == "module"`,
			want: true,
		},
		{
			name: "negated comparison",
			expr: `!var:env == "prod"`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := condition.Evaluate(t.Context(), tt.expr, pc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShouldInclude(t *testing.T) {
	t.Parallel()

	pc := &fakeContext{present: map[string]struct{}{"npm:react": {}}}

	got, err := condition.ShouldInclude(t.Context(), "", pc)
	require.NoError(t, err)
	assert.True(t, got, "documents without a when expression always participate")

	got, err = condition.ShouldInclude(t.Context(), "npm:vue", pc)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = condition.ShouldInclude(t.Context(), "brew:jq", pc)
	require.Error(t, err)
}
